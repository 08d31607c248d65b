package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/timeline"
)

type dumpOptions struct {
	older  int
	format string
	fresh  bool
	save   bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Refresh the timeline and print it without the UI",
		Long:  "dump refreshes the timeline, optionally pages back --older times, and prints the result as text, json or yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, root, opts)
		},
	}
	cmd.Flags().IntVar(&opts.older, "older", 0, "number of older pages to load after the refresh")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore the saved timeline snapshot")
	cmd.Flags().BoolVar(&opts.save, "save", false, "write the resulting timeline back to the snapshot")
	return cmd
}

// completions is a timeline.Listener that hands completions to a waiting
// command.
type completions chan timeline.Completion

func (completions) FetchStarted(domain.Direction) {}

func (c completions) FetchCompleted(done timeline.Completion) {
	c <- done
}

func runDump(cmd *cobra.Command, root *rootOptions, opts *dumpOptions) error {
	switch opts.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q: use text, json or yaml", opts.format)
	}
	if opts.older < 0 {
		return fmt.Errorf("--older must not be negative")
	}

	d, err := wireDeps(root.configPath)
	if err != nil {
		return err
	}
	defer d.close()

	store := timeline.NewStore(nil)
	if !opts.fresh {
		store = d.loadStore()
	}

	done := make(completions, 4)
	coord := timeline.NewCoordinator(d.fetcher, store, done, timeline.Options{
		Cursor: d.cursor(),
		Logger: d.logger,
	})
	defer coord.Close()

	fetch := func(dir domain.Direction) (timeline.MergeResult, error) {
		started, err := coord.Request(dir)
		if err != nil {
			return timeline.MergeResult{}, err
		}
		if !started {
			return timeline.MergeResult{}, fmt.Errorf("%s fetch not started", dir)
		}
		select {
		case c := <-done:
			if c.Cancelled {
				return timeline.MergeResult{}, fmt.Errorf("%s fetch cancelled", dir)
			}
			if c.Err != nil {
				return timeline.MergeResult{}, c.Err
			}
			return c.Result, nil
		case <-cmd.Context().Done():
			coord.Cancel()
			return timeline.MergeResult{}, cmd.Context().Err()
		}
	}

	stderr := cmd.ErrOrStderr()
	res, err := fetch(domain.Newer)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	fmt.Fprintf(stderr, "refresh: %s, %d new\n", res.Kind, len(res.Added))

	for i := 0; i < opts.older && store.Len() > 0; i++ {
		res, err := fetch(domain.Older)
		if err != nil {
			return fmt.Errorf("older page %d: %w", i+1, err)
		}
		if len(res.Added) == 0 {
			fmt.Fprintln(stderr, "end of timeline")
			break
		}
		fmt.Fprintf(stderr, "older page %d: %d items\n", i+1, len(res.Added))
	}

	items := store.Snapshot()
	if err := writeItems(cmd.OutOrStdout(), items, opts.format); err != nil {
		return err
	}

	if opts.save {
		if err := d.saveStore(store); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return nil
}

type dumpItem struct {
	ID        string    `json:"id" yaml:"id"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	Username  string    `json:"username,omitempty" yaml:"username,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	Content   string    `json:"content,omitempty" yaml:"content,omitempty"`
	ReshareOf *dumpItem `json:"reshare_of,omitempty" yaml:"reshare_of,omitempty"`
}

func toDumpItem(it domain.Item) dumpItem {
	out := dumpItem{
		ID:        it.ID.String(),
		Author:    it.Author,
		Username:  it.Username,
		CreatedAt: it.CreatedAt,
		URL:       it.URL,
		Content:   it.Content,
	}
	if it.PointsTo != nil {
		orig := toDumpItem(*it.PointsTo)
		out.ReshareOf = &orig
	}
	return out
}

func writeItems(w io.Writer, items []domain.Item, format string) error {
	out := make([]dumpItem, len(items))
	for i, it := range items {
		out[i] = toDumpItem(it)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, it := range items {
			if _, err := fmt.Fprintln(w, textLine(it)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func textLine(it domain.Item) string {
	shown := it.Displayed()
	prefix := ""
	if it.IsReshare() {
		prefix = "↻ @" + it.Username + " "
	}
	content := strings.Join(strings.Fields(shown.Content), " ")
	return fmt.Sprintf("%s  %s  %s@%s: %s", it.ID, shown.CreatedAt.UTC().Format(time.RFC3339), prefix, shown.Username, content)
}
