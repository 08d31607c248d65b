package cmd

import (
	"context"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/openfeed/timeline"
	"github.com/CrestNiraj12/openfeed/tui"
	"github.com/CrestNiraj12/openfeed/tui/feed"
)

type rootOptions struct {
	configPath string
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command context, which
// stops in-flight fetches and quits the UI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)

	rootCmd := &cobra.Command{
		Use:           "openfeed",
		Short:         "Browse a Mastodon timeline from the terminal",
		Long:          "openfeed shows your Mastodon home timeline (or a hashtag) in the terminal. Press r to refresh and scroll to the bottom to load older posts.",
		Args:          cobra.NoArgs,
		Version:       v,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	rootCmd.SetVersionTemplate(versionText(v, c, d))
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/openfeed/config.yml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newDumpCmd(opts),
	)

	return rootCmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	d, err := wireDeps(opts.configPath)
	if err != nil {
		return err
	}
	defer d.close()

	store := d.loadStore()
	notices := feed.NewNotices(16)
	coord := timeline.NewCoordinator(d.fetcher, store, notices, timeline.Options{
		Cursor: d.cursor(),
		Logger: d.logger,
	})

	root := tui.NewApp(tui.Deps{
		Coordinator: coord,
		Notices:     notices,
		Source:      d.sourceLabel(),
	})

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, runErr := p.Run()

	// Unblock the listener before waiting on the fetch goroutine.
	notices.Close()
	coord.Close()

	if err := d.saveStore(store); err != nil {
		d.logger.Printf("snapshot: %v", err)
		if runErr == nil {
			return err
		}
	}
	return runErr
}
