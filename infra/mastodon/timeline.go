package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/openfeed/domain"
)

// maxPageLimit is the largest page Mastodon serves for home timelines.
const maxPageLimit = 40

// HomeTimeline implements app.PageFetcher for the authenticated user's home
// timeline.
type HomeTimeline struct {
	client *Client
	path   string
}

// NewHomeTimeline creates a fetcher for /api/v1/timelines/home.
func NewHomeTimeline(client *Client) *HomeTimeline {
	return &HomeTimeline{client: client, path: "/api/v1/timelines/home"}
}

// NewTagTimeline creates a fetcher for a hashtag timeline.
func NewTagTimeline(client *Client, hashtag string) *HomeTimeline {
	tag := strings.TrimSpace(strings.TrimPrefix(hashtag, "#"))
	return &HomeTimeline{client: client, path: "/api/v1/timelines/tag/" + url.PathEscape(tag)}
}

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"` // HTML
	CreatedAt string          `json:"created_at"`
	URL       string          `json:"url"`
	Account   mastodonAccount `json:"account"`
	Reblog    *mastodonStatus `json:"reblog"`
}

type mastodonAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
}

// Fetch returns one page, newest first.
//
// Mastodon treats max_id as exclusive. The directive's MaxID is inclusive, so
// for decimal ids the request asks for max_id = MaxID+1 and the boundary item
// comes back as the first entry.
func (t *HomeTimeline) Fetch(ctx context.Context, d domain.Directive) ([]domain.Item, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(clampLimit(d.Count)))
	if !d.SinceID.IsZero() {
		query.Set("since_id", d.SinceID.String())
	}
	if !d.MaxID.IsZero() {
		maxID := d.MaxID
		if next, ok := d.MaxID.Next(); ok {
			maxID = next
		}
		query.Set("max_id", maxID.String())
	}

	data, err := t.client.Get(ctx, t.path, query)
	if err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, domain.NewFetchError(domain.KindUnknown, "GET "+t.path, fmt.Errorf("parsing timeline: %w", err))
	}
	return mapStatuses(statuses), nil
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return 20
	case n > maxPageLimit:
		return maxPageLimit
	default:
		return n
	}
}

func mapStatuses(statuses []mastodonStatus) []domain.Item {
	items := make([]domain.Item, 0, len(statuses))
	for _, st := range statuses {
		items = append(items, mapStatus(st))
	}
	return items
}

func mapStatus(st mastodonStatus) domain.Item {
	createdAt, _ := time.Parse(time.RFC3339, st.CreatedAt)

	author := sanitizeForTerminal(st.Account.DisplayName)
	if author == "" {
		author = sanitizeForTerminal(st.Account.Acct)
	}

	item := domain.Item{
		ID:        domain.ID(st.ID),
		Author:    author,
		Username:  sanitizeForTerminal(st.Account.Acct),
		Content:   stripHTML(st.Content),
		CreatedAt: createdAt,
		URL:       st.URL,
	}
	if st.Reblog != nil {
		original := mapStatus(*st.Reblog)
		original.PointsTo = nil
		item.PointsTo = &original
	}
	return item
}
