package domain

import "time"

// Item is a single timeline entry.
type Item struct {
	ID        ID        `json:"id"`
	Author    string    `json:"author,omitempty"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content,omitempty"` // Plain text, HTML stripped
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url,omitempty"`

	// PointsTo is the original item when this entry is a reshare (reblog).
	// It is only used for comparisons, the timeline never orders by it.
	PointsTo *Item `json:"points_to,omitempty"`
}

// IsReshare reports whether the item points at another item.
func (i Item) IsReshare() bool {
	return i.PointsTo != nil
}

// Displayed returns the item a view shows for this entry: the original for a
// reshare, the item itself otherwise.
func (i Item) Displayed() Item {
	if i.PointsTo != nil {
		return *i.PointsTo
	}
	return i
}

// Matches reports whether other refers to the same entry as i, either
// directly or through i's reshare target. Comparison is by id only.
func (i Item) Matches(other Item) bool {
	if i.ID == other.ID {
		return true
	}
	return i.PointsTo != nil && i.PointsTo.ID == other.ID
}
