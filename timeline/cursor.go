package timeline

import "github.com/CrestNiraj12/openfeed/domain"

const (
	DefaultRefreshCount = 50
	DefaultOlderCount   = 100
)

// Cursor computes the directive for the next fetch from the current timeline.
type Cursor struct {
	RefreshCount int // Page size for Newer fetches.
	OlderCount   int // Page size for Older fetches.
}

// DefaultCursor returns a Cursor with the default page sizes.
func DefaultCursor() Cursor {
	return Cursor{RefreshCount: DefaultRefreshCount, OlderCount: DefaultOlderCount}
}

// Next returns the directive extending items in direction dir.
//
// Newer anchors at the newest item (exclusive); an empty timeline asks for the
// most recent page. Older anchors at the oldest item (inclusive) and fails
// with domain.ErrInvalidState on an empty timeline.
func (c Cursor) Next(items []domain.Item, dir domain.Direction) (domain.Directive, error) {
	switch dir {
	case domain.Newer:
		d := domain.Directive{Count: pageSize(c.RefreshCount, DefaultRefreshCount)}
		if len(items) > 0 {
			d.SinceID = items[0].ID
		}
		return d, nil
	case domain.Older:
		if len(items) == 0 {
			return domain.Directive{}, domain.InvalidState("cannot page older items of an empty timeline")
		}
		return domain.Directive{
			MaxID: items[len(items)-1].ID,
			Count: pageSize(c.OlderCount, DefaultOlderCount),
		}, nil
	default:
		return domain.Directive{}, domain.InvalidState("unknown direction %d", int(dir))
	}
}

func pageSize(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
