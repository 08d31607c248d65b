package timeline

import (
	"fmt"

	"github.com/CrestNiraj12/openfeed/domain"
)

// ChangeKind describes how a merge changed the timeline.
type ChangeKind int

const (
	NoOp ChangeKind = iota
	Initial
	Appended
	Prepended
)

func (k ChangeKind) String() string {
	switch k {
	case Initial:
		return "initial"
	case Appended:
		return "appended"
	case Prepended:
		return "prepended"
	default:
		return "noop"
	}
}

// MergeResult is the outcome of merging a page into a timeline.
type MergeResult struct {
	Items []domain.Item // Full timeline after the merge.
	Kind  ChangeKind
	Added []domain.Item // Items inserted by this merge, newest first.

	// Direction is the direction the caller declared for the page. The merge
	// itself infers its path from the boundary item, not from this value.
	Direction domain.Direction
}

// Merge combines incoming with existing. Neither input is modified.
//
// Empty incoming is a no-op and an empty existing takes incoming as is. When
// incoming starts with existing's oldest item (the echo of an inclusive
// max_id request) the rest is appended. Anything else is treated as newer
// items and prepended. Malformed pages are not repaired.
func Merge(existing, incoming []domain.Item, dir domain.Direction) MergeResult {
	switch {
	case len(incoming) == 0:
		return MergeResult{Items: clone(existing), Kind: NoOp, Direction: dir}

	case len(existing) == 0:
		return MergeResult{
			Items:     clone(incoming),
			Kind:      Initial,
			Added:     clone(incoming),
			Direction: dir,
		}

	case existing[len(existing)-1].ID == incoming[0].ID:
		added := incoming[1:]
		items := make([]domain.Item, 0, len(existing)+len(added))
		items = append(items, existing...)
		items = append(items, added...)
		return MergeResult{Items: items, Kind: Appended, Added: clone(added), Direction: dir}

	default:
		items := make([]domain.Item, 0, len(incoming)+len(existing))
		items = append(items, incoming...)
		items = append(items, existing...)
		return MergeResult{Items: items, Kind: Prepended, Added: clone(incoming), Direction: dir}
	}
}

// CheckOrder verifies items are strictly descending by id, which also rules
// out duplicates.
func CheckOrder(items []domain.Item) error {
	for i := 1; i < len(items); i++ {
		if items[i-1].ID.Compare(items[i].ID) <= 0 {
			return fmt.Errorf("%w: item %d (%s) is not older than item %d (%s)",
				domain.ErrOrderViolation, i, items[i].ID, i-1, items[i-1].ID)
		}
	}
	return nil
}

func clone(items []domain.Item) []domain.Item {
	if items == nil {
		return nil
	}
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out
}
