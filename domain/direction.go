package domain

// Direction says which end of the timeline a fetch extends.
type Direction int

const (
	// Newer fetches items more recent than the newest known item.
	Newer Direction = iota
	// Older fetches items at or before the oldest known item.
	Older
)

func (d Direction) String() string {
	switch d {
	case Newer:
		return "newer"
	case Older:
		return "older"
	default:
		return "unknown"
	}
}

// Directive describes the page a fetcher should retrieve.
//
// SinceID is an exclusive lower bound, MaxID an inclusive upper bound. Either
// may be empty. Count is the requested page size.
type Directive struct {
	SinceID ID
	MaxID   ID
	Count   int
}
