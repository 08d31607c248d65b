package timeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/openfeed/domain"
)

func TestStoreMergePublishesCopies(t *testing.T) {
	s := NewStore(nil)
	res := s.Merge(items("105", "104", "103"), domain.Newer)
	require.Equal(t, Initial, res.Kind)
	assert.Equal(t, uint64(1), s.Version())

	res.Items[0].Author = "mutated"
	snap := s.Snapshot()
	snap[1].Author = "mutated too"

	fresh := s.Snapshot()
	assert.Equal(t, "author 105", fresh[0].Author)
	assert.Equal(t, "author 104", fresh[1].Author)
}

func TestStoreInitialCopy(t *testing.T) {
	initial := items("3", "2")
	s := NewStore(initial)
	initial[0].ID = "99"

	newest, ok := s.Newest()
	require.True(t, ok)
	assert.Equal(t, domain.ID("3"), newest.ID)
	oldest, ok := s.Oldest()
	require.True(t, ok)
	assert.Equal(t, domain.ID("2"), oldest.ID)
	assert.Equal(t, 2, s.Len())
}

func TestStoreEmptyAccessors(t *testing.T) {
	s := NewStore(nil)
	_, ok := s.Newest()
	assert.False(t, ok)
	_, ok = s.Oldest()
	assert.False(t, ok)
	assert.False(t, s.IsOldest(domain.Item{ID: "1"}))
	assert.Empty(t, s.Snapshot())
}

func TestStoreNoOpKeepsVersion(t *testing.T) {
	s := NewStore(items("5", "4"))
	res := s.Merge(nil, domain.Newer)
	assert.Equal(t, NoOp, res.Kind)
	assert.Equal(t, uint64(0), s.Version())
	assert.False(t, s.ReachedEnd())
}

func TestStoreReachedEnd(t *testing.T) {
	s := NewStore(items("105", "104", "103"))

	s.Merge(items("103"), domain.Older)
	assert.True(t, s.ReachedEnd(), "only the boundary item came back")

	s.Merge(items("108", "107"), domain.Newer)
	assert.False(t, s.ReachedEnd())

	s.Merge(nil, domain.Older)
	assert.True(t, s.ReachedEnd())

	s.Replace(items("2", "1"))
	assert.False(t, s.ReachedEnd())
	assert.Equal(t, []string{"2", "1"}, ids(s.Snapshot()))
}

func TestStoreIsOldestResolvesReshare(t *testing.T) {
	original := domain.Item{ID: "40"}
	s := NewStore([]domain.Item{{ID: "105"}, {ID: "104", PointsTo: &original}})

	assert.True(t, s.IsOldest(domain.Item{ID: "104"}))
	assert.True(t, s.IsOldest(domain.Item{ID: "40"}), "view shows the reshared original")
	assert.False(t, s.IsOldest(domain.Item{ID: "105"}))

	// A different value with the same id still matches; identity is not used.
	assert.True(t, s.IsOldest(domain.Item{ID: "104", Content: "re-fetched copy"}))
}

func TestStoreConcurrentReadsDuringMerges(t *testing.T) {
	s := NewStore(nil)
	s.Merge(span(1000, 991), domain.Newer)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for hi := 990; hi > 10; hi -= 10 {
			s.Merge(span(hi+1, hi-9), domain.Older)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, CheckOrder(s.Snapshot()))
		}
	}()
	wg.Wait()

	assert.NoError(t, CheckOrder(s.Snapshot()))
	oldest, _ := s.Oldest()
	assert.Equal(t, domain.ID("11"), oldest.ID)
}
