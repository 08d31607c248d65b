package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/openfeed/domain"
)

func TestCursorNewer(t *testing.T) {
	c := DefaultCursor()

	d, err := c.Next(nil, domain.Newer)
	require.NoError(t, err)
	assert.Equal(t, domain.Directive{Count: 50}, d)

	d, err = c.Next(items("105", "104", "103"), domain.Newer)
	require.NoError(t, err)
	assert.Equal(t, domain.Directive{SinceID: "105", Count: 50}, d)
}

func TestCursorOlder(t *testing.T) {
	c := DefaultCursor()

	d, err := c.Next(items("105", "104", "103"), domain.Older)
	require.NoError(t, err)
	assert.Equal(t, domain.Directive{MaxID: "103", Count: 100}, d)

	_, err = c.Next(nil, domain.Older)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCursorPageSizes(t *testing.T) {
	c := Cursor{RefreshCount: 20, OlderCount: -1}

	d, err := c.Next(nil, domain.Newer)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Count)

	d, err = c.Next(items("1"), domain.Older)
	require.NoError(t, err)
	assert.Equal(t, DefaultOlderCount, d.Count, "non-positive size falls back to default")
}

func TestCursorUnknownDirection(t *testing.T) {
	_, err := DefaultCursor().Next(items("1"), domain.Direction(7))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
