package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	t.Run("clamps out-of-range values", func(t *testing.T) {
		p := PaginationParams{Page: 0, PerPage: 500}
		p.Validate()
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 100, p.PerPage)
	})

	t.Run("defaults per_page when missing", func(t *testing.T) {
		p := PaginationParams{Page: 2}
		p.Validate()
		assert.Equal(t, 15, p.PerPage)
	})

	t.Run("offset follows the page", func(t *testing.T) {
		p := PaginationParams{Page: 3, PerPage: 20}
		assert.Equal(t, 40, p.Offset())
	})
}

func TestNewPagination(t *testing.T) {
	t.Run("middle page has both neighbours", func(t *testing.T) {
		pag := NewPagination(2, 10, 35)
		assert.Equal(t, 4, pag.TotalPages)
		assert.True(t, pag.HasNext)
		assert.True(t, pag.HasPrev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		pag := NewPagination(4, 10, 35)
		assert.False(t, pag.HasNext)
		assert.True(t, pag.HasPrev)
	})

	t.Run("empty result has no pages", func(t *testing.T) {
		pag := NewPagination(1, 10, 0)
		assert.Equal(t, 0, pag.TotalPages)
		assert.False(t, pag.HasNext)
		assert.False(t, pag.HasPrev)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("sale-123", created)

	params := CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)

	assert.Equal(t, "sale-123", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(created))
}

func TestCursorParamsDecodeErrors(t *testing.T) {
	t.Run("empty cursor decodes to nil", func(t *testing.T) {
		params := CursorParams{}
		cursor, err := params.DecodeCursor()
		require.NoError(t, err)
		assert.Nil(t, cursor)
	})

	t.Run("garbage cursor fails", func(t *testing.T) {
		params := CursorParams{Cursor: "not-base64!!"}
		_, err := params.DecodeCursor()
		require.Error(t, err)
	})
}

func TestNewCursorPagination(t *testing.T) {
	type row struct {
		id string
		at time.Time
	}
	getID := func(r row) string { return r.id }
	getAt := func(r row) time.Time { return r.at }

	now := time.Now()
	rows := []row{
		{"a", now},
		{"b", now.Add(time.Second)},
		{"c", now.Add(2 * time.Second)},
	}

	t.Run("limit+1 fetch signals a next page", func(t *testing.T) {
		pag, items := NewCursorPagination(rows, 2, getID, getAt)

		require.Len(t, items, 2)
		assert.True(t, pag.HasNext)
		require.NotNil(t, pag.NextCursor)

		next := CursorParams{Cursor: *pag.NextCursor}
		cursor, err := next.DecodeCursor()
		require.NoError(t, err)
		assert.Equal(t, "b", cursor.ID)
	})

	t.Run("short fetch means the last page", func(t *testing.T) {
		pag, items := NewCursorPagination(rows[:1], 2, getID, getAt)
		require.Len(t, items, 1)
		assert.False(t, pag.HasNext)
	})

	t.Run("empty fetch has no cursors", func(t *testing.T) {
		pag, items := NewCursorPagination([]row{}, 2, getID, getAt)
		assert.Empty(t, items)
		assert.Nil(t, pag.NextCursor)
		assert.Nil(t, pag.PrevCursor)
	})
}
