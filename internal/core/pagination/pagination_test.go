package pagination

import (
	"errors"
	"testing"

	"flock/internal/core/apperr"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID uuid.UUID
}

func rowID(r row) uuid.UUID { return r.ID }

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: uuid.Must(uuid.NewV4())}
	}
	return rows
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{
		"":      DefaultLimit,
		"abc":   DefaultLimit,
		"0":     DefaultLimit,
		"-5":    DefaultLimit,
		"7":     7,
		" 12 ":  12,
		"100":   100,
		"5000":  MaxLimit,
		"3.5":   DefaultLimit,
		"1e3":   DefaultLimit,
		"20abc": DefaultLimit,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLimit(raw), "limit %q", raw)
	}
}

func TestParseCursor(t *testing.T) {
	c, err := ParseCursor("")
	require.NoError(t, err)
	assert.Nil(t, c)

	id := uuid.Must(uuid.NewV4())
	c, err = ParseCursor(id.String())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, id, *c)

	_, err = ParseCursor("not-an-id")
	assert.True(t, errors.Is(err, apperr.ErrBadInput))
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("x", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, req.Limit)
	assert.Equal(t, DefaultLimit+1, req.Fetch())
	assert.Nil(t, req.Cursor)

	_, err = NewRequest("10", "garbage")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Run("more rows than limit", func(t *testing.T) {
		rows := makeRows(21)
		page := Build(rows, 20, rowID)

		assert.Len(t, page.Items, 20)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, rows[19].ID.String(), *page.NextCursor)
	})

	t.Run("exactly limit rows", func(t *testing.T) {
		rows := makeRows(5)
		page := Build(rows, 5, rowID)

		assert.Len(t, page.Items, 5)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("empty collection", func(t *testing.T) {
		page := Build[row](nil, 20, rowID)

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Nil(t, page.NextCursor)
	})
}

func TestMapKeepsCursor(t *testing.T) {
	rows := makeRows(3)
	page := Map(Build(rows, 2, rowID), func(r row) string { return r.ID.String() })

	assert.Equal(t, []string{rows[0].ID.String(), rows[1].ID.String()}, page.Items)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, rows[1].ID.String(), *page.NextCursor)
}
