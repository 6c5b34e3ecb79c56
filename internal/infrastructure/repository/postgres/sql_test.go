package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDerefHelpers(t *testing.T) {
	t.Run("nil inputs yield zero values", func(t *testing.T) {
		require.Equal(t, "", derefString(nil))
		require.Equal(t, 0, derefInt(nil))
		require.Equal(t, 0.0, derefFloat(nil))
		require.True(t, derefTime(nil).IsZero())
	})

	t.Run("non-nil inputs pass through", func(t *testing.T) {
		s := "COL"
		require.Equal(t, "COL", derefString(&s))
		n := 42
		require.Equal(t, 42, derefInt(&n))
		f := 21.2
		require.Equal(t, 21.2, derefFloat(&f))
		at := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
		require.True(t, derefTime(&at).Equal(at))
	})
}

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(sql.ErrNoRows))
	require.False(t, isNotFound(nil))
	require.False(t, isNotFound(fmt.Errorf("connection refused")))
}
