package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moducation/library-api/library/internal/model"
)

func TestWithdrawal_OverdueOnReturn(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	w := model.Withdrawal{ExpectedReturnDate: due}

	// the flag is true for returns landing before the due date
	require.True(t, w.OverdueOnReturn(due.AddDate(0, 0, -3)))
	require.False(t, w.OverdueOnReturn(due))
	require.False(t, w.OverdueOnReturn(due.AddDate(0, 0, 2)))
}
