package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAutoDismiss(t *testing.T) {
	b := NewBoard()
	var expired atomic.Int32

	n := b.Show(KindWarning, "Your session will expire soon", "extend", 20*time.Millisecond, func() {
		expired.Add(1)
	})
	require.True(t, b.Has(n.ID))
	assert.Len(t, b.List(), 1)

	require.Eventually(t, func() bool { return !b.Has(n.ID) }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return expired.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, b.List())
}

func TestBoardManualDismiss(t *testing.T) {
	b := NewBoard()
	var expired atomic.Int32

	n := b.Show(KindWarning, "Your session will expire soon", "", 30*time.Millisecond, func() {
		expired.Add(1)
	})
	assert.True(t, b.Dismiss(n.ID))
	assert.False(t, b.Dismiss(n.ID), "second dismissal is a no-op")

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, expired.Load(), "stopped timer must not fire")
}

func TestBoardListOrderAndClose(t *testing.T) {
	b := NewBoard()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tick := 0
	b.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := b.Toast(KindSuccess, "Doctor added successfully")
	second := b.Show(KindError, "Please fill in all fields", "", AdminToastTTL, nil)

	list := b.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, list[0].CreatedAt.Add(ToastTTL), list[0].ExpiresAt)

	b.Close()
	assert.Empty(t, b.List())
}
