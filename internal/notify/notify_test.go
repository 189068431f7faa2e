package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/safarshare/safar/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCenter_ShowAndAutoHide(t *testing.T) {
	clock := testutil.NewFakeClock(time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC))
	var buf bytes.Buffer
	c := NewCenter(&buf, WithClock(clock), WithHideAfter(4*time.Second))

	ok := c.Success("Parcel request submitted! Tracking ID: SRC-12345")
	clock.Advance(time.Second)
	c.Error("Please accept the terms and conditions")

	assert.Equal(t, "[success] Parcel request submitted! Tracking ID: SRC-12345\n[error] Please accept the terms and conditions\n", buf.String())
	require.Len(t, c.Active(), 2)
	assert.Equal(t, ok.ID, c.Active()[0].ID)

	clock.Advance(3 * time.Second)
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, LevelError, active[0].Level)

	clock.Advance(time.Second)
	assert.Empty(t, c.Active())
}

func TestCenter_Dismiss(t *testing.T) {
	clock := testutil.NewFakeClock(time.Now())
	c := NewCenter(nil, WithClock(clock))

	n := c.Info("Searching for rides from Clifton")
	c.Dismiss(n.ID)
	assert.Empty(t, c.Active())
	assert.Zero(t, clock.Pending())
}

func TestCenter_CloseStopsTimers(t *testing.T) {
	clock := testutil.NewFakeClock(time.Now())
	c := NewCenter(nil, WithClock(clock))

	c.Success("one")
	c.Success("two")
	assert.Equal(t, 2, clock.Pending())

	c.Close()
	assert.Zero(t, clock.Pending())
	assert.Empty(t, c.Active())

	c.Info("after close")
	assert.Empty(t, c.Active())
}

func TestCenter_SystemClockLeavesNoGoroutines(t *testing.T) {
	var buf bytes.Buffer
	c := NewCenter(&buf, WithHideAfter(10*time.Millisecond), WithFormatter(func(level Level, msg string) string {
		return strings.ToUpper(string(level)) + ": " + msg
	}))

	c.Success("Message sent successfully")
	assert.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 5*time.Millisecond)

	c.Info("pending")
	c.Close()
	assert.Contains(t, buf.String(), "SUCCESS: Message sent successfully")
}
