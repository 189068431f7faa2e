package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the handler goroutine.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler_ParentCanceled(t *testing.T) {
	out := &syncBuffer{}
	h := NewInterruptHandler(out)

	parent, cancel := context.WithCancel(context.Background())
	ctx := h.HandleInterrupts(parent, "safar parcel new")

	select {
	case <-ctx.Done():
		t.Fatal("session context canceled early")
	default:
	}

	cancel()
	<-ctx.Done()
	require.Eventually(t, h.WasInterrupted, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Safe travels!")
	}, time.Second, 5*time.Millisecond)

	got := out.String()
	assert.Contains(t, got, "Wizard interrupted!")
	assert.Contains(t, got, "Start again with: safar parcel new")
	assert.Equal(t, 1, strings.Count(got, "Wizard interrupted!"))
}

func TestInterruptHandler_Stop(t *testing.T) {
	out := &syncBuffer{}
	h := NewInterruptHandler(out)

	ctx := h.HandleInterrupts(context.Background(), "safar contact send")
	h.Stop()
	h.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("session context not released after Stop")
	}
	assert.False(t, h.WasInterrupted())
	assert.Empty(t, out.String())
}

func TestInterruptHandler_Message(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
		notWant []string
	}{
		{
			name:    "named command",
			command: "safar document new",
			want:    []string{"Wizard interrupted!", "Nothing was saved", "safar document new", "Safe travels!"},
		},
		{
			name:    "no command",
			want:    []string{"Wizard interrupted!", "Safe travels!"},
			notWant: []string{"Start again with"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			h := &InterruptHandler{writer: &out, command: tt.command}
			h.showInterruptMessage()

			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestNewInterruptHandler_NilWriter(t *testing.T) {
	h := NewInterruptHandler(nil)
	assert.NotNil(t, h.writer)
	assert.False(t, h.WasInterrupted())
}
