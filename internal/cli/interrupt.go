package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a wizard session on Ctrl-C with a friendly
// message.
type InterruptHandler struct {
	writer      io.Writer
	stop        chan struct{}
	command     string
	interrupted bool
	stopped     bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler writing to writer.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{writer: writer, stop: make(chan struct{})}
}

// HandleInterrupts returns a context canceled on SIGINT/SIGTERM or when
// ctx is canceled. Either counts as an interruption of command unless Stop
// was called first.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, command string) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.command = command
	h.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
		case <-ctx.Done():
		case <-h.stop:
			cancel()
			return
		}
		h.mu.Lock()
		if !h.interrupted && !h.stopped {
			h.interrupted = true
			h.showInterruptMessage()
		}
		h.mu.Unlock()
		cancel()
	}()

	return ctx
}

// Stop ends signal handling after the session finished normally.
func (h *InterruptHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	close(h.stop)
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Wizard interrupted!")
	if h.command != "" {
		msg += "\n" + FormatInfo("Nothing was saved. Start again with: "+h.command)
	}
	msg += "\n" + FormatInfo("Safe travels! "+SafarIcon) + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted reports whether the session was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
