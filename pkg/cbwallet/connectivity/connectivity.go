// Package connectivity describes the transport collaborator the bindings
// consume. The binding layer never drives the transport itself; it only
// reads the status feed and asks for connect or disconnect.
package connectivity

import (
	"context"
	"fmt"
	"sync"
)

// Status is the observable connection state.
type Status int

const (
	Disconnected Status = iota
	Connecting
	Connected
	Failed
)

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Connector is the transport interface. progress receives percentages while
// connecting; completion is called once with the outcome.
type Connector interface {
	Connect(progress func(percent int), completion func(error))
	Disconnect()
	Status() *Feed
}

// Feed is an observable Status value.
type Feed struct {
	mu      sync.Mutex
	value   Status
	changed chan struct{}
}

// NewFeed returns a feed holding initial.
func NewFeed(initial Status) *Feed {
	return &Feed{value: initial, changed: make(chan struct{})}
}

// Value returns the current status.
func (f *Feed) Value() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Set publishes s. Setting the current value again is a no-op.
func (f *Feed) Set(s Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.value == s {
		return
	}
	f.value = s
	close(f.changed)
	f.changed = make(chan struct{})
}

func (f *Feed) snapshot() (Status, <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.changed
}

// Subscribe delivers the current status and every later change until ctx is
// done, then closes the channel. A slow reader only sees the latest value.
func (f *Feed) Subscribe(ctx context.Context) <-chan Status {
	out := make(chan Status, 1)
	go func() {
		defer close(out)
		first := true
		var last Status
		for {
			v, changed := f.snapshot()
			if first || v != last {
				select {
				case <-out:
				default:
				}
				out <- v
				first, last = false, v
			}
			select {
			case <-ctx.Done():
				return
			case <-changed:
			}
		}
	}()
	return out
}

// Wait blocks until the feed holds want or ctx is done.
func (f *Feed) Wait(ctx context.Context, want Status) error {
	for {
		v, changed := f.snapshot()
		if v == want {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}
