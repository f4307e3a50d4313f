package connectivity

import (
	"context"
	"sync"
)

// DialFunc establishes a connection, reporting progress as it goes. It must
// return when ctx is cancelled.
type DialFunc func(ctx context.Context, progress func(percent int)) error

// Dialer adapts a DialFunc to Connector.
type Dialer struct {
	dial DialFunc
	feed *Feed

	// op serializes Connect and Disconnect and guards the fields below.
	op     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ Connector = (*Dialer)(nil)

// NewDialer returns a disconnected Dialer.
func NewDialer(dial DialFunc) *Dialer {
	return &Dialer{dial: dial, feed: NewFeed(Disconnected)}
}

// Connect starts dialing in the background. A Connect while a previous
// attempt is still running replaces it.
func (d *Dialer) Connect(progress func(percent int), completion func(error)) {
	if progress == nil {
		progress = func(int) {}
	}
	if completion == nil {
		completion = func(error) {}
	}

	d.op.Lock()
	defer d.op.Unlock()
	d.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel, d.done = cancel, done

	d.feed.Set(Connecting)
	go func() {
		err := d.dial(ctx, progress)
		switch {
		case ctx.Err() != nil:
			// Disconnect already published the state.
		case err != nil:
			d.feed.Set(Failed)
		default:
			d.feed.Set(Connected)
		}
		close(done)
		completion(err)
	}()
}

// Disconnect cancels any dial in flight, waits for it to return and
// publishes Disconnected.
func (d *Dialer) Disconnect() {
	d.op.Lock()
	defer d.op.Unlock()
	d.stop()
}

// stop must be called with op held. The dial goroutine never takes op, so
// waiting on done cannot deadlock.
func (d *Dialer) stop() {
	if d.cancel != nil {
		d.cancel()
		<-d.done
		d.cancel, d.done = nil, nil
	}
	d.feed.Set(Disconnected)
}

// Status returns the status feed.
func (d *Dialer) Status() *Feed { return d.feed }
