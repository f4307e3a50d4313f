package connectivity_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/connectivity"
)

func TestFeedWait(t *testing.T) {
	f := connectivity.NewFeed(connectivity.Disconnected)
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Set(connectivity.Connecting)
		f.Set(connectivity.Connected)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.Wait(ctx, connectivity.Connected))
	assert.Equal(t, connectivity.Connected, f.Value())
}

func TestFeedWaitTimeout(t *testing.T) {
	f := connectivity.NewFeed(connectivity.Disconnected)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.Wait(ctx, connectivity.Connected), context.DeadlineExceeded)
}

func TestSubscribe(t *testing.T) {
	f := connectivity.NewFeed(connectivity.Disconnected)
	ctx, cancel := context.WithCancel(context.Background())

	ch := f.Subscribe(ctx)
	assert.Equal(t, connectivity.Disconnected, <-ch)

	f.Set(connectivity.Failed)
	select {
	case s := <-ch:
		assert.Equal(t, connectivity.Failed, s)
	case <-time.After(5 * time.Second):
		t.Fatal("no update delivered")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "connected", connectivity.Connected.String())
	assert.Equal(t, "status(9)", connectivity.Status(9).String())
}

func TestDialerConnects(t *testing.T) {
	d := connectivity.NewDialer(func(ctx context.Context, progress func(int)) error {
		progress(50)
		progress(100)
		return nil
	})

	var mu sync.Mutex
	var seen []int
	result := make(chan error, 1)
	d.Connect(func(p int) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	}, func(err error) { result <- err })

	require.NoError(t, <-result)
	assert.Equal(t, connectivity.Connected, d.Status().Value())
	mu.Lock()
	assert.Equal(t, []int{50, 100}, seen)
	mu.Unlock()

	d.Disconnect()
	assert.Equal(t, connectivity.Disconnected, d.Status().Value())
}

func TestDialerFailure(t *testing.T) {
	boom := errors.New("refused")
	d := connectivity.NewDialer(func(context.Context, func(int)) error { return boom })

	result := make(chan error, 1)
	d.Connect(nil, func(err error) { result <- err })
	assert.ErrorIs(t, <-result, boom)
	assert.Equal(t, connectivity.Failed, d.Status().Value())
}

func TestDisconnectCancelsDial(t *testing.T) {
	started := make(chan struct{})
	d := connectivity.NewDialer(func(ctx context.Context, _ func(int)) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	result := make(chan error, 1)
	d.Connect(nil, func(err error) { result <- err })
	<-started
	assert.Equal(t, connectivity.Connecting, d.Status().Value())

	d.Disconnect()
	assert.ErrorIs(t, <-result, context.Canceled)
	assert.Equal(t, connectivity.Disconnected, d.Status().Value())
}

func TestDisconnectFromCompletion(t *testing.T) {
	d := connectivity.NewDialer(func(context.Context, func(int)) error { return nil })

	done := make(chan struct{})
	d.Connect(nil, func(error) {
		d.Disconnect()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Disconnect inside completion deadlocked")
	}
	assert.Equal(t, connectivity.Disconnected, d.Status().Value())
}

func TestConcurrentConnectLeavesOneDial(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	d := connectivity.NewDialer(func(ctx context.Context, _ func(int)) error {
		mu.Lock()
		running++
		peak = max(peak, running)
		mu.Unlock()
		<-ctx.Done()
		mu.Lock()
		running--
		mu.Unlock()
		return ctx.Err()
	})

	const n = 8
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Connect(nil, func(err error) { results <- err })
		}()
	}
	wg.Wait()
	assert.Equal(t, connectivity.Connecting, d.Status().Value())

	d.Disconnect()
	for i := 0; i < n; i++ {
		select {
		case err := <-results:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("a dial was orphaned and never cancelled")
		}
	}
	mu.Lock()
	assert.Equal(t, 1, peak)
	assert.Zero(t, running)
	mu.Unlock()
	assert.Equal(t, connectivity.Disconnected, d.Status().Value())
}
