package telemetry

import (
	"context"
	"time"
)

// heartbeat is the owned handle of one running ticker goroutine.
type heartbeat struct {
	stop chan struct{}
	done chan struct{}
}

// halt stops the ticker and waits for its goroutine to return.
func (hb *heartbeat) halt() {
	close(hb.stop)
	<-hb.done
}

// StartHeartbeat replaces any running heartbeat with a new ticker that sends
// a heartbeat event every interval.
func (tc *Client) StartHeartbeat() {
	if !tc.enabled {
		return
	}

	tc.hbMu.Lock()
	defer tc.hbMu.Unlock()

	if tc.heartbeat != nil {
		tc.heartbeat.halt()
		tc.heartbeat = nil
	}

	interval := tc.heartbeatInterval
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}

	tc.mu.Lock()
	closed := tc.closed
	tc.mu.Unlock()
	if closed {
		return
	}

	hb := &heartbeat{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	tc.heartbeat = hb

	go tc.runHeartbeat(hb, interval)
}

func (tc *Client) runHeartbeat(hb *heartbeat, interval time.Duration) {
	defer close(hb.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-hb.stop:
			return
		case <-ticker.C:
			tc.SendEvent(context.Background(), tc.heartbeatEvent(), nil)
		}
	}
}

// StopHeartbeat stops the running heartbeat, if any.
func (tc *Client) StopHeartbeat() {
	tc.hbMu.Lock()
	defer tc.hbMu.Unlock()

	if tc.heartbeat == nil {
		return
	}
	tc.heartbeat.halt()
	tc.heartbeat = nil
}

// Wait blocks until every in-flight request has completed.
func (tc *Client) Wait() {
	tc.inflight.Wait()
}

// Close stops the heartbeat and drains in-flight requests. Sends after Close
// are dropped.
func (tc *Client) Close() {
	tc.mu.Lock()
	tc.closed = true
	tc.mu.Unlock()

	tc.StopHeartbeat()
	tc.Wait()
}
