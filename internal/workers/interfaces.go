// Package workers runs the gateway's background loops: the periodic rate
// limit reset and the access log forwarder.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker's input is exhausted.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Resetter clears accumulated admission state.
type Resetter interface {
	Reset()
}
