// Package transport runs the process's long-lived listeners together
// and shuts them all down when any of them stops.
package transport

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds each listener's Stop.
const shutdownTimeout = 15 * time.Second

// Listener is started once and stopped once. Start blocks until ctx is
// done or the listener fails.
type Listener interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// Serve starts every listener and returns after all have been stopped.
// Cancelling ctx or a failing Start triggers the stop. The first Start
// error is returned, otherwise any Stop errors joined.
func Serve(ctx context.Context, lis ...Listener) error {
	eg, egCtx := errgroup.WithContext(ctx)

	for _, li := range lis {
		eg.Go(func() error { return li.Start(egCtx) })
	}
	eg.Go(func() error {
		<-egCtx.Done()
		return stopAll(lis)
	})

	return eg.Wait()
}

func stopAll(lis []Listener) error {
	var errs []error
	for _, li := range lis {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		errs = append(errs, li.Stop(ctx))
		cancel()
	}
	return errors.Join(errs...)
}
