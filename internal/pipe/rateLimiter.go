package pipe

import (
	"context"
	"time"
)

// RateLimit forwards at most ratePerSecond items per second; 0 or less forwards without delay.
// The output closes when input closes or ctx is done.
func RateLimit[T any](ctx context.Context, input <-chan T, ratePerSecond int, bufferSize int) <-chan T {
	output := make(chan T, bufferSize)
	go func() {
		defer close(output)
		var tick <-chan time.Time
		if ratePerSecond > 0 {
			ticker := time.NewTicker(time.Second / time.Duration(ratePerSecond))
			defer ticker.Stop()
			tick = ticker.C
		}
		for {
			var item T
			var ok bool
			select {
			case item, ok = <-input:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
			if tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
					return
				}
			}
			select {
			case output <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return output
}
