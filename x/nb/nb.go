// Package nb drives non-blocking peripheral operations to completion.
//
// Peripheral calls return errcode.WouldBlock while the hardware is not ready.
// Block and Retry turn such a poll into a blocking call under the caller's
// context; the peripheral itself never sleeps or times out.
package nb

import (
	"context"
	"time"

	"lpc178x-hal/errcode"
)

// Block calls poll until it returns anything other than WouldBlock, or ctx ends.
// It spins without sleeping, which is what a single-threaded MCU loop wants.
func Block(ctx context.Context, poll func() error) error {
	for {
		err := poll()
		if !errcode.IsWouldBlock(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// Retry is Block with a back-off between polls; backoff <= 0 behaves like Block.
func Retry(ctx context.Context, backoff time.Duration, poll func() error) error {
	if backoff <= 0 {
		return Block(ctx, poll)
	}
	t := time.NewTimer(backoff)
	defer t.Stop()
	for {
		err := poll()
		if !errcode.IsWouldBlock(err) {
			return err
		}
		if !t.Stop() {
			select {
			case <-t.C:
			default:
			}
		}
		t.Reset(backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// ReadByte blocks on a non-blocking byte source.
func ReadByte(ctx context.Context, read func() (byte, error)) (byte, error) {
	var b byte
	err := Block(ctx, func() error {
		v, err := read()
		if err == nil {
			b = v
		}
		return err
	})
	return b, err
}
