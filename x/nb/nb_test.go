package nb

import (
	"context"
	"errors"
	"testing"
	"time"

	"lpc178x-hal/errcode"
)

func TestBlockRetriesUntilReady(t *testing.T) {
	n := 0
	err := Block(context.Background(), func() error {
		n++
		if n < 5 {
			return errcode.WouldBlock
		}
		return nil
	})
	if err != nil || n != 5 {
		t.Fatalf("Block: err=%v polls=%d", err, n)
	}
}

func TestBlockPassesRealErrors(t *testing.T) {
	err := Block(context.Background(), func() error { return errcode.NotStarted })
	if !errors.Is(err, errcode.NotStarted) {
		t.Fatalf("want not_started, got %v", err)
	}
}

func TestBlockHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := Block(ctx, func() error { return errcode.WouldBlock })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	n := 0
	err := Retry(context.Background(), time.Millisecond, func() error {
		n++
		if n < 3 {
			return errcode.WouldBlock
		}
		return nil
	})
	if err != nil || n != 3 {
		t.Fatalf("Retry: err=%v polls=%d", err, n)
	}
}

func TestReadByte(t *testing.T) {
	q := []byte{'!'}
	polls := 0
	b, err := ReadByte(context.Background(), func() (byte, error) {
		polls++
		if polls < 2 {
			return 0, errcode.WouldBlock
		}
		v := q[0]
		return v, nil
	})
	if err != nil || b != '!' {
		t.Fatalf("ReadByte: %q %v", b, err)
	}
}
