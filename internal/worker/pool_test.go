package worker

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteKeepsInputOrder(t *testing.T) {
	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}

	pool := NewPool(4, zerolog.Nop(), func(_ context.Context, n int) (string, error) {
		if n%10 == 3 {
			return "", errors.New("bad " + strconv.Itoa(n))
		}
		return strconv.Itoa(n * n), nil
	})
	results := pool.Execute(context.Background(), inputs)

	require.Len(t, results, len(inputs))
	for i, r := range results {
		assert.Equal(t, i, r.Input)
		if i%10 == 3 {
			assert.EqualError(t, r.Err, "bad "+strconv.Itoa(i))
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, strconv.Itoa(i*i), r.Value)
	}
}

func TestExecuteBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	pool := NewPool(3, zerolog.Nop(), func(_ context.Context, _ int) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return struct{}{}, nil
	})
	pool.Execute(context.Background(), make([]int, 20))

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool(2, zerolog.Nop(), func(ctx context.Context, _ int) (int, error) {
		calls.Add(1)
		return 0, ctx.Err()
	})
	results := pool.Execute(ctx, []int{1, 2, 3})

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.LessOrEqual(t, calls.Load(), int32(3))
}

func TestExecuteEmpty(t *testing.T) {
	pool := NewPool(0, zerolog.Nop(), func(context.Context, string) (string, error) { return "", nil })
	assert.Empty(t, pool.Execute(context.Background(), nil))
	assert.Equal(t, 1, pool.workers)
}

func TestExecuteLogsToPoolLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	pool := NewPool(1, logger, func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", errors.New("boom")
		}
		return s, nil
	})
	pool.Execute(context.Background(), []string{"ok", "bad"})

	out := buf.String()
	assert.Contains(t, out, `"message":"Task failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"index":1`)
	assert.NotContains(t, out, `"index":0`)
}
