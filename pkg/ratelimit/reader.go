// Package ratelimit throttles copy streams with a token bucket so a run
// can be capped to a fixed number of bytes per second.
package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBurst keeps small limits usable: reads up to this size clear the
// bucket in one pass instead of degrading into byte-sized reads
const minBurst = 64 * 1024

// Limiter meters bytes across any number of readers sharing it
type Limiter struct {
	rate  int64 // bytes per second
	burst int64 // bucket capacity

	mu         sync.Mutex
	tokens     int64
	lastRefill time.Time
}

// NewLimiter creates a limiter for the given rate in bytes per second.
// Rates of zero or below mean unlimited and return nil; the reader
// constructors treat a nil limiter as a passthrough.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	burst := bytesPerSecond
	if burst < minBurst {
		burst = minBurst
	}

	return &Limiter{
		rate:       bytesPerSecond,
		burst:      burst,
		tokens:     burst,
		lastRefill: time.Now(),
	}
}

// wait blocks until n tokens could be taken or the context ends
func (l *Limiter) wait(ctx context.Context, n int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= n {
			l.tokens -= n
			l.mu.Unlock()
			return nil
		}
		deficit := n - l.tokens
		l.mu.Unlock()

		pause := time.Duration(float64(deficit) / float64(l.rate) * float64(time.Second))
		if pause < time.Millisecond {
			pause = time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
}

// refill credits tokens for the time elapsed since the last refill.
// Caller must hold mu.
func (l *Limiter) refill() {
	now := time.Now()
	credit := int64(float64(now.Sub(l.lastRefill)) / float64(time.Second) * float64(l.rate))
	if credit <= 0 {
		return
	}

	l.tokens += credit
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now
}

// refund returns tokens taken for bytes that were never read
func (l *Limiter) refund(n int64) {
	if n <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens += n
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
}

// Reader throttles an io.Reader against a shared limiter
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps reader with rate limiting. A nil limiter returns the
// reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read takes tokens for the requested size before reading, then refunds
// whatever the underlying reader did not deliver
func (r *Reader) Read(p []byte) (int, error) {
	want := int64(len(p))
	if want > r.limiter.burst {
		want = r.limiter.burst
	}

	if err := r.limiter.wait(r.ctx, want); err != nil {
		return 0, err
	}

	n, err := r.reader.Read(p[:want])
	if int64(n) < want {
		r.limiter.refund(want - int64(n))
	}
	return n, err
}

// ReadCloser throttles an io.ReadCloser against a shared limiter
type ReadCloser struct {
	Reader
	closer io.Closer
}

// NewReadCloser wraps rc with rate limiting. A nil limiter returns rc
// unchanged.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{
		Reader: Reader{reader: rc, limiter: limiter, ctx: ctx},
		closer: rc,
	}
}

// Close closes the underlying reader
func (rc *ReadCloser) Close() error {
	return rc.closer.Close()
}
