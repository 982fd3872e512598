package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// ============== Limiter Tests ==============

func TestNewLimiter(t *testing.T) {
	t.Run("ValidRate", func(t *testing.T) {
		limiter := NewLimiter(2 * 1024 * 1024)
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for a valid rate")
		}
		if limiter.rate != 2*1024*1024 {
			t.Errorf("rate = %d, want %d", limiter.rate, 2*1024*1024)
		}
	})

	t.Run("ZeroMeansUnlimited", func(t *testing.T) {
		if limiter := NewLimiter(0); limiter != nil {
			t.Error("NewLimiter(0) should return nil")
		}
	})

	t.Run("NegativeMeansUnlimited", func(t *testing.T) {
		if limiter := NewLimiter(-100); limiter != nil {
			t.Error("NewLimiter(-100) should return nil")
		}
	})

	t.Run("SmallRateGetsMinimumBurst", func(t *testing.T) {
		limiter := NewLimiter(1000)
		if limiter.burst != minBurst {
			t.Errorf("burst = %d, want %d", limiter.burst, minBurst)
		}
	})

	t.Run("LargeRateGetsOneSecondBurst", func(t *testing.T) {
		limiter := NewLimiter(100 * 1024 * 1024)
		if limiter.burst != 100*1024*1024 {
			t.Errorf("burst = %d, want %d", limiter.burst, 100*1024*1024)
		}
	})

	t.Run("BucketStartsFull", func(t *testing.T) {
		limiter := NewLimiter(256 * 1024)
		if limiter.tokens != limiter.burst {
			t.Errorf("tokens = %d, want %d", limiter.tokens, limiter.burst)
		}
	})
}

func TestLimiterRefill(t *testing.T) {
	t.Run("CreditsElapsedTime", func(t *testing.T) {
		limiter := NewLimiter(2000)
		limiter.tokens = 0
		limiter.lastRefill = time.Now().Add(-100 * time.Millisecond)

		limiter.mu.Lock()
		limiter.refill()
		tokens := limiter.tokens
		limiter.mu.Unlock()

		// 100ms at 2000 bytes/s is roughly 200 tokens
		if tokens < 100 || tokens > 300 {
			t.Errorf("tokens after refill = %d, want ~200", tokens)
		}
	})

	t.Run("CapsAtBurst", func(t *testing.T) {
		limiter := NewLimiter(4096)
		limiter.tokens = limiter.burst - 10
		limiter.lastRefill = time.Now().Add(-time.Second)

		limiter.mu.Lock()
		limiter.refill()
		tokens := limiter.tokens
		limiter.mu.Unlock()

		if tokens != limiter.burst {
			t.Errorf("tokens after capped refill = %d, want %d", tokens, limiter.burst)
		}
	})
}

func TestLimiterRefund(t *testing.T) {
	limiter := NewLimiter(512 * 1024)
	limiter.tokens = 100

	limiter.refund(50)
	if limiter.tokens != 150 {
		t.Errorf("tokens after refund = %d, want 150", limiter.tokens)
	}

	// Refunds never push the bucket past its capacity
	limiter.refund(limiter.burst)
	if limiter.tokens != limiter.burst {
		t.Errorf("tokens after large refund = %d, want %d", limiter.tokens, limiter.burst)
	}
}

// ============== Reader Tests ==============

func TestNewReader(t *testing.T) {
	t.Run("Limited", func(t *testing.T) {
		reader := NewReader(context.Background(), strings.NewReader("payload"), NewLimiter(512*1024))
		if _, ok := reader.(*Reader); !ok {
			t.Error("NewReader() should return *Reader when a limiter is provided")
		}
	})

	t.Run("NilLimiterIsPassthrough", func(t *testing.T) {
		base := strings.NewReader("payload")
		if reader := NewReader(context.Background(), base, nil); reader != base {
			t.Error("NewReader() should return the original reader when limiter is nil")
		}
	})
}

func TestReaderRead(t *testing.T) {
	t.Run("SingleRead", func(t *testing.T) {
		content := []byte("a burst of bytes")
		reader := NewReader(context.Background(), bytes.NewReader(content), NewLimiter(512*1024))

		buf := make([]byte, 100)
		n, err := reader.Read(buf)
		if err != nil && err != io.EOF {
			t.Fatalf("Read() error = %v", err)
		}
		if !bytes.Equal(buf[:n], content) {
			t.Errorf("Read() content = %q, want %q", buf[:n], content)
		}
	})

	t.Run("DrainToEOF", func(t *testing.T) {
		content := []byte("files flow from source to dest")
		reader := NewReader(context.Background(), bytes.NewReader(content), NewLimiter(512*1024))

		got, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("ReadAll() = %q, want %q", got, content)
		}
	})

	t.Run("PreCancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reader := NewReader(ctx, bytes.NewReader(make([]byte, 1024)), NewLimiter(512*1024))

		if _, err := reader.Read(make([]byte, 100)); err == nil {
			t.Error("Read() should fail on a cancelled context")
		}
	})

	t.Run("CancellationDuringWait", func(t *testing.T) {
		// Drain the bucket so the read has to wait, then cancel mid-wait
		limiter := NewLimiter(1)
		limiter.tokens = 0
		limiter.lastRefill = time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		reader := NewReader(ctx, bytes.NewReader(make([]byte, 1024)), limiter)

		if _, err := reader.Read(make([]byte, 1024)); err == nil {
			t.Error("Read() should fail when cancelled while waiting for tokens")
		}
	})

	t.Run("ShortReadRefundsTokens", func(t *testing.T) {
		limiter := NewLimiter(512 * 1024)
		reader := NewReader(context.Background(), strings.NewReader("tiny"), limiter)

		// Ask for far more than the reader holds
		n, err := reader.Read(make([]byte, 4096))
		if err != nil && err != io.EOF {
			t.Fatalf("Read() error = %v", err)
		}
		if n != 4 {
			t.Errorf("Read() n = %d, want 4", n)
		}

		// Only the delivered bytes stay consumed
		if consumed := limiter.burst - limiter.tokens; consumed != 4 {
			t.Errorf("consumed tokens = %d, want 4", consumed)
		}
	})
}

// ============== ReadCloser Tests ==============

func TestNewReadCloser(t *testing.T) {
	t.Run("Limited", func(t *testing.T) {
		rc := NewReadCloser(context.Background(), io.NopCloser(strings.NewReader("payload")), NewLimiter(512*1024))
		if _, ok := rc.(*ReadCloser); !ok {
			t.Error("NewReadCloser() should return *ReadCloser when a limiter is provided")
		}
		if err := rc.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	t.Run("NilLimiterIsPassthrough", func(t *testing.T) {
		base := io.NopCloser(strings.NewReader("payload"))
		if rc := NewReadCloser(context.Background(), base, nil); rc != base {
			t.Error("NewReadCloser() should return the original reader when limiter is nil")
		}
	})

	t.Run("ReadThenClose", func(t *testing.T) {
		content := []byte("copied through the throttle")
		rc := NewReadCloser(context.Background(), io.NopCloser(bytes.NewReader(content)), NewLimiter(512*1024))

		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("ReadAll() = %q, want %q", got, content)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}

// ============== ParseRate Tests ==============

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"Empty", "", 0, false},
		{"BareNumber", "4096", 4096, false},
		{"Kilobytes", "500K", 500 * 1024, false},
		{"KilobytesLower", "2k", 2 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Whitespace", "  8M  ", 8 * 1024 * 1024, false},
		{"Zero", "0", 0, false},
		{"SuffixOnly", "M", 0, true},
		{"Negative", "-5", 0, true},
		{"NotANumber", "fast", 0, true},
		{"UnknownSuffix", "5T", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRate(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ============== Benchmarks ==============

func BenchmarkThrottledRead(b *testing.B) {
	content := make([]byte, 1024*1024)
	limiter := NewLimiter(100 * 1024 * 1024)
	ctx := context.Background()
	buf := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader := NewReader(ctx, bytes.NewReader(content), limiter)
		for {
			_, err := reader.Read(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read() error = %v", err)
			}
		}
	}
}

func BenchmarkPassthroughRead(b *testing.B) {
	content := make([]byte, 1024*1024)
	buf := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader := bytes.NewReader(content)
		for {
			_, err := reader.Read(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read() error = %v", err)
			}
		}
	}
}
