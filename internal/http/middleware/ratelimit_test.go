package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func frozen(rl *RateLimiter, at time.Time) *RateLimiter {
	rl.now = func() time.Time { return at }
	return rl
}

func TestKeyByUsernameOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "4242")
	c.Request = req

	if got := KeyByUsernameOrIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("anonymous key = %q", got)
	}
	c.Set(UsernameKey, "Jane Doe")
	if got := KeyByUsernameOrIP()(c); got != "user:Jane Doe" {
		t.Fatalf("user key = %q", got)
	}
}

func TestNewRateLimiter_BurstFloorAndReuse(t *testing.T) {
	rl := NewRateLimiter(2, 0, KeyByUsernameOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d; want 1", rl.burst)
	}
	a := rl.limiterFor("k")
	if b := rl.limiterFor("k"); a != b {
		t.Fatalf("expected the same bucket for the same key")
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := frozen(NewRateLimiter(1, 1, KeyByUsernameOrIP()), t0)
	rl.limiterFor("old")

	rl.now = func() time.Time { return t0.Add(time.Hour) }
	rl.lookups = sweepEvery - 1
	rl.limiterFor("new")

	if _, ok := rl.buckets["old"]; ok {
		t.Fatalf("idle bucket should be evicted")
	}
	if _, ok := rl.buckets["new"]; !ok {
		t.Fatalf("new bucket missing")
	}
	if rl.lookups != 0 {
		t.Fatalf("lookup counter not reset: %d", rl.lookups)
	}
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), WikiUser(), rl.Handler())
	r.GET("/depicts", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, user string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/depicts", nil)
	if user != "" {
		req.Header.Set(WikiUserHeader, user)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Handler(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rps       float64
		wantRetry string
	}{
		{"one per second", 1, "1"},
		{"one per two seconds", 0.5, "2"},
		{"never refills", 0, "60"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := limitedRouter(frozen(NewRateLimiter(tc.rps, 1, KeyByUsernameOrIP()), at))

			if w := hit(r, "Alice"); w.Code != http.StatusOK {
				t.Fatalf("first request = %d", w.Code)
			}
			w := hit(r, "Alice")
			if w.Code != http.StatusTooManyRequests {
				t.Fatalf("second request = %d", w.Code)
			}
			if got := w.Header().Get("Retry-After"); got != tc.wantRetry {
				t.Fatalf("Retry-After = %q; want %q", got, tc.wantRetry)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body: %v", err)
			}
			if body["code"] != "rate_limited" || body["request_id"] == "" {
				t.Fatalf("unexpected body %v", body)
			}

			// Other volunteers and anonymous callers have their own buckets.
			if w := hit(r, "Bob"); w.Code != http.StatusOK {
				t.Fatalf("Bob = %d", w.Code)
			}
			if w := hit(r, ""); w.Code != http.StatusOK {
				t.Fatalf("anonymous = %d", w.Code)
			}
		})
	}
}

func TestRateLimiter_RejectionDoesNotConsume(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := frozen(NewRateLimiter(1, 1, KeyByUsernameOrIP()), at)
	r := limitedRouter(rl)

	hit(r, "Alice")
	for i := 0; i < 3; i++ {
		if w := hit(r, "Alice"); w.Code != http.StatusTooManyRequests {
			t.Fatalf("attempt %d = %d", i, w.Code)
		}
	}
	rl.now = func() time.Time { return at.Add(time.Second) }
	if w := hit(r, "Alice"); w.Code != http.StatusOK {
		t.Fatalf("after refill = %d", w.Code)
	}
}

func TestRetryAfter(t *testing.T) {
	cases := map[time.Duration]string{
		10 * time.Millisecond:   "1",
		time.Second:             "1",
		1500 * time.Millisecond: "2",
	}
	for d, want := range cases {
		if got := retryAfter(d); got != want {
			t.Fatalf("retryAfter(%v) = %q; want %q", d, got, want)
		}
	}
}
