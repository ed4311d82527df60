// Package middleware holds the Gin middleware shared by the depicts API.
//
// The recommended order is RequestID, WikiUser, Logger, Recovery. The access
// log then carries the correlation ID and the acting Wikidata username, and
// panics are logged with both.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"

	// UsernameKey is the gin context key holding the acting Wikidata username.
	UsernameKey = "username"
	// WikiUserHeader carries the Wikidata username of the acting volunteer.
	// The OAuth front end sets it after login.
	WikiUserHeader = "X-Wiki-User"

	loggerKey         = "logger"
	maxQueryLogLength = 2048
	maxUsernameLength = 255
)

// RequestID reuses an incoming X-Request-ID or mints a UUIDv4, then echoes it
// on the response and stores it in the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// WikiUser copies the X-Wiki-User header into the gin context under
// UsernameKey. Blank or oversized values are ignored.
func WikiUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := strings.TrimSpace(c.GetHeader(WikiUserHeader)); u != "" && len(u) <= maxUsernameLength {
			c.Set(UsernameKey, u)
		}
		c.Next()
	}
}

// Username returns the acting Wikidata username, or "" when anonymous.
func Username(c *gin.Context) string {
	v, _ := c.Get(UsernameKey)
	return asString(v)
}

// LogOptions tunes what the access log scrubs.
type LogOptions struct {
	// MaskHeaders names extra request headers whose values are replaced
	// with "[REDACTED]". Authorization, Cookie and Set-Cookie always are.
	MaskHeaders []string
	// MaskParams names query parameters whose values are replaced. OAuth
	// tokens and verifiers are always masked.
	MaskParams []string
	// LogHeaders adds the scrubbed request headers to every access line.
	LogHeaders bool
}

var (
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
)

type scrubber struct {
	headers map[string]struct{}
	params  map[string]struct{}
}

func newScrubber(o LogOptions) scrubber {
	s := scrubber{
		headers: map[string]struct{}{"authorization": {}, "cookie": {}, "set-cookie": {}},
		params:  map[string]struct{}{"oauth_token": {}, "oauth_verifier": {}, "oauth_signature": {}},
	}
	for _, h := range o.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.headers[h] = struct{}{}
		}
	}
	for _, p := range o.MaskParams {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			s.params[p] = struct{}{}
		}
	}
	return s
}

// text removes email addresses and UUIDs from free text.
func (s scrubber) text(v string) string {
	if v == "" {
		return v
	}
	v = uuidRE.ReplaceAllString(v, "[REDACTED:id]")
	return emailRE.ReplaceAllString(v, "[REDACTED:email]")
}

// query masks sensitive parameters while keeping the raw ordering intact.
// Lookup terms like q=Mona+Lisa stay readable.
func (s scrubber) query(raw string) string {
	if raw == "" {
		return raw
	}
	parts := strings.Split(raw, "&")
	for i, p := range parts {
		k, _, found := strings.Cut(p, "=")
		if !found {
			continue
		}
		if _, ok := s.params[strings.ToLower(k)]; ok {
			parts[i] = k + "=[REDACTED]"
		}
	}
	return s.text(truncate(strings.Join(parts, "&"), maxQueryLogLength))
}

func (s scrubber) header(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := s.headers[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = s.text(strings.Join(vv, ", "))
	}
	return out
}

// Logger writes one structured access line per request and stores a
// request-scoped logger in the context for LoggerFrom. Level follows the
// outcome: error for 5xx or collected gin errors, warn for 4xx, info
// otherwise.
func Logger(opts ...LogOptions) gin.HandlerFunc {
	var o LogOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	scrub := newScrubber(o)

	return func(c *gin.Context) {
		start := time.Now()
		rid, _ := c.Get(requestIDKey)

		lc := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", routeOf(c)).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", scrub.query(c.Request.URL.RawQuery)).
			Int64("bytes_in", c.Request.ContentLength)
		if u := Username(c); u != "" {
			lc = lc.Str("username", u)
		}
		if o.LogHeaders {
			lc = lc.Interface("headers", scrub.header(c.Request.Header))
		}
		l := lc.Logger()
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case len(c.Errors) > 0:
			ev = l.Error().Str("errors", c.Errors.String())
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Msg("request")
	}
}

// Recovery turns a panic into the standard JSON 500 envelope unless the
// handler already started writing, and logs the stack either way.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := asString(c.Value(requestIDKey))
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", rid).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or a copy of the global one
// when Logger is not installed.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// routeOf prefers the matched route pattern so /depicts/Q1 and /depicts/Q2
// share one label; unmatched requests fall back to the raw path.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// truncate cuts s to max bytes plus an ellipsis; max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
