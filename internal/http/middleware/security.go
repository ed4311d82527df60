package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions controls the optional headers set by SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS sends Strict-Transport-Security on HTTPS requests only.
	EnableHSTS bool
	// HSTSMaxAge defaults to 180 days when zero or negative.
	HSTSMaxAge time.Duration
	// NoStore forbids caching. Leave it off for GET routes that rely on
	// ETag revalidation, such as the edit listing.
	NoStore bool
	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool
}

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// exposedHeaders are made readable to browser clients of the API.
var exposedHeaders = []string{requestIDHeader, "ETag", "Retry-After"}

// SecurityHeaders hardens JSON responses for the depicts front end.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		h.Set("Access-Control-Expose-Headers", mergeList(h.Get("Access-Control-Expose-Headers"), exposedHeaders))

		c.Next()
	}
}

// isHTTPS trusts X-Forwarded-Proto because the service runs behind a proxy.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// mergeList appends the names missing from a comma separated header value,
// comparing case-insensitively.
func mergeList(cur string, add []string) string {
	have := map[string]bool{}
	var out []string
	for _, p := range strings.Split(cur, ",") {
		if p = strings.TrimSpace(p); p != "" && !have[strings.ToLower(p)] {
			have[strings.ToLower(p)] = true
			out = append(out, p)
		}
	}
	for _, p := range add {
		if !have[strings.ToLower(p)] {
			have[strings.ToLower(p)] = true
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
