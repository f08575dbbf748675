package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns header options for a JSON API: no framing, no MIME
// sniffing, no referrer leakage. HSTS is suppressed in development where the
// service runs over plain HTTP.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:        isDevelopment,
		ContentTypeNosniff:   true,
		FrameDeny:            true,
		ReferrerPolicy:       "no-referrer",
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
	}
}

// NewSecure returns a middleware that adds security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	s := secure.New(opts)
	return s.Handler
}
