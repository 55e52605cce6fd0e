package middleware

import (
	"net/http"

	"github.com/envmonitor/envmonitor/internal/api/models"
)

// Content-Security-Policy values. APIContentSecurityPolicy is the default for
// every response; HTML handlers replace it with the policy they need.
const (
	APIContentSecurityPolicy = "default-src 'none'; frame-ancestors 'self'"

	// PageContentSecurityPolicy allows the dashboard page its stylesheet,
	// inline bar geometry and the same-origin chart frame.
	PageContentSecurityPolicy = "default-src 'none'; style-src 'self' 'unsafe-inline'; " +
		"img-src 'self'; frame-src 'self'; frame-ancestors 'self'"

	// ChartContentSecurityPolicy allows the interactive chart its inline
	// bootstrap script and the ECharts assets.
	ChartContentSecurityPolicy = "default-src 'none'; script-src 'unsafe-inline' https://go-echarts.github.io; " +
		"style-src 'unsafe-inline'; frame-ancestors 'self'"
)

// SecurityHeaders adds standard security headers to all HTTP responses.
// Headers set:
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: SAMEORIGIN
//   - Strict-Transport-Security: max-age=31536000; includeSubDomains
//   - Content-Security-Policy: APIContentSecurityPolicy
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Permissions-Policy: geolocation=(), camera=(), microphone=()
//
// Framing is limited to the same origin so the dashboard can embed its own
// interactive chart.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", APIContentSecurityPolicy)
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

		next.ServeHTTP(w, r)
	})
}

// SetContentSecurityPolicy overrides the policy set by SecurityHeaders.
// It must be called before the response header is written.
func SetContentSecurityPolicy(w http.ResponseWriter, policy string) {
	w.Header().Set("Content-Security-Policy", policy)
}

// RequireTLS returns a middleware that rejects plain-HTTP requests when
// enabled. It checks the X-Forwarded-Proto header set by load balancers;
// requests without the header pass.
func RequireTLS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			proto := r.Header.Get("X-Forwarded-Proto")
			if proto != "" && proto != "https" {
				models.NewProblem(
					models.ProblemTypeTLSRequired,
					"TLS required",
					http.StatusForbidden,
					GetRequestID(r.Context()),
				).
					WithDetail("This endpoint requires HTTPS").
					WithInstance(r.URL.Path).
					Write(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
