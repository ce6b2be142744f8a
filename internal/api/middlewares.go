package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/esperanzagt/donations/pkg/logger"
)

var skipLogging = map[string]struct{}{
	"/api/health": {},
}

// sensitiveFields never make it into request logs. Card data should not be
// in the gateway callback at all, but the gateway decides what it posts,
// not us.
var sensitiveFields = []string{"card_number", "card_cvn", "card_expiry_date", "signature"}

type RateLimiter interface {
	Allow(key string) bool
}

type Middleware struct {
	apiKeyEnabled   bool
	apiKey          string
	callbackLimiter RateLimiter
}

func NewMiddleware(apiKeyEnabled bool, apiKey string, callbackLimiter RateLimiter) *Middleware {
	return &Middleware{
		apiKeyEnabled:   apiKeyEnabled,
		apiKey:          apiKey,
		callbackLimiter: callbackLimiter,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		ctx = logger.WithRequestID(ctx, requestID)
		w.Header().Set("X-Request-Id", requestID)

		if _, ok := skipLogging[r.URL.Path]; !ok {
			reqBody, err := io.ReadAll(r.Body)
			if err != nil {
				SendJSONErr(ctx, w, http.StatusInternalServerError, err, "read request body")
				return
			}

			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))

			var headers strings.Builder

			for k, v := range r.Header {
				if k == "Authorization" || k == "Cookie" || k == "X-Api-Key" {
					continue
				}

				headers.WriteString(fmt.Sprintf("%s: %s,\n", k, v))
			}

			slog.InfoContext(ctx, "incoming request",
				"request", fmt.Sprintf("%s %s\n%s", r.Method, r.URL.Redacted(), redactBody(string(reqBody))),
				"headers", headers.String(),
			)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func redactBody(body string) string {
	for _, field := range sensitiveFields {
		idx := strings.Index(body, field+"=")
		if idx == -1 {
			continue
		}

		start := idx + len(field) + 1

		end := strings.IndexByte(body[start:], '&')
		if end == -1 {
			end = len(body) - start
		}

		body = body[:start] + "[redacted]" + body[start+end:]
	}

	return body
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "recovered from panic", "error", err, "stack", string(debug.Stack()))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKeyAuth verifies incoming API key.
func (m *Middleware) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !m.apiKeyEnabled {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get("X-Api-Key")
		if apiKey == "" {
			SendJSONErr(ctx, w, http.StatusUnauthorized, nil, "API key is missing")
			return
		}

		if apiKey != m.apiKey {
			SendJSONErr(ctx, w, http.StatusUnauthorized, nil, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit throttles callers by remote host. The gateway retries rejected
// callbacks, and replays are idempotent anyway, so a 429 here costs nothing
// but the retry delay.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if m.callbackLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !m.callbackLimiter.Allow(host) {
			SendJSONErr(ctx, w, http.StatusTooManyRequests, nil, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
