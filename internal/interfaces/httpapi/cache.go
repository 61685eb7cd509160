package httpapi

import (
	"bytes"
	"net/http"

	"github.com/riskibarqy/fantasy-assistant/internal/platform/cache"
)

// cachedResponse is the stored copy of a successful GET response.
type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

// CacheResponses serves repeated GETs from the store within its TTL. The key
// is method plus path plus the sorted query string, so parameter order does
// not split cache entries. Only 2xx responses are stored.
func CacheResponses(store *cache.Store, next http.Handler) http.Handler {
	if store == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CacheResponses")
		defer span.End()
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Method + " " + r.URL.Path + "?" + r.URL.Query().Encode()
		if hit, ok := store.Get(ctx, key); ok {
			stored := hit.(cachedResponse)
			w.Header().Set("Content-Type", stored.contentType)
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(stored.status)
			_, _ = w.Write(stored.body)
			return
		}

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(recorder, r)

		if recorder.status >= 200 && recorder.status < 300 {
			store.Set(ctx, key, cachedResponse{
				status:      recorder.status,
				contentType: recorder.Header().Get("Content-Type"),
				body:        append([]byte(nil), recorder.body.Bytes()...),
			})
		}
	})
}
