package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/providers"
)

// CacheConfig holds cache configuration for specific routes
type CacheConfig struct {
	TTLSeconds int
	Enabled    bool
}

// CacheMiddleware provides HTTP response caching
type CacheMiddleware struct {
	cache        providers.CacheProvider
	routeConfigs map[string]CacheConfig
}

// NewCacheMiddleware creates a new cache middleware for the read-only
// catalog routes.
func NewCacheMiddleware(cache providers.CacheProvider) *CacheMiddleware {
	return &CacheMiddleware{
		cache: cache,
		routeConfigs: map[string]CacheConfig{
			"/api/medicines":  {TTLSeconds: 120, Enabled: true}, // 2 minutes, search results
			"/api/medicines/": {TTLSeconds: 600, Enabled: true}, // 10 minutes (prefix match)
		},
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		config := m.getRouteConfig(r.URL.Path)
		if !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		cacheKey := m.generateCacheKey(r)

		if cached, err := m.cache.Get(r.Context(), cacheKey); err == nil {
			log.Debug().Str("key", cacheKey).Str("path", r.URL.Path).Msg("response cache hit")
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}

		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		// Only cache successful responses
		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(r.Context(), cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache response")
			}
		}
	})
}

// getRouteConfig gets the cache configuration for a route. The longest
// matching prefix wins.
func (m *CacheMiddleware) getRouteConfig(path string) CacheConfig {
	if config, exists := m.routeConfigs[path]; exists {
		return config
	}

	// Prefix match for dynamic routes (e.g., /api/medicines/{id})
	best, bestLen := CacheConfig{Enabled: false}, 0
	for pattern, config := range m.routeConfigs {
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) && len(pattern) > bestLen {
			best, bestLen = config, len(pattern)
		}
	}
	return best
}

const responseCachePrefix = "http:cache:"

// generateCacheKey keeps the path readable so single records can be evicted
// by id; only the query string is hashed.
func (m *CacheMiddleware) generateCacheKey(r *http.Request) string {
	key := responseCachePrefix + r.URL.Path
	if r.URL.RawQuery != "" {
		hash := sha256.Sum256([]byte(r.URL.RawQuery))
		key += "?" + hex.EncodeToString(hash[:8])
	}
	return key
}

// Invalidate evicts the cached record and alternatives responses for one
// medicine, including every query-string variant. Search listings expire
// by TTL.
func (m *CacheMiddleware) Invalidate(ctx context.Context, medicineID string) error {
	if m.cache == nil {
		return nil
	}
	for _, path := range []string{
		fmt.Sprintf("/api/medicines/%s", medicineID),
		fmt.Sprintf("/api/medicines/%s/alternatives", medicineID),
	} {
		key := responseCachePrefix + path
		if err := m.cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to evict cached response %s: %w", path, err)
		}
		if err := m.cache.DeletePattern(ctx, globEscaper.Replace(key)+`\?*`); err != nil {
			return fmt.Errorf("failed to evict cached responses %s?*: %w", path, err)
		}
	}
	return nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
