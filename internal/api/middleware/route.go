package middleware

import (
	"context"
	"net/http"
)

type routeKey struct{}

// routeInfo is filled in by RouteCapture once the mux has matched.
type routeInfo struct {
	pattern    string
	resourceID string
}

// RouteCapture must wrap the ServeMux directly. The mux records the matched
// pattern on the request it receives, which outer middleware never sees, so
// it is copied back through the request context.
func RouteCapture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if info, ok := r.Context().Value(routeKey{}).(*routeInfo); ok {
			info.pattern = r.Pattern
			info.resourceID = r.PathValue("id")
		}
	})
}

// withRouteInfo returns r carrying a routeInfo, reusing one set further out.
func withRouteInfo(r *http.Request) (*http.Request, *routeInfo) {
	if info, ok := r.Context().Value(routeKey{}).(*routeInfo); ok {
		return r, info
	}
	info := &routeInfo{}
	return r.WithContext(context.WithValue(r.Context(), routeKey{}, info)), info
}

// routeLabel names the route for logs and metrics without using raw paths.
func routeLabel(info *routeInfo, h http.Header) string {
	switch {
	case info.pattern != "":
		return info.pattern
	case h.Get("X-Cache") == "HIT":
		return "cache_hit"
	default:
		return "unmatched"
	}
}
