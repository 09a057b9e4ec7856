// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders  = "Authorization, Content-Type, X-Trace-ID"
	corsExposeHeaders = "Authorization, X-Trace-ID"
	corsMaxAge        = "3600"
)

// corsPolicy decides which browser origins may call the gateway.
type corsPolicy struct {
	allowAll  bool
	origins   map[string]struct{}
	wildcards []string // ".example.com" for "*.example.com"
}

func newCORSPolicy(allowed []string) *corsPolicy {
	p := &corsPolicy{origins: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "":
		case origin == "*":
			p.allowAll = true
		case strings.HasPrefix(origin, "*."):
			p.wildcards = append(p.wildcards, origin[1:])
		default:
			p.origins[strings.TrimSuffix(origin, "/")] = struct{}{}
		}
	}
	return p
}

func (p *corsPolicy) enabled() bool {
	return p.allowAll || len(p.origins) > 0 || len(p.wildcards) > 0
}

func (p *corsPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.allowAll {
		return true
	}
	if _, ok := p.origins[origin]; ok {
		return true
	}

	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, suffix := range p.wildcards {
		if len(host) > len(suffix) && strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// withCORS answers preflight requests and decorates responses to allowed
// origins. Preflights end here: they are neither rate limited nor
// authenticated.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.cors.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		allowed := h.cors.allows(origin)
		if origin != "" {
			w.Header().Add("Vary", "Origin")
		}

		if isPreflight(r) {
			if !allowed {
				http.Error(w, invalidCORSRequestMessage, http.StatusForbidden)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
		}
		next.ServeHTTP(w, r)
	})
}
