package utils

import (
	"net"
	"net/http"
	"strings"
)

// HeaderXForwardedFor is the proxy chain header consulted by ClientIP.
const HeaderXForwardedFor = "X-Forwarded-For"

// ClientIP returns the canonical client identity of r.
//
// The first non-empty entry of X-Forwarded-For wins. Without it the host part
// of RemoteAddr is used, or RemoteAddr as is when it carries no port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get(HeaderXForwardedFor); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}

	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
