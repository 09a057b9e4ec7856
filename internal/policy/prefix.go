// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "strings"

// Route prefixes shared by the authorization table and the HTTP router.
const (
	PrefixAuth    = "/api/auth"
	PrefixOAuth2  = "/oauth2"
	PrefixUsers   = "/api/users"
	PrefixMap     = "/api/map"
	PrefixContact = "/api/contact"

	PrefixPrivate              = "/api/private"
	PrefixPrivateAdmin         = PrefixPrivate + "/admin"
	PrefixPrivateAdminUsers    = PrefixPrivateAdmin + "/users"
	PrefixPrivateProtected     = PrefixPrivate + "/protected"
	PrefixPrivateUsers         = PrefixPrivate + "/users"
	PrefixPrivateNotifications = PrefixPrivate + "/notifications"
	PrefixPrivateMap           = PrefixPrivate + "/map"
)

// HasPrefix reports whether path equals prefix or continues it with a new
// path segment. "/api/private" matches "/api/private" and "/api/private/x"
// but not "/api/privateer".
func HasPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
