// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ParseRole converts a stored role value into a [Role].
// Unknown or empty values fall back to [RoleUser], the least privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}

// Principal is the resolved identity and role of an authenticated caller.
// It is built once per request and never mutated afterwards.
type Principal struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// HasRole reports whether the principal's role is one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
