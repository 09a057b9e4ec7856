// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"strings"

	"github.com/MKhiriev/go-api-gateway/models"
)

// Requirement is the kind of access check a route applies.
type Requirement int

const (
	Public Requirement = iota
	AuthenticatedAny
	RequiresRole
)

func (r Requirement) String() string {
	switch r {
	case AuthenticatedAny:
		return "authenticated"
	case RequiresRole:
		return "requires_role"
	default:
		return "public"
	}
}

// Rule is the authorization requirement of a route.
type Rule struct {
	Requirement Requirement
	// Roles lists the accepted roles when Requirement is RequiresRole.
	Roles []models.Role
}

// PublicRule admits every request.
func PublicRule() Rule { return Rule{Requirement: Public} }

// AuthenticatedRule admits any authenticated principal.
func AuthenticatedRule() Rule { return Rule{Requirement: AuthenticatedAny} }

// RoleRule admits principals holding one of roles.
func RoleRule(roles ...models.Role) Rule {
	return Rule{Requirement: RequiresRole, Roles: roles}
}

// NeedsPrincipal reports whether the rule cannot be satisfied anonymously.
func (r Rule) NeedsPrincipal() bool {
	return r.Requirement != Public
}

// Allows checks p against the rule. p is nil for anonymous requests.
//
// It returns nil, [ErrAuthenticationRequired] or [ErrForbidden].
func (r Rule) Allows(p *models.Principal) error {
	if r.Requirement == Public {
		return nil
	}
	if p == nil {
		return ErrAuthenticationRequired
	}
	if r.Requirement == RequiresRole && !p.HasRole(r.Roles...) {
		return ErrForbidden
	}
	return nil
}

func (r Rule) String() string {
	if r.Requirement != RequiresRole {
		return r.Requirement.String()
	}
	roles := make([]string, len(r.Roles))
	for i, role := range r.Roles {
		roles[i] = string(role)
	}
	return r.Requirement.String() + "(" + strings.Join(roles, ",") + ")"
}
