// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "github.com/MKhiriev/go-api-gateway/models"

// Service names reported in access logs.
const (
	ServiceAuthentication = "authentication-service"
	ServiceUser           = "user-service"
	ServiceNotification   = "notification-service"
	ServiceMap            = "map-service"
	ServiceContact        = "contact-service"
	ServiceGateway        = "api-gateway"
)

// ServiceRoute maps a path prefix to a service name.
type ServiceRoute struct {
	Prefix  string
	Service string
}

// AuthRoute maps a path prefix to an authorization rule.
type AuthRoute struct {
	Prefix string
	Rule   Rule
}

// DefaultServiceRoutes returns the gateway's service classification table.
// Entries are evaluated top to bottom.
func DefaultServiceRoutes() []ServiceRoute {
	return []ServiceRoute{
		{Prefix: PrefixAuth, Service: ServiceAuthentication},
		{Prefix: PrefixOAuth2, Service: ServiceAuthentication},
		{Prefix: PrefixPrivateAdminUsers, Service: ServiceUser},
		{Prefix: PrefixPrivateUsers, Service: ServiceUser},
		{Prefix: PrefixUsers, Service: ServiceUser},
		{Prefix: PrefixPrivateNotifications, Service: ServiceNotification},
		{Prefix: PrefixMap, Service: ServiceMap},
		{Prefix: PrefixPrivateMap, Service: ServiceMap},
		{Prefix: PrefixContact, Service: ServiceContact},
	}
}

// DefaultAuthRoutes returns the gateway's authorization table.
// Entries are evaluated top to bottom; unmatched paths are public.
func DefaultAuthRoutes() []AuthRoute {
	return []AuthRoute{
		{Prefix: PrefixPrivateAdmin, Rule: RoleRule(models.RoleAdmin, models.RoleSuperAdmin)},
		{Prefix: PrefixPrivateProtected, Rule: RoleRule(models.RoleSuperAdmin)},
		{Prefix: PrefixPrivate, Rule: AuthenticatedRule()},
	}
}

// Table classifies request paths. It is immutable after construction and
// safe for concurrent use.
type Table struct {
	services       []ServiceRoute
	auth           []AuthRoute
	defaultService string
}

// NewTable creates a Table from ordered service and authorization routes.
func NewTable(services []ServiceRoute, auth []AuthRoute) *Table {
	t := &Table{
		services:       make([]ServiceRoute, len(services)),
		auth:           make([]AuthRoute, len(auth)),
		defaultService: ServiceGateway,
	}
	copy(t.services, services)
	copy(t.auth, auth)
	return t
}

// NewDefaultTable creates the Table used by the gateway.
func NewDefaultTable() *Table {
	return NewTable(DefaultServiceRoutes(), DefaultAuthRoutes())
}

// Service returns the name of the service path belongs to.
func (t *Table) Service(path string) string {
	for _, r := range t.services {
		if HasPrefix(path, r.Prefix) {
			return r.Service
		}
	}
	return t.defaultService
}

// Rule returns the authorization rule for path.
func (t *Table) Rule(path string) Rule {
	for _, r := range t.auth {
		if HasPrefix(path, r.Prefix) {
			return r.Rule
		}
	}
	return PublicRule()
}

// Classify returns both the service name and the authorization rule of path.
func (t *Table) Classify(path string) (string, Rule) {
	return t.Service(path), t.Rule(path)
}
