// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a locally persisted gateway account.
// Accounts are provisioned by the external identity flow and are looked up
// on every authenticated request to resolve the caller's role.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is also the "sub" claim of every token issued for the user.
	UserID int64 `json:"user_id"`

	// Username is the generated, unique handle of the user.
	Username string `json:"username"`

	// Email is the unique e-mail address reported by the identity provider.
	Email string `json:"email"`

	// DisplayName is the human-readable name reported by the identity provider.
	DisplayName string `json:"display_name"`

	// EmailVerified reports whether the e-mail address has been confirmed.
	EmailVerified bool `json:"email_verified"`

	// Role drives route authorization decisions.
	Role Role `json:"role"`

	// Provider is the tag of the identity provider that created the account
	// (e.g. "google").
	Provider string `json:"provider"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal returns the request-scoped identity built from the user record.
func (u User) Principal() Principal {
	return Principal{UserID: u.UserID, Role: u.Role}
}
