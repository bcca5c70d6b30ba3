// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access; defines books, categories, and chapters
	RoleAdmin UserRole = "admin"

	// Can approve chapter payments and review collaborator documents
	RoleReviewer UserRole = "reviewer"

	// External collaborator; checks out chapters and submits manuscripts
	RoleWriter UserRole = "writer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleReviewer:
		return 20
	case RoleWriter:
		return 10
	default:
		return 0
	}
}
