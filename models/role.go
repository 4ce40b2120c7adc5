// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the enumerated capability tag of an account.
type Role int

const (
	// RoleAdmin manages users, roles and every article.
	RoleAdmin Role = iota + 1
	// RoleWriter authors and edits own articles.
	RoleWriter
	// RoleEditor reviews drafts and publishes articles.
	RoleEditor
	// RoleReader reads and comments.
	RoleReader
)

var roleNames = map[Role]string{
	RoleAdmin:  "admin",
	RoleWriter: "writer",
	RoleEditor: "editor",
	RoleReader: "reader",
}

// String returns the lower-case role name, or "unknown".
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}
