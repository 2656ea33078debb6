// Package models defines the wire types exchanged with the GreenSnap API.
// JSON tags follow the backend's field names (Mongo-style `_id` and so on).
package models

import "time"

// Role distinguishes ordinary reporters from supervisors.
type Role string

const (
	RoleUser       Role = "user"
	RoleSupervisor Role = "supervisor"
)

// User is the account record returned by the auth endpoints. Verified is the
// server-side flag at the time of issue; the live value is re-read from the
// bearer token on startup, so the persisted copy may be stale.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Verified     bool      `json:"verified"`
	Role         Role      `json:"role,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// IsSupervisor reports whether the account has the supervisor role.
func (u *User) IsSupervisor() bool {
	return u != nil && u.Role == RoleSupervisor
}

// TopReporter is one leaderboard row from /users/top-reporters.
type TopReporter struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
	ReportCount  int    `json:"reportCount"`
}
