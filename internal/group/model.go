package group

import "time"

// MemberRole represents the role of a group member
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// Group represents a group in the system. Currency is the group's default
// currency; expenses may still be recorded in any supported currency.
type Group struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Currency    string     `json:"currency"`
	CreatedByID string     `json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"-"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	ID       string     `json:"id"`
	GroupID  string     `json:"group_id"`
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`

	// Populated from JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
