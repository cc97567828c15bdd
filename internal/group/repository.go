package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group and its owner membership in one transaction
func (r *Repository) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (id, name, description, currency, created_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, currency, created_by_id, created_at
	`

	group := &Group{}
	err = tx.QueryRowContext(ctx, query, uuid.NewString(), req.Name, req.Description, req.Currency, creatorID).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedByID,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (id, group_id, user_id, role)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, memberQuery, uuid.NewString(), group.ID, creatorID, MemberRoleOwner); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	return group, nil
}

// GetByID retrieves an active (not soft-deleted) group by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `
		SELECT id, name, description, currency, created_by_id, created_at
		FROM groups
		WHERE id = $1 AND deleted_at IS NULL
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedByID,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListByUserID retrieves all active groups the user belongs to
func (r *Repository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(DISTINCT g.id)
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = $1 AND g.deleted_at IS NULL
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT g.id, g.name, g.description, g.currency, g.created_by_id, g.created_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = $1 AND g.deleted_at IS NULL
		ORDER BY g.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Currency,
			&group.CreatedByID,
			&group.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, total, nil
}

// Update modifies an existing group
func (r *Repository) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, description, currency, created_by_id, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedByID,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// SoftDelete marks a group as deleted without dropping its expense history
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE groups SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// AddMember adds a user to a group
func (r *Repository) AddMember(ctx context.Context, groupID string, req *AddMemberRequest) (*GroupMember, error) {
	query := `
		INSERT INTO group_members (id, group_id, user_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, user_id, role, joined_at
	`

	member := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), groupID, req.UserID, req.Role).Scan(
		&member.ID,
		&member.GroupID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a single membership, or nil if absent
func (r *Repository) GetMember(ctx context.Context, groupID, userID string) (*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at
		FROM group_members gm
		WHERE gm.group_id = $1 AND gm.user_id = $2
	`

	member := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&member.ID,
		&member.GroupID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// IsMember reports whether the user belongs to the group
func (r *Repository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// GetMembers retrieves all members of a group with user info joined
func (r *Repository) GetMembers(ctx context.Context, groupID string) ([]*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, u.name, u.email
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*GroupMember
	for rows.Next() {
		member := &GroupMember{}
		if err := rows.Scan(
			&member.ID,
			&member.GroupID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
			&member.Name,
			&member.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// RemoveMember removes a user from a group
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
