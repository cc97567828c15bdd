package group

import (
	"context"
	"errors"

	"github.com/pinxesplit/api/internal/currency"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrNotAuthorized       = errors.New("not authorized to perform this action")
	ErrInvalidCurrency     = errors.New("unsupported currency")
	ErrCannotRemoveOwner   = errors.New("the group owner cannot be removed")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group and adds the creator as owner
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	if !currency.IsSupported(req.Currency) {
		return nil, ErrInvalidCurrency
	}

	return s.repo.Create(ctx, creatorID, req)
}

// GetByID retrieves an active group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members, provided the
// requesting user belongs to it.
func (s *Service) GetByIDWithMembers(ctx context.Context, id, userID string) (*Group, []*GroupMember, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	isMember, err := s.repo.IsMember(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	if !isMember {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all active groups the user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID string, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies an existing group; only members may update it
func (s *Service) Update(ctx context.Context, id, userID string, req *UpdateGroupRequest) (*Group, error) {
	if _, err := s.requireMembership(ctx, id, userID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrGroupNotFound
	}
	return updated, nil
}

// Delete soft-deletes a group. Only the owner may delete; the group's
// expense history is preserved but excluded from every balance query.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group.CreatedByID != userID {
		return ErrNotAuthorized
	}

	return s.repo.SoftDelete(ctx, id)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID, requesterID string, req *AddMemberRequest) (*GroupMember, error) {
	if _, err := s.requireMembership(ctx, groupID, requesterID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	if req.Role == "" {
		req.Role = MemberRoleMember
	}

	return s.repo.AddMember(ctx, groupID, req)
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID, requesterID string) ([]*GroupMember, error) {
	if _, err := s.requireMembership(ctx, groupID, requesterID); err != nil {
		return nil, err
	}

	return s.repo.GetMembers(ctx, groupID)
}

// RemoveMember removes a user from a group. Members may remove themselves;
// otherwise only the owner may remove others. The owner can never be removed.
func (s *Service) RemoveMember(ctx context.Context, groupID, requesterID, userID string) error {
	group, err := s.requireMembership(ctx, groupID, requesterID)
	if err != nil {
		return err
	}

	if userID == group.CreatedByID {
		return ErrCannotRemoveOwner
	}
	if requesterID != userID && requesterID != group.CreatedByID {
		return ErrNotAuthorized
	}

	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

// requireMembership loads the group and verifies the user belongs to it.
// Non-members get ErrGroupNotFound rather than a hint the group exists.
func (s *Service) requireMembership(ctx context.Context, groupID, userID string) (*Group, error) {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrGroupNotFound
	}

	return group, nil
}
