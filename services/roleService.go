package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
)

type RoleService struct {
	Users *repository.UserRepository
}

func NewRoleService(users *repository.UserRepository) *RoleService {
	return &RoleService{Users: users}
}

func (s *RoleService) authorize(p Principal, op policy.Operation, role policy.Role) error {
	res, ok := policy.RoleResource(role)
	if !ok {
		return apperr.NotFound("group", string(role))
	}
	return p.decide(op, res).Err()
}

func (s *RoleService) Members(ctx context.Context, p Principal, role policy.Role) ([]models.User, error) {
	if err := s.authorize(p, policy.List, role); err != nil {
		return nil, err
	}
	return s.Users.Members(ctx, role)
}

// Add puts the named user into role. Adding an existing member is a no-op
// reported through the added flag.
func (s *RoleService) Add(ctx context.Context, p Principal, username string, role policy.Role) (*models.User, bool, error) {
	if err := s.authorize(p, policy.Create, role); err != nil {
		return nil, false, err
	}
	if username == "" {
		return nil, false, apperr.Invalid("username", "this field is required")
	}

	user, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	added, err := s.Users.AddToGroup(ctx, user.ID, role)
	if err != nil {
		return nil, false, err
	}
	return user, added, nil
}

// Remove takes role away from the user with the given id. A user who does
// not hold the role gets ErrNotAMember and nothing changes.
func (s *RoleService) Remove(ctx context.Context, p Principal, userID uint, role policy.Role) error {
	if err := s.authorize(p, policy.Delete, role); err != nil {
		return err
	}
	if _, err := s.Users.ByID(ctx, userID); err != nil {
		return err
	}
	if err := s.Users.RemoveFromGroup(ctx, userID, role); err != nil {
		return fmt.Errorf("remove user %d from %s: %w", userID, role, err)
	}
	return nil
}
