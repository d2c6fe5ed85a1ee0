package services

import (
	"context"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
)

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

// Delete removes a user account with its orders, cart and memberships.
func (s *UserService) Delete(ctx context.Context, p Principal, id uint) error {
	if err := p.decide(policy.Delete, policy.User).Err(); err != nil {
		return err
	}
	if id == p.UserID {
		return apperr.Invalid("id", "you cannot delete your own account")
	}
	return s.Users.Delete(ctx, id)
}
