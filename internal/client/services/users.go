package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/users"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/logging"
)

// UserService manages household members. Adding and removing members is
// reserved to the chef.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, actor models.Session, nickname string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, actor models.Session, id string) error
}

type userService struct {
	users users.Repository
	log   logging.Logger
}

func NewUserService(users users.Repository, log logging.Logger) UserService {
	return &userService{users: users, log: log}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Add creates a member without a PIN; they choose one at first login.
func (s *userService) Add(ctx context.Context, actor models.Session, nickname string, role models.Role) (*models.User, error) {
	if err := requireChef(actor); err != nil {
		return nil, err
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, ErrEmptyNickname
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	_, err := s.users.GetByNickname(ctx, nickname)
	switch {
	case err == nil:
		return nil, fmt.Errorf("member %q: %w", nickname, common.ErrorAlreadyExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	u, err := s.users.Create(ctx, &models.User{Nickname: nickname, Role: role, IsFirstLogin: true})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "member added", "id", u.ID, "nickname", u.Nickname, "role", u.Role, "by", actor.UserID)
	return u, nil
}

func (s *userService) Delete(ctx context.Context, actor models.Session, id string) error {
	if err := requireChef(actor); err != nil {
		return err
	}
	if id == actor.UserID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "member deleted", "id", id, "by", actor.UserID)
	return nil
}
