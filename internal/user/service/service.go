package service

import (
	"context"
	"errors"

	commonerrors "github.com/realtyhub/backend/internal/common/errors"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/user/domain"
	userrepo "github.com/realtyhub/backend/internal/user/repository"
)

// Service covers user management reads and writes. Account creation lives in
// the auth service; this one never sees raw passwords.
type Service struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewService(repo userrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) GetUser(ctx context.Context, id domain.ID) (domain.Summary, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return domain.Summary{}, commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  "get_user_failed",
		}).Errorf("get user failed: %v", err)
		return domain.Summary{}, commonerrors.ErrInternalError.WithCause(err)
	}

	return user.Summary(), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.Summary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("list users failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}

	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id domain.ID, upd domain.Update) (domain.Summary, error) {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUserNotFound):
			return domain.Summary{}, commonerrors.ErrUserNotFound
		case errors.Is(err, userrepo.ErrEmailExists):
			return domain.Summary{}, commonerrors.ErrEmailAlreadyExists.WithCause(err)
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  "update_user_failed",
		}).Errorf("update user failed: %v", err)
		return domain.Summary{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(id),
		"action":  "user_updated",
	}).Info("user updated")

	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, id domain.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  "delete_user_failed",
		}).Errorf("delete user failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(id),
		"action":  "user_deleted",
	}).Info("user deleted")

	return nil
}
