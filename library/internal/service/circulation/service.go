package circulation

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/model"
	"github.com/moducation/library-api/library/internal/repository"
	"github.com/moducation/library-api/pkg/kafka"
)

// Service drives the borrow/return lifecycle: resolve the acting user,
// run the transactional record writes, publish the event.
type Service struct {
	log    *zap.Logger
	repo   repository.CirculationRepository
	users  repository.UserRepository
	events kafka.EventLog
}

func NewService(repo repository.CirculationRepository, users repository.UserRepository, events kafka.EventLog, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		users:  users,
		events: events,
	}
}

func (s *Service) Borrow(ctx context.Context, bookID, userID int64) (model.Withdrawal, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return model.Withdrawal{}, err
	}

	w, err := s.repo.Borrow(ctx, bookID, userID)
	if err != nil {
		return model.Withdrawal{}, err
	}

	if err := s.events.Log(kafka.NewEvent(kafka.EventBorrow, userID, bookID)); err != nil {
		s.log.Warn("borrow event", zap.Error(err))
	}
	return w, nil
}

func (s *Service) Return(ctx context.Context, bookID, userID int64) (model.Return, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return model.Return{}, err
	}

	ret, err := s.repo.Return(ctx, bookID, userID)
	if err != nil {
		return model.Return{}, err
	}

	if err := s.events.Log(kafka.NewEvent(kafka.EventReturn, userID, bookID)); err != nil {
		s.log.Warn("return event", zap.Error(err))
	}
	return ret, nil
}

func (s *Service) resolveUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUserNotFound
		}
		return err
	}
	return nil
}
