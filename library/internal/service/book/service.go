package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/model"
	"github.com/moducation/library-api/library/internal/repository"
)

type Service struct {
	log  *zap.Logger
	repo repository.BookRepository
}

func NewService(repo repository.BookRepository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, req model.BookRequest) (model.Book, error) {
	return s.repo.Create(ctx, req)
}

func (s *Service) GetByID(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req model.BookRequest) (model.Book, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, filter, key string) ([]model.Book, error) {
	return s.repo.Search(ctx, filter, key)
}

func (s *Service) GetAvailability(ctx context.Context, id int64) (int, error) {
	return s.repo.GetAvailability(ctx, id)
}

func (s *Service) SetAvailability(ctx context.Context, id int64, availability int) error {
	return s.repo.SetAvailability(ctx, id, availability)
}
