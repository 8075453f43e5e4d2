package handler

import (
	"context"

	"github.com/moducation/library-api/library/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	Create(ctx context.Context, req model.BookRequest) (model.Book, error)
	GetByID(ctx context.Context, id int64) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (model.Book, error)
	Delete(ctx context.Context, id int64) (model.Book, error)
	Search(ctx context.Context, filter, key string) ([]model.Book, error)
	GetAvailability(ctx context.Context, id int64) (int, error)
	SetAvailability(ctx context.Context, id int64, availability int) error
}

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Login(ctx context.Context, username, password string) (model.User, error)
	GetProfile(ctx context.Context, id int64) (model.User, error)
}

type CirculationService interface {
	Borrow(ctx context.Context, bookID, userID int64) (model.Withdrawal, error)
	Return(ctx context.Context, bookID, userID int64) (model.Return, error)
}
