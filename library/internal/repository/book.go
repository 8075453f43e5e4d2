package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, req model.BookRequest) (model.Book, error)
	GetByID(ctx context.Context, id int64) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (model.Book, error)
	Delete(ctx context.Context, id int64) (model.Book, error)
	Search(ctx context.Context, filter, key string) ([]model.Book, error)
	GetAvailability(ctx context.Context, id int64) (int, error)
	SetAvailability(ctx context.Context, id int64, availability int) error
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) (*bookRepository, error) {
	return &bookRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

var bookColumns = []string{"id", "title", "author", "genre", "availability", "sum_rating", "number_of_ratings", "avg_rating"}

func (r *bookRepository) Create(ctx context.Context, req model.BookRequest) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "genre", "availability").
		Values(req.Title, req.Author, req.Genre, req.Availability).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		r.log.Error("Create book", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return b, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return b, nil
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// Update overwrites title, author, genre and availability. The rating
// aggregates are not reachable through this path.
func (r *bookRepository) Update(ctx context.Context, id int64, req model.BookRequest) (model.Book, error) {
	q, args, err := qb.Update(booksTableName).
		Set("title", req.Title).
		Set("author", req.Author).
		Set("genre", req.Genre).
		Set("availability", req.Availability).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("Update book", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return b, nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) (model.Book, error) {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return b, nil
}

// Search matches a substring of title, author or genre. Any other filter
// is rejected before a query is built.
func (r *bookRepository) Search(ctx context.Context, filter, key string) ([]model.Book, error) {
	switch filter {
	case "title", "author", "genre":
	default:
		return nil, errs.ErrInvalidFilter
	}

	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Like{filter: fmt.Sprint("%", key, "%")}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) GetAvailability(ctx context.Context, id int64) (int, error) {
	q, args, err := qb.Select("availability").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var availability int
	if err := r.db.GetContext(ctx, &availability, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return availability, nil
}

func (r *bookRepository) SetAvailability(ctx context.Context, id int64, availability int) error {
	q, args, err := qb.Update(booksTableName).
		Set("availability", availability).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
