package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) (*userRepository, error) {
	return &userRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("username", "email", "password", "firstname", "lastname", "role").
		Values(user.Username, user.Email, user.Password, user.Firstname, user.Lastname, user.Role).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	if err := r.db.GetContext(ctx, &u, q, args...); err != nil {
		// unique constraints back the pre-checks in the service
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return model.User{}, errs.ErrEmailTaken
			}
			return model.User{}, errs.ErrUsernameTaken
		}
		r.log.Error("Create user", zap.String("q", q))
		return model.User{}, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column string, value any) (model.User, error) {
	q, args, err := qb.Select("id", "username", "email", "password", "firstname", "lastname", "role").
		From(usersTableName).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	if err := r.db.GetContext(ctx, &u, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}
