package user

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/model"
	"github.com/moducation/library-api/library/internal/repository"
)

type Service struct {
	log  *zap.Logger
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// Register stores a new account with a bcrypt password hash. Duplicate
// usernames and emails are rejected before the insert; the unique
// constraints in the repository back this up under races.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return model.User{}, errs.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.User{}, err
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return model.User{}, errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}

	return s.repo.Create(ctx, model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      req.Role,
	})
}

// Login verifies the credentials. ErrNotFound passes through for an
// unknown username; a wrong password is ErrBadPassword.
func (s *Service) Login(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return model.User{}, errs.ErrBadPassword
	}
	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, id int64) (model.User, error) {
	return s.repo.GetByID(ctx, id)
}
