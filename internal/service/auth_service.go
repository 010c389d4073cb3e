package service

import (
	"context"
	"time"

	"loja-backend/internal/models"

	"go.uber.org/zap"
)

const loginRateLimitTTL = 30 * time.Second

type authService struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenProvider
	cache  CacheClient // может быть nil — тогда лимита нет

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

func NewAuthService(users UserRepo, hasher PasswordHasher, tokens TokenProvider, cache CacheClient, accessTTL time.Duration, log *zap.Logger) AuthService {
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: username,
		Password: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	access, exp, err := s.tokens.SignAccess(ctx, u.ID, u.Username, s.accessTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info("Зарегистрирован новый пользователь", zap.String("username", u.Username))

	return &AuthResult{
		UserID:      u.ID,
		Username:    u.Username,
		AccessToken: access,
		ExpiresAt:   exp,
	}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if s.cache != nil {
		limited, err := s.cache.CheckRateLimit(ctx, "login:"+username)
		if err != nil {
			s.log.Warn("rate limit check failed", zap.Error(err))
		} else if limited {
			return nil, ErrTooManyRequests
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.hasher.Compare(user.Password, password) {
		if s.cache != nil {
			// неудачная попытка блокирует логин на TTL
			_ = s.cache.SetRateLimit(ctx, "login:"+username, loginRateLimitTTL)
		}
		return nil, ErrInvalidCredentials
	}

	access, exp, err := s.tokens.SignAccess(ctx, user.ID, user.Username, s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: access,
		ExpiresAt:   exp,
	}, nil
}
