package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/auth"
	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/store"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

const (
	msgUsernameTaken   = "A user with that username already exists."
	msgEmailTaken      = "A user with that email already exists."
	msgBadCredentials  = "No active account found with the given credentials"
	msgTokenInvalid    = "Token is invalid or expired"
	msgAccessInvalid   = "Given token not valid for any token type"
	msgUserNotFound    = "User not found"
	msgPasswordTooLong = "Ensure this field has no more than 72 bytes."
)

type authServiceImpl struct {
	logger zerolog.Logger
	store  *store.Store
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
}

func NewAuthService(
	logger zerolog.Logger,
	store *store.Store,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		store:  store,
		tokens: tokens,
		hasher: hasher,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	reg, ve := validation.ValidateRegistration(in)

	if err := s.checkTaken(ctx, ve, reg); err != nil {
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Field("password", msgPasswordTooLong)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	err = s.store.Users.Create(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent registration.
		ve = &apperr.ValidationError{}
		if err := s.checkTaken(ctx, ve, reg); err != nil {
			return nil, err
		}
		if !ve.Has("username") && !ve.Has("email") {
			ve.Add(apperr.NonFieldErrors, msgUsernameTaken)
		}
		return nil, ve
	}
	if err != nil {
		s.logger.Error().Err(err).Str("username", reg.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return user, nil
}

// checkTaken skips fields that already failed validation; those are left
// empty in reg.
func (s *authServiceImpl) checkTaken(ctx context.Context, ve *apperr.ValidationError, reg validation.Registration) error {
	if reg.Username != "" {
		taken, err := s.store.Users.UsernameTaken(ctx, reg.Username)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to check username")
			return err
		}
		if taken {
			ve.Add("username", msgUsernameTaken)
		}
	}
	if reg.Email != "" {
		taken, err := s.store.Users.EmailTaken(ctx, reg.Email)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to check email")
			return err
		}
		if taken {
			ve.Add("email", msgEmailTaken)
		}
	}
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, in validation.LoginInput) (*auth.TokenPair, error) {
	username, password, err := validation.ValidateLogin(in)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Debug().Str("username", username).Msg("login for unknown user")
		return nil, apperr.Authentication(msgBadCredentials)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to select user")
		return nil, err
	}

	match, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to compare password")
		return nil, err
	}
	if !match {
		s.logger.Debug().Uint("user_id", user.ID).Msg("password mismatch")
		return nil, apperr.Authentication(msgBadCredentials)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token pair")
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("logged in")
	return &pair, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, in validation.RefreshInput) (string, error) {
	token, err := validation.ValidateRefresh(in)
	if err != nil {
		return "", err
	}

	claims, err := s.tokens.Verify(token, auth.RefreshToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected refresh token")
		return "", apperr.Authentication(msgTokenInvalid)
	}

	if _, err := s.store.Users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.Authentication(msgUserNotFound)
		}
		s.logger.Error().Err(err).Msg("failed to select user")
		return "", err
	}

	access, err := s.tokens.Issue(claims.UserID, auth.AccessToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue access token")
		return "", err
	}
	s.logger.Debug().Uint("user_id", claims.UserID).Msg("refreshed access token")
	return access, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token, auth.AccessToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected access token")
		return nil, apperr.Authentication(msgAccessInvalid)
	}

	user, err := s.store.Users.FindByID(ctx, claims.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Authentication(msgUserNotFound)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select user")
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.store.Users.Delete(ctx, userID); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to delete user")
		}
		return err
	}

	s.logger.Info().Uint("user_id", userID).Msg("deleted user")
	return nil
}
