// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/wedding-backend/internal/core"
	"github.com/carterperez-dev/wedding-backend/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserInfo struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	TokenVersion int
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ReplacePassword(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	blacklist    TokenBlacklist
	logger       *slog.Logger
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	blacklist TokenBlacklist,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password. The distinction is only logged.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			s.logger.InfoContext(ctx, "login rejected",
				"reason", "user_not_found",
				"email", req.Email,
			)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		s.logger.InfoContext(ctx, "login rejected",
			"reason", "bad_password",
			"user_id", user.ID,
		)
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			s.logger.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	issued, err := s.jwt.CreateSessionToken(SessionTokenClaims{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	return &LoginResponse{
		User: SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
		ExpiresAt:   issued.ExpiresAt,
	}, nil
}

func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.SessionClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}
	if s.blacklist == nil {
		return nil
	}

	if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*SessionUser, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SessionUser{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// ChangePassword validates input, then checks the account exists, then the
// current password, then that the new password differs. On success the
// token version is bumped so older sessions stop verifying.
func (s *Service) ChangePassword(
	ctx context.Context,
	req ChangePasswordRequest,
) error {
	if err := core.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("user")
		}
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		req.CurrentPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return core.UnauthorizedError("current password is incorrect")
	}

	if req.NewPassword == req.CurrentPassword {
		return core.InvalidInput(
			"new password must be different from the current password",
		)
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.ReplacePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("replace password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", "user_id", user.ID)

	return nil
}

// VerifySession checks the token signature and claims, then the blacklist,
// then the token version against the stored user.
func (s *Service) VerifySession(
	ctx context.Context,
	token string,
) (*middleware.SessionClaims, error) {
	claims, err := s.jwt.VerifySessionToken(token)
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("verify session: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
		}
	}

	user, err := s.userProvider.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}

	if claims.TokenVersion < user.TokenVersion {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}
