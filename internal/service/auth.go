package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dailywrite/backend/internal/db"
	"github.com/dailywrite/backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService - 로그인, access token 재발급, 로그아웃
type AuthService struct {
	users    UserRepository
	tokens   *TokenService
	sessions SessionStore
	logger   *zap.Logger
}

func NewAuthService(users UserRepository, tokens *TokenService, sessions SessionStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Login - 성공 시 기존 세션을 덮어쓴다 (유저당 세션 하나).
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*model.LoginResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetUserByLoginID(ctx, identifier)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	accessToken, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := s.tokens.Refresh()
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.sessions.Set(ctx, user.ID, refreshToken, s.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return &model.LoginResponse{
		AccessToken:  BearerPrefix + accessToken,
		RefreshToken: BearerPrefix + refreshToken,
		Role:         user.Role,
	}, nil
}

// Reissue - access token이 만료됐고 refresh token이 저장소 값과 같을 때만 새 access token 발급.
// refresh token은 회전하지 않고 그대로 돌려준다.
func (s *AuthService) Reissue(ctx context.Context, accessHeader, refreshHeader string) (*model.TokenPair, error) {
	accessToken, ok := StripBearer(accessHeader)
	if !ok {
		return nil, ErrBadHeader
	}
	refreshToken, ok := StripBearer(refreshHeader)
	if !ok {
		return nil, ErrBadHeader
	}

	claims, err := s.tokens.Decode(accessToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokens.Verify(accessToken); err == nil {
		return nil, ErrTokenNotExpired
	}

	if err := s.tokens.RefreshVerify(ctx, refreshToken, claims.ID); err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired),
			errors.Is(err, ErrTokenInvalid),
			errors.Is(err, ErrSessionNotFound),
			errors.Is(err, ErrSessionMismatch):
			return nil, ErrReloginRequired
		default:
			return nil, err
		}
	}

	newAccess, err := s.tokens.Sign(claims.ID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  BearerPrefix + newAccess,
		RefreshToken: BearerPrefix + refreshToken,
	}, nil
}

// Logout - 세션이 이미 없어도 성공으로 본다.
func (s *AuthService) Logout(ctx context.Context, accessHeader string) error {
	accessToken, ok := StripBearer(accessHeader)
	if !ok {
		return ErrBadHeader
	}

	claims, err := s.tokens.Decode(accessToken)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", claims.ID))
	return nil
}

func (s *AuthService) ParseAccessToken(token string) (*model.AuthUser, error) {
	return s.tokens.Verify(token)
}
