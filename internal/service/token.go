package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dailywrite/backend/internal/config"
	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const BearerPrefix = "Bearer "

// TokenService - access token(무상태)과 refresh token(세션 저장소와 대조) 발급/검증
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	sessions      SessionStore
	now           func() time.Time
}

type accessClaims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg config.AuthConfig, sessions SessionStore) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil || accessTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.JWTRefreshTTL)
	if err != nil || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TTL", ErrMisconfigured)
	}

	if refreshTTL < accessTTL {
		return nil, fmt.Errorf("%w: JWT_REFRESH_TTL must not be shorter than JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshSecret := cfg.JWTRefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.JWTSecret
	}

	return &TokenService{
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		sessions:      sessions,
		now:           time.Now,
	}, nil
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Sign - {id, role}을 담은 access token
func (s *TokenService) Sign(userID int64, role string) (string, error) {
	now := s.now()
	claims := accessClaims{
		ID:   userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

// Refresh - 유저 정보를 담지 않는 refresh token. 유저와의 연결은 세션 저장소가 가진다.
func (s *TokenService) Refresh() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// Verify - 서명과 만료를 모두 검사. 만료는 ErrTokenExpired, 그 외는 ErrTokenInvalid
func (s *TokenService) Verify(token string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if _, err := parser.ParseWithClaims(token, claims, s.accessKey); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.ID <= 0 {
		return nil, ErrTokenInvalid
	}
	return &model.AuthUser{ID: claims.ID, Role: claims.Role}, nil
}

// Decode - 만료는 무시하고 claims만 꺼낸다. 서명이 맞지 않거나 구조가 깨지면 ErrTokenUndecodable
func (s *TokenService) Decode(token string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(token, claims, s.accessKey); err != nil {
		return nil, ErrTokenUndecodable
	}
	if claims.ID <= 0 {
		return nil, ErrTokenUndecodable
	}
	return &model.AuthUser{ID: claims.ID, Role: claims.Role}, nil
}

// RefreshVerify - refresh token이 유효하고 세션 저장소의 값과 같아야 통과
//
//   - 서명/만료 실패: ErrTokenExpired / ErrTokenInvalid
//   - 저장소에 세션 없음: ErrSessionNotFound
//   - 저장소 값과 다름: ErrSessionMismatch
func (s *TokenService) RefreshVerify(ctx context.Context, token string, userID int64) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if _, err := parser.ParseWithClaims(token, &jwt.RegisteredClaims{}, s.refreshKey); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	stored, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("session lookup: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return ErrSessionMismatch
	}
	return nil
}

func (s *TokenService) accessKey(*jwt.Token) (interface{}, error) {
	return s.accessSecret, nil
}

func (s *TokenService) refreshKey(*jwt.Token) (interface{}, error) {
	return s.refreshSecret, nil
}

// StripBearer - "Bearer <token>" 형식이 아니면 false
func StripBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
