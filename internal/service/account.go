package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/dailywrite/backend/internal/config"
	"github.com/dailywrite/backend/internal/db"
	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/store"
	"github.com/dailywrite/backend/internal/template"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minLoginIDLength  = 3
	maxLoginIDLength  = 64
	minPasswordLength = 8
	maxPasswordLength = 128
)

// AccountService - 회원가입, 이메일 인증, 아이디/비밀번호 찾기
type AccountService struct {
	users      UserRepository
	codes      CodeStore
	mailer     Mailer
	bcryptCost int
	codeTTL    time.Duration
	codeLength int
	logger     *zap.Logger
}

func NewAccountService(
	users UserRepository,
	codes CodeStore,
	mailer Mailer,
	authCfg config.AuthConfig,
	verifyCfg config.VerificationConfig,
	logger *zap.Logger,
) (*AccountService, error) {
	cost, err := parseIntDefault(authCfg.BcryptCost, bcrypt.DefaultCost)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: invalid BCRYPT_COST", ErrMisconfigured)
	}

	codeTTL, err := time.ParseDuration(strings.TrimSpace(verifyCfg.CodeTTL))
	if err != nil || codeTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid VERIFY_CODE_TTL", ErrMisconfigured)
	}

	codeLength, err := parseIntDefault(verifyCfg.CodeLength, maxCodeLength)
	if err != nil || codeLength < minCodeLength || codeLength > maxCodeLength {
		return nil, fmt.Errorf("%w: invalid VERIFY_CODE_LENGTH", ErrMisconfigured)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &AccountService{
		users:      users,
		codes:      codes,
		mailer:     mailer,
		bcryptCost: cost,
		codeTTL:    codeTTL,
		codeLength: codeLength,
		logger:     logger,
	}, nil
}

func (s *AccountService) Signup(ctx context.Context, req model.SignupRequest) (*model.SignupResponse, error) {
	email := strings.TrimSpace(req.Email)
	nickname := strings.TrimSpace(req.Nickname)
	loginID := strings.TrimSpace(req.UserID)
	if email == "" || req.Password == "" || nickname == "" || loginID == "" {
		return nil, ErrInvalidInput
	}
	if !validEmail(email) {
		return nil, ErrInvalidInput
	}
	if err := validateCredentials(loginID, req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	var phone *string
	if req.PhoneNumber != nil {
		if trimmed := strings.TrimSpace(*req.PhoneNumber); trimmed != "" {
			phone = &trimmed
		}
	}

	user, err := s.users.CreateUser(ctx, model.NewUser{
		LoginID:      loginID,
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     nickname,
		PhoneNumber:  phone,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID))
	return &model.SignupResponse{UserID: user.LoginID, Nickname: user.Nickname}, nil
}

// CheckIdentifier - 사용 가능하면 true
func (s *AccountService) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false, ErrInvalidInput
	}

	_, err := s.users.GetUserByLoginID(ctx, identifier)
	if err == nil {
		return false, nil
	}
	if db.IsNoRows(err) {
		return true, nil
	}
	return false, fmt.Errorf("lookup identifier: %w", err)
}

// SendVerificationCode - 새 코드를 저장하고 메일로 보낸다. 이전 코드는 덮어쓴다.
func (s *AccountService) SendVerificationCode(ctx context.Context, email string) (time.Duration, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return 0, ErrInvalidInput
	}

	code, err := generateCode(s.codeLength)
	if err != nil {
		return 0, err
	}

	if err := s.codes.Save(ctx, email, code, s.codeTTL); err != nil {
		return 0, fmt.Errorf("save verification code: %w", err)
	}

	body := template.RenderBody(template.VerificationBody, template.MailData{
		User:      &template.UserData{Email: email},
		Code:      code,
		ExpiresIn: s.codeTTL,
	})
	if err := s.mailer.Send(ctx, email, template.VerificationSubject, body); err != nil {
		s.logger.Warn("failed to send verification mail", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return s.codeTTL, nil
}

// VerifyEmail - 코드가 맞으면 소비(삭제)한다.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return ErrInvalidInput
	}
	if err := s.checkCode(ctx, email, code); err != nil {
		return err
	}
	return s.consumeCode(ctx, email)
}

// FindIdentifier - 인증된 이메일로 가입한 아이디를 돌려준다.
func (s *AccountService) FindIdentifier(ctx context.Context, email, code string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return "", ErrInvalidInput
	}
	if err := s.checkCode(ctx, email, code); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.consumeCode(ctx, email); err != nil {
		return "", err
	}
	return user.LoginID, nil
}

// ResetPassword - 임시 비밀번호로 교체하고 메일로 보낸다.
func (s *AccountService) ResetPassword(ctx context.Context, identifier, email string) error {
	identifier = strings.TrimSpace(identifier)
	email = strings.TrimSpace(email)
	if identifier == "" || email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.GetUserByLoginID(ctx, identifier)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !strings.EqualFold(user.Email, email) {
		return ErrNotFound
	}

	password, err := randomPassword(temporaryPasswordLength)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}

	updated, err := s.users.UpdatePasswordHash(ctx, identifier, email, string(hash))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !updated {
		return ErrNotFound
	}

	body := template.RenderBody(template.TemporaryPasswordBody, template.MailData{
		User:     &template.UserData{Identifier: user.LoginID, Nickname: user.Nickname, Email: user.Email},
		Password: password,
	})
	if err := s.mailer.Send(ctx, user.Email, template.TemporaryPasswordSubject, body); err != nil {
		s.logger.Error("password reset but mail failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	s.logger.Info("temporary password issued", zap.Int64("user_id", user.ID))
	return nil
}

func (s *AccountService) checkCode(ctx context.Context, email, code string) error {
	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeMismatch
		}
		return fmt.Errorf("load verification code: %w", err)
	}
	if !codesEqual(stored, code) {
		return ErrCodeMismatch
	}
	return nil
}

func (s *AccountService) consumeCode(ctx context.Context, email string) error {
	if err := s.codes.Delete(ctx, email); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}

func validateCredentials(loginID, password string) error {
	loginID = strings.TrimSpace(loginID)
	password = strings.TrimSpace(password)

	if len(loginID) < minLoginIDLength || len(loginID) > maxLoginIDLength {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func parseIntDefault(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
