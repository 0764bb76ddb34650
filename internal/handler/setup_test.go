package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dailywrite/backend/internal/config"
	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/service"
	"github.com/dailywrite/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "handler-test-secret"

var nopLogger = zap.NewNop()

type stubUsers struct {
	users []model.User
}

func (s *stubUsers) find(match func(model.User) bool) (*model.User, error) {
	for _, u := range s.users {
		if match(u) {
			copied := u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) CreateUser(_ context.Context, u model.NewUser) (*model.User, error) {
	created := model.User{ID: int64(len(s.users) + 1), LoginID: u.LoginID, Email: u.Email, Nickname: u.Nickname, Role: model.RoleUser}
	s.users = append(s.users, created)
	return &created, nil
}

func (s *stubUsers) GetUserByLoginID(_ context.Context, loginID string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.LoginID == loginID })
}

func (s *stubUsers) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == userID })
}

func (s *stubUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *stubUsers) UpdatePasswordHash(context.Context, string, string, string) (bool, error) {
	return false, nil
}

// stubChallenges - 테스트가 쓰는 메서드만 구현. 나머지는 호출되면 panic
type stubChallenges struct {
	service.ChallengeRepository

	challenges []model.Challenge
	live       map[int64]bool
}

func (s *stubChallenges) ListCategories(context.Context) ([]model.Category, error) {
	return []model.Category{{Name: "마음", Emoji: "🙏"}}, nil
}

func (s *stubChallenges) ListChallenges(_ context.Context, category string) ([]model.Challenge, error) {
	out := []model.Challenge{}
	for _, c := range s.challenges {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubChallenges) GetChallengeByTitle(_ context.Context, title string) (*model.Challenge, error) {
	for _, c := range s.challenges {
		if c.Title == title {
			copied := c
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubChallenges) GetLiveEnrollment(_ context.Context, userID, challengeID int64) (*model.UserChallenge, error) {
	if s.live[challengeID] {
		return &model.UserChallenge{ID: 99, UserID: userID, ChallengeID: challengeID}, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubChallenges) ListLiveEnrollments(context.Context, int64, time.Time) ([]model.EnrollmentStatus, error) {
	return []model.EnrollmentStatus{}, nil
}

func (s *stubChallenges) ListDraftedToday(context.Context, int64, time.Time) ([]model.DailyRow, error) {
	return []model.DailyRow{}, nil
}

func (s *stubChallenges) ListLiveWithToday(context.Context, int64, time.Time) ([]model.DailyRow, error) {
	return []model.DailyRow{}, nil
}

type stubMailer struct {
	bodies []string
}

func (m *stubMailer) Send(_ context.Context, _, _, body string) error {
	m.bodies = append(m.bodies, body)
	return nil
}

type testEnv struct {
	router *gin.Engine
	redis  *miniredis.Miniredis
	tokens *service.TokenService
	users  *stubUsers
	repo   *stubChallenges
	mailer *stubMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := store.NewSessionStore(rdb)

	authCfg := config.AuthConfig{
		JWTSecret:     testJWTSecret,
		JWTAccessTTL:  "1h",
		JWTRefreshTTL: "24h",
		BcryptCost:    "4",
	}
	tokens, err := service.NewTokenService(authCfg, sessions)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUsers{users: []model.User{
		{ID: 1, LoginID: "writer", Email: "writer@daily.test", PasswordHash: string(hash), Nickname: "작가", Role: model.RoleUser},
	}}

	repo := &stubChallenges{
		challenges: []model.Challenge{{ID: 10, Title: "감사 일기", Category: "마음", Emoji: "🙏", DurationDays: 30}},
		live:       map[int64]bool{},
	}
	mailer := &stubMailer{}

	authSvc := service.NewAuthService(users, tokens, sessions, nil)
	accountSvc, err := service.NewAccountService(users, store.NewCodeStore(rdb), mailer, authCfg,
		config.VerificationConfig{CodeTTL: "5m", CodeLength: "6"}, nil)
	require.NoError(t, err)
	calendar := service.NewCalendar(time.UTC)

	router := NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://app.daily.test"},
		Auth:           NewAuthHandler(authSvc, nopLogger),
		Account:        NewAccountHandler(accountSvc, nopLogger),
		Challenge:      NewChallengeHandler(service.NewChallengeService(repo, users, calendar, nil), nopLogger),
		Write:          NewWriteHandler(service.NewWriteService(repo, calendar, nil), nopLogger),
		TokenParser:    authSvc,
		MailLimiter:    NewRateLimiter(5, 2),
	})

	return &testEnv{router: router, redis: mr, tokens: tokens, users: users, repo: repo, mailer: mailer}
}

func (e *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = &bytes.Buffer{}
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) accessHeader(t *testing.T, userID int64) map[string]string {
	t.Helper()
	token, err := e.tokens.Sign(userID, model.RoleUser)
	require.NoError(t, err)
	return map[string]string{AccessHeader: service.BearerPrefix + token}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) model.Response {
	t.Helper()
	var raw struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return model.Response{Code: raw.Code, Message: raw.Message}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
