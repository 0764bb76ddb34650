package service

import (
	"context"
	"time"

	"github.com/dailywrite/backend/internal/model"
)

// 서비스가 의존하는 저장소 인터페이스. 구현은 internal/db, internal/store, internal/client.

type UserRepository interface {
	CreateUser(ctx context.Context, u model.NewUser) (*model.User, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, loginID, email, passwordHash string) (bool, error)
}

type SessionStore interface {
	Get(ctx context.Context, userID int64) (string, error)
	Set(ctx context.Context, userID int64, token string, ttl time.Duration) error
	Delete(ctx context.Context, userID int64) error
}

type CodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type ChallengeRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListChallenges(ctx context.Context, category string) ([]model.Challenge, error)
	GetChallengeByTitle(ctx context.Context, title string) (*model.Challenge, error)
	ListTemplates(ctx context.Context, challengeID int64) ([]model.Template, error)

	GetLiveEnrollment(ctx context.Context, userID, challengeID int64) (*model.UserChallenge, error)
	CountLiveEnrollments(ctx context.Context, userID int64) (int, error)
	CreateEnrollment(ctx context.Context, userID, challengeID int64) (*model.UserChallenge, error)
	ListLiveEnrollments(ctx context.Context, userID int64, since time.Time) ([]model.EnrollmentStatus, error)

	ListDraftedToday(ctx context.Context, userID int64, since time.Time) ([]model.DailyRow, error)
	ListLiveWithToday(ctx context.Context, userID int64, since time.Time) ([]model.DailyRow, error)

	GetTodayWriting(ctx context.Context, userChallengeID int64, since time.Time) (*model.Writing, error)
	InsertWriting(ctx context.Context, userChallengeID int64, title, content string, complete bool) (*model.Writing, error)
	UpdateWriting(ctx context.Context, writingID int64, title, content string, complete bool) error
	UpdateLatestWritingContent(ctx context.Context, userChallengeID int64, title, content string) (bool, error)
}
