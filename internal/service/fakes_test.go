package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

var testNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testCalendar(now func() time.Time) Calendar {
	return Calendar{loc: time.UTC, now: now}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newTestSessions(t *testing.T) (*miniredis.Miniredis, *store.SessionStore) {
	mr, client := newTestRedis(t)
	return mr, store.NewSessionStore(client)
}

type fakeUsers struct {
	mu     sync.Mutex
	users  []model.User
	nextID int64
	err    error
}

func (f *fakeUsers) add(u model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	f.users = append(f.users, u)
	return &f.users[len(f.users)-1]
}

func (f *fakeUsers) CreateUser(_ context.Context, u model.NewUser) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	for _, existing := range f.users {
		if existing.LoginID == u.LoginID || strings.EqualFold(existing.Email, u.Email) {
			f.mu.Unlock()
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	f.mu.Unlock()
	created := f.add(model.User{
		LoginID:      u.LoginID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Nickname:     u.Nickname,
		PhoneNumber:  u.PhoneNumber,
	})
	copied := *created
	return &copied, nil
}

func (f *fakeUsers) find(match func(model.User) bool) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			copied := u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetUserByLoginID(_ context.Context, loginID string) (*model.User, error) {
	return f.find(func(u model.User) bool { return u.LoginID == loginID })
}

func (f *fakeUsers) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	return f.find(func(u model.User) bool { return u.ID == userID })
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, loginID, email, passwordHash string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].LoginID == loginID && strings.EqualFold(f.users[i].Email, email) {
			f.users[i].PasswordHash = passwordHash
			return true, nil
		}
	}
	return false, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// fakeChallengeRepo - ChallengeRepository의 메모리 구현. 쿼리 의미는 internal/db와 같게 맞춘다.
type fakeChallengeRepo struct {
	now func() time.Time

	categories  []model.Category
	challenges  []model.Challenge
	templates   []model.Template
	enrollments []model.UserChallenge
	writings    []model.Writing

	nextID int64
	err    error
}

func newFakeChallengeRepo(now func() time.Time) *fakeChallengeRepo {
	return &fakeChallengeRepo{now: now}
}

func (f *fakeChallengeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeChallengeRepo) addChallenge(title, category, emoji string, templates ...string) model.Challenge {
	found := false
	for _, c := range f.categories {
		if c.Name == category {
			found = true
		}
	}
	if !found {
		f.categories = append(f.categories, model.Category{ID: f.id(), Name: category, Emoji: emoji})
	}
	ch := model.Challenge{ID: f.id(), Title: title, Category: category, Emoji: emoji, DurationDays: 30}
	f.challenges = append(f.challenges, ch)
	for _, t := range templates {
		f.templates = append(f.templates, model.Template{ID: f.id(), ChallengeID: ch.ID, Title: t, Content: t + " 내용"})
	}
	return ch
}

func (f *fakeChallengeRepo) enroll(userID, challengeID int64, startedAt time.Time) model.UserChallenge {
	uc := model.UserChallenge{ID: f.id(), UserID: userID, ChallengeID: challengeID, StartedAt: startedAt}
	f.enrollments = append(f.enrollments, uc)
	return uc
}

func (f *fakeChallengeRepo) write(userChallengeID int64, title, content string, complete bool, at time.Time) model.Writing {
	w := model.Writing{
		ID:              f.id(),
		UserChallengeID: userChallengeID,
		Title:           title,
		Content:         content,
		Complete:        complete,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
	f.writings = append(f.writings, w)
	return w
}

func (f *fakeChallengeRepo) challengeByID(id int64) model.Challenge {
	for _, c := range f.challenges {
		if c.ID == id {
			return c
		}
	}
	return model.Challenge{}
}

func (f *fakeChallengeRepo) ListCategories(context.Context) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Category{}, f.categories...), nil
}

func (f *fakeChallengeRepo) ListChallenges(_ context.Context, category string) ([]model.Challenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Challenge{}
	for _, c := range f.challenges {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) GetChallengeByTitle(_ context.Context, title string) (*model.Challenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.challenges {
		if c.Title == title {
			copied := c
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeChallengeRepo) ListTemplates(_ context.Context, challengeID int64) ([]model.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Template{}
	for _, t := range f.templates {
		if t.ChallengeID == challengeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) GetLiveEnrollment(_ context.Context, userID, challengeID int64) (*model.UserChallenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, uc := range f.enrollments {
		if uc.UserID == userID && uc.ChallengeID == challengeID && !uc.Completed {
			copied := uc
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeChallengeRepo) CountLiveEnrollments(_ context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, uc := range f.enrollments {
		if uc.UserID == userID && !uc.Completed {
			count++
		}
	}
	return count, nil
}

func (f *fakeChallengeRepo) CreateEnrollment(_ context.Context, userID, challengeID int64) (*model.UserChallenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	uc := f.enroll(userID, challengeID, f.now())
	return &uc, nil
}

func (f *fakeChallengeRepo) live(userID int64) []model.UserChallenge {
	out := []model.UserChallenge{}
	for _, uc := range f.enrollments {
		if uc.UserID == userID && !uc.Completed {
			out = append(out, uc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

func (f *fakeChallengeRepo) completedToday(userChallengeID int64, since time.Time) *model.Writing {
	var latest *model.Writing
	for i := range f.writings {
		w := f.writings[i]
		if w.UserChallengeID != userChallengeID || !w.Complete || w.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || w.UpdatedAt.After(latest.UpdatedAt) {
			copied := w
			latest = &copied
		}
	}
	return latest
}

func (f *fakeChallengeRepo) dailyRow(uc model.UserChallenge, since time.Time) model.DailyRow {
	ch := f.challengeByID(uc.ChallengeID)
	return model.DailyRow{
		UserChallengeID: uc.ID,
		ChallengeID:     ch.ID,
		ChallengeName:   ch.Title,
		Category:        ch.Category,
		Emoji:           ch.Emoji,
		Writing:         f.completedToday(uc.ID, since),
	}
}

func (f *fakeChallengeRepo) ListLiveEnrollments(_ context.Context, userID int64, since time.Time) ([]model.EnrollmentStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.EnrollmentStatus{}
	for _, uc := range f.live(userID) {
		ch := f.challengeByID(uc.ChallengeID)
		out = append(out, model.EnrollmentStatus{
			ChallengeName: ch.Title,
			Category:      ch.Category,
			Emoji:         ch.Emoji,
			StartedAt:     uc.StartedAt,
			DurationDays:  ch.DurationDays,
			WrittenToday:  f.completedToday(uc.ID, since) != nil,
		})
	}
	return out, nil
}

func (f *fakeChallengeRepo) ListDraftedToday(_ context.Context, userID int64, since time.Time) ([]model.DailyRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	type drafted struct {
		row    model.DailyRow
		latest time.Time
	}
	var list []drafted
	for _, uc := range f.live(userID) {
		hasDraft := false
		var latest time.Time
		for _, w := range f.writings {
			if w.UserChallengeID != uc.ID || w.CreatedAt.Before(since) {
				continue
			}
			if !w.Complete {
				hasDraft = true
			}
			if w.UpdatedAt.After(latest) {
				latest = w.UpdatedAt
			}
		}
		if hasDraft {
			list = append(list, drafted{row: f.dailyRow(uc, since), latest: latest})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].latest.After(list[j].latest) })

	out := []model.DailyRow{}
	for _, d := range list {
		out = append(out, d.row)
	}
	return out, nil
}

func (f *fakeChallengeRepo) ListLiveWithToday(_ context.Context, userID int64, since time.Time) ([]model.DailyRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.DailyRow{}
	for _, uc := range f.live(userID) {
		out = append(out, f.dailyRow(uc, since))
	}
	return out, nil
}

func (f *fakeChallengeRepo) GetTodayWriting(_ context.Context, userChallengeID int64, since time.Time) (*model.Writing, error) {
	if f.err != nil {
		return nil, f.err
	}
	var latest *model.Writing
	for _, w := range f.writings {
		if w.UserChallengeID != userChallengeID || w.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || w.CreatedAt.After(latest.CreatedAt) {
			copied := w
			latest = &copied
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}

func (f *fakeChallengeRepo) InsertWriting(_ context.Context, userChallengeID int64, title, content string, complete bool) (*model.Writing, error) {
	if f.err != nil {
		return nil, f.err
	}
	w := f.write(userChallengeID, title, content, complete, f.now())
	return &w, nil
}

func (f *fakeChallengeRepo) UpdateWriting(_ context.Context, writingID int64, title, content string, complete bool) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.writings {
		if f.writings[i].ID == writingID {
			f.writings[i].Title = title
			f.writings[i].Content = content
			f.writings[i].Complete = complete
			f.writings[i].UpdatedAt = f.now()
		}
	}
	return nil
}

func (f *fakeChallengeRepo) UpdateLatestWritingContent(_ context.Context, userChallengeID int64, title, content string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	idx := -1
	for i, w := range f.writings {
		if w.UserChallengeID != userChallengeID {
			continue
		}
		if idx == -1 || w.CreatedAt.After(f.writings[idx].CreatedAt) {
			idx = i
		}
	}
	if idx == -1 {
		return false, nil
	}
	f.writings[idx].Title = title
	f.writings[idx].Content = content
	return true, nil
}
