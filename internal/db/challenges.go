package db

import (
	"context"
	"time"

	"github.com/dailywrite/backend/internal/model"
)

func (db *Postgres) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, emoji FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListChallenges - category가 빈 문자열이면 전체 목록
func (db *Postgres) ListChallenges(ctx context.Context, category string) ([]model.Challenge, error) {
	query := `
		SELECT c.id, c.title, cat.name, cat.emoji, c.duration_days
		FROM challenges c
		JOIN categories cat ON cat.id = c.category_id
		WHERE $1 = '' OR cat.name = $1
		ORDER BY c.id
	`
	rows, err := db.Pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Challenge{}
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &c.Emoji, &c.DurationDays); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (db *Postgres) GetChallengeByTitle(ctx context.Context, title string) (*model.Challenge, error) {
	query := `
		SELECT c.id, c.title, cat.name, cat.emoji, c.duration_days
		FROM challenges c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.title = $1
	`
	var c model.Challenge
	err := db.Pool.QueryRow(ctx, query, title).Scan(&c.ID, &c.Title, &c.Category, &c.Emoji, &c.DurationDays)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *Postgres) ListTemplates(ctx context.Context, challengeID int64) ([]model.Template, error) {
	query := `
		SELECT id, challenge_id, title, content
		FROM templates
		WHERE challenge_id = $1
		ORDER BY id
	`
	rows, err := db.Pool.Query(ctx, query, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Template{}
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.ChallengeID, &t.Title, &t.Content); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetLiveEnrollment - 완료되지 않은 참여 행. 없으면 pgx.ErrNoRows
func (db *Postgres) GetLiveEnrollment(ctx context.Context, userID, challengeID int64) (*model.UserChallenge, error) {
	query := `
		SELECT id, user_id, challenge_id, completed, started_at, completed_at
		FROM user_challenges
		WHERE user_id = $1 AND challenge_id = $2 AND NOT completed
		ORDER BY started_at DESC
		LIMIT 1
	`
	var uc model.UserChallenge
	err := db.Pool.QueryRow(ctx, query, userID, challengeID).Scan(
		&uc.ID,
		&uc.UserID,
		&uc.ChallengeID,
		&uc.Completed,
		&uc.StartedAt,
		&uc.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (db *Postgres) CountLiveEnrollments(ctx context.Context, userID int64) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_challenges WHERE user_id = $1 AND NOT completed`,
		userID,
	).Scan(&count)
	return count, err
}

func (db *Postgres) CreateEnrollment(ctx context.Context, userID, challengeID int64) (*model.UserChallenge, error) {
	query := `
		INSERT INTO user_challenges (user_id, challenge_id, completed, started_at)
		VALUES ($1, $2, FALSE, NOW())
		RETURNING id, user_id, challenge_id, completed, started_at, completed_at
	`
	var uc model.UserChallenge
	err := db.Pool.QueryRow(ctx, query, userID, challengeID).Scan(
		&uc.ID,
		&uc.UserID,
		&uc.ChallengeID,
		&uc.Completed,
		&uc.StartedAt,
		&uc.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

// ListLiveEnrollments - 메인 화면용 진행 중 챌린지 목록 (since 이후 완료 글 여부 포함)
func (db *Postgres) ListLiveEnrollments(ctx context.Context, userID int64, since time.Time) ([]model.EnrollmentStatus, error) {
	query := `
		SELECT c.title, cat.name, cat.emoji, uc.started_at, c.duration_days,
			EXISTS (
				SELECT 1 FROM user_challenge_templates w
				WHERE w.user_challenge_id = uc.id AND w.complete AND w.created_at >= $2
			)
		FROM user_challenges uc
		JOIN challenges c ON c.id = uc.challenge_id
		JOIN categories cat ON cat.id = c.category_id
		WHERE uc.user_id = $1 AND NOT uc.completed
		ORDER BY uc.started_at
	`
	rows, err := db.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.EnrollmentStatus{}
	for rows.Next() {
		var e model.EnrollmentStatus
		if err := rows.Scan(&e.ChallengeName, &e.Category, &e.Emoji, &e.StartedAt, &e.DurationDays, &e.WrittenToday); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// CompleteExpiredEnrollments - started_at + duration_days가 지난 참여를 완료 처리
func (db *Postgres) CompleteExpiredEnrollments(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE user_challenges uc
		SET completed = TRUE, completed_at = $1
		FROM challenges c
		WHERE c.id = uc.challenge_id
			AND NOT uc.completed
			AND uc.started_at + make_interval(days => c.duration_days) <= $1
	`
	tag, err := db.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
