package db

import (
	"context"
	"time"

	"github.com/dailywrite/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// dailyRowSelect - 진행 중 참여 + 오늘(since 이후) 완료된 글을 조인. 뒤에 조건과 정렬을 붙여 쓴다.
const dailyRowSelect = `
	SELECT uc.id, c.id, c.title, cat.name, cat.emoji,
		done.id, done.title, done.content, done.created_at, done.updated_at
	FROM user_challenges uc
	JOIN challenges c ON c.id = uc.challenge_id
	JOIN categories cat ON cat.id = c.category_id
	LEFT JOIN LATERAL (
		SELECT w.id, w.title, w.content, w.created_at, w.updated_at
		FROM user_challenge_templates w
		WHERE w.user_challenge_id = uc.id AND w.complete AND w.created_at >= $2
		ORDER BY w.updated_at DESC
		LIMIT 1
	) done ON TRUE
	WHERE uc.user_id = $1 AND NOT uc.completed
`

// ListDraftedToday - 오늘 임시저장한 글이 있는 참여 (최근 수정 순)
func (db *Postgres) ListDraftedToday(ctx context.Context, userID int64, since time.Time) ([]model.DailyRow, error) {
	query := dailyRowSelect + `
		AND EXISTS (
			SELECT 1 FROM user_challenge_templates d
			WHERE d.user_challenge_id = uc.id AND NOT d.complete AND d.created_at >= $2
		)
		ORDER BY (
			SELECT MAX(d.updated_at) FROM user_challenge_templates d
			WHERE d.user_challenge_id = uc.id AND d.created_at >= $2
		) DESC
	`
	return db.queryDailyRows(ctx, query, userID, since)
}

// ListLiveWithToday - 진행 중인 모든 참여 (시작 순)
func (db *Postgres) ListLiveWithToday(ctx context.Context, userID int64, since time.Time) ([]model.DailyRow, error) {
	query := dailyRowSelect + ` ORDER BY uc.started_at`
	return db.queryDailyRows(ctx, query, userID, since)
}

func (db *Postgres) queryDailyRows(ctx context.Context, query string, userID int64, since time.Time) ([]model.DailyRow, error) {
	rows, err := db.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.DailyRow{}
	for rows.Next() {
		var (
			r         model.DailyRow
			writingID *int64
			title     *string
			content   *string
			createdAt *time.Time
			updatedAt *time.Time
		)
		if err := rows.Scan(
			&r.UserChallengeID,
			&r.ChallengeID,
			&r.ChallengeName,
			&r.Category,
			&r.Emoji,
			&writingID,
			&title,
			&content,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, err
		}
		if writingID != nil {
			r.Writing = &model.Writing{
				ID:              *writingID,
				UserChallengeID: r.UserChallengeID,
				Title:           deref(title),
				Content:         deref(content),
				Complete:        true,
				CreatedAt:       derefTime(createdAt),
				UpdatedAt:       derefTime(updatedAt),
			}
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// GetTodayWriting - since 이후 작성된 가장 최근 글. 없으면 pgx.ErrNoRows
func (db *Postgres) GetTodayWriting(ctx context.Context, userChallengeID int64, since time.Time) (*model.Writing, error) {
	query := `
		SELECT id, user_challenge_id, title, content, complete, created_at, updated_at
		FROM user_challenge_templates
		WHERE user_challenge_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanWriting(db.Pool.QueryRow(ctx, query, userChallengeID, since))
}

func (db *Postgres) InsertWriting(ctx context.Context, userChallengeID int64, title, content string, complete bool) (*model.Writing, error) {
	query := `
		INSERT INTO user_challenge_templates (user_challenge_id, title, content, complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_challenge_id, title, content, complete, created_at, updated_at
	`
	return scanWriting(db.Pool.QueryRow(ctx, query, userChallengeID, title, content, complete))
}

func (db *Postgres) UpdateWriting(ctx context.Context, writingID int64, title, content string, complete bool) error {
	query := `
		UPDATE user_challenge_templates
		SET title = $2, content = $3, complete = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, writingID, title, content, complete)
	return err
}

// UpdateLatestWritingContent - 플래너 수정: 시간 컬럼은 건드리지 않는다. 대상이 없으면 false
func (db *Postgres) UpdateLatestWritingContent(ctx context.Context, userChallengeID int64, title, content string) (bool, error) {
	query := `
		UPDATE user_challenge_templates
		SET title = $2, content = $3
		WHERE id = (
			SELECT id FROM user_challenge_templates
			WHERE user_challenge_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		)
	`
	tag, err := db.Pool.Exec(ctx, query, userChallengeID, title, content)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanWriting(row pgx.Row) (*model.Writing, error) {
	var w model.Writing
	err := row.Scan(&w.ID, &w.UserChallengeID, &w.Title, &w.Content, &w.Complete, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
