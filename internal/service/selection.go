package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dailywrite/backend/internal/model"
)

// SelectDaily - 오늘 아직 작성하지 않은 챌린지 목록
//
// first(오늘 임시저장한 참여)에서 완료 글이 없는 행을 먼저, 이어서 second(진행 중인 전체 참여)에서
// 완료 글이 없고 아직 담기지 않은 챌린지를 입력 순서대로 담는다. target이 있으면 맨 앞으로 옮긴다.
func SelectDaily(first, second []model.DailyRow, target string) []model.DailyRow {
	out := make([]model.DailyRow, 0, len(first)+len(second))
	seen := make(map[int64]struct{}, len(first)+len(second))

	collect := func(rows []model.DailyRow) {
		for _, row := range rows {
			if row.Writing != nil {
				continue
			}
			if _, ok := seen[row.ChallengeID]; ok {
				continue
			}
			seen[row.ChallengeID] = struct{}{}
			out = append(out, row)
		}
	}
	collect(first)
	collect(second)

	return pinFirst(out, target)
}

// pinFirst - 이름이 target인 행을 맨 앞으로. 나머지 순서는 유지
func pinFirst(rows []model.DailyRow, target string) []model.DailyRow {
	if target == "" {
		return rows
	}
	pinned := make([]model.DailyRow, 0, len(rows))
	rest := make([]model.DailyRow, 0, len(rows))
	for _, row := range rows {
		if row.ChallengeName == target {
			pinned = append(pinned, row)
		} else {
			rest = append(rest, row)
		}
	}
	return append(pinned, rest...)
}

func dailyWorklist(ctx context.Context, repo ChallengeRepository, userID int64, since time.Time, target string) ([]model.DailyRow, error) {
	first, err := repo.ListDraftedToday(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list drafted today: %w", err)
	}
	second, err := repo.ListLiveWithToday(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list live enrollments: %w", err)
	}
	return SelectDaily(first, second, target), nil
}

func challengeEntries(rows []model.DailyRow) []model.ChallengeEntry {
	out := make([]model.ChallengeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.ChallengeEntry{ChallengeName: row.ChallengeName, Category: row.Category})
	}
	return out
}

func templateEntries(ch *model.Challenge, templates []model.Template) []model.TemplateEntry {
	out := make([]model.TemplateEntry, 0, len(templates))
	for _, t := range templates {
		out = append(out, model.TemplateEntry{
			TemplateTitle:   t.Title,
			TemplateContent: t.Content,
			Category:        ch.Category,
			Image:           ch.Emoji,
		})
	}
	return out
}
