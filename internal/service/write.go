package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dailywrite/backend/internal/db"
	"github.com/dailywrite/backend/internal/model"
	"go.uber.org/zap"
)

// WriteService - 오늘의 글 작성 화면과 저장
type WriteService struct {
	repo   ChallengeRepository
	cal    Calendar
	logger *zap.Logger
}

func NewWriteService(repo ChallengeRepository, cal Calendar, logger *zap.Logger) *WriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriteService{repo: repo, cal: cal, logger: logger}
}

// Today - 오늘 작성 목록의 첫 챌린지 기준 작성 화면. 목록이 비면 ErrNothingToWrite
func (s *WriteService) Today(ctx context.Context, userID int64) (*model.WriteResponse, error) {
	rows, err := dailyWorklist(ctx, s.repo, userID, s.cal.StartOfToday(), "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNothingToWrite
	}

	head := rows[0]
	challenge, err := s.repo.GetChallengeByTitle(ctx, head.ChallengeName)
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	return s.buildResponse(ctx, rows, challenge, head.UserChallengeID)
}

// Select - 드롭다운에서 고른 챌린지를 맨 앞에 둔 작성 화면
func (s *WriteService) Select(ctx context.Context, userID int64, name string) (*model.WriteResponse, error) {
	challenge, enrollment, err := s.enrollmentFor(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	rows, err := dailyWorklist(ctx, s.repo, userID, s.cal.StartOfToday(), challenge.Title)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, rows, challenge, enrollment.ID)
}

// Save - 오늘 글을 저장한다. 오늘 글이 없으면 새로 만들고 있으면 갱신.
// 한 번 완료된 글은 임시저장해도 완료 상태를 유지한다.
func (s *WriteService) Save(ctx context.Context, userID int64, req model.WriteRequest, complete bool) error {
	if err := validateWriteRequest(req); err != nil {
		return err
	}

	_, enrollment, err := s.enrollmentFor(ctx, userID, req.ChallengeName)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetTodayWriting(ctx, enrollment.ID, s.cal.StartOfToday())
	if err != nil {
		if !db.IsNoRows(err) {
			return fmt.Errorf("get today writing: %w", err)
		}
		if _, err := s.repo.InsertWriting(ctx, enrollment.ID, req.ChallengeTitle, req.ChallengeContent, complete); err != nil {
			return fmt.Errorf("insert writing: %w", err)
		}
		return nil
	}

	if err := s.repo.UpdateWriting(ctx, existing.ID, req.ChallengeTitle, req.ChallengeContent, complete || existing.Complete); err != nil {
		return fmt.Errorf("update writing: %w", err)
	}
	return nil
}

// EditPlanner - 가장 최근 글의 제목/본문만 고친다. 작성 시각은 그대로
func (s *WriteService) EditPlanner(ctx context.Context, userID int64, req model.WriteRequest) error {
	if err := validateWriteRequest(req); err != nil {
		return err
	}

	_, enrollment, err := s.enrollmentFor(ctx, userID, req.ChallengeName)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateLatestWritingContent(ctx, enrollment.ID, req.ChallengeTitle, req.ChallengeContent)
	if err != nil {
		return fmt.Errorf("update planner writing: %w", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *WriteService) enrollmentFor(ctx context.Context, userID int64, name string) (*model.Challenge, *model.UserChallenge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, ErrInvalidInput
	}

	challenge, err := s.repo.GetChallengeByTitle(ctx, name)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get challenge: %w", err)
	}

	enrollment, err := s.repo.GetLiveEnrollment(ctx, userID, challenge.ID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get live enrollment: %w", err)
	}
	return challenge, enrollment, nil
}

func (s *WriteService) buildResponse(ctx context.Context, rows []model.DailyRow, challenge *model.Challenge, userChallengeID int64) (*model.WriteResponse, error) {
	templates, err := s.repo.ListTemplates(ctx, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	temporary := []model.TemporaryWriting{}
	writing, err := s.repo.GetTodayWriting(ctx, userChallengeID, s.cal.StartOfToday())
	switch {
	case err == nil:
		temporary = append(temporary, model.TemporaryWriting{
			Title:    writing.Title,
			Writing:  writing.Content,
			Complete: writing.Complete,
		})
	case !db.IsNoRows(err):
		return nil, fmt.Errorf("get today writing: %w", err)
	}

	return &model.WriteResponse{
		TemplateCertain:    len(temporary) > 0,
		TemporaryChallenge: temporary,
		ChallengingArray:   challengeEntries(rows),
		TemplateData: model.TemplateData{
			ChallengeName:     challenge.Title,
			ChallengeCategory: challenge.Category,
			Templates:         templateEntries(challenge, templates),
		},
	}, nil
}

func validateWriteRequest(req model.WriteRequest) error {
	if strings.TrimSpace(req.ChallengeName) == "" ||
		strings.TrimSpace(req.ChallengeTitle) == "" ||
		strings.TrimSpace(req.ChallengeContent) == "" {
		return ErrInvalidInput
	}
	return nil
}
