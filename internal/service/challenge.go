package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dailywrite/backend/internal/db"
	"github.com/dailywrite/backend/internal/model"
	"go.uber.org/zap"
)

// 쿠폰이 없는 유저가 동시에 진행할 수 있는 챌린지 수
const maxConcurrentChallenges = 2

type ChallengeService struct {
	repo   ChallengeRepository
	users  UserRepository
	cal    Calendar
	logger *zap.Logger
}

func NewChallengeService(repo ChallengeRepository, users UserRepository, cal Calendar, logger *zap.Logger) *ChallengeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChallengeService{repo: repo, users: users, cal: cal, logger: logger}
}

func (s *ChallengeService) Catalog(ctx context.Context) (*model.CatalogResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	challenges, err := s.repo.ListChallenges(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return &model.CatalogResponse{Categories: categories, Challenges: challenges}, nil
}

// Search - category가 비어 있으면 전체
func (s *ChallengeService) Search(ctx context.Context, category string) (*model.SearchResponse, error) {
	challenges, err := s.repo.ListChallenges(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("search challenges: %w", err)
	}
	return &model.SearchResponse{Challenges: challenges}, nil
}

func (s *ChallengeService) Main(ctx context.Context, userID int64) (*model.MainResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	live, err := s.repo.ListLiveEnrollments(ctx, userID, s.cal.StartOfToday())
	if err != nil {
		return nil, fmt.Errorf("list live enrollments: %w", err)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	return &model.MainResponse{
		Nickname:           user.Nickname,
		Coupon:             user.Coupon,
		ChallengeCertain:   len(live) > 0,
		UserChallengeCount: len(live),
		UserChallenges:     live,
		Categories:         catalog.Categories,
		Challenges:         catalog.Challenges,
	}, nil
}

// Start - 챌린지 참여를 만들고, 새 챌린지를 맨 앞에 둔 오늘 작성 목록과 템플릿을 돌려준다.
func (s *ChallengeService) Start(ctx context.Context, userID int64, name string) (*model.NewChallengeResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	challenge, err := s.repo.GetChallengeByTitle(ctx, name)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	if _, err := s.repo.GetLiveEnrollment(ctx, userID, challenge.ID); err == nil {
		return nil, ErrAlreadyInProgress
	} else if !db.IsNoRows(err) {
		return nil, fmt.Errorf("get live enrollment: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Coupon {
		count, err := s.repo.CountLiveEnrollments(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("count live enrollments: %w", err)
		}
		if count >= maxConcurrentChallenges {
			return nil, ErrTooManyChallenges
		}
	}

	if _, err := s.repo.CreateEnrollment(ctx, userID, challenge.ID); err != nil {
		// 동시 요청으로 live unique index에 걸린 경우
		if isUniqueViolation(err) {
			return nil, ErrAlreadyInProgress
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	s.logger.Info("challenge started",
		zap.Int64("user_id", userID),
		zap.String("challenge", challenge.Title),
	)

	rows, err := dailyWorklist(ctx, s.repo, userID, s.cal.StartOfToday(), challenge.Title)
	if err != nil {
		return nil, err
	}

	templates, err := s.repo.ListTemplates(ctx, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	return &model.NewChallengeResponse{
		ChallengingArray: challengeEntries(rows),
		TemplateData: model.TemplateData{
			ChallengeName:     challenge.Title,
			ChallengeCategory: challenge.Category,
			Templates:         templateEntries(challenge, templates),
		},
	}, nil
}
