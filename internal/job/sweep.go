// 챌린지 참여 만료 처리 job
//
// started_at + duration_days 가 지난 진행 중 참여를 완료로 바꿔 동시 참여 슬롯을 비운다.
//
// 환경변수 (config.JobsConfig):
//   - ENROLLMENT_SWEEP_SCHEDULE (default: "0 0 * * *")

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultSweepTimeout = time.Minute

type EnrollmentCompleter interface {
	CompleteExpiredEnrollments(ctx context.Context, now time.Time) (int64, error)
}

type EnrollmentSweeper struct {
	repo     EnrollmentCompleter
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
}

// NewEnrollmentSweeper - loc는 cron 스케줄 해석 기준 시간대
func NewEnrollmentSweeper(repo EnrollmentCompleter, schedule string, loc *time.Location, logger *zap.Logger) *EnrollmentSweeper {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentSweeper{
		repo:     repo,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		now:      time.Now,
		logger:   logger,
	}
}

// Start - 한 번 즉시 실행한 뒤 스케줄을 건다.
func (s *EnrollmentSweeper) Start(ctx context.Context) error {
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Warn("initial enrollment sweep failed", zap.Error(err))
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), defaultSweepTimeout)
		defer cancel()
		if _, err := s.RunOnce(runCtx); err != nil {
			s.logger.Error("enrollment sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule enrollment sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("enrollment sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop - 실행 중인 job이 끝날 때까지 기다린다.
func (s *EnrollmentSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("enrollment sweeper stopped")
}

func (s *EnrollmentSweeper) RunOnce(ctx context.Context) (int64, error) {
	completed, err := s.repo.CompleteExpiredEnrollments(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if completed > 0 {
		s.logger.Info("expired enrollments completed", zap.Int64("count", completed))
	}
	return completed, nil
}
