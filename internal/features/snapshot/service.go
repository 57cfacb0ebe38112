package snapshot

import (
	"context"
	"time"

	"go-bizops/internal/config"
	"go-bizops/internal/features/business"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SnapshotService interface {
	TakeSnapshot(ctx context.Context) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int64) ([]Snapshot, error)
	StartScheduler() error
	StopScheduler()
}

type SnapshotServiceImpl struct {
	Repo     SnapshotRepository
	Business business.BusinessService
	Config   *config.Config
	Logger   *zap.Logger

	scheduler *cron.Cron
}

func NewSnapshotService(repo SnapshotRepository, businessService business.BusinessService, cfg *config.Config, logger *zap.Logger) SnapshotService {
	return &SnapshotServiceImpl{
		Repo:     repo,
		Business: businessService,
		Config:   cfg,
		Logger:   logger,
	}
}

// TakeSnapshot captures today's dashboard aggregates in both display modes.
func (s *SnapshotServiceImpl) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	quantities, err := s.Business.GetDashboardSummary(ctx, business.SummaryQuery{Mode: business.ModeQuantity})
	if err != nil {
		return nil, err
	}

	values, err := s.Business.GetDashboardSummary(ctx, business.SummaryQuery{Mode: business.ModeValue})
	if err != nil {
		return nil, err
	}

	stats, err := s.Business.GetDivisionStats(ctx, business.SummaryQuery{Mode: business.ModeValue})
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Date:          time.Now().Format("2006-01-02"),
		Quantities:    quantities,
		Values:        values,
		DivisionStats: stats,
		TakenAt:       time.Now(),
	}
	if err := s.Repo.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *SnapshotServiceImpl) ListSnapshots(ctx context.Context, limit int64) ([]Snapshot, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.Repo.List(ctx, limit)
}

func (s *SnapshotServiceImpl) StartScheduler() error {
	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(s.Config.SnapshotCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := s.TakeSnapshot(ctx); err != nil {
			s.Logger.Error("scheduled snapshot failed", zap.Error(err))
			return
		}
		s.Logger.Info("business snapshot taken", zap.String("schedule", s.Config.SnapshotCron))
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

func (s *SnapshotServiceImpl) StopScheduler() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
}
