package service

import (
	"context"
	"path"
	"time"

	"ergo-assist-be/internal/config"
	"ergo-assist-be/internal/dto"
	"ergo-assist-be/internal/repository/specification"
	"ergo-assist-be/internal/repository/unitofwork"
	"ergo-assist-be/pkg/verdict"
)

type IStatsService interface {
	GetSummary(ctx context.Context) (*dto.StatsSummaryResponse, error)
	GetVideos(ctx context.Context) []dto.VideoDTO
}

type statsService struct {
	uowFactory unitofwork.RepositoryFactory
	assessCfg  config.AssessConfig
}

func NewStatsService(uowFactory unitofwork.RepositoryFactory, assessCfg config.AssessConfig) IStatsService {
	return &statsService{
		uowFactory: uowFactory,
		assessCfg:  assessCfg,
	}
}

// statsSeriesStart anchors the demo dashboard series.
var statsSeriesStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

const statsSeriesDays = 30

// GetSummary returns the fixed demo time series plus live assessment
// counts. The series is deterministic so the dashboard renders the same
// curves on every deployment.
func (s *statsService) GetSummary(ctx context.Context) (*dto.StatsSummaryResponse, error) {
	days := make([]dto.DailyStatDTO, 0, statsSeriesDays)
	for i := 0; i < statsSeriesDays; i++ {
		day := statsSeriesStart.AddDate(0, 0, i)
		days = append(days, dto.DailyStatDTO{
			Date:          day.Format("2006-01-02"),
			SafetyScore:   70 + float64(i)*0.5 + float64(i%5)*2,
			IncidentCount: 10 - float64(i)*0.2 + float64(i%3),
			ActivityLevel: 50 + float64(i)*0.8 + float64(i%4)*3,
		})
	}

	var scoreSum, incidentSum float64
	best, worst := days[0], days[0]
	for _, d := range days {
		scoreSum += d.SafetyScore
		incidentSum += d.IncidentCount
		if d.SafetyScore > best.SafetyScore {
			best = d
		}
		if d.SafetyScore < worst.SafetyScore {
			worst = d
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AssessmentRepository()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	safeCount, err := repo.Count(ctx, specification.ByVerdict{Verdict: string(verdict.VerdictSafe)})
	if err != nil {
		return nil, err
	}
	unsafeCount, err := repo.Count(ctx, specification.ByVerdict{Verdict: string(verdict.VerdictUnsafe)})
	if err != nil {
		return nil, err
	}

	return &dto.StatsSummaryResponse{
		Days:               days,
		AverageSafetyScore: scoreSum / float64(len(days)),
		TotalIncidents:     incidentSum,
		BestDay:            best.Date,
		WorstDay:           worst.Date,
		TotalAssessments:   total,
		SafeAssessments:    safeCount,
		UnsafeAssessments:  unsafeCount,
	}, nil
}

// GetVideos returns the demo motion catalog for the player dropdown.
// The head entries come from configuration so they stay in sync with
// what the session engine plays.
func (s *statsService) GetVideos(_ context.Context) []dto.VideoDTO {
	return []dto.VideoDTO{
		{Label: "Default motion", Source: s.assessCfg.DefaultVideoSource},
		{Label: "Recommended lifting motion", Source: s.assessCfg.RecommendedMotionSource},
		{Label: "Squat lift demo", Source: path.Join(s.assessCfg.MotionAssetBaseDir, "squat_lift.mp4")},
		{Label: "Team lift demo", Source: path.Join(s.assessCfg.MotionAssetBaseDir, "team_lift.mp4")},
	}
}
