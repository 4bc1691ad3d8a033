package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"ergo-assist-be/internal/config"
	"ergo-assist-be/internal/entity"
	"ergo-assist-be/internal/repository/contract"
	"ergo-assist-be/internal/repository/specification"
	"ergo-assist-be/internal/repository/unitofwork"
	"ergo-assist-be/pkg/verdict"
)

type fakeAssessmentRepo struct {
	total   int64
	safe    int64
	unsafeN int64
	err     error
}

func (f *fakeAssessmentRepo) Create(context.Context, *entity.Assessment) error { return nil }

func (f *fakeAssessmentRepo) FindOne(context.Context, ...specification.Specification) (*entity.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(specs) == 0 {
		return f.total, nil
	}
	if byVerdict, ok := specs[0].(specification.ByVerdict); ok {
		switch byVerdict.Verdict {
		case string(verdict.VerdictSafe):
			return f.safe, nil
		case string(verdict.VerdictUnsafe):
			return f.unsafeN, nil
		}
	}
	return 0, nil
}

type fakeUnitOfWork struct {
	assessments contract.AssessmentRepository
}

func (f *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error               { return nil }
func (f *fakeUnitOfWork) Rollback() error             { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository               { return nil }
func (f *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (f *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return nil }
func (f *fakeUnitOfWork) AssessmentRepository() contract.AssessmentRepository   { return f.assessments }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

var testAssessCfg = config.AssessConfig{
	DefaultVideoSource:      "/uploads/motions/default.mp4",
	RecommendedMotionSource: "/uploads/motions/recommended.mp4",
	MotionAssetBaseDir:      "/uploads/motions",
}

func newStatsServiceWithRepo(repo contract.AssessmentRepository) IStatsService {
	return NewStatsService(&fakeFactory{uow: &fakeUnitOfWork{assessments: repo}}, testAssessCfg)
}

func TestGetSummarySeries(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{})

	resp, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if len(resp.Days) != 30 {
		t.Fatalf("len(Days) = %d, want 30", len(resp.Days))
	}

	first := resp.Days[0]
	if first.Date != "2025-01-01" {
		t.Errorf("first Date = %q, want 2025-01-01", first.Date)
	}
	if first.SafetyScore != 70 || first.IncidentCount != 10 || first.ActivityLevel != 50 {
		t.Errorf("day 0 = %+v, want score 70, incidents 10, activity 50", first)
	}

	// Day 29: 70 + 29*0.5 + (29%5)*2 = 92.5, 10 - 29*0.2 + (29%3) = 6.2, 50 + 29*0.8 + (29%4)*3 = 76.2
	last := resp.Days[29]
	if last.Date != "2025-01-30" {
		t.Errorf("last Date = %q, want 2025-01-30", last.Date)
	}
	if last.SafetyScore != 92.5 {
		t.Errorf("last SafetyScore = %v, want 92.5", last.SafetyScore)
	}
	if last.ActivityLevel != 76.2 {
		t.Errorf("last ActivityLevel = %v, want 76.2", last.ActivityLevel)
	}
}

func TestGetSummaryAggregates(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{})

	resp, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if resp.AverageSafetyScore != 81.25 {
		t.Errorf("AverageSafetyScore = %v, want 81.25", resp.AverageSafetyScore)
	}
	if math.Abs(resp.TotalIncidents-243) > 1e-9 {
		t.Errorf("TotalIncidents = %v, want 243", resp.TotalIncidents)
	}
	if resp.BestDay != "2025-01-30" {
		t.Errorf("BestDay = %q, want 2025-01-30", resp.BestDay)
	}
	if resp.WorstDay != "2025-01-01" {
		t.Errorf("WorstDay = %q, want 2025-01-01", resp.WorstDay)
	}
}

func TestGetVideosCatalog(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{})

	videos := svc.GetVideos(context.Background())
	if len(videos) < 2 {
		t.Fatalf("catalog has %d entries, want at least default + recommended", len(videos))
	}
	if videos[0].Source != testAssessCfg.DefaultVideoSource {
		t.Errorf("catalog head = %q, want configured default source", videos[0].Source)
	}
	for _, v := range videos {
		if v.Label == "" || v.Source == "" {
			t.Errorf("catalog entry with empty field: %+v", v)
		}
	}
}

func TestGetSummarySeriesIsDeterministic(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{})

	a, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("first GetSummary: %v", err)
	}
	b, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("second GetSummary: %v", err)
	}

	for i := range a.Days {
		if a.Days[i] != b.Days[i] {
			t.Fatalf("day %d differs between calls: %+v vs %+v", i, a.Days[i], b.Days[i])
		}
	}
}

func TestGetSummaryCounts(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{total: 12, safe: 7, unsafeN: 4})

	resp, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if resp.TotalAssessments != 12 {
		t.Errorf("TotalAssessments = %d, want 12", resp.TotalAssessments)
	}
	if resp.SafeAssessments != 7 {
		t.Errorf("SafeAssessments = %d, want 7", resp.SafeAssessments)
	}
	if resp.UnsafeAssessments != 4 {
		t.Errorf("UnsafeAssessments = %d, want 4", resp.UnsafeAssessments)
	}
}

func TestGetSummaryRepositoryError(t *testing.T) {
	svc := newStatsServiceWithRepo(&fakeAssessmentRepo{err: errors.New("db down")})

	if _, err := svc.GetSummary(context.Background()); err == nil {
		t.Fatal("GetSummary succeeded, want repository error")
	}
}
