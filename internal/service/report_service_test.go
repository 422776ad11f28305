package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermalens/internal/diagnosis"
	"dermalens/internal/model"
)

func testRecord(t *testing.T) *model.AnalysisRecord {
	t.Helper()
	asmt, err := diagnosis.Classify(diagnosis.Predict(DemoAttributes()))
	require.NoError(t, err)

	rec := recordFromAssessment(resolvePatient(DemoAttributes()), asmt)
	rec.ID = "an_test"
	rec.SessionID = "sess_test"
	rec.CreatedAt = time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	return rec
}

func TestCompose_Overview(t *testing.T) {
	report := Compose(testRecord(t))

	require.Len(t, report.Overview, 6)
	assert.Equal(t, "Analysis Status", report.Overview[0].Parameter)
	assert.Equal(t, "Completed Successfully", report.Overview[0].Value)
	assert.Equal(t, "45 years", report.Overview[1].Value)
	assert.Equal(t, "Male", report.Overview[2].Value)
	assert.Equal(t, "Level 3/5", report.Overview[3].Value)
	assert.Equal(t, "Head/Neck/Face", report.Overview[4].Value)
	assert.Equal(t, "2026-08-29 10:30:00", report.Overview[5].Value)
}

func TestCompose_SummaryMatchesTier(t *testing.T) {
	rec := testRecord(t)
	report := Compose(rec)

	info, ok := diagnosis.Info(diagnosis.Category(rec.Primary))
	require.True(t, ok)
	assert.Equal(t, info.Name, report.Summary.PrimaryDiagnosis)
	assert.Equal(t, rec.Confidence, report.Summary.Confidence)
	assert.Equal(t, "HIGH", report.Summary.OverallRisk)
	assert.Equal(t, "URGENT: Immediate dermatologist consultation required", report.Summary.Recommendation)
	assert.Contains(t, report.Summary.Precaution, "Biopsy")
}

func TestCompose_DifferentialRows(t *testing.T) {
	rec := testRecord(t)
	report := Compose(rec)

	require.Len(t, report.Differential, 11)
	for i, row := range report.Differential {
		assert.Equal(t, i+1, row.Rank, "display ranks start at 1")
		assert.NotEmpty(t, row.Condition)
		assert.NotEmpty(t, row.Group)
		assert.NotEmpty(t, row.ClinicalNote)
		assert.Equal(t, rec.Ranking[i].Probability, row.Probability)
	}
	assert.Equal(t, "HIGH", report.Differential[0].RiskLevel)
	assert.Equal(t, "MEDIUM", report.Differential[1].RiskLevel)
	assert.Equal(t, "LOW", report.Differential[4].RiskLevel)
}

func TestCompose_TierDistribution(t *testing.T) {
	report := Compose(testRecord(t))

	require.Len(t, report.TierDistribution, 3)

	byTier := map[string]model.TierDistributionRow{}
	for _, row := range report.TierDistribution {
		byTier[row.RiskLevel] = row
	}
	assert.Equal(t, 1, byTier["HIGH"].Count)
	assert.Equal(t, 3, byTier["MEDIUM"].Count)
	assert.Equal(t, 7, byTier["LOW"].Count)
	assert.InDelta(t, 100.0/11.0, byTier["HIGH"].Percentage, 1e-9)
	assert.InDelta(t, 300.0/11.0, byTier["MEDIUM"].Percentage, 1e-9)
	assert.Equal(t, "Immediate Attention Required", byTier["HIGH"].ClinicalPriority)
	assert.Equal(t, "Routine Check Recommended", byTier["LOW"].ClinicalPriority)
}

func TestCompose_ChartRows(t *testing.T) {
	rec := testRecord(t)
	report := Compose(rec)

	require.Len(t, report.Chart, 11)
	for i, row := range report.Chart {
		assert.InDelta(t, rec.Ranking[i].Probability*100, row.Percent, 1e-9)
		assert.Equal(t, rec.Ranking[i].Tier, row.RiskLevel)
	}
}

func TestReportService_SessionScope(t *testing.T) {
	repo := newMemAnalysisRepo()
	rec := testRecord(t)
	require.NoError(t, repo.Save(context.Background(), rec))

	svc := NewReportService(repo)

	report, err := svc.Report(context.Background(), "sess_test", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, report.AnalysisID)

	_, err = svc.Report(context.Background(), "sess_other", rec.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	_, err = svc.Report(context.Background(), "sess_test", "an_missing")
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}
