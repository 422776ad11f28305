package service

import (
	"context"
	"fmt"

	"dermalens/internal/diagnosis"
	"dermalens/internal/model"
	"dermalens/internal/repository"
)

// recommendations per overall risk tier.
var recommendations = map[string]struct {
	advice     string
	precaution string
	priority   string
}{
	string(diagnosis.TierHigh): {
		advice:     "URGENT: Immediate dermatologist consultation required",
		precaution: "High risk of malignancy detected. Biopsy and specialist evaluation strongly recommended.",
		priority:   "Immediate Attention Required",
	},
	string(diagnosis.TierMedium): {
		advice:     "ADVISED: Schedule dermatologist appointment within 2-4 weeks",
		precaution: "Moderate risk features present. Professional evaluation recommended for accurate diagnosis.",
		priority:   "Monitor Closely & Follow-up",
	},
	string(diagnosis.TierLow): {
		advice:     "ROUTINE: Regular monitoring advised",
		precaution: "Low risk features. Continue self-examination and annual dermatology check-ups.",
		priority:   "Routine Check Recommended",
	},
}

// ReportService assembles the render-ready report blocks for a stored
// analysis.
type ReportService struct {
	repo repository.AnalysisRepo
}

// NewReportService creates a new report service.
func NewReportService(repo repository.AnalysisRepo) *ReportService {
	return &ReportService{repo: repo}
}

// Report fetches an analysis (scoped to its session) and composes its
// report blocks.
func (s *ReportService) Report(ctx context.Context, sessionID, analysisID string) (*model.AnalysisReport, error) {
	rec, err := s.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.SessionID != sessionID {
		return nil, ErrAnalysisNotFound
	}
	return Compose(rec), nil
}

// Compose builds the four report blocks from a record. Pure function over
// the stored analysis.
func Compose(rec *model.AnalysisRecord) *model.AnalysisReport {
	return &model.AnalysisReport{
		AnalysisID:       rec.ID,
		Overview:         overviewRows(rec),
		Summary:          summaryBlock(rec),
		Differential:     differentialRows(rec),
		TierDistribution: tierDistributionRows(rec),
		Chart:            chartRows(rec),
	}
}

func overviewRows(rec *model.AnalysisRecord) []model.OverviewRow {
	return []model.OverviewRow{
		{Parameter: "Analysis Status", Value: "Completed Successfully"},
		{Parameter: "Patient Age", Value: fmt.Sprintf("%d years", rec.Patient.Age)},
		{Parameter: "Biological Sex", Value: rec.Patient.Sex},
		{Parameter: "Skin Tone", Value: fmt.Sprintf("Level %d/5", rec.Patient.SkinTone)},
		{Parameter: "Lesion Location", Value: rec.Patient.Site},
		{Parameter: "Analysis Time", Value: rec.CreatedAt.Format("2006-01-02 15:04:05")},
	}
}

func summaryBlock(rec *model.AnalysisRecord) model.DiagnosticSummary {
	name := rec.Primary
	if info, ok := diagnosis.Info(diagnosis.Category(rec.Primary)); ok {
		name = info.Name
	}
	r := recommendations[rec.OverallRisk]
	return model.DiagnosticSummary{
		PrimaryDiagnosis: name,
		Confidence:       rec.Confidence,
		OverallRisk:      rec.OverallRisk,
		Recommendation:   r.advice,
		Precaution:       r.precaution,
	}
}

func differentialRows(rec *model.AnalysisRecord) []model.DifferentialRow {
	rows := make([]model.DifferentialRow, 0, len(rec.Ranking))
	for _, entry := range rec.Ranking {
		row := model.DifferentialRow{
			Rank:        entry.Rank + 1,
			Code:        entry.Category,
			Condition:   entry.Category,
			Probability: entry.Probability,
			RiskLevel:   entry.Tier,
		}
		if info, ok := diagnosis.Info(diagnosis.Category(entry.Category)); ok {
			row.Condition = info.Name
			row.Group = string(info.Group)
			row.ClinicalNote = info.ClinicalNote
		}
		rows = append(rows, row)
	}
	return rows
}

func tierDistributionRows(rec *model.AnalysisRecord) []model.TierDistributionRow {
	counts := map[string]int{}
	for _, tier := range rec.Tiers {
		counts[tier]++
	}

	total := len(rec.Tiers)
	tiers := []string{string(diagnosis.TierHigh), string(diagnosis.TierMedium), string(diagnosis.TierLow)}
	rows := make([]model.TierDistributionRow, 0, len(tiers))
	for _, tier := range tiers {
		rows = append(rows, model.TierDistributionRow{
			RiskLevel:        tier,
			Count:            counts[tier],
			Percentage:       float64(counts[tier]) / float64(total) * 100,
			ClinicalPriority: recommendations[tier].priority,
		})
	}
	return rows
}

func chartRows(rec *model.AnalysisRecord) []model.ChartRow {
	rows := make([]model.ChartRow, 0, len(rec.Ranking))
	for _, entry := range rec.Ranking {
		row := model.ChartRow{
			Code:      entry.Category,
			Condition: entry.Category,
			Percent:   entry.Probability * 100,
			RiskLevel: entry.Tier,
		}
		if info, ok := diagnosis.Info(diagnosis.Category(entry.Category)); ok {
			row.Condition = info.Name
		}
		rows = append(rows, row)
	}
	return rows
}
