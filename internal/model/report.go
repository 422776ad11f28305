package model

// OverviewRow is one parameter/value pair of the analysis overview table.
type OverviewRow struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// DiagnosticSummary is the headline block of a report.
type DiagnosticSummary struct {
	PrimaryDiagnosis string  `json:"primaryDiagnosis"`
	Confidence       float64 `json:"confidence"`
	OverallRisk      string  `json:"overallRisk"`
	Recommendation   string  `json:"recommendation"`
	Precaution       string  `json:"precaution"`
}

// DifferentialRow is one of the eleven rows of the ranked differential
// diagnosis table.
type DifferentialRow struct {
	Rank         int     `json:"rank"`
	Code         string  `json:"code"`
	Condition    string  `json:"condition"`
	Probability  float64 `json:"probability"`
	RiskLevel    string  `json:"riskLevel"`
	Group        string  `json:"group"`
	ClinicalNote string  `json:"clinicalNote"`
}

// TierDistributionRow summarizes one risk tier across the differential.
type TierDistributionRow struct {
	RiskLevel        string  `json:"riskLevel"`
	Count            int     `json:"count"`
	Percentage       float64 `json:"percentage"`
	ClinicalPriority string  `json:"clinicalPriority"`
}

// ChartRow is one bar of the probability chart, colored by tier.
type ChartRow struct {
	Code      string  `json:"code"`
	Condition string  `json:"condition"`
	Percent   float64 `json:"percent"`
	RiskLevel string  `json:"riskLevel"`
}

// AnalysisReport bundles the render-ready blocks for the results page.
type AnalysisReport struct {
	AnalysisID       string                `json:"analysisId"`
	Overview         []OverviewRow         `json:"overview"`
	Summary          DiagnosticSummary     `json:"summary"`
	Differential     []DifferentialRow     `json:"differential"`
	TierDistribution []TierDistributionRow `json:"tierDistribution"`
	Chart            []ChartRow            `json:"chart"`
}
