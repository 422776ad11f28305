package model

import "time"

// AnalysisRecord is one completed analysis as persisted to MongoDB. It is
// produced atomically by the predict/classify chain and never mutated after.
type AnalysisRecord struct {
	ID            string             `json:"id" bson:"_id,omitempty"`
	SessionID     string             `json:"sessionId" bson:"sessionId"`
	Patient       PatientInfo        `json:"patient" bson:"patient"`
	Probabilities map[string]float64 `json:"probabilities" bson:"probabilities"`
	Tiers         map[string]string  `json:"tiers" bson:"tiers"`
	Ranking       []RankedEntry      `json:"ranking" bson:"ranking"`
	Primary       string             `json:"primaryDiagnosis" bson:"primaryDiagnosis"`
	Confidence    float64            `json:"confidence" bson:"confidence"`
	OverallRisk   string             `json:"overallRisk" bson:"overallRisk"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// RankedEntry preserves the exact descending-probability order the
// classifier produced, including its tie-break.
type RankedEntry struct {
	Rank        int     `json:"rank" bson:"rank"`
	Category    string  `json:"category" bson:"category"`
	Probability float64 `json:"probability" bson:"probability"`
	Tier        string  `json:"tier" bson:"tier"`
}
