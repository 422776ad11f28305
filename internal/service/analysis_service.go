package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"dermalens/internal/cache"
	"dermalens/internal/diagnosis"
	"dermalens/internal/model"
	"dermalens/internal/repository"
)

var (
	ErrInvalidAttributes = errors.New("invalid patient attributes")
	ErrAnalysisNotFound  = errors.New("analysis not found")
)

// analysisSteps are streamed to the session while an analysis "runs". The
// delay between steps is the only thing that makes it look like work.
var analysisSteps = []string{
	"Loading neural networks...",
	"Processing clinical images...",
	"Analyzing dermoscopic patterns...",
	"Evaluating risk factors...",
	"Generating diagnosis report...",
}

// WebSocket event types emitted during an analysis.
const (
	MsgAnalysisStep     = "analysis_step"
	MsgAnalysisComplete = "analysis_complete"
)

// DemoAttributes is the canned patient used by the instant-demo flow.
func DemoAttributes() diagnosis.PatientAttributes {
	age, tone := 45, 3
	return diagnosis.PatientAttributes{
		Age:      &age,
		Sex:      "Male",
		SkinTone: &tone,
		Site:     diagnosis.SiteHeadNeckFace,
	}
}

// AnalysisService runs the predict/classify chain, persists results and
// streams progress to the session.
type AnalysisService struct {
	repo        repository.AnalysisRepo
	memo        cache.AnalysisCache
	sessions    *SessionService
	broadcaster Broadcaster
	stepDelay   time.Duration
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(repo repository.AnalysisRepo, memo cache.AnalysisCache, sessions *SessionService) *AnalysisService {
	return &AnalysisService{
		repo:      repo,
		memo:      memo,
		sessions:  sessions,
		stepDelay: 400 * time.Millisecond,
	}
}

// SetBroadcaster injects the WebSocket hub for progress events.
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Run executes one analysis for the session. The core prediction is
// deterministic for a given attribute record, so results may be served
// from the memo cache; either way a new record is persisted.
func (s *AnalysisService) Run(ctx context.Context, sessionID string, attrs diagnosis.PatientAttributes) (*model.AnalysisRecord, error) {
	state, err := s.sessions.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasImageData() {
		return nil, ErrNoImageData
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	s.streamProgress(sessionID)

	patient := resolvePatient(attrs)
	rec, err := s.compute(ctx, patient, attrs)
	if err != nil {
		return nil, err
	}
	rec.ID = "an_" + uuid.New().String()
	rec.SessionID = sessionID
	rec.CreatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.sessions.CompleteAnalysis(ctx, sessionID, rec.ID, patient); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, MsgAnalysisComplete, rec)
	}
	return rec, nil
}

// RunDemo runs the canned demo patient, marking the session as using
// sample data first so the image gate passes.
func (s *AnalysisService) RunDemo(ctx context.Context, sessionID string) (*model.AnalysisRecord, error) {
	if _, err := s.sessions.UseSampleData(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.Run(ctx, sessionID, DemoAttributes())
}

// Latest returns the session's most recent analysis.
func (s *AnalysisService) Latest(ctx context.Context, sessionID string) (*model.AnalysisRecord, error) {
	rec, err := s.repo.LatestBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrAnalysisNotFound
	}
	return rec, nil
}

// Get returns one analysis, scoped to the owning session.
func (s *AnalysisService) Get(ctx context.Context, sessionID, analysisID string) (*model.AnalysisRecord, error) {
	rec, err := s.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.SessionID != sessionID {
		return nil, ErrAnalysisNotFound
	}
	return rec, nil
}

// History lists the session's past analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, sessionID string, limit int64) ([]model.AnalysisRecord, error) {
	return s.repo.ListBySession(ctx, sessionID, limit)
}

func (s *AnalysisService) compute(ctx context.Context, patient model.PatientInfo, attrs diagnosis.PatientAttributes) (*model.AnalysisRecord, error) {
	fp := fingerprint(patient)

	if cached, err := s.memo.Get(ctx, fp); err == nil {
		rec := *cached
		rec.Patient = patient
		return &rec, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Printf("analysis memo read failed: %v", err)
	}

	dist := diagnosis.Predict(attrs)
	asmt, err := diagnosis.Classify(dist)
	if err != nil {
		return nil, err
	}

	rec := recordFromAssessment(patient, asmt)
	if err := s.memo.Set(ctx, fp, rec); err != nil {
		log.Printf("analysis memo write failed: %v", err)
	}
	return rec, nil
}

func (s *AnalysisService) streamProgress(sessionID string) {
	if s.broadcaster == nil {
		return
	}
	for i, step := range analysisSteps {
		s.broadcaster.BroadcastToSession(sessionID, MsgAnalysisStep, map[string]interface{}{
			"step":     step,
			"progress": (i + 1) * 100 / len(analysisSteps),
		})
		time.Sleep(s.stepDelay)
	}
}

func recordFromAssessment(patient model.PatientInfo, asmt *diagnosis.Assessment) *model.AnalysisRecord {
	probs := make(map[string]float64, len(asmt.Distribution))
	for c, p := range asmt.Distribution {
		probs[string(c)] = p
	}
	tiers := make(map[string]string, len(asmt.Tiers))
	for c, t := range asmt.Tiers {
		tiers[string(c)] = string(t)
	}
	ranking := make([]model.RankedEntry, 0, len(asmt.Ranking))
	for _, r := range asmt.Ranking {
		ranking = append(ranking, model.RankedEntry{
			Rank:        r.Rank,
			Category:    string(r.Category),
			Probability: r.Probability,
			Tier:        string(r.Tier),
		})
	}

	return &model.AnalysisRecord{
		Patient:       patient,
		Probabilities: probs,
		Tiers:         tiers,
		Ranking:       ranking,
		Primary:       string(asmt.Primary),
		Confidence:    asmt.Confidence,
		OverallRisk:   string(asmt.OverallRisk),
	}
}

// validateAttributes mirrors the UI form rules. The core itself tolerates
// anything; this gate only exists so the API behaves like the form did.
func validateAttributes(attrs diagnosis.PatientAttributes) error {
	if attrs.Age != nil && (*attrs.Age < 1 || *attrs.Age > 100) {
		return fmt.Errorf("%w: age must be between 1 and 100", ErrInvalidAttributes)
	}
	if attrs.SkinTone != nil && (*attrs.SkinTone < 0 || *attrs.SkinTone > 5) {
		return fmt.Errorf("%w: skin tone must be between 0 and 5", ErrInvalidAttributes)
	}
	if attrs.Sex == "" || !model.ValidSex(attrs.Sex) {
		return fmt.Errorf("%w: biological sex is required", ErrInvalidAttributes)
	}
	if attrs.Site == "" || !model.ValidSite(attrs.Site) {
		return fmt.Errorf("%w: lesion location is required", ErrInvalidAttributes)
	}
	return nil
}

func resolvePatient(attrs diagnosis.PatientAttributes) model.PatientInfo {
	info := model.PatientInfo{Age: 45, SkinTone: 3, Sex: attrs.Sex, Site: attrs.Site}
	if attrs.Age != nil {
		info.Age = *attrs.Age
	}
	if attrs.SkinTone != nil {
		info.SkinTone = *attrs.SkinTone
	}
	return info
}

func fingerprint(p model.PatientInfo) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%d|%s", p.Age, p.Sex, p.SkinTone, p.Site)))
	return hex.EncodeToString(sum[:8])
}
