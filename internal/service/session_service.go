package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"dermalens/internal/cache"
	"dermalens/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownPage     = errors.New("unknown page")

	// ErrNoImageData blocks the analysis page until the session has
	// uploaded images or opted into the sample data.
	ErrNoImageData = errors.New("upload images or use sample data first")
)

// SessionService owns the lifecycle of session state: created at session
// start, replaced wholesale on each analysis, cleared on reset.
type SessionService struct {
	cache cache.SessionCache
	auth  *AuthService
}

// NewSessionService creates a new session service.
func NewSessionService(c cache.SessionCache, auth *AuthService) *SessionService {
	return &SessionService{cache: c, auth: auth}
}

// Create starts a fresh anonymous session and returns its token.
func (s *SessionService) Create(ctx context.Context) (*model.SessionResponse, error) {
	now := time.Now().UTC()
	state := &model.SessionState{
		ID:          "sess_" + uuid.New().String(),
		CurrentPage: model.PageHome,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cache.Set(ctx, state); err != nil {
		return nil, err
	}

	token, err := s.auth.IssueSessionToken(state.ID)
	if err != nil {
		return nil, err
	}
	return &model.SessionResponse{Token: token, SessionID: state.ID}, nil
}

// State returns the current session state.
func (s *SessionService) State(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state, err := s.cache.Get(ctx, sessionID)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Navigate sets the current page. The analysis page is gated on image data,
// mirroring the upload-first flow of the UI; every other transition is
// unconditional.
func (s *SessionService) Navigate(ctx context.Context, sessionID string, page model.Page) (*model.SessionState, error) {
	if !model.ValidPage(page) {
		return nil, ErrUnknownPage
	}

	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if page == model.PageAnalysis && !state.HasImageData() {
		return nil, ErrNoImageData
	}

	state.CurrentPage = page
	return state, s.save(ctx, state)
}

// Reset wipes the session back to a fresh home-page state, keeping only the
// session identity.
func (s *SessionService) Reset(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fresh := &model.SessionState{
		ID:          state.ID,
		CurrentPage: model.PageHome,
		CreatedAt:   state.CreatedAt,
	}
	return fresh, s.save(ctx, fresh)
}

// RecordUpload attaches an upload reference to the session, replacing any
// previous image in the same slot.
func (s *SessionService) RecordUpload(ctx context.Context, sessionID string, ref model.UploadRef) (*model.SessionState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Uploads == nil {
		state.Uploads = make(map[model.UploadSlot]model.UploadRef)
	}
	state.Uploads[ref.Slot] = ref
	return state, s.save(ctx, state)
}

// UseSampleData marks the session as running on the bundled demo images.
func (s *SessionService) UseSampleData(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.SampleData = true
	return state, s.save(ctx, state)
}

// CompleteAnalysis records a finished analysis and moves the session to the
// results page.
func (s *SessionService) CompleteAnalysis(ctx context.Context, sessionID, analysisID string, patient model.PatientInfo) error {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return err
	}

	state.AnalysisDone = true
	state.LastAnalysisID = analysisID
	state.Patient = &patient
	state.CurrentPage = model.PageResults
	return s.save(ctx, state)
}

func (s *SessionService) save(ctx context.Context, state *model.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	return s.cache.Set(ctx, state)
}
