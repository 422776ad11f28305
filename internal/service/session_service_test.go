package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermalens/internal/model"
)

func newTestSessionService() *SessionService {
	auth := NewAuthService("test-secret")
	return NewSessionService(newMemSessionCache(), auth)
}

func TestSessionService_Create(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.SessionID)

	state, err := svc.State(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.PageHome, state.CurrentPage)
	assert.False(t, state.HasImageData())
	assert.False(t, state.AnalysisDone)
}

func TestSessionService_StateUnknownSession(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.State(context.Background(), "sess_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_NavigateGatesAnalysisPage(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)

	// Upload page is always reachable.
	state, err := svc.Navigate(ctx, resp.SessionID, model.PageUpload)
	require.NoError(t, err)
	assert.Equal(t, model.PageUpload, state.CurrentPage)

	// Analysis page is blocked without image data.
	_, err = svc.Navigate(ctx, resp.SessionID, model.PageAnalysis)
	assert.ErrorIs(t, err, ErrNoImageData)

	_, err = svc.UseSampleData(ctx, resp.SessionID)
	require.NoError(t, err)

	state, err = svc.Navigate(ctx, resp.SessionID, model.PageAnalysis)
	require.NoError(t, err)
	assert.Equal(t, model.PageAnalysis, state.CurrentPage)
}

func TestSessionService_NavigateUnknownPage(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Navigate(ctx, resp.SessionID, model.Page("settings"))
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestSessionService_RecordUploadReplacesSlot(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)

	first := model.UploadRef{Slot: model.SlotDermoscopic, ObjectKey: "a/derm/1.jpg", Filename: "1.jpg", UploadedAt: time.Now().UTC()}
	state, err := svc.RecordUpload(ctx, resp.SessionID, first)
	require.NoError(t, err)
	assert.True(t, state.HasImageData())

	second := model.UploadRef{Slot: model.SlotDermoscopic, ObjectKey: "a/derm/2.jpg", Filename: "2.jpg", UploadedAt: time.Now().UTC()}
	state, err = svc.RecordUpload(ctx, resp.SessionID, second)
	require.NoError(t, err)
	assert.Len(t, state.Uploads, 1)
	assert.Equal(t, "a/derm/2.jpg", state.Uploads[model.SlotDermoscopic].ObjectKey)
}

func TestSessionService_ResetKeepsIdentity(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.UseSampleData(ctx, resp.SessionID)
	require.NoError(t, err)
	patient := model.PatientInfo{Age: 45, Sex: "Male", SkinTone: 3, Site: "Trunk"}
	require.NoError(t, svc.CompleteAnalysis(ctx, resp.SessionID, "an_123", patient))

	before, err := svc.State(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.PageResults, before.CurrentPage)
	assert.True(t, before.AnalysisDone)
	require.NotNil(t, before.Patient)
	assert.Equal(t, patient, *before.Patient)

	fresh, err := svc.Reset(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, fresh.ID)
	assert.Equal(t, before.CreatedAt, fresh.CreatedAt)
	assert.Equal(t, model.PageHome, fresh.CurrentPage)
	assert.False(t, fresh.HasImageData())
	assert.False(t, fresh.AnalysisDone)
	assert.Empty(t, fresh.LastAnalysisID)
	assert.Nil(t, fresh.Patient)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	token, err := auth.IssueSessionToken("sess_abc")
	require.NoError(t, err)

	claims, err := auth.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", claims.SessionID)
}

func TestAuthService_RejectsForgedToken(t *testing.T) {
	auth := NewAuthService("test-secret")
	other := NewAuthService("other-secret")

	token, err := other.IssueSessionToken("sess_abc")
	require.NoError(t, err)

	_, err = auth.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ValidateSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
