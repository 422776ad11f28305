package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dermalens/internal/model"
)

var (
	ErrStorageDisabled  = errors.New("image storage is not configured")
	ErrUnknownSlot      = errors.New("unknown upload slot")
	ErrUnsupportedImage = errors.New("only jpg, jpeg and png images are accepted")
)

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ObjectStore is the slice of the MinIO wrapper the upload service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadService stores lesion images and tracks them on the session. The
// images are presentation-only: nothing downstream ever reads them.
type UploadService struct {
	store    ObjectStore
	sessions *SessionService
}

// NewUploadService creates a new upload service. A nil store disables
// uploads (sample data still works).
func NewUploadService(store ObjectStore, sessions *SessionService) *UploadService {
	return &UploadService{store: store, sessions: sessions}
}

// StoreImage validates and stores one image into an upload slot.
func (s *UploadService) StoreImage(ctx context.Context, sessionID string, slot model.UploadSlot, filename string, r io.Reader, size int64) (*model.UploadRef, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if slot != model.SlotDermoscopic && slot != model.SlotClinical {
		return nil, ErrUnknownSlot
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	key := sessionID + "/" + string(slot) + "/" + uuid.New().String() + ext
	url, err := s.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return nil, err
	}

	ref := model.UploadRef{
		Slot:       slot,
		ObjectKey:  key,
		URL:        url,
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
	}
	if _, err := s.sessions.RecordUpload(ctx, sessionID, ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// UseSample marks the session as running on sample data.
func (s *UploadService) UseSample(ctx context.Context, sessionID string) (*model.SessionState, error) {
	return s.sessions.UseSampleData(ctx, sessionID)
}

// Cleanup best-effort deletes stored objects, used on session reset.
func (s *UploadService) Cleanup(ctx context.Context, uploads map[model.UploadSlot]model.UploadRef) {
	if s.store == nil {
		return
	}
	for _, ref := range uploads {
		if err := s.store.Remove(ctx, ref.ObjectKey); err != nil {
			log.Printf("cleanup: failed to remove %s: %v", ref.ObjectKey, err)
		}
	}
}
