package model

import "time"

// Page identifies one of the app's views.
type Page string

const (
	PageHome     Page = "home"
	PageUpload   Page = "upload"
	PageAnalysis Page = "analysis"
	PageResults  Page = "results"
	PageAbout    Page = "about"
)

// Pages lists every navigable page.
var Pages = []Page{PageHome, PageUpload, PageAnalysis, PageResults, PageAbout}

// ValidPage reports whether p names a known page.
func ValidPage(p Page) bool {
	for _, v := range Pages {
		if v == p {
			return true
		}
	}
	return false
}

// UploadSlot distinguishes the two image upload positions.
type UploadSlot string

const (
	SlotDermoscopic UploadSlot = "dermoscopic"
	SlotClinical    UploadSlot = "clinical"
)

// UploadRef points at a stored lesion image. The image itself is never read
// by the analysis; only its reference lives in the session.
type UploadRef struct {
	Slot       UploadSlot `json:"slot"`
	ObjectKey  string     `json:"objectKey"`
	URL        string     `json:"url"`
	Filename   string     `json:"filename"`
	UploadedAt time.Time  `json:"uploadedAt"`
}

// SessionState is the explicit per-session state object. It is replaced
// wholesale on each analysis and cleared on reset; nothing about a session
// lives in process globals.
type SessionState struct {
	ID             string                   `json:"id"`
	CurrentPage    Page                     `json:"currentPage"`
	Uploads        map[UploadSlot]UploadRef `json:"uploads,omitempty"`
	SampleData     bool                     `json:"sampleData"`
	Patient        *PatientInfo             `json:"patient,omitempty"`
	AnalysisDone   bool                     `json:"analysisDone"`
	LastAnalysisID string                   `json:"lastAnalysisId,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

// HasImageData reports whether the session can proceed to analysis: at
// least one uploaded image or the bundled sample data.
func (s *SessionState) HasImageData() bool {
	return s.SampleData || len(s.Uploads) > 0
}
