package handler

import (
	"net/http"

	"dermalens/internal/diagnosis"
	"dermalens/internal/model"
)

// MetaHandler serves the static reference data the UI renders.
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// aboutBlock is the marketing copy of the about page. The figures are demo
// claims, not measured numbers.
var aboutBlock = map[string]interface{}{
	"mission": "To make professional-grade skin cancer detection accessible to everyone through advanced AI technology.",
	"metrics": []map[string]string{
		{"value": "94.2%", "label": "Accuracy Rate"},
		{"value": "11,000+", "label": "Cases Analyzed"},
		{"value": "< 30s", "label": "Analysis Time"},
		{"value": "99.8%", "label": "System Reliability"},
	},
	"accuracy": []string{
		"94.2% Clinical Accuracy",
		"11,000+ Cases Analyzed",
		"Board-Certified Dermatologists",
		"Continuous Learning Algorithms",
	},
	"technology": []string{
		"Deep Neural Networks",
		"Computer Vision",
		"Real-time Processing",
		"Probability-Based Risk Assessment",
	},
	"riskRanking": map[string]string{
		"HIGH":   "Highest probability condition",
		"MEDIUM": "Next 3 highest probabilities",
		"LOW":    "Remaining conditions",
	},
	"disclaimer": "For educational purposes. Always consult healthcare professionals for medical advice.",
}

// Categories handles GET /v1/meta/categories
func (h *MetaHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diagnosis.Catalog())
}

// Sites handles GET /v1/meta/sites
func (h *MetaHandler) Sites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sites": model.Sites,
		"sexes": model.Sexes,
		"pages": model.Pages,
	})
}

// About handles GET /v1/meta/about
func (h *MetaHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aboutBlock)
}
