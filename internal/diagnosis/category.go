package diagnosis

// Category is one of the fixed diagnostic category codes.
type Category string

const (
	CategoryAKIEC  Category = "AKIEC"
	CategoryBCC    Category = "BCC"
	CategoryBenOth Category = "BEN_OTH"
	CategoryBKL    Category = "BKL"
	CategoryDF     Category = "DF"
	CategoryINF    Category = "INF"
	CategoryMalOth Category = "MAL_OTH"
	CategoryMEL    Category = "MEL"
	CategoryNV     Category = "NV"
	CategorySCCKA  Category = "SCCKA"
	CategoryVASC   Category = "VASC"
)

// Categories lists every diagnostic category in canonical order. The order
// doubles as the tie-break order when probabilities are equal.
var Categories = []Category{
	CategoryAKIEC,
	CategoryBCC,
	CategoryBenOth,
	CategoryBKL,
	CategoryDF,
	CategoryINF,
	CategoryMalOth,
	CategoryMEL,
	CategoryNV,
	CategorySCCKA,
	CategoryVASC,
}

// Group classifies a category as malignant or benign.
type Group string

const (
	GroupMalignant Group = "Malignant"
	GroupBenign    Group = "Benign"
)

// CategoryInfo carries the display metadata for one category.
type CategoryInfo struct {
	Code         Category `json:"code"`
	Name         string   `json:"name"`
	Group        Group    `json:"group"`
	ClinicalNote string   `json:"clinicalNote"`
}

var catalog = map[Category]CategoryInfo{
	CategoryAKIEC: {
		Code:         CategoryAKIEC,
		Name:         "Actinic Keratosis / Intraepidermal Carcinoma",
		Group:        GroupMalignant,
		ClinicalNote: "Pre-cancerous epidermal lesion, requires monitoring and possible treatment",
	},
	CategoryBCC: {
		Code:         CategoryBCC,
		Name:         "Basal Cell Carcinoma",
		Group:        GroupMalignant,
		ClinicalNote: "Most common skin cancer, locally destructive but rarely metastatic",
	},
	CategoryBenOth: {
		Code:         CategoryBenOth,
		Name:         "Other Benign Proliferations",
		Group:        GroupBenign,
		ClinicalNote: "Various benign dermatological conditions including collision tumors",
	},
	CategoryBKL: {
		Code:         CategoryBKL,
		Name:         "Benign Keratinocytic Lesion",
		Group:        GroupBenign,
		ClinicalNote: "Seborrheic keratosis and similar benign keratinocytic lesions",
	},
	CategoryDF: {
		Code:         CategoryDF,
		Name:         "Dermatofibroma",
		Group:        GroupBenign,
		ClinicalNote: "Benign fibrous histiocytoma, typically stable and asymptomatic",
	},
	CategoryINF: {
		Code:         CategoryINF,
		Name:         "Inflammatory and Infectious Conditions",
		Group:        GroupBenign,
		ClinicalNote: "Infectious, autoimmune, or inflammatory dermatological processes",
	},
	CategoryMalOth: {
		Code:         CategoryMalOth,
		Name:         "Other Malignant Proliferations",
		Group:        GroupMalignant,
		ClinicalNote: "Rare malignant skin conditions including collision tumors",
	},
	CategoryMEL: {
		Code:         CategoryMEL,
		Name:         "Melanoma",
		Group:        GroupMalignant,
		ClinicalNote: "Most dangerous skin cancer type with metastatic potential",
	},
	CategoryNV: {
		Code:         CategoryNV,
		Name:         "Melanocytic Nevus",
		Group:        GroupBenign,
		ClinicalNote: "Common mole or beauty mark, typically benign melanocytic proliferation",
	},
	CategorySCCKA: {
		Code:         CategorySCCKA,
		Name:         "Squamous Cell Carcinoma / Keratoacanthoma",
		Group:        GroupMalignant,
		ClinicalNote: "Malignant epithelial tumor, can be locally aggressive",
	},
	CategoryVASC: {
		Code:         CategoryVASC,
		Name:         "Vascular Lesions and Hemorrhage",
		Group:        GroupBenign,
		ClinicalNote: "Hemangioma, vascular malformations, and hemorrhagic conditions",
	},
}

// Info returns the metadata for a category code.
func Info(c Category) (CategoryInfo, bool) {
	info, ok := catalog[c]
	return info, ok
}

// Catalog returns the metadata for all categories in canonical order.
func Catalog() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, catalog[c])
	}
	return out
}
