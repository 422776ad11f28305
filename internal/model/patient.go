package model

// Sexes lists the accepted biological sex options.
var Sexes = []string{"Male", "Female", "Other"}

// Sites lists the anatomical locations offered by the lesion form.
var Sites = []string{
	"Head/Neck/Face",
	"Upper Extremity",
	"Lower Extremity",
	"Trunk",
	"Hand",
	"Foot",
	"Unknown",
}

// PatientInfo is the resolved patient record stored with an analysis. Unlike
// the request attributes, every field is concrete: defaults have already been
// applied.
type PatientInfo struct {
	Age      int    `json:"age" bson:"age"`
	Sex      string `json:"sex" bson:"sex"`
	SkinTone int    `json:"skinTone" bson:"skinTone"`
	Site     string `json:"site" bson:"site"`
}

// ValidSex reports whether s is an accepted sex option.
func ValidSex(s string) bool {
	for _, v := range Sexes {
		if v == s {
			return true
		}
	}
	return false
}

// ValidSite reports whether s is a known anatomical site.
func ValidSite(s string) bool {
	for _, v := range Sites {
		if v == s {
			return true
		}
	}
	return false
}
