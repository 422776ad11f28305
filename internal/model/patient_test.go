package model

import "testing"

func TestValidSite(t *testing.T) {
	// The full option list of the lesion form.
	want := []string{
		"Head/Neck/Face",
		"Upper Extremity",
		"Lower Extremity",
		"Trunk",
		"Hand",
		"Foot",
		"Unknown",
	}
	if len(Sites) != len(want) {
		t.Fatalf("site list has %d entries, want %d", len(Sites), len(want))
	}
	for i, s := range want {
		if Sites[i] != s {
			t.Errorf("Sites[%d] = %q, want %q", i, Sites[i], s)
		}
		if !ValidSite(s) {
			t.Errorf("expected %q to be a valid site", s)
		}
	}

	for _, s := range []string{"", "Elbow", "Scalp", "head/neck/face"} {
		if ValidSite(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestValidSex(t *testing.T) {
	for _, s := range []string{"Male", "Female", "Other"} {
		if !ValidSex(s) {
			t.Errorf("expected %q to be a valid sex option", s)
		}
	}
	for _, s := range []string{"", "Select", "male"} {
		if ValidSex(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
