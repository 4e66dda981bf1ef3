package language

import "testing"

func TestToISO3(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "eng"},
		{"eng", "eng"},
		{"EN-gb", "eng"},
		{"English", "eng"},
		{"fr", "fra"},
		{"fre", "fra"},
		{" german ", "deu"},
		{"", Undetermined},
		{"not a language", Undetermined},
	}
	for _, tt := range tests {
		if got := ToISO3(tt.input); got != tt.want {
			t.Errorf("ToISO3(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBaseCode(t *testing.T) {
	for input, want := range map[string]string{"eng": "en", "nl-BE": "nl", "Dutch": "nl", "dan": "da"} {
		got, ok := BaseCode(input)
		if !ok || got != want {
			t.Errorf("BaseCode(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}
	if _, ok := BaseCode("und"); ok {
		t.Error("expected und to be unrecognized")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"eng", "English"},
		{"fr", "French"},
		{"", "Unknown"},
		{"zz9", "ZZ9"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList("English, fr; eng  xx-custom")
	if got != "eng fra xx-custom" {
		t.Fatalf("NormalizeList = %q", got)
	}
	if NormalizeList("  ") != "" {
		t.Fatal("expected empty list")
	}
}
