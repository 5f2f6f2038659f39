package redact

import (
	"reflect"
	"testing"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantTypes int
		wantTags  []string
	}{
		{
			name:      "repeated name",
			input:     "Seen by [NAME] at [LOCATION] on [DATE], contact [NAME].",
			wantCount: 4,
			wantTypes: 3,
			wantTags:  []string{"[NAME]", "[LOCATION]", "[DATE]"},
		},
		{
			name:      "no tags",
			input:     "Patient reports mild headache.",
			wantCount: 0,
			wantTypes: 0,
			wantTags:  []string{},
		},
		{
			name:      "underscore tag",
			input:     "[PATIENT_NAME] was admitted, MRN [MRN].",
			wantCount: 2,
			wantTypes: 2,
			wantTags:  []string{"[PATIENT_NAME]", "[MRN]"},
		},
		{
			name:      "adjacent tags",
			input:     "[NAME][NAME][PHONE]",
			wantCount: 3,
			wantTypes: 2,
			wantTags:  []string{"[NAME]", "[PHONE]"},
		},
		{
			name:      "multiline",
			input:     "[NAME]\n[DATE]\n[NAME]",
			wantCount: 3,
			wantTypes: 2,
			wantTags:  []string{"[NAME]", "[DATE]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.input)
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
			if got.Types != tt.wantTypes {
				t.Errorf("Types = %d, want %d", got.Types, tt.wantTypes)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", got.Tags, tt.wantTags)
			}
		})
	}
}

func TestAnalyze_NotTags(t *testing.T) {
	inputs := []string{
		"[name]",
		"[Name]",
		"[]",
		"[NAME 2]",
		"[PATIENT NAME]",
		"[123]",
		"NAME",
	}
	for _, input := range inputs {
		if got := Analyze(input); got.Count != 0 {
			t.Errorf("Analyze(%q).Count = %d, want 0", input, got.Count)
		}
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"one", 1},
		{"one\n", 1},
		{"one\ntwo", 2},
		{"one\n\nthree", 3},
		{"\n", 1},
		{"a\nb\nc\n", 3},
	}
	for _, tt := range tests {
		if got := LineCount(tt.input); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
