package ocr

import (
	"testing"

	"github.com/scanstation/receipt-ocr/internal/models"
)

func TestIsPlausible(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"too short", "Hi there", false},
		{"normal receipt line", "Coffee Shop 123 Main", true},
		{"symbol heavy", "@#$%^&*()!~@#$%^&*()!", false},
		{"digits only", "1234567890 9876543210", false},
		{"single lettered token", "Receipta 123 456 789", true}, // keyword "receipt"
		{"one word with letters", "abcdefghij 123 456", false},
		{"keyword bypasses ratios", "total!!!!!@@@@@#####", true},
		{"keyword case insensitive", "GRAND TOTAL $14.99!!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlausible(tt.text); got != tt.want {
				t.Errorf("IsPlausible(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsPlausibleIdempotent(t *testing.T) {
	for _, text := range []string{"Coffee Shop 123 Main", "@#$%^&*()!~@#$%^&*()!"} {
		first := IsPlausible(text)
		for i := 0; i < 3; i++ {
			if got := IsPlausible(text); got != first {
				t.Fatalf("IsPlausible(%q) changed between calls", text)
			}
		}
	}
}

func TestSelectBestPrefersKeywordCandidates(t *testing.T) {
	candidates := []models.RecognitionCandidate{
		{Strategy: "a", Text: "a fairly long line of plain words without receipt markers here"},
		{Strategy: "b", Text: "Subtotal 9.50 Tax 0.76"},
	}
	got := SelectBest(candidates, nil)
	if got != "Subtotal 9.50 Tax 0.76" {
		t.Errorf("SelectBest = %q, want the keyword-bearing candidate", got)
	}
}

func TestSelectBestRanksByLengthThenLetters(t *testing.T) {
	candidates := []models.RecognitionCandidate{
		{Strategy: "a", Text: "short line here"},
		{Strategy: "b", Text: "a considerably longer line of recognized words"},
	}
	got := SelectBest(candidates, nil)
	if got != "a considerably longer line of recognized words" {
		t.Errorf("SelectBest = %q, want the longer candidate", got)
	}
}

func TestSelectBestRawFallback(t *testing.T) {
	tests := []struct {
		name     string
		rawTexts []string
		want     string
	}{
		{
			name:     "prefers keyword over longer noise",
			rawTexts: []string{"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", "total 14.99 thanks"},
			want:     "total 14.99 thanks",
		},
		{
			name:     "currency amount counts as signal",
			rawTexts: []string{"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", "something 12.34 here"},
			want:     "something 12.34 here",
		},
		{
			name:     "longest when nothing has signal",
			rawTexts: []string{"short noise", "a much longer noise string"},
			want:     "a much longer noise string",
		},
		{
			name:     "everything too short",
			rawTexts: []string{"tiny", "also tiny"},
			want:     "",
		},
		{
			name:     "no raw texts",
			rawTexts: nil,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectBest(nil, tt.rawTexts); got != tt.want {
				t.Errorf("SelectBest(nil, %v) = %q, want %q", tt.rawTexts, got, tt.want)
			}
		})
	}
}
