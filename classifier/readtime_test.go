package classifier

import (
	"strings"
	"testing"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty content", "", "1 min read"},
		{"whitespace only", "   \n\t ", "1 min read"},
		{"short content", "a quick note about sleep", "1 min read"},
		{"exactly one minute", strings.Repeat("word ", 200), "1 min read"},
		{"rounds up", strings.Repeat("word ", 201), "2 min read"},
		{"two minutes", strings.Repeat("word ", 400), "2 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.content); got != tt.want {
				t.Fatalf("EstimateReadTime = %q, want %q", got, tt.want)
			}
		})
	}
}
