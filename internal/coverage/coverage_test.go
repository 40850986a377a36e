package coverage

import (
	"strings"
	"testing"
)

func TestParseFuncSummary(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{
			name: "typical output",
			input: "goqa/internal/config/config.go:101:\tBuild\t\t85.7%\n" +
				"goqa/internal/config/defaults.go:16:\tDefaults\t100.0%\n" +
				"total:\t\t\t\t\t(statements)\t81.2%\n",
			want:   81.2,
			wantOK: true,
		},
		{
			name:   "total only",
			input:  "total:\t(statements)\t100.0%\n",
			want:   100.0,
			wantOK: true,
		},
		{
			name:   "zero coverage",
			input:  "total:\t(statements)\t0.0%\n",
			want:   0.0,
			wantOK: true,
		},
		{
			name:   "no total line",
			input:  "goqa/internal/config/config.go:101:\tBuild\t85.7%\n",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "malformed percentage",
			input:  "total:\t(statements)\tN/A%\n",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFuncSummary(strings.NewReader(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("percent = %v, want %v", got, tt.want)
			}
		})
	}
}
