package cmd

import "testing"

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"Daily", "Daily", false},
		{"daily", "Daily", false},
		{"WEEKLY", "Weekly", false},
		{"Weekly", "Weekly", false},
		{"Monthly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := parseFrequency(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("parseFrequency(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFrequency(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFrequency(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
