package turn

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bonjour", "bonjour"},
		{"bonjour!", "bonjour"},
		{"  Bon jour.  ", "bonjour"},
		{"Bonjoür", "bonjour"},
		{"¿Cómo estás?", "comoestas"},
		{"나는 학교에 가요", "나는학교에가요"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEchoed(t *testing.T) {
	tests := []struct {
		pron     string
		sentence string
		want     bool
	}{
		{"Bonjour", "Bonjour", true},
		{"bonjour!", "Bonjour", true},
		{"봉쥬르", "Bonjour", false},
		{"", "Bonjour", false},
		{"na-neun hakgyoe gayo", "나는 학교에 가요", false},
		{"¿Como estas?", "¿Cómo estás?", true},
	}
	for _, tt := range tests {
		if got := IsEchoed(tt.pron, tt.sentence); got != tt.want {
			t.Errorf("IsEchoed(%q, %q) = %v, want %v", tt.pron, tt.sentence, got, tt.want)
		}
	}
}
