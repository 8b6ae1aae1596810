package tui

import (
	"bytes"
	"os"
	"testing"
)

func TestIsStyled_NonTerminalWriter(t *testing.T) {
	t.Setenv(PlainEnv, "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")

	if IsStyled(&bytes.Buffer{}) {
		t.Error("IsStyled(buffer) = true, want false")
	}
}

func TestIsStyled_EnvOverrides(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"plain", map[string]string{PlainEnv: "1"}},
		{"no color", map[string]string{"NO_COLOR": "1"}},
		{"ci", map[string]string{"CI": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PlainEnv, "")
			t.Setenv("NO_COLOR", "")
			t.Setenv("CI", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if IsStyled(os.Stdout) {
				t.Error("IsStyled(stdout) = true, want false")
			}
		})
	}
}

func TestWidth_Fallback(t *testing.T) {
	if got := Width(&bytes.Buffer{}, 80); got != 80 {
		t.Errorf("Width(buffer) = %d, want 80", got)
	}
}
