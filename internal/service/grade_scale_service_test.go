package service

import "testing"

func TestLetterFor(t *testing.T) {
	scale := NewGradeScaleService()

	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "A"},
		{70, "A"},
		{69.99, "B"},
		{60, "B"},
		{59.99, "C"},
		{50, "C"},
		{49.99, "D"},
		{45, "D"},
		{44.99, "E"},
		{40, "E"},
		{39.99, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := scale.LetterFor(tt.percentage); got != tt.want {
			t.Errorf("LetterFor(%v) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}
