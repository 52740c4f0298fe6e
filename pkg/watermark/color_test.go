package watermark

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{"  red ", color.NRGBA{255, 0, 0, 255}},
		{"grey", color.NRGBA{128, 128, 128, 255}},
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#FF8000", color.NRGBA{255, 128, 0, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#f80", color.NRGBA{255, 136, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12345", "#gggggg", "#ff80001"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}
