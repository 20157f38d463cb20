package raster

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#FF0000", want: color.RGBA{255, 0, 0, 255}},
		{in: "#12ab9f", want: color.RGBA{0x12, 0xAB, 0x9F, 255}},
		{in: "#0f0", want: color.RGBA{0, 255, 0, 255}},
		{in: "gray", want: color.RGBA{128, 128, 128, 255}},
		{in: " Black ", want: color.RGBA{0, 0, 0, 255}},
		{in: "transparent", want: color.RGBA{}},
		{in: "#FFFFFF80", want: color.RGBA{128, 128, 128, 128}},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   color.Color
		want string
	}{
		{color.RGBA{0x12, 0xAB, 0x9F, 255}, "#12AB9F"},
		{color.NRGBA{255, 255, 255, 128}, "#FFFFFF80"},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
