package watermark

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"brown":   {165, 42, 42, 255},
}

// ParseColor resolves a color name or #RGB/#RRGGBB hex value.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(name, "#"); ok {
		switch len(hex) {
		case 3:
			v, err := strconv.ParseUint(hex, 16, 16)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
			}
			r := uint8(v >> 8 & 0xf)
			g := uint8(v >> 4 & 0xf)
			b := uint8(v & 0xf)
			return color.NRGBA{r*16 + r, g*16 + g, b*16 + b, 255}, nil
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
			}
			return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}
