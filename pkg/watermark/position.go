package watermark

import "fmt"

// Anchor names a reference point on the image used to place the watermark.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorCenter       Anchor = "center"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// Margin is the fixed distance in pixels kept between the text and the image edges.
const Margin = 20

// Anchors lists every valid anchor value.
var Anchors = []Anchor{
	AnchorTopLeft,
	AnchorTopCenter,
	AnchorTopRight,
	AnchorCenter,
	AnchorBottomLeft,
	AnchorBottomCenter,
	AnchorBottomRight,
}

// ParseAnchor validates an anchor name. Used by the CLI so bad values are
// rejected before any image is touched.
func ParseAnchor(s string) (Anchor, error) {
	for _, a := range Anchors {
		if Anchor(s) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid position %q (valid: top-left, top-center, top-right, center, bottom-left, bottom-center, bottom-right)", s)
}

// ResolvePosition maps an anchor plus image and text dimensions to the pixel
// coordinates of the text's top-left corner. Unknown anchors resolve like
// bottom-right.
func ResolvePosition(imgW, imgH, textW, textH int, anchor Anchor) (x, y int) {
	switch anchor {
	case AnchorTopLeft:
		return Margin, Margin
	case AnchorTopCenter:
		return (imgW - textW) / 2, Margin
	case AnchorTopRight:
		return imgW - textW - Margin, Margin
	case AnchorCenter:
		return (imgW - textW) / 2, (imgH - textH) / 2
	case AnchorBottomLeft:
		return Margin, imgH - textH - Margin
	case AnchorBottomCenter:
		return (imgW - textW) / 2, imgH - textH - Margin
	default:
		return imgW - textW - Margin, imgH - textH - Margin
	}
}
