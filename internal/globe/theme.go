package globe

import "image/color"

// Stroke is a line color and width in CSS pixels.
type Stroke struct {
	Color color.Color
	Width float64
}

// Theme holds every color the renderer uses.
type Theme struct {
	Sphere  RadialGradient
	Outline Stroke

	Graticule      Stroke
	GraticuleMajor Stroke // poles, equator, prime and anti-meridian

	LandFill   color.Color
	LandStroke Stroke
	BlobFill   color.Color
	BlobStroke Stroke

	PinFill   color.Color
	PinStroke Stroke

	LabelBackground color.Color
	LabelBorder     Stroke
	LabelText       color.Color
}

// DefaultTheme is the ocean-blue palette.
func DefaultTheme() Theme {
	return Theme{
		Sphere: RadialGradient{
			Extent: 1.1,
			Stops: []ColorStop{
				{Offset: 0, Color: hex(0x1a, 0x6b, 0x8a)},
				{Offset: 0.5, Color: hex(0x0e, 0x50, 0x70)},
				{Offset: 1, Color: hex(0x06, 0x3a, 0x52)},
			},
		},
		Outline: Stroke{Color: rgba(255, 255, 255, 0.35), Width: 1.2},

		Graticule:      Stroke{Color: rgba(255, 255, 255, 0.38), Width: 1.1},
		GraticuleMajor: Stroke{Color: rgba(255, 255, 255, 0.65), Width: 1.8},

		LandFill:   rgba(34, 85, 68, 0.82),
		LandStroke: Stroke{Color: rgba(28, 70, 55, 0.6), Width: 0.8},
		BlobFill:   rgba(34, 85, 68, 0.75),
		BlobStroke: Stroke{Color: rgba(50, 120, 90, 0.5), Width: 0.8},

		PinFill:   hex(0x58, 0xa6, 0xff),
		PinStroke: Stroke{Color: rgba(255, 255, 255, 0.6), Width: 1.5},

		LabelBackground: rgba(13, 17, 23, 0.9),
		LabelBorder:     Stroke{Color: rgba(255, 255, 255, 0.4), Width: 1},
		LabelText:       hex(0xe6, 0xed, 0xf3),
	}
}

func hex(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func rgba(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
