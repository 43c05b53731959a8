package core

import (
	"fmt"
	"math/rand/v2"
)

// ColorPair is a translucent fill color with a fully opaque border of the
// same hue, one per dataset entry.
type ColorPair struct {
	Fill   string
	Border string
}

// RandomColor samples each RGB channel uniformly from [56, 256). The fill
// uses alpha 0.5, the border alpha 1. Colors are cosmetic only, so no
// seeding or reproducibility is offered.
func RandomColor() ColorPair {
	r := 56 + rand.IntN(200)
	g := 56 + rand.IntN(200)
	b := 56 + rand.IntN(200)
	return ColorPair{
		Fill:   fmt.Sprintf("rgba(%d, %d, %d, 0.5)", r, g, b),
		Border: fmt.Sprintf("rgba(%d, %d, %d, 1)", r, g, b),
	}
}
