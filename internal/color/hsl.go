package color

// ToHSL returns hue in degrees [0,360) and saturation and lightness in
// percent [0,100].
//
// The arithmetic is carried out in float32 and the results are widened
// without rounding, so "%.0f" formatting of the returned values is stable
// across platforms. Achromatic input (r == g == b) always yields hue 0 and
// saturation 0.
func ToHSL(c RGB) (h, s, l float64) {
	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255

	maxC := max32(max32(r, g), b)
	minC := min32(min32(r, g), b)
	light := float32(maxC+minC) / 2

	var hue, sat float32
	if maxC != minC {
		d := float32(maxC - minC)
		if light > 0.5 {
			sat = d / float32(2-maxC-minC)
		} else {
			sat = d / float32(maxC+minC)
		}

		switch maxC {
		case r:
			hue = float32(g-b) / d
			if g < b {
				hue += 6
			}
		case g:
			hue = float32(b-r)/d + 2
		default:
			hue = float32(r-g)/d + 4
		}
		hue /= 6
	}

	return float64(float32(hue * 360)), float64(float32(sat * 100)), float64(float32(light * 100))
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
