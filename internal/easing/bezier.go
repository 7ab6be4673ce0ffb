package easing

const (
	bezierNewtonIters = 8
	bezierEpsilon     = 1e-6
)

// NewBezier builds an easing function from a CSS-style cubic Bezier curve with
// control points (p1x,p1y) and (p2x,p2y). Control x-coordinates are clamped to
// [0,1] so x stays a valid time axis for the root finder; y-coordinates are
// left free so curves may overshoot.
func NewBezier(p1x, p1y, p2x, p2y float64) Func {
	p1x = clamp01(p1x)
	p2x = clamp01(p2x)

	// Polynomial coefficients for x(t) and y(t) with implicit P0=(0,0), P3=(1,1).
	cx := 3 * p1x
	bx := 3*(p2x-p1x) - cx
	ax := 1 - cx - bx

	cy := 3 * p1y
	by := 3*(p2y-p1y) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	sampleDX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	// solveX finds t with x(t) == x. Newton-Raphson first; if the derivative
	// stalls or the iteration budget runs out, fall through to bisection.
	solveX := func(x float64) float64 {
		t := x
		for i := 0; i < bezierNewtonIters; i++ {
			diff := sampleX(t) - x
			if diff < bezierEpsilon && diff > -bezierEpsilon {
				return t
			}
			d := sampleDX(t)
			if d < bezierEpsilon && d > -bezierEpsilon {
				break
			}
			t -= diff / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			diff := v - x
			if diff < bezierEpsilon && diff > -bezierEpsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			if hi-lo <= bezierEpsilon {
				break
			}
			t = lo + (hi-lo)/2
		}
		return t
	}

	return func(t float64) float64 {
		// The solver is unstable exactly at the boundaries; pin them.
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solveX(t))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
