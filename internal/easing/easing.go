// Package easing provides the time-remapping curves used by the retiming
// pipeline. Every function maps normalized progress in [0,1] to normalized
// progress; the back and elastic families overshoot strictly between the
// endpoints.
package easing

import "math"

// Func remaps normalized output progress onto normalized source progress.
type Func func(t float64) float64

// Linear is the identity curve and the fallback for unknown curve names.
func Linear(t float64) float64 { return t }

func QuadIn(t float64) float64  { return t * t }
func QuadOut(t float64) float64 { return t * (2 - t) }
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func CubicIn(t float64) float64 { return t * t * t }
func CubicOut(t float64) float64 {
	p := t - 1
	return p*p*p + 1
}
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := t - 1
	return 4*p*p*p + 1
}

func QuartIn(t float64) float64 { return t * t * t * t }
func QuartOut(t float64) float64 {
	p := t - 1
	return 1 - p*p*p*p
}
func QuartInOut(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	p := t - 1
	return 1 - 8*p*p*p*p
}

func QuintIn(t float64) float64 { return t * t * t * t * t }
func QuintOut(t float64) float64 {
	p := t - 1
	return p*p*p*p*p + 1
}
func QuintInOut(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	p := t - 1
	return 16*p*p*p*p*p + 1
}

func SineIn(t float64) float64  { return 1 - math.Cos(t*math.Pi/2) }
func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// The exponential family special-cases both endpoints: the general formula
// leaves a residual 2^-10 at the boundaries instead of landing exactly.
func ExpoIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}
func ExpoOut(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
func ExpoInOut(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	if t < 0.5 {
		return math.Pow(2, 20*t-10) / 2
	}
	return (2 - math.Pow(2, -20*t+10)) / 2
}

func CircIn(t float64) float64 { return 1 - math.Sqrt(1-t*t) }
func CircOut(t float64) float64 {
	p := t - 1
	return math.Sqrt(1 - p*p)
}
func CircInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-4*t*t)) / 2
	}
	p := -2*t + 2
	return (math.Sqrt(1-p*p) + 1) / 2
}

// Elastic shares the exponential endpoint problem, so both ends are pinned.
func ElasticIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	const c4 = 2 * math.Pi / 3
	return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*c4)
}
func ElasticOut(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	const c4 = 2 * math.Pi / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}
func ElasticInOut(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	const c5 = 2 * math.Pi / 4.5
	if t < 0.5 {
		return -math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*c5) / 2
	}
	return math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*c5)/2 + 1
}

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1
)

func BackIn(t float64) float64 {
	return backC3*t*t*t - backC1*t*t
}
func BackOut(t float64) float64 {
	p := t - 1
	return 1 + backC3*p*p*p + backC1*p*p
}
func BackInOut(t float64) float64 {
	if t < 0.5 {
		p := 2 * t
		return p * p * ((backC2+1)*p - backC2) / 2
	}
	p := 2*t - 2
	return (p*p*((backC2+1)*p+backC2) + 2) / 2
}

// BounceOut is a piecewise quadratic approximation of a decaying bounce:
// four sub-intervals of shrinking width with a common leading coefficient.
func BounceOut(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
func BounceIn(t float64) float64 { return 1 - BounceOut(1-t) }
func BounceInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - BounceOut(1-2*t)) / 2
	}
	return (1 + BounceOut(2*t-1)) / 2
}

// Hybrid composes an asymmetric curve: first covers [0,0.5], second covers
// [0.5,1], each rescaled so its own [0,1] domain maps onto its half.
func Hybrid(first, second Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return first(t*2) / 2
		}
		return 0.5 + second((t-0.5)*2)/2
	}
}
