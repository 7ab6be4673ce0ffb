package easing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Registry resolves curve names across three tiers: closed-form base
// functions, cubic-Bezier presets, and asymmetric hybrid presets. It is built
// once at startup and shared read-only.
type Registry struct {
	logger  zerolog.Logger
	base    map[string]Func
	beziers map[string]Func
	hybrids map[string]Func
}

// NewRegistry builds the full curve table.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		logger: logger.With().Str("component", "easing").Logger(),
		base: map[string]Func{
			"linear":           Linear,
			"easeInQuad":       QuadIn,
			"easeOutQuad":      QuadOut,
			"easeInOutQuad":    QuadInOut,
			"easeInCubic":      CubicIn,
			"easeOutCubic":     CubicOut,
			"easeInOutCubic":   CubicInOut,
			"easeInQuart":      QuartIn,
			"easeOutQuart":     QuartOut,
			"easeInOutQuart":   QuartInOut,
			"easeInQuint":      QuintIn,
			"easeOutQuint":     QuintOut,
			"easeInOutQuint":   QuintInOut,
			"easeInSine":       SineIn,
			"easeOutSine":      SineOut,
			"easeInOutSine":    SineInOut,
			"easeInExpo":       ExpoIn,
			"easeOutExpo":      ExpoOut,
			"easeInOutExpo":    ExpoInOut,
			"easeInCirc":       CircIn,
			"easeOutCirc":      CircOut,
			"easeInOutCirc":    CircInOut,
			"easeInElastic":    ElasticIn,
			"easeOutElastic":   ElasticOut,
			"easeInOutElastic": ElasticInOut,
			"easeInBack":       BackIn,
			"easeOutBack":      BackOut,
			"easeInOutBack":    BackInOut,
			"easeInBounce":     BounceIn,
			"easeOutBounce":    BounceOut,
			"easeInOutBounce":  BounceInOut,
		},
		beziers: map[string]Func{
			"ease":       NewBezier(0.25, 0.1, 0.25, 1),
			"easeIn":     NewBezier(0.42, 0, 1, 1),
			"easeOut":    NewBezier(0, 0, 0.58, 1),
			"easeInOut":  NewBezier(0.42, 0, 0.58, 1),
			"dramatic":   NewBezier(0.85, 0, 0.15, 1),
			"anticipate": NewBezier(0.68, -0.55, 0.265, 1.55),
		},
		hybrids: map[string]Func{
			"rushIn":   Hybrid(QuintIn, QuadOut),
			"driftOut": Hybrid(QuadIn, QuintOut),
			"whipPan":  Hybrid(ExpoIn, BackOut),
		},
	}

	for name, fn := range r.base {
		r.base[name] = pinEnds(fn)
	}
	for name, fn := range r.hybrids {
		r.hybrids[name] = pinEnds(fn)
	}
	return r
}

// Resolve returns the curve registered under name. An unknown name falls back
// to linear with a warning rather than failing the job.
func (r *Registry) Resolve(name string) Func {
	if fn, ok := r.lookup(name); ok {
		return fn
	}
	r.logger.Warn().Str("curve", name).Msg("unknown easing curve, falling back to linear")
	return pinEnds(Linear)
}

// Parse accepts either a registered curve name or four comma-separated Bezier
// control values ("p1x,p1y,p2x,p2y").
func (r *Registry) Parse(spec string) Func {
	if strings.Contains(spec, ",") {
		if fn, ok := parseBezierSpec(spec); ok {
			return fn
		}
		r.logger.Warn().Str("curve", spec).Msg("malformed bezier controls, falling back to linear")
		return pinEnds(Linear)
	}
	return r.Resolve(spec)
}

// Names lists every registered curve name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.base)+len(r.beziers)+len(r.hybrids))
	for name := range r.base {
		names = append(names, name)
	}
	for name := range r.beziers {
		names = append(names, name)
	}
	for name := range r.hybrids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) (Func, bool) {
	if fn, ok := r.base[name]; ok {
		return fn, true
	}
	if fn, ok := r.beziers[name]; ok {
		return fn, true
	}
	if fn, ok := r.hybrids[name]; ok {
		return fn, true
	}
	return nil, false
}

func parseBezierSpec(spec string) (Func, bool) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return nil, false
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return NewBezier(vals[0], vals[1], vals[2], vals[3]), true
}

// pinEnds guarantees f(0)==0 and f(1)==1 exactly. Several formulas (sine,
// bounce, back) land within a few ulps of the endpoints instead of on them,
// which would leak into seek offsets downstream.
func pinEnds(fn Func) Func {
	return func(t float64) float64 {
		if t == 0 {
			return 0
		}
		if t == 1 {
			return 1
		}
		return fn(t)
	}
}
