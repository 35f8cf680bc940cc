package vmath

// Curve selects a timing function mapping linear progress to eased progress
type Curve uint8

const (
	CurveLinear Curve = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
)

// String returns the config name of the curve
func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveEaseIn:
		return "ease-in"
	case CurveEaseOut:
		return "ease-out"
	case CurveEaseInOut:
		return "ease-in-out"
	default:
		return "unknown"
	}
}

// ParseCurve maps a config name to a Curve
func ParseCurve(name string) (Curve, bool) {
	switch name {
	case "linear":
		return CurveLinear, true
	case "ease-in", "easein":
		return CurveEaseIn, true
	case "ease-out", "easeout":
		return CurveEaseOut, true
	case "ease-in-out", "easeinout":
		return CurveEaseInOut, true
	}
	return CurveLinear, false
}

// Control points of the standard cubic-bezier timing functions
// P0 = (0,0) and P3 = (1,1) are implicit
var bezierControls = [...][4]float64{
	CurveLinear:    {0, 0, 1, 1},
	CurveEaseIn:    {0.42, 0, 1, 1},
	CurveEaseOut:   {0, 0, 0.58, 1},
	CurveEaseInOut: {0.42, 0, 0.58, 1},
}

const (
	bezierNewtonIterations = 8
	bezierBisectIterations = 32
	bezierEpsilon          = 1e-7
)

// Apply returns the eased value of t, t is clamped to [0, 1]
// Endpoints map exactly: Apply(0) == 0 and Apply(1) == 1
func (c Curve) Apply(t float64) float64 {
	t = Clamp01(t)
	if c == CurveLinear || int(c) >= len(bezierControls) {
		return t
	}
	if t == 0 || t == 1 {
		return t
	}

	p := bezierControls[c]
	s := solveBezierX(t, p[0], p[2])
	return bezierAt(s, p[1], p[3])
}

// bezierAt evaluates one axis of a cubic bezier with endpoints 0 and 1
func bezierAt(s, p1, p2 float64) float64 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

// bezierSlope is the derivative of bezierAt with respect to s
func bezierSlope(s, p1, p2 float64) float64 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

// solveBezierX finds the curve parameter s where x(s) == x
// Newton first, bisection fallback for flat slopes
func solveBezierX(x, x1, x2 float64) float64 {
	s := x
	for i := 0; i < bezierNewtonIterations; i++ {
		diff := bezierAt(s, x1, x2) - x
		if Abs(diff) < bezierEpsilon {
			return s
		}
		slope := bezierSlope(s, x1, x2)
		if Abs(slope) < 1e-6 {
			break
		}
		s = Clamp01(s - diff/slope)
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bezierBisectIterations; i++ {
		v := bezierAt(s, x1, x2)
		if Abs(v-x) < bezierEpsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}
