package shot

import (
	"math"
	"strings"
)

// Classify maps court coordinates to a zone. Missing or NaN coordinates yield
// ZoneUnknown, infinite ones ZoneOther.
func Classify(x, y *float64, court CourtParams) Zone {
	if x == nil || y == nil {
		return ZoneUnknown
	}
	return classifyPoint(*x, *y, court)
}

func classifyPoint(x, y float64, court CourtParams) Zone {
	if math.IsNaN(x) || math.IsNaN(y) {
		return ZoneUnknown
	}
	if !isFinite(x) || !isFinite(y) {
		return ZoneOther
	}

	dx := x - court.BasketX
	dy := y - court.BasketY
	distance := math.Sqrt(dx*dx + dy*dy)
	// atan2(dx, dy) measures the angle from the y axis, negative to the right of the basket.
	angle := math.Atan2(dx, dy) * 180 / math.Pi

	isCornerThree := math.Abs(x) >= court.CornerLineX && y <= court.CornerIntersectionY
	isArcThree := distance >= court.ThreePointRadius && y > court.CornerIntersectionY

	if isCornerThree {
		if x < 0 {
			return ZoneCornerThreeLeft
		}
		return ZoneCornerThreeRight
	}
	if isArcThree {
		switch {
		case angle < -court.SideThreeAngle:
			return ZoneRightSideThree
		case angle > court.SideThreeAngle:
			return ZoneLeftSideThree
		default:
			return ZoneTopThree
		}
	}

	if distance <= court.RestrictedAreaRadius {
		return ZoneAtTheRim
	}
	if distance <= court.ShortTwoRadius {
		return lateral(x, court.CenterLaneHalfWidth, ZoneShortTwoLeft, ZoneShortTwoRight, ZoneShortTwoCenter)
	}
	return lateral(x, court.CenterLaneHalfWidth, ZoneMidTwoLeft, ZoneMidTwoRight, ZoneMidTwoCenter)
}

func lateral(x, halfWidth float64, left, right, center Zone) Zone {
	switch {
	case x < -halfWidth:
		return left
	case x > halfWidth:
		return right
	default:
		return center
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFreeThrow reports whether the action code or label marks a free throw.
func IsFreeThrow(e Event) bool {
	code := strings.ToLower(e.ActionCode)
	label := strings.ToLower(e.ActionLabel)
	return strings.Contains(code, "ft") ||
		strings.Contains(code, "free") ||
		strings.Contains(label, "ft") ||
		strings.Contains(label, "free")
}

// ExcludeFreeThrows returns the events that are field goal attempts, in input order.
func ExcludeFreeThrows(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if IsFreeThrow(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Derive computes made flag and zone for a single field goal attempt.
func Derive(e Event, court CourtParams) Shot {
	return Shot{
		Event: e,
		Made:  e.Points > 0,
		Zone:  Classify(e.X, e.Y, court),
	}
}

// Annotate drops free throws and derives the remaining shots.
func Annotate(events []Event, court CourtParams) []Shot {
	attempts := ExcludeFreeThrows(events)
	out := make([]Shot, 0, len(attempts))
	for _, e := range attempts {
		out = append(out, Derive(e, court))
	}
	return out
}
