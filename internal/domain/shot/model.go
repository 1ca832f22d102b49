package shot

import (
	"errors"
	"time"
)

// Zone is the court area a field goal attempt was taken from.
type Zone string

const (
	ZoneCornerThreeLeft  Zone = "corner 3 left"
	ZoneCornerThreeRight Zone = "right corner 3"
	ZoneRightSideThree   Zone = "right side 3"
	ZoneLeftSideThree    Zone = "left side 3"
	ZoneTopThree         Zone = "top 3"
	ZoneAtTheRim         Zone = "at the rim"
	ZoneShortTwoLeft     Zone = "short 2pt left"
	ZoneShortTwoRight    Zone = "short 2pt right"
	ZoneShortTwoCenter   Zone = "short 2pt center"
	ZoneMidTwoLeft       Zone = "mid 2pt left"
	ZoneMidTwoRight      Zone = "mid 2pt right"
	ZoneMidTwoCenter     Zone = "mid 2pt center"
	ZoneOther            Zone = "Other"
	ZoneUnknown          Zone = "Unknown"
)

// Zones lists every label Classify can return.
func Zones() []Zone {
	return []Zone{
		ZoneCornerThreeLeft,
		ZoneCornerThreeRight,
		ZoneRightSideThree,
		ZoneLeftSideThree,
		ZoneTopThree,
		ZoneAtTheRim,
		ZoneShortTwoLeft,
		ZoneShortTwoRight,
		ZoneShortTwoCenter,
		ZoneMidTwoLeft,
		ZoneMidTwoRight,
		ZoneMidTwoCenter,
		ZoneOther,
		ZoneUnknown,
	}
}

func (z Zone) IsThreePoint() bool {
	switch z {
	case ZoneCornerThreeLeft, ZoneCornerThreeRight, ZoneRightSideThree, ZoneLeftSideThree, ZoneTopThree:
		return true
	default:
		return false
	}
}

var ErrInvalidCourtParams = errors.New("invalid court params")

// CourtParams holds the court geometry in provider units (centimeters, basket at origin).
type CourtParams struct {
	BasketX              float64
	BasketY              float64
	ThreePointRadius     float64
	CornerLineX          float64
	CornerIntersectionY  float64
	RestrictedAreaRadius float64
	ShortTwoRadius       float64
	CenterLaneHalfWidth  float64
	SideThreeAngle       float64
}

func DefaultCourtParams() CourtParams {
	return CourtParams{
		BasketX:              0,
		BasketY:              0,
		ThreePointRadius:     675,
		CornerLineX:          660,
		CornerIntersectionY:  157.5,
		RestrictedAreaRadius: 125,
		ShortTwoRadius:       300,
		CenterLaneHalfWidth:  50,
		SideThreeAngle:       30,
	}
}

func (p CourtParams) Validate() error {
	switch {
	case p.ThreePointRadius <= 0:
		return errors.Join(ErrInvalidCourtParams, errors.New("three point radius must be > 0"))
	case p.CornerLineX <= 0:
		return errors.Join(ErrInvalidCourtParams, errors.New("corner line x must be > 0"))
	case p.RestrictedAreaRadius <= 0:
		return errors.Join(ErrInvalidCourtParams, errors.New("restricted area radius must be > 0"))
	case p.ShortTwoRadius <= p.RestrictedAreaRadius:
		return errors.Join(ErrInvalidCourtParams, errors.New("short two radius must exceed restricted area radius"))
	case p.CenterLaneHalfWidth < 0:
		return errors.Join(ErrInvalidCourtParams, errors.New("center lane half width must be >= 0"))
	case p.SideThreeAngle <= 0 || p.SideThreeAngle >= 90:
		return errors.Join(ErrInvalidCourtParams, errors.New("side three angle must be within (0, 90)"))
	}
	return nil
}

// Event is one shot row from the provider shot chart.
type Event struct {
	Season            int
	Phase             string
	Round             int
	Gamecode          string
	NumAnot           int
	Team              string
	PlayerID          string
	Player            string
	ActionCode        string
	ActionLabel       string
	Points            int
	X                 *float64
	Y                 *float64
	ProviderZone      string
	Fastbreak         *int
	SecondChance      *int
	PointsOffTurnover *int
	Minute            *int
	Console           string
	PointsA           *int
	PointsB           *int
	UTC               *time.Time
}

// Shot is an Event with its derived attributes.
type Shot struct {
	Event
	Made bool
	Zone Zone
}

// ZoneAverage is the league shooting line for one zone in one season.
type ZoneAverage struct {
	Season         int
	Zone           Zone
	TotalShots     int
	MadeShots      int
	ShotPercentage float64
}
