package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// AngleFunc evaluates a driving angle (degrees) at a Julian Day.
type AngleFunc func(ctx context.Context, jd float64) (float64, error)

// Driver describes how an element's angle moves: live evaluation plus a mean rate (deg/day).
type Driver struct {
	Angle AngleFunc
	Rate  float64
}

// Transition is the first index change after the start instant.
type Transition struct {
	JD        float64
	NextIndex int
}

// TransitionFinder locates the next boundary of a division of the circle into
// count equal arcs. Implementations return ErrTransitionNotFound when their
// horizon ends before the index changes.
type TransitionFinder interface {
	Next(ctx context.Context, startJD float64, d Driver, count int) (Transition, error)
}

// -----------------------------------------------------------------------------
// Forward scan
// -----------------------------------------------------------------------------

// ScanFinder steps forward by Step days, re-evaluating the angle each step,
// and reports the first step whose index differs from the start index.
// The result lies within one Step after the true boundary.
type ScanFinder struct {
	Step     float64 // Days.
	MaxSteps int
}

// Next implements TransitionFinder.
func (f ScanFinder) Next(ctx context.Context, startJD float64, d Driver, count int) (Transition, error) {
	a0, err := d.Angle(ctx, startJD)
	if err != nil {
		return Transition{}, err
	}
	start := IndexOf(a0, count)

	for k := 1; k <= f.MaxSteps; k++ {
		if err := ctx.Err(); err != nil {
			return Transition{}, err
		}
		jd := startJD + float64(k)*f.Step
		a, err := d.Angle(ctx, jd)
		if err != nil {
			return Transition{}, err
		}
		if idx := IndexOf(a, count); idx != start {
			return Transition{JD: jd, NextIndex: idx}, nil
		}
	}
	return Transition{}, ErrTransitionNotFound
}

// -----------------------------------------------------------------------------
// Linear rate with bisection
// -----------------------------------------------------------------------------

// LinearFinder extrapolates the start angle at the driver's mean rate and
// refines the crossing of the next boundary by bisection on that line.
// Only the start angle touches the ephemeris.
type LinearFinder struct {
	Iterations int
}

// Next implements TransitionFinder.
func (f LinearFinder) Next(ctx context.Context, startJD float64, d Driver, count int) (Transition, error) {
	if d.Rate <= 0 {
		return Transition{}, fmt.Errorf("%w: non-positive rate %v", ErrTransitionNotFound, d.Rate)
	}
	a0, err := d.Angle(ctx, startJD)
	if err != nil {
		return Transition{}, err
	}
	a0 = Normalize(a0)

	// An angle sitting exactly on a boundary targets the following one.
	k := IndexOf(a0, count) + 1
	boundary := Boundary(k, count)
	for boundary <= a0 {
		k++
		boundary = Boundary(k, count)
	}

	lo, hi := 0.0, (boundary-a0)/d.Rate
	for i := 0; i < f.Iterations; i++ {
		mid := lo + (hi-lo)/2
		if a0+d.Rate*mid < boundary {
			lo = mid
		} else {
			hi = mid
		}
	}

	return Transition{JD: startJD + hi, NextIndex: k % count}, nil
}

// -----------------------------------------------------------------------------
// Strategy selection
// -----------------------------------------------------------------------------

// ElementKind names one of the four timed elements.
type ElementKind int

const (
	KindTithi ElementKind = iota
	KindNakshatra
	KindYoga
	KindKarana
)

var kindNames = [...]string{"Tithi", "Nakshatra", "Yoga", "Karana"}

func (k ElementKind) String() string { return kindNames[k] }

// Finders holds the strategy chosen for each element.
type Finders struct {
	Tithi     TransitionFinder
	Nakshatra TransitionFinder
	Yoga      TransitionFinder
	Karana    TransitionFinder
}

// DefaultFinders scans Tithi and Nakshatra against the ephemeris and uses the
// linear model for Yoga and Karana.
func DefaultFinders() Finders {
	f, _ := NewFinders(config.StrategyScan, config.StrategyScan, config.StrategyLinear, config.StrategyLinear)
	return f
}

// NewFinders builds a Finders from strategy names ("scan" or "linear").
func NewFinders(tithi, nakshatra, yoga, karana string) (Finders, error) {
	var fs Finders
	var errs []error
	pick := func(kind ElementKind, name string) TransitionFinder {
		f, err := NewFinder(kind, name)
		errs = append(errs, err)
		return f
	}
	fs.Tithi = pick(KindTithi, tithi)
	fs.Nakshatra = pick(KindNakshatra, nakshatra)
	fs.Yoga = pick(KindYoga, yoga)
	fs.Karana = pick(KindKarana, karana)
	return fs, errors.Join(errs...)
}

// NewFinder returns the finder for one element. Scan steps and caps depend on the element.
func NewFinder(kind ElementKind, strategy string) (TransitionFinder, error) {
	switch strings.ToLower(strategy) {
	case config.StrategyLinear:
		return LinearFinder{Iterations: config.BisectionIterations}, nil
	case config.StrategyScan:
		switch kind {
		case KindTithi:
			return ScanFinder{Step: config.TithiScanStep, MaxSteps: config.TithiScanSteps}, nil
		case KindNakshatra:
			return ScanFinder{Step: config.NakshatraScanStep, MaxSteps: config.NakshatraScanSteps}, nil
		default:
			return ScanFinder{Step: config.GenericScanStep, MaxSteps: config.GenericScanSteps}, nil
		}
	default:
		return nil, fmt.Errorf("%s: %s=%q", config.ErrUnknownStrategy, kind, strategy)
	}
}
