package engine

import (
	"errors"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// Sentinel errors surfaced by ComputeChart. Callers match them with errors.Is;
// the wrapped chain carries the detail.
var (
	// ErrInputFormat reports a malformed date, time or offset.
	ErrInputFormat = errors.New(config.ErrInputFormat)

	// ErrCityNotFound reports a geocoder lookup with no result.
	ErrCityNotFound = errors.New(config.ErrCityNotFound)

	// ErrGeocode reports a geocoder transport or decoding failure.
	ErrGeocode = errors.New(config.ErrGeocode)

	// ErrEphemerisUnavailable wraps any failure of the EphemerisPort.
	ErrEphemerisUnavailable = errors.New(config.ErrEphemeris)

	// ErrTransitionNotFound is returned by a TransitionFinder whose horizon ran
	// out before the index changed. The engine turns it into an open-ended element.
	ErrTransitionNotFound = errors.New(config.ErrTransitionMissing)
)
