package kernel

import (
	"errors"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// Heading bounds in degrees. 0 and 360 both mean due north and are accepted.
const (
	MinHeading = 0.0
	MaxHeading = 360.0
)

// ErrLocationSampleIsNotConstructed is returned when attempting to use an
// improperly initialized LocationSample.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"location sample must be created via NewLocationSample constructor")

// RawLocationSample is the unvalidated geolocation payload as reported by a
// courier device. Pointer fields distinguish "absent" from zero values: an
// entirely absent payload (nil *RawLocationSample at the caller) is the
// accepted "no new fix this update" case and never reaches validation.
type RawLocationSample struct {
	Latitude   *float64
	Longitude  *float64
	Accuracy   *float64
	Altitude   *float64
	Heading    *float64
	Speed      *float64
	CapturedAt time.Time
}

// LocationSample is a validated GPS fix. It is a transient value object:
// samples are never persisted on their own, only the most recent one is kept
// on the tracking record. The zero value is invalid; use NewLocationSample.
type LocationSample struct {
	point      GeoPoint
	capturedAt time.Time
	accuracy   *float64
	altitude   *float64
	heading    *float64
	speed      *float64
	guard      guard.ConstructorGuard
}

// NewLocationSample validates a raw payload and produces a LocationSample.
//
// Rules:
//   - latitude and longitude are required and must be within geographic bounds
//   - capture timestamp is required
//   - accuracy, altitude and speed, when present, must be non-negative
//   - heading, when present, must be within [0, 360]
//
// All violations are collected and returned joined, so a caller sees every
// problem with a payload at once.
func NewLocationSample(raw RawLocationSample) (LocationSample, error) {
	if raw.Latitude == nil {
		return LocationSample{}, errs.NewValueIsRequiredError("latitude")
	}
	if raw.Longitude == nil {
		return LocationSample{}, errs.NewValueIsRequiredError("longitude")
	}

	point, err := NewGeoPoint(*raw.Latitude, *raw.Longitude)
	if err != nil {
		return LocationSample{}, err
	}

	if raw.CapturedAt.IsZero() {
		return LocationSample{}, errs.NewValueIsRequiredError("capturedAt")
	}

	s := LocationSample{
		point:      point,
		capturedAt: raw.CapturedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setAccuracy(raw.Accuracy),
		s.setAltitude(raw.Altitude),
		s.setHeading(raw.Heading),
		s.setSpeed(raw.Speed),
	); err != nil {
		return LocationSample{}, err
	}

	return s, nil
}

// Validate checks if the sample was properly constructed via NewLocationSample.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}

// Point returns the geographic position of the fix.
func (s LocationSample) Point() GeoPoint {
	return s.point
}

// CapturedAt returns the device capture timestamp of the fix.
func (s LocationSample) CapturedAt() time.Time {
	return s.capturedAt
}

// Accuracy returns the horizontal accuracy in meters, or nil if not reported.
func (s LocationSample) Accuracy() *float64 {
	return s.accuracy
}

// Altitude returns the altitude in meters, or nil if not reported.
func (s LocationSample) Altitude() *float64 {
	return s.altitude
}

// Heading returns the heading in degrees, or nil if not reported.
func (s LocationSample) Heading() *float64 {
	return s.heading
}

// Speed returns the speed in meters per second, or nil if not reported.
func (s LocationSample) Speed() *float64 {
	return s.speed
}

func (s *LocationSample) setAccuracy(accuracy *float64) error {
	if accuracy != nil && *accuracy < 0 {
		return errs.NewValueIsInvalidError("accuracy")
	}
	s.accuracy = accuracy
	return nil
}

func (s *LocationSample) setAltitude(altitude *float64) error {
	if altitude != nil && *altitude < 0 {
		return errs.NewValueIsInvalidError("altitude")
	}
	s.altitude = altitude
	return nil
}

func (s *LocationSample) setHeading(heading *float64) error {
	if heading != nil && (*heading < MinHeading || *heading > MaxHeading) {
		return errs.NewValueIsOutOfRangeError("heading", *heading, MinHeading, MaxHeading)
	}
	s.heading = heading
	return nil
}

func (s *LocationSample) setSpeed(speed *float64) error {
	if speed != nil && *speed < 0 {
		return errs.NewValueIsInvalidError("speed")
	}
	s.speed = speed
	return nil
}
