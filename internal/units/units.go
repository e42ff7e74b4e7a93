// Package units provides speed unit names and conversion to metres per second.
package units

import "strings"

// Unit constants
const (
	MPS   = "mps"
	MPH   = "mph"
	KMPH  = "kmph"
	KPH   = "kph"
	Knots = "knots"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH, Knots}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}

	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ToMPS converts a speed in the given units to metres per second.
// Unknown units are treated as m/s.
func ToMPS(speed float64, fromUnits string) float64 {
	switch fromUnits {
	case MPH:
		return speed / 2.23694
	case KMPH, KPH:
		return speed / 3.6
	case Knots:
		return speed / 1.943844
	default:
		return speed
	}
}

// ConvertSpeed converts a speed from metres per second to the target units.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.23694
	case KMPH, KPH:
		return speedMPS * 3.6
	case Knots:
		return speedMPS * 1.943844
	default:
		return speedMPS
	}
}
