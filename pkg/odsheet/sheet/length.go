package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// LengthUnit is the unit of a Length.
type LengthUnit uint8

const (
	UnitDefault LengthUnit = iota
	UnitCm
	UnitMm
	UnitIn
	UnitPt
	UnitPc
	UnitEm
)

var unitNames = map[LengthUnit]string{
	UnitCm: "cm",
	UnitMm: "mm",
	UnitIn: "in",
	UnitPt: "pt",
	UnitPc: "pc",
	UnitEm: "em",
}

// Length is a measurement such as a column width. The zero Length means
// "not set, use the application default".
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Cm returns a length in centimeters.
func Cm(v float64) Length { return Length{Value: v, Unit: UnitCm} }

// Mm returns a length in millimeters.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMm} }

// In returns a length in inches.
func In(v float64) Length { return Length{Value: v, Unit: UnitIn} }

// Pt returns a length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPt} }

// IsDefault reports whether no length was set.
func (l Length) IsDefault() bool { return l.Unit == UnitDefault }

// String renders the length as an ODF attribute value, e.g. "2cm".
func (l Length) String() string {
	if l.Unit == UnitDefault {
		return ""
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + unitNames[l.Unit]
}

// Points converts the length to points. Em lengths assume a 12pt font and
// the default length converts to 0.
func (l Length) Points() float64 {
	switch l.Unit {
	case UnitCm:
		return l.Value * 72 / 2.54
	case UnitMm:
		return l.Value * 72 / 25.4
	case UnitIn:
		return l.Value * 72
	case UnitPt:
		return l.Value
	case UnitPc:
		return l.Value * 12
	case UnitEm:
		return l.Value * 12
	}
	return 0
}

// ParseLength parses an ODF length like "2.5cm" or "0.1965in".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}
	for unit, name := range unitNames {
		if strings.HasSuffix(s, name) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, name), 64)
			if err != nil {
				return Length{}, fmt.Errorf("parse length %q: %w", s, err)
			}
			return Length{Value: v, Unit: unit}, nil
		}
	}
	return Length{}, fmt.Errorf("parse length %q: unknown unit", s)
}
