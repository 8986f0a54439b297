package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// ValueType identifies the active variant of a Value.
type ValueType uint8

const (
	ValueEmpty ValueType = iota
	ValueBoolean
	ValueNumber
	ValuePercentage
	ValueCurrency
	ValueText
	ValueTextMarkup
	ValueDateTime
	ValueTimeDuration
)

// String returns the office:value-type spelling of the type.
// Empty and TextMarkup have no value-type of their own.
func (t ValueType) String() string {
	switch t {
	case ValueEmpty:
		return "empty"
	case ValueBoolean:
		return "boolean"
	case ValueNumber:
		return "float"
	case ValuePercentage:
		return "percentage"
	case ValueCurrency:
		return "currency"
	case ValueText, ValueTextMarkup:
		return "string"
	case ValueDateTime:
		return "date"
	case ValueTimeDuration:
		return "time"
	default:
		return "unknown"
	}
}

// Value is the content of a cell. Exactly one variant is active; the zero
// Value is Empty.
type Value struct {
	kind   ValueType
	b      bool
	f      float64
	s      string // text, or currency code
	t      time.Time
	d      time.Duration
	markup []XMLTag
}

// EmptyValue returns the Empty value.
func EmptyValue() Value { return Value{} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: ValueBoolean, b: b} }

// Number returns a Number value.
func Number(f float64) Value { return Value{kind: ValueNumber, f: f} }

// Percentage returns a Percentage value. 0.5 is 50%.
func Percentage(f float64) Value { return Value{kind: ValuePercentage, f: f} }

// Currency returns a Currency value with an ISO 4217 currency code.
func Currency(amount float64, code string) Value {
	return Value{kind: ValueCurrency, f: amount, s: code}
}

// Text returns a Text value.
func Text(s string) Value { return Value{kind: ValueText, s: s} }

// TextMarkup returns a rich text value made of text:p/text:span fragments.
func TextMarkup(tags ...XMLTag) Value { return Value{kind: ValueTextMarkup, markup: tags} }

// DateTime returns a DateTime value.
func DateTime(t time.Time) Value { return Value{kind: ValueDateTime, t: t} }

// TimeDuration returns a TimeDuration value.
func TimeDuration(d time.Duration) Value { return Value{kind: ValueTimeDuration, d: d} }

// Kind returns the active variant.
func (v Value) Kind() ValueType { return v.kind }

// IsEmpty reports whether v is the Empty value.
func (v Value) IsEmpty() bool { return v.kind == ValueEmpty }

// AsBool returns the boolean if v is a Boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == ValueBoolean
}

// AsFloat returns the numeric part of Number, Percentage and Currency values.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case ValueNumber, ValuePercentage, ValueCurrency:
		return v.f, true
	}
	return 0, false
}

// AsFloatOr returns AsFloat or def.
func (v Value) AsFloatOr(def float64) float64 {
	if f, ok := v.AsFloat(); ok {
		return f
	}
	return def
}

// AsCurrency returns amount and currency code of a Currency value.
func (v Value) AsCurrency() (float64, string, bool) {
	return v.f, v.s, v.kind == ValueCurrency
}

// CurrencyUnit resolves the currency code of a Currency value.
func (v Value) CurrencyUnit() (currency.Unit, error) {
	if v.kind != ValueCurrency {
		return currency.Unit{}, fmt.Errorf("value is %s, not currency", v.kind)
	}
	return currency.ParseISO(v.s)
}

// AsText returns the string of a Text value.
func (v Value) AsText() (string, bool) {
	return v.s, v.kind == ValueText
}

// AsStringOr returns the text of Text and TextMarkup values, or def.
func (v Value) AsStringOr(def string) string {
	switch v.kind {
	case ValueText:
		return v.s
	case ValueTextMarkup:
		return markupText(v.markup)
	}
	return def
}

// AsMarkup returns the fragments of a TextMarkup value.
func (v Value) AsMarkup() ([]XMLTag, bool) {
	return v.markup, v.kind == ValueTextMarkup
}

// AsDateTime returns the time of a DateTime value.
func (v Value) AsDateTime() (time.Time, bool) {
	return v.t, v.kind == ValueDateTime
}

// AsDuration returns the duration of a TimeDuration value.
func (v Value) AsDuration() (time.Duration, bool) {
	return v.d, v.kind == ValueTimeDuration
}

// Equal reports whether both values have the same variant and payload.
// NaN numbers compare equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueEmpty:
		return true
	case ValueBoolean:
		return v.b == o.b
	case ValueNumber, ValuePercentage:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case ValueCurrency:
		return v.s == o.s && (v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f)))
	case ValueText:
		return v.s == o.s
	case ValueTextMarkup:
		if len(v.markup) != len(o.markup) {
			return false
		}
		for i := range v.markup {
			if !v.markup[i].Equal(o.markup[i]) {
				return false
			}
		}
		return true
	case ValueDateTime:
		return v.t.Equal(o.t)
	case ValueTimeDuration:
		return v.d == o.d
	}
	return false
}

// Clone returns a copy that shares no slices with v.
func (v Value) Clone() Value {
	if v.kind == ValueTextMarkup {
		v.markup = cloneTags(v.markup)
	}
	return v
}

// String formats the value for display. It is not locale aware.
func (v Value) String() string {
	switch v.kind {
	case ValueEmpty:
		return ""
	case ValueBoolean:
		return strconv.FormatBool(v.b)
	case ValueNumber:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValuePercentage:
		return strconv.FormatFloat(v.f*100, 'g', -1, 64) + "%"
	case ValueCurrency:
		return strconv.FormatFloat(v.f, 'f', -1, 64) + " " + v.s
	case ValueText:
		return v.s
	case ValueTextMarkup:
		return markupText(v.markup)
	case ValueDateTime:
		return v.t.Format("2006-01-02T15:04:05")
	case ValueTimeDuration:
		return FormatDuration(v.d)
	}
	return ""
}

// FormatDuration renders d as an ISO 8601 duration like PT1H2M3.5S.
func FormatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	sec := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	s := fmt.Sprintf("PT%dH%dM%sS", h, m, sec)
	if neg {
		return "-" + s
	}
	return s
}

// ParseDuration parses an ISO 8601 duration as written in
// office:time-value, e.g. "PT12H30M0S" or "-P1DT2H".
func ParseDuration(s string) (time.Duration, error) {
	orig := s
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("parse duration %q: missing P", orig)
	}
	s = s[1:]
	var d time.Duration
	inTime := false
	for s != "" {
		if s[0] == 'T' {
			inTime = true
			s = s[1:]
			continue
		}
		i := strings.IndexAny(s, "YMWDHS")
		if i <= 0 {
			return 0, fmt.Errorf("parse duration %q: bad component", orig)
		}
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", orig, err)
		}
		var unit time.Duration
		switch {
		case s[i] == 'D' && !inTime:
			unit = 24 * time.Hour
		case s[i] == 'W' && !inTime:
			unit = 7 * 24 * time.Hour
		case s[i] == 'H' && inTime:
			unit = time.Hour
		case s[i] == 'M' && inTime:
			unit = time.Minute
		case s[i] == 'S' && inTime:
			unit = time.Second
		default:
			return 0, fmt.Errorf("parse duration %q: unsupported unit %c", orig, s[i])
		}
		d += time.Duration(n * float64(unit))
		s = s[i+1:]
	}
	if neg {
		d = -d
	}
	return d, nil
}
