package curvefile

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Well-known keys of .340 curve headers.
const (
	KeySensorModel   = "Sensor Model"
	KeySerialNumber  = "Serial Number"
	KeyDataFormat    = "Data Format"
	KeySetPointLimit = "SetPoint Limit"
	KeyCoefficient   = "Temperature coefficient"
	KeyBreakpoints   = "Number of Breakpoints"
)

// Field is a header line.
type Field struct {
	Key   string
	Value string
}

// Header holds the header fields of a curve file in file order.
type Header struct {
	Fields []Field
}

// Get returns the value for a key. Keys are matched case-insensitively.
func (h *Header) Get(key string) (string, bool) {
	for _, f := range h.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value of a key, or appends a new field.
func (h *Header) Set(key, value string) {
	for i, f := range h.Fields {
		if strings.EqualFold(f.Key, key) {
			h.Fields[i].Value = value
			return
		}
	}
	h.Fields = append(h.Fields, Field{Key: key, Value: value})
}

// SensorModel returns the sensor model, if present.
func (h *Header) SensorModel() string {
	v, _ := h.Get(KeySensorModel)
	return v
}

// SerialNumber returns the sensor's serial number, if present.
func (h *Header) SerialNumber() string {
	v, _ := h.Get(KeySerialNumber)
	return v
}

// DataFormat returns the numeric data format code. Explanations following
// the code, as in "4 (Log Ohms/Kelvin)", are ignored.
func (h *Header) DataFormat() (int, bool) {
	return h.number(KeyDataFormat)
}

// SetPointLimit returns the setpoint limit.
func (h *Header) SetPointLimit() (float64, bool) {
	v, ok := h.Get(KeySetPointLimit)
	if !ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(firstToken(v))
	return f, err == nil
}

// Breakpoints returns the number of breakpoints the header announces.
func (h *Header) Breakpoints() (int, bool) {
	for _, f := range h.Fields {
		if isBreakpointsKey(f.Key) {
			return decimal(f.Value)
		}
	}
	return 0, false
}

func (h *Header) number(key string) (int, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	return decimal(v)
}

// decimal reads the first token of a value as a base 10 integer. Leading
// zeros, as in "08", do not denote octal numbers.
func decimal(value string) (int, bool) {
	f, err := cast.ToFloat64E(firstToken(value))
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}

// Older files use "Breakpoints" instead of "Number of Breakpoints".
func isBreakpointsKey(key string) bool {
	return strings.EqualFold(key, KeyBreakpoints) || strings.EqualFold(key, "Breakpoints")
}

func firstToken(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
