// Package curvefile reads and writes files of curve breakpoints.
//
// A curve file holds one breakpoint per line, as two numbers separated by
// blanks or tabs. A line may start with a sequence number, which is
// discarded:
//
//	1   0.0102   475.0
//	2   0.0150   460.0
//	    0.0210   440.0
//
// Optionally the breakpoints are preceded by a header, as in LakeShore .340
// files. Header lines have the form "Key: value". Other lines in front of the
// breakpoints are column titles and are skipped, unless they look like a
// record of 2 or 3 fields ending in a number:
//
//	Sensor Model:   CX-1050-SD
//	Serial Number:  X12345
//	Data Format:    4      (Log Ohms/Kelvin)
//	SetPoint Limit: 325.0  (Kelvin)
//	Temperature coefficient: 1 (Negative)
//	Number of Breakpoints:   97
//
//	No.   Units      Temperature (K)
//
// Blank lines and lines with a single field are skipped. Any other line
// which is not a breakpoint results in a *ParseError.
package curvefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cast"
)

// tracer writes to trace with key 'bpcurve.file'
func tracer() tracing.Trace {
	return tracing.Select("bpcurve.file")
}

// ErrParse is wrapped by all errors for malformed curve files.
var ErrParse = errors.New("malformed curve file")

// ParseError describes a malformed line of a curve file.
type ParseError struct {
	Line int    // line number, starting at 1
	Text string // the offending line
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s: %q", ErrParse, e.Line, e.Msg, e.Text)
}

// Unwrap makes ParseError match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Curve is the content of a curve file.
type Curve struct {
	Header *Header         // nil if the file has no header
	Points []bpcurve.Pair // breakpoints in file order
}

// Read parses a curve from r. Breakpoints are returned as found, without
// checking their order.
func Read(r io.Reader) (*Curve, error) {
	c := &Curve{}
	hdr := &Header{}
	inData := false
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		text := sc.Text()
		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}
		if !inData {
			if key, value, ok := headerField(line); ok {
				hdr.Set(key, value)
				continue
			}
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			tracer().Debugf("line %d: skipping short record %q", lineno, line)
			continue
		}
		if !inData && !isNumber(fields[0]) && !looksLikeRecord(fields) {
			tracer().Infof("line %d: skipping title %q", lineno, line)
			continue
		}
		pt, err := record(fields)
		if err != nil {
			return nil, &ParseError{Line: lineno, Text: text, Msg: err.Error()}
		}
		inData = true
		c.Points = append(c.Points, pt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading curve: %w", err)
	}
	if len(hdr.Fields) > 0 {
		c.Header = hdr
		if n, ok := hdr.Breakpoints(); ok && n != len(c.Points) {
			tracer().Infof("header announces %d breakpoints, found %d", n, len(c.Points))
		}
	}
	tracer().Debugf("read %d breakpoints", len(c.Points))
	return c, nil
}

// ReadFile parses the curve file with the given name.
func ReadFile(name string) (*Curve, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Write writes a curve to w: the header, if present, then the numbered
// breakpoints. A header field for the number of breakpoints is updated to
// the actual count.
func Write(w io.Writer, c *Curve) error {
	bw := bufio.NewWriter(w)
	if c.Header != nil && len(c.Header.Fields) > 0 {
		for _, f := range c.Header.Fields {
			value := f.Value
			if isBreakpointsKey(f.Key) {
				value = strconv.Itoa(len(c.Points))
			}
			fmt.Fprintf(bw, "%-24s %s\n", f.Key+":", value)
		}
		fmt.Fprintln(bw)
	}
	for i, pt := range c.Points {
		fmt.Fprintf(bw, "%d\t%s\t%s\n", i+1, ftoa(pt.X()), ftoa(pt.Y()))
	}
	return bw.Flush()
}

// WriteFile writes a curve to the file with the given name, replacing it if
// it exists.
func WriteFile(name string, c *Curve) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Write(f, c); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}

// A breakpoint record: x y, or seq x y.
func record(fields []string) (bpcurve.Pair, error) {
	switch len(fields) {
	case 2:
	case 3:
		if !isNumber(fields[0]) {
			return 0, fmt.Errorf("sequence number %q is not a number", fields[0])
		}
		fields = fields[1:]
	default:
		return 0, fmt.Errorf("%d fields, expected 2 or 3", len(fields))
	}
	x, err := cast.ToFloat64E(fields[0])
	if err != nil {
		return 0, fmt.Errorf("x is not a number: %q", fields[0])
	}
	y, err := cast.ToFloat64E(fields[1])
	if err != nil {
		return 0, fmt.Errorf("y is not a number: %q", fields[1])
	}
	return bpcurve.P(x, y), nil
}

// A line of 2 or 3 fields ending in a number is taken for a breakpoint
// record, even if another field is malformed.
func looksLikeRecord(fields []string) bool {
	n := len(fields)
	return (n == 2 || n == 3) && isNumber(fields[n-1])
}

func isNumber(s string) bool {
	_, err := cast.ToFloat64E(s)
	return err == nil
}

// Header fields start with a key containing a letter, followed by a colon.
func headerField(line string) (string, string, bool) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !strings.ContainsFunc(key, isLetter) {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
