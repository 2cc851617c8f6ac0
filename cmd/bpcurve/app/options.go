package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/bpcurve/editor"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Tracer keys of all packages of the module.
var traceKeys = []string{"bpcurve", "bpcurve.editor", "bpcurve.file", "bpcurve.polygon"}

var traceLevels = map[string]tracing.TraceLevel{
	"error": tracing.LevelError,
	"info":  tracing.LevelInfo,
	"debug": tracing.LevelDebug,
}

// Options are the settings shared by all commands.
type Options struct {
	ConfigFile   string
	Divider      float64
	Duplicates   string
	NonNegativeX bool
	MaxPoints    int
	Trace        string
}

// fileConfig mirrors Options in a YAML config file. Absent keys leave the
// corresponding option untouched.
type fileConfig struct {
	Divider      *float64 `yaml:"divider"`
	Duplicates   *string  `yaml:"duplicates"`
	NonNegativeX *bool    `yaml:"nonNegativeX"`
	MaxPoints    *int     `yaml:"maxPoints"`
	Trace        *string  `yaml:"trace"`
}

// NewOptions returns options with default values.
func NewOptions() *Options {
	return &Options{
		Divider:    editor.DefaultDivider,
		Duplicates: editor.RejectDuplicates.String(),
		Trace:      "error",
	}
}

// AddFlags adds flags for options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "YAML file with default settings; flags take precedence")
	fs.Float64Var(&o.Divider, "divider", o.Divider, "section divider for inserted breakpoints, larger values stay closer to the original breakpoint")
	fs.StringVar(&o.Duplicates, "duplicates", o.Duplicates, "treatment of breakpoints sharing x with their predecessor: reject or drop")
	fs.BoolVar(&o.NonNegativeX, "non-negative-x", o.NonNegativeX, "reject curves with negative sensor values")
	fs.IntVar(&o.MaxPoints, "max-points", o.MaxPoints, "maximum number of breakpoints of the target device, 0 for no limit")
	fs.StringVar(&o.Trace, "trace", o.Trace, "trace level: error, info or debug")
}

// Complete reads the config file, if any. Values from the file are used for
// all options not set explicitly on the command line.
func (o *Options) Complete(fs *pflag.FlagSet) error {
	if o.ConfigFile == "" {
		return nil
	}
	data, err := os.ReadFile(o.ConfigFile)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config %s: %w", o.ConfigFile, err)
	}
	unset := func(name string) bool {
		return fs == nil || !fs.Changed(name)
	}
	if fc.Divider != nil && unset("divider") {
		o.Divider = *fc.Divider
	}
	if fc.Duplicates != nil && unset("duplicates") {
		o.Duplicates = *fc.Duplicates
	}
	if fc.NonNegativeX != nil && unset("non-negative-x") {
		o.NonNegativeX = *fc.NonNegativeX
	}
	if fc.MaxPoints != nil && unset("max-points") {
		o.MaxPoints = *fc.MaxPoints
	}
	if fc.Trace != nil && unset("trace") {
		o.Trace = *fc.Trace
	}
	return nil
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	var errs []error
	if !(o.Divider > 0) {
		errs = append(errs, fmt.Errorf("divider must be positive, is %g", o.Divider))
	}
	if _, err := editor.ParseDuplicatePolicy(o.Duplicates); err != nil {
		errs = append(errs, err)
	}
	if o.MaxPoints < 0 {
		errs = append(errs, fmt.Errorf("max-points must not be negative, is %d", o.MaxPoints))
	}
	if _, ok := traceLevels[strings.ToLower(o.Trace)]; !ok {
		errs = append(errs, fmt.Errorf("unknown trace level %q", o.Trace))
	}
	return multierr.Combine(errs...)
}

// ApplyTrace sets the trace level of all tracers.
func (o *Options) ApplyTrace() {
	level, ok := traceLevels[strings.ToLower(o.Trace)]
	if !ok {
		level = tracing.LevelError
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// Policy returns the validation policy for loading curves.
func (o *Options) Policy() (editor.Policy, error) {
	dp, err := editor.ParseDuplicatePolicy(o.Duplicates)
	if err != nil {
		return editor.Policy{}, err
	}
	return editor.Policy{
		Duplicates:   dp,
		NonNegativeX: o.NonNegativeX,
		MaxPoints:    o.MaxPoints,
	}, nil
}

// NewEditor creates an editor configured by the options.
func (o *Options) NewEditor() (*editor.Editor, error) {
	policy, err := o.Policy()
	if err != nil {
		return nil, err
	}
	ed := editor.New().WithPolicy(policy)
	if !ed.SetDivider(o.Divider) {
		return nil, fmt.Errorf("invalid divider %g", o.Divider)
	}
	return ed, nil
}
