// Package odsheet reads, writes and extracts OpenDocument spreadsheets.
package odsheet

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/output"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts cells and table candidates only (no shapes or charts).
	ModeLight Mode = "light"
	// ModeStandard extracts cells, frames with text or images, charts, and table candidates.
	ModeStandard Mode = "standard"
	// ModeVerbose extracts all data including frame and chart dimensions and cell hyperlinks.
	ModeVerbose Mode = "verbose"
)

// ParseMode validates a mode name. The empty string is ModeStandard.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeStandard, nil
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", s)
}

// Options configures reading, writing and extraction.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode `yaml:"mode"`
	// IncludeLinks specifies whether to include cell hyperlinks.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeLinks *bool `yaml:"include_links"`
	// IncludePrintAreas specifies whether to include print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool `yaml:"include_print_areas"`

	// ContentOnly skips styles, metadata and view settings on read.
	ContentOnly bool `yaml:"content_only"`
	// IgnoreEmptyCells drops cells that carry nothing.
	IgnoreEmptyCells bool `yaml:"ignore_empty_cells"`
	// UseCloneForRepeat stores each repetition of a repeated cell separately.
	UseCloneForRepeat bool `yaml:"use_clone_for_repeat"`
	// UseRepeatForEmpty keeps runs of empty cells compressed on read and
	// writes unset columns as one repeated cell.
	UseRepeatForEmpty bool `yaml:"use_repeat_for_empty"`

	// Logger receives debug records. nil discards.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// LoadOptions decodes a YAML options document on top of DefaultOptions.
// Unknown keys are an error.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return Options{}, err
	}
	opts.Mode = mode
	return opts, nil
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return o.Mode == ModeVerbose
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}

// ReadPolicy returns the cell policy applied while reading.
func (o Options) ReadPolicy() sheet.ReadPolicy {
	return sheet.ReadPolicy{
		IgnoreEmptyCells:  o.IgnoreEmptyCells,
		UseCloneForRepeat: o.UseCloneForRepeat,
		UseRepeatForEmpty: o.UseRepeatForEmpty,
	}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeStandard
	}
	return o.Mode
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) parserConfig() parser.Config {
	return parser.Config{ContentOnly: o.ContentOnly, Policy: o.ReadPolicy(), Logger: o.Logger}
}

func (o Options) outputConfig() output.Config {
	return output.Config{RepeatForEmpty: o.UseRepeatForEmpty, Logger: o.Logger}
}
