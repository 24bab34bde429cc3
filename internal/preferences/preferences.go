package preferences

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"gopkg.in/ini.v1"
)

const (
	// DefaultFile is the settings file used when none is given.
	DefaultFile = "preferences.ini"

	generalSection = "General"
	headerSection  = "Header"
)

// ErrInvalidRange is returned for a point column range that is empty or negative.
var ErrInvalidRange = errors.New("invalid point column range")

// ErrUnknownKey is returned when setting a key the tool does not know.
var ErrUnknownKey = errors.New("unknown settings key")

// LaunchMode selects where the roster is loaded from.
type LaunchMode int

const (
	LaunchWebsite LaunchMode = iota
	LaunchFile
	LaunchRestore
	LaunchTemplate
)

var launchModeNames = []string{"Website", "File", "Restore", "Template"}

func (m LaunchMode) String() string {
	if m < 0 || int(m) >= len(launchModeNames) {
		return fmt.Sprintf("LaunchMode(%d)", int(m))
	}
	return launchModeNames[m]
}

// ParseLaunchMode accepts a mode name ("website", "File", ...) or its number.
func ParseLaunchMode(s string) (LaunchMode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(launchModeNames) {
			return 0, fmt.Errorf("invalid launch mode: %d", n)
		}
		return LaunchMode(n), nil
	}
	for i, name := range launchModeNames {
		if strings.EqualFold(name, s) {
			return LaunchMode(i), nil
		}
	}
	return 0, fmt.Errorf("invalid launch mode: %q", s)
}

// Settings holds every value of the settings file the tool uses.
type Settings struct {
	LaunchMode   LaunchMode  `json:"launch_mode" yaml:"launch_mode"`
	WebsiteURL   string      `json:"website_url" yaml:"website_url"`
	FilePath     string      `json:"file_path" yaml:"file_path"`
	NameField    string      `json:"name_field" yaml:"name_field"`
	SumField     string      `json:"sum_field" yaml:"sum_field"`
	PointIndices roster.Span `json:"point_indices" yaml:"point_indices"`
}

// Defaults returns the settings used for keys missing from the file.
func Defaults() Settings {
	return Settings{
		LaunchMode:   LaunchWebsite,
		WebsiteURL:   "http://monoid.mathematik.uni-mainz.de/loeser.php",
		FilePath:     "",
		NameField:    "Name",
		SumField:     "Summe",
		PointIndices: roster.Span{Start: 3, End: 7},
	}
}

// ParseSpan parses a point column range written as "start-end".
func ParseSpan(s string) (roster.Span, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return roster.Span{}, fmt.Errorf("%w: %q (want start-end)", ErrInvalidRange, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return roster.Span{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return roster.Span{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	span := roster.Span{Start: start, End: end}
	if err := validateSpan(span); err != nil {
		return roster.Span{}, err
	}
	return span, nil
}

func validateSpan(span roster.Span) error {
	if span.Start < 0 || span.End <= span.Start {
		return fmt.Errorf("%w: %s", ErrInvalidRange, span)
	}
	return nil
}

// spanDefaults fills a point range only when it is entirely unset.
// Field-wise merging would turn a configured "0-4" into "3-4".
type spanDefaults struct{}

func (spanDefaults) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(roster.Span{}) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && dst.Interface().(roster.Span) == (roster.Span{}) {
			dst.Set(src)
		}
		return nil
	}
}

// Load reads the settings file at path. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := &Settings{}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing settings file: %w", err)
		}
	} else {
		cfg, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading settings file: %w", err)
		}
		if err := settings.read(cfg); err != nil {
			return nil, err
		}
	}

	if err := mergo.Merge(settings, Defaults(), mergo.WithTransformers(spanDefaults{})); err != nil {
		return nil, fmt.Errorf("applying default settings: %w", err)
	}

	return settings, nil
}

func (s *Settings) read(cfg *ini.File) error {
	general := cfg.Section(generalSection)
	if general.HasKey("launch_mode") {
		mode, err := ParseLaunchMode(general.Key("launch_mode").String())
		if err != nil {
			return err
		}
		s.LaunchMode = mode
	}
	s.WebsiteURL = general.Key("website_url").String()
	s.FilePath = general.Key("file_path").String()

	header := cfg.Section(headerSection)
	s.NameField = header.Key("name_field").String()
	s.SumField = header.Key("sum_field").String()
	if header.HasKey("point_indices") {
		span, err := ParseSpan(header.Key("point_indices").String())
		if err != nil {
			return err
		}
		s.PointIndices = span
	}

	return nil
}

// Save writes the settings to path. Keys already in the file that the tool
// does not manage are preserved.
func (s *Settings) Save(path string) error {
	cfg := ini.Empty()
	if _, err := os.Stat(path); err == nil {
		loaded, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("loading settings file: %w", err)
		}
		cfg = loaded
	}

	for _, kv := range s.Values() {
		section, key := splitKey(kv[0])
		cfg.Section(section).Key(key).SetValue(kv[1])
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Values lists every managed key as "Section/key" with its file value.
func (s *Settings) Values() [][2]string {
	return [][2]string{
		{"General/launch_mode", strconv.Itoa(int(s.LaunchMode))},
		{"General/website_url", s.WebsiteURL},
		{"General/file_path", s.FilePath},
		{"Header/name_field", s.NameField},
		{"Header/sum_field", s.SumField},
		{"Header/point_indices", s.PointIndices.String()},
	}
}

// Set changes one setting. The key may be given with or without its section.
func (s *Settings) Set(key, value string) error {
	_, name := splitKey(key)

	switch strings.ToLower(name) {
	case "launch_mode":
		mode, err := ParseLaunchMode(value)
		if err != nil {
			return err
		}
		s.LaunchMode = mode
	case "website_url":
		s.WebsiteURL = value
	case "file_path":
		s.FilePath = value
	case "name_field":
		s.NameField = value
	case "sum_field":
		s.SumField = value
	case "point_indices":
		span, err := ParseSpan(value)
		if err != nil {
			return err
		}
		s.PointIndices = span
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func splitKey(key string) (string, string) {
	if section, name, ok := strings.Cut(key, "/"); ok {
		return section, name
	}
	return generalSection, key
}

// Columns are the positions of the configured columns within one table.
type Columns struct {
	Name   int
	Sum    int
	Points roster.Span
}

// Columns resolves the configured column labels and point range against the
// headers of t.
func (s *Settings) Columns(t *roster.Table) (Columns, error) {
	name, err := t.Index(s.NameField)
	if err != nil {
		return Columns{}, fmt.Errorf("name field: %w", err)
	}
	sum, err := t.Index(s.SumField)
	if err != nil {
		return Columns{}, fmt.Errorf("sum field: %w", err)
	}
	if err := validateSpan(s.PointIndices); err != nil {
		return Columns{}, err
	}
	if s.PointIndices.End > len(t.Headers) {
		return Columns{}, fmt.Errorf("%w: %s exceeds %d columns", ErrInvalidRange, s.PointIndices, len(t.Headers))
	}

	return Columns{
		Name:   name,
		Sum:    sum,
		Points: s.PointIndices,
	}, nil
}
