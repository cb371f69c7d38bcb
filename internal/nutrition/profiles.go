package nutrition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a named serving profile does not exist.
var ErrUnknownProfile = errors.New("nutrition: unknown profile")

// Profiles maps profile names (lower case) to calculation options.
type Profiles map[string]Options

type profileFile struct {
	Profiles map[string]profileEntry `yaml:"profiles"`
}

// profileEntry uses pointers so that omitted keys keep the package defaults
// while explicit zeros are honoured.
type profileEntry struct {
	YieldLossPercent       *float64 `yaml:"yield_loss_percent"`
	OverrunPercent         *float64 `yaml:"overrun_percent"`
	ServingSizeG           *float64 `yaml:"serving_size_g"`
	ServingSizeDescription *string  `yaml:"serving_size_description"`
}

// LoadProfiles reads a YAML profiles file. An empty path yields no profiles.
func LoadProfiles(path string) (Profiles, error) {
	if strings.TrimSpace(path) == "" {
		return Profiles{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer file.Close()
	return ParseProfiles(file)
}

// ParseProfiles decodes profiles and validates each one.
func ParseProfiles(r io.Reader) (Profiles, error) {
	var doc profileFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Profiles{}, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make(Profiles, len(doc.Profiles))
	for name, entry := range doc.Profiles {
		key := normalizeProfileName(name)
		if key == "" {
			return nil, errors.New("decode profiles: profile name must not be empty")
		}
		opts := entry.apply(DefaultOptions())
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[key] = opts
	}
	return profiles, nil
}

func (e profileEntry) apply(opts Options) Options {
	if e.YieldLossPercent != nil {
		opts.YieldLossPercent = *e.YieldLossPercent
	}
	if e.OverrunPercent != nil {
		opts.OverrunPercent = *e.OverrunPercent
	}
	if e.ServingSizeG != nil {
		opts.ServingSizeG = *e.ServingSizeG
	}
	if e.ServingSizeDescription != nil {
		opts.ServingSizeDescription = *e.ServingSizeDescription
	}
	return opts
}

// Options returns the named profile, or the defaults when name is blank.
func (p Profiles) Options(name string) (Options, error) {
	key := normalizeProfileName(name)
	if key == "" {
		return DefaultOptions(), nil
	}
	opts, ok := p[key]
	if !ok {
		return Options{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return opts, nil
}

// Names lists the configured profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeProfileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
