package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/chunkwise"
	"github.com/tsawler/chunkwise/chunking"
)

// envPrefix is prepended to the upper-cased setting name to form the
// environment variable that overrides it, e.g. CHUNKWISE_MAX_CHARACTERS.
const envPrefix = "CHUNKWISE_"

// Config is the CLI configuration. Values are layered: a YAML config file,
// then CHUNKWISE_* environment variables, then command-line flags. Pointer
// fields are nil when no layer set them so the library default applies.
type Config struct {
	Strategy               string   `yaml:"strategy"`
	MaxCharacters          *int     `yaml:"max_characters"`
	NewAfterNChars         *int     `yaml:"new_after_n_chars"`
	CombineTextUnderNChars *int     `yaml:"combine_text_under_n_chars"`
	Overlap                int      `yaml:"overlap"`
	OverlapAll             bool     `yaml:"overlap_all"`
	IncludeOrigElements    *bool    `yaml:"include_orig_elements"`
	MultipageSections      *bool    `yaml:"multipage_sections"`
	Separators             []string `yaml:"separators"`
	NormalizeUnicode       bool     `yaml:"normalize_unicode"`
	LogLevel               string   `yaml:"log_level"`
	LogJSON                bool     `yaml:"log_json"`
}

// LoadConfig reads a YAML config file. An empty path yields an empty
// Config. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables found by lookup.
// CHUNKWISE_SEPARATORS holds a YAML flow sequence such as ["\n", ". "].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		return lookup(envPrefix + name)
	}

	if v, ok := get("STRATEGY"); ok {
		c.Strategy = v
	}
	for name, dst := range map[string]**int{
		"MAX_CHARACTERS":             &c.MaxCharacters,
		"NEW_AFTER_N_CHARS":          &c.NewAfterNChars,
		"COMBINE_TEXT_UNDER_N_CHARS": &c.CombineTextUnderNChars,
	} {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = &n
		}
	}
	if v, ok := get("OVERLAP"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sOVERLAP: %w", envPrefix, err)
		}
		c.Overlap = n
	}
	for name, dst := range map[string]*bool{
		"OVERLAP_ALL":       &c.OverlapAll,
		"NORMALIZE_UNICODE": &c.NormalizeUnicode,
		"LOG_JSON":          &c.LogJSON,
	} {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = b
		}
	}
	for name, dst := range map[string]**bool{
		"INCLUDE_ORIG_ELEMENTS": &c.IncludeOrigElements,
		"MULTIPAGE_SECTIONS":    &c.MultipageSections,
	} {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = &b
		}
	}
	if v, ok := get("SEPARATORS"); ok {
		var seps []string
		if err := yaml.Unmarshal([]byte(v), &seps); err != nil {
			return fmt.Errorf("%sSEPARATORS: %w", envPrefix, err)
		}
		c.Separators = seps
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// ApplyFlags overrides settings with every flag set on the command line.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "strategy":
			c.Strategy, err = flags.GetString(f.Name)
		case "max-characters":
			c.MaxCharacters, err = intFlag(flags, f.Name)
		case "new-after-n-chars":
			c.NewAfterNChars, err = intFlag(flags, f.Name)
		case "combine-text-under-n-chars":
			c.CombineTextUnderNChars, err = intFlag(flags, f.Name)
		case "overlap":
			c.Overlap, err = flags.GetInt(f.Name)
		case "overlap-all":
			c.OverlapAll, err = flags.GetBool(f.Name)
		case "include-orig-elements":
			c.IncludeOrigElements, err = boolFlag(flags, f.Name)
		case "multipage-sections":
			c.MultipageSections, err = boolFlag(flags, f.Name)
		case "separator":
			c.Separators, err = separatorFlag(flags, f.Name)
		case "normalize-unicode":
			c.NormalizeUnicode, err = flags.GetBool(f.Name)
		case "log-level":
			c.LogLevel, err = flags.GetString(f.Name)
		case "log-json":
			c.LogJSON, err = flags.GetBool(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	return nil
}

// Apply configures c on top of chunker.
func (c *Config) Apply(chunker *chunkwise.Chunker) (*chunkwise.Chunker, error) {
	strategy, err := chunking.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	chunker = chunker.Strategy(strategy).Overlap(c.Overlap)

	if c.MaxCharacters != nil {
		chunker = chunker.MaxCharacters(*c.MaxCharacters)
	}
	if c.NewAfterNChars != nil {
		chunker = chunker.NewAfterNChars(*c.NewAfterNChars)
	}
	if c.CombineTextUnderNChars != nil {
		chunker = chunker.CombineTextUnderNChars(*c.CombineTextUnderNChars)
	}
	if c.OverlapAll {
		chunker = chunker.OverlapAll()
	}
	if c.IncludeOrigElements != nil && !*c.IncludeOrigElements {
		chunker = chunker.ExcludeOrigElements()
	}
	if c.MultipageSections != nil && !*c.MultipageSections {
		chunker = chunker.SinglePageSections()
	}
	if c.Separators != nil {
		chunker = chunker.Separators(c.Separators...)
	}
	if c.NormalizeUnicode {
		chunker = chunker.NormalizeUnicode()
	}
	return chunker, nil
}

func intFlag(flags *pflag.FlagSet, name string) (*int, error) {
	n, err := flags.GetInt(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func boolFlag(flags *pflag.FlagSet, name string) (*bool, error) {
	b, err := flags.GetBool(name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// separatorFlag reads the repeated --separator flag. Each value is
// unescaped as a Go string literal body so "\n" means a newline.
func separatorFlag(flags *pflag.FlagSet, name string) ([]string, error) {
	raw, err := flags.GetStringArray(name)
	if err != nil {
		return nil, err
	}
	seps := make([]string, len(raw))
	for i, s := range raw {
		unquoted, err := strconv.Unquote(`"` + s + `"`)
		if err != nil {
			return nil, fmt.Errorf("separator %q: %w", s, err)
		}
		seps[i] = unquoted
	}
	return seps, nil
}
