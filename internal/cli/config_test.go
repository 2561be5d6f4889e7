package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/chunkwise"
	"github.com/tsawler/chunkwise/chunking"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "chunkwise.yaml", `
strategy: by_title
max_characters: 800
new_after_n_chars: 600
overlap: 40
overlap_all: true
include_orig_elements: false
separators: ["\n\n", ". "]
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "by_title", cfg.Strategy)
	require.NotNil(t, cfg.MaxCharacters)
	assert.Equal(t, 800, *cfg.MaxCharacters)
	require.NotNil(t, cfg.NewAfterNChars)
	assert.Equal(t, 600, *cfg.NewAfterNChars)
	assert.Nil(t, cfg.CombineTextUnderNChars)
	assert.Equal(t, 40, cfg.Overlap)
	assert.True(t, cfg.OverlapAll)
	require.NotNil(t, cfg.IncludeOrigElements)
	assert.False(t, *cfg.IncludeOrigElements)
	assert.Nil(t, cfg.MultipageSections)
	assert.Equal(t, []string{"\n\n", ". "}, cfg.Separators)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	cfg, err = LoadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, "unknown.yaml", "max_chars: 10\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "max_characters: lots\n"))
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := &Config{Strategy: "basic", Overlap: 5}

	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"CHUNKWISE_STRATEGY":                   "by_title",
		"CHUNKWISE_MAX_CHARACTERS":             "300",
		"CHUNKWISE_COMBINE_TEXT_UNDER_N_CHARS": "0",
		"CHUNKWISE_OVERLAP_ALL":                "true",
		"CHUNKWISE_MULTIPAGE_SECTIONS":         "false",
		"CHUNKWISE_SEPARATORS":                 `["\n", "; "]`,
		"CHUNKWISE_LOG_JSON":                   "1",
		"UNRELATED":                            "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, "by_title", cfg.Strategy)
	assert.Equal(t, 300, *cfg.MaxCharacters)
	assert.Equal(t, 0, *cfg.CombineTextUnderNChars)
	assert.Nil(t, cfg.NewAfterNChars)
	assert.Equal(t, 5, cfg.Overlap, "unset variables keep earlier values")
	assert.True(t, cfg.OverlapAll)
	assert.False(t, *cfg.MultipageSections)
	assert.Equal(t, []string{"\n", "; "}, cfg.Separators)
	assert.True(t, cfg.LogJSON)
}

func TestConfig_ApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"CHUNKWISE_MAX_CHARACTERS":        "many",
		"CHUNKWISE_OVERLAP":               "1.5",
		"CHUNKWISE_OVERLAP_ALL":           "sometimes",
		"CHUNKWISE_INCLUDE_ORIG_ELEMENTS": "maybe",
		"CHUNKWISE_SEPARATORS":            "[unterminated",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			err := (&Config{}).ApplyEnv(mapLookup(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--max-characters", "120",
		"--separator", `\n`,
		"--separator", ". ",
		"--include-orig-elements=false",
	}))

	three := 3
	cfg := &Config{MaxCharacters: &three, Overlap: 7, Strategy: "by_title"}
	require.NoError(t, cfg.ApplyFlags(cmd.Flags()))

	assert.Equal(t, 120, *cfg.MaxCharacters)
	assert.Equal(t, []string{"\n", ". "}, cfg.Separators)
	assert.False(t, *cfg.IncludeOrigElements)
	assert.Equal(t, 7, cfg.Overlap, "unchanged flags keep earlier values")
	assert.Equal(t, "by_title", cfg.Strategy)
	assert.Nil(t, cfg.NewAfterNChars)
}

func TestConfig_ApplyFlags_BadSeparator(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--separator", `\q`}))

	err := (&Config{}).ApplyFlags(cmd.Flags())
	assert.Error(t, err)
}

func TestConfig_Apply(t *testing.T) {
	maxChars, combine := 200, 0
	include, multipage := false, false
	cfg := &Config{
		Strategy:               "by_title",
		MaxCharacters:          &maxChars,
		CombineTextUnderNChars: &combine,
		Overlap:                10,
		OverlapAll:             true,
		IncludeOrigElements:    &include,
		MultipageSections:      &multipage,
		Separators:             []string{"|"},
	}

	chunker, err := cfg.Apply(chunkwise.FromElements(nil))
	require.NoError(t, err)
	opts, err := chunker.Options()
	require.NoError(t, err)

	assert.Equal(t, chunking.StrategyByTitle, opts.Strategy())
	assert.Equal(t, 200, opts.HardMax())
	assert.Equal(t, 0, opts.CombineTextUnderNChars())
	assert.Equal(t, 10, opts.InterChunkOverlap())
	assert.False(t, opts.IncludeOrigElements())
	assert.Len(t, opts.BoundaryPredicates(), 2)
	assert.Equal(t, []string{"|"}, opts.TextSplittingSeparators())
}

func TestConfig_Apply_UnknownStrategy(t *testing.T) {
	_, err := (&Config{Strategy: "by_page"}).Apply(chunkwise.FromElements(nil))
	assert.ErrorIs(t, err, chunking.ErrInvalidConfiguration)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLogger(os.Stderr, tt.level, false).GetLevel())
		})
	}
}
