// Package config loads settings-search configuration from a file and the
// environment.
//
// Values are read with viper from YAML, TOML or JSON and can be overridden by
// SETTINGSEARCH_* environment variables, for example
// SETTINGSEARCH_FUZZY_THRESHOLD=0.3 or SETTINGSEARCH_ENGINE=bleve.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/settingsearch/catalog"
	"github.com/jonwraymond/settingsearch/fuzzy"
	"github.com/jonwraymond/settingsearch/search"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "SETTINGSEARCH"

// Engine names accepted by the engine key.
const (
	EngineBitap       = "bitap"
	EngineLevenshtein = "levenshtein"
	EngineSubsequence = "subsequence"
	EngineBleve       = "bleve"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// FuzzyConfig mirrors fuzzy.Options.
type FuzzyConfig struct {
	Threshold          float64 `mapstructure:"threshold"`
	Location           int     `mapstructure:"location"`
	Distance           int     `mapstructure:"distance"`
	MaxPatternLength   int     `mapstructure:"max_pattern_length"`
	MinMatchCharLength int     `mapstructure:"min_match_char_length"`
	CaseSensitive      bool    `mapstructure:"case_sensitive"`
}

// Options converts the section to fuzzy.Options.
func (c FuzzyConfig) Options() fuzzy.Options {
	return fuzzy.Options{
		Threshold:          c.Threshold,
		Location:           c.Location,
		Distance:           c.Distance,
		MaxPatternLength:   c.MaxPatternLength,
		MinMatchCharLength: c.MinMatchCharLength,
		CaseSensitive:      c.CaseSensitive,
	}
}

// BleveConfig configures the bleve engine.
type BleveConfig struct {
	Fuzziness     int  `mapstructure:"fuzziness"`
	DisablePrefix bool `mapstructure:"disable_prefix"`
}

// Config is the full settings-search configuration.
type Config struct {
	// Engine selects the fuzzy stage: bitap, levenshtein, subsequence or bleve.
	Engine string `mapstructure:"engine"`

	// Merge is the duplicate policy: dedupe or preserve.
	Merge string `mapstructure:"merge"`

	// Keys are the searched entry fields.
	Keys []string `mapstructure:"keys"`

	// Catalog is an optional path to a YAML registry document.
	Catalog string `mapstructure:"catalog"`

	// Messages maps localization keys to text for MapLocalizer.
	Messages map[string]string `mapstructure:"messages"`

	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level"`

	Fuzzy FuzzyConfig `mapstructure:"fuzzy"`
	Bleve BleveConfig `mapstructure:"bleve"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := fuzzy.DefaultOptions()
	return Config{
		Engine:   EngineBitap,
		Merge:    search.MergeDedupe.String(),
		Keys:     append([]string(nil), catalog.DefaultKeys...),
		LogLevel: "info",
		Fuzzy: FuzzyConfig{
			Threshold:          d.Threshold,
			Location:           d.Location,
			Distance:           d.Distance,
			MaxPatternLength:   d.MaxPatternLength,
			MinMatchCharLength: d.MinMatchCharLength,
			CaseSensitive:      d.CaseSensitive,
		},
		Bleve: BleveConfig{Fuzziness: 1},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine", d.Engine)
	v.SetDefault("merge", d.Merge)
	v.SetDefault("keys", d.Keys)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("fuzzy.threshold", d.Fuzzy.Threshold)
	v.SetDefault("fuzzy.location", d.Fuzzy.Location)
	v.SetDefault("fuzzy.distance", d.Fuzzy.Distance)
	v.SetDefault("fuzzy.max_pattern_length", d.Fuzzy.MaxPatternLength)
	v.SetDefault("fuzzy.min_match_char_length", d.Fuzzy.MinMatchCharLength)
	v.SetDefault("fuzzy.case_sensitive", d.Fuzzy.CaseSensitive)
	v.SetDefault("bleve.fuzziness", d.Bleve.Fuzziness)
	v.SetDefault("bleve.disable_prefix", d.Bleve.DisablePrefix)
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks engine, merge policy, keys, log level and fuzzy tuning.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineBitap, EngineLevenshtein, EngineSubsequence, EngineBleve:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown engine %q", c.Engine)
	}
	if _, err := search.ParseMergePolicy(c.Merge); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	for _, k := range c.Keys {
		if strings.TrimSpace(k) == "" {
			return errors.Wrap(ErrInvalidConfig, "empty field key")
		}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	if err := c.Fuzzy.Options().Validate(); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Localizer returns a MapLocalizer over Messages, or nil when none are set.
func (c Config) Localizer() catalog.Localizer {
	if len(c.Messages) == 0 {
		return nil
	}
	return catalog.MapLocalizer(c.Messages)
}

// MatcherOptions builds search.Options for the configured engine. The
// returned closer releases engine resources and is never nil.
func (c Config) MatcherOptions(logger *zap.Logger) (search.Options, func() error, error) {
	noop := func() error { return nil }

	merge, err := search.ParseMergePolicy(c.Merge)
	if err != nil {
		return search.Options{}, noop, errors.Mark(err, ErrInvalidConfig)
	}

	opts := search.Options{
		Keys:   append([]string(nil), c.Keys...),
		Fuzzy:  c.Fuzzy.Options(),
		Merge:  merge,
		Logger: logger,
	}

	switch c.Engine {
	case EngineBitap:
		opts.Ranker = fuzzy.NewSearcher(fuzzy.NewBitap(opts.Fuzzy))
	case EngineLevenshtein:
		opts.Ranker = fuzzy.NewSearcher(fuzzy.NewLevenshtein(opts.Fuzzy))
	case EngineSubsequence:
		opts.Ranker = fuzzy.NewSearcher(fuzzy.NewSubsequence(opts.Fuzzy))
	case EngineBleve:
		r, err := search.NewBleveRanker(search.BleveOptions{
			Fuzziness:     c.Bleve.Fuzziness,
			DisablePrefix: c.Bleve.DisablePrefix,
		})
		if err != nil {
			return search.Options{}, noop, errors.Mark(err, ErrInvalidConfig)
		}
		opts.Ranker = r
		return opts, r.Close, nil
	default:
		return search.Options{}, noop, errors.Wrapf(ErrInvalidConfig, "unknown engine %q", c.Engine)
	}
	return opts, noop, nil
}
