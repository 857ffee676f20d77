package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the resolved configuration of one sortbench invocation.
type Settings struct {
	Sizes         []int
	Runs          int
	Distributions []string
	Verify        bool
	Seed          uint64

	Format    string
	Narrative bool
	NoColor   bool

	Save      bool
	Compare   bool
	Threshold float64

	// FailOnRegression turns slower cells in a comparison into an error.
	FailOnRegression bool
	StoreType        string
	StorePath        string

	MetricsFile string
	MetricsAddr string

	Verbose bool
	LogFile string
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("sizes", benchmark.DefaultSizes)
	viper.SetDefault("runs", benchmark.DefaultRuns)
	viper.SetDefault("distributions", []string{
		string(dataset.Random), string(dataset.Sorted), string(dataset.ReverseSorted),
	})
	viper.SetDefault("verify", true)
	viper.SetDefault("seed", 0)
	viper.SetDefault("format", "text")
	viper.SetDefault("narrative", true)
	viper.SetDefault("no_color", false)
	viper.SetDefault("save", false)
	viper.SetDefault("compare", false)
	viper.SetDefault("threshold", 10.0)
	viper.SetDefault("fail_on_regression", false)
	viper.SetDefault("store.type", "json")
	viper.SetDefault("store.path", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; nothing is written to disk.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("sortbench")
	}

	viper.SetEnvPrefix("SORTBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Current resolves the Settings from viper.
func Current() (Settings, error) {
	sizes, err := intList("sizes")
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Sizes:            sizes,
		Runs:             viper.GetInt("runs"),
		Distributions:    stringList("distributions"),
		Verify:           viper.GetBool("verify"),
		Seed:             viper.GetUint64("seed"),
		Format:           strings.ToLower(viper.GetString("format")),
		Narrative:        viper.GetBool("narrative"),
		NoColor:          viper.GetBool("no_color"),
		Save:             viper.GetBool("save"),
		Compare:          viper.GetBool("compare"),
		Threshold:        viper.GetFloat64("threshold"),
		FailOnRegression: viper.GetBool("fail_on_regression"),
		StoreType:        strings.ToLower(viper.GetString("store.type")),
		StorePath:        viper.GetString("store.path"),
		MetricsFile:      viper.GetString("metrics_file"),
		MetricsAddr:      viper.GetString("metrics_addr"),
		Verbose:          viper.GetBool("verbose"),
		LogFile:          viper.GetString("log_file"),
	}, nil
}

// BenchmarkConfig converts the settings into a driver config. Unknown
// distribution tags are rejected with an invalid-argument error.
func (s Settings) BenchmarkConfig() (benchmark.Config, error) {
	cfg := benchmark.Config{
		Sizes:  append([]int(nil), s.Sizes...),
		Runs:   s.Runs,
		Verify: s.Verify,
		Seed:   s.Seed,
	}
	for _, tag := range s.Distributions {
		d, err := dataset.ParseDistribution(tag)
		if err != nil {
			return benchmark.Config{}, err
		}
		cfg.Distributions = append(cfg.Distributions, d)
	}
	return cfg, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// stringList reads a list that may come from YAML, a flag, or a comma
// separated environment variable.
func stringList(key string) []string {
	switch v := viper.Get(key).(type) {
	case nil:
		return nil
	case string:
		return splitList(v)
	default:
		var out []string
		for _, item := range viper.GetStringSlice(key) {
			out = append(out, splitList(item)...)
		}
		return out
	}
}

func intList(key string) ([]int, error) {
	var raw []string
	switch v := viper.Get(key).(type) {
	case nil:
		return nil, nil
	case []int:
		return append([]int(nil), v...), nil
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = stringList(key)
	}

	out := make([]int, 0, len(raw))
	for _, item := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, item)
		}
		out = append(out, n)
	}
	return out, nil
}
