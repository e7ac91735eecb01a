package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	ListenAddr   string `mapstructure:"listen_addr" yaml:"listen_addr"`
	CacheEntries int    `mapstructure:"cache_entries" yaml:"cache_entries"`
	DefaultTopN  int    `mapstructure:"default_top_n" yaml:"default_top_n"`
	MaxRows      int    `mapstructure:"max_rows" yaml:"max_rows"`

	// Dataset file names, resolved relative to DataDir.
	MBTIFile      string `mapstructure:"mbti_file" yaml:"mbti_file"`
	RidershipFile string `mapstructure:"ridership_file" yaml:"ridership_file"`
	HourlyFile    string `mapstructure:"hourly_file" yaml:"hourly_file"`
	ActivistsFile string `mapstructure:"activists_file" yaml:"activists_file"`
	CrimeFile     string `mapstructure:"crime_file" yaml:"crime_file"`
}

// DatasetPath resolves a dataset file name against DataDir. Absolute names
// pass through.
func (c *Global) DatasetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.csvdash/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvdash")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVDASH")
	v.AutomaticEnv()

	v.SetDefault("data_dir", "data")
	v.SetDefault("listen_addr", "127.0.0.1:8980")
	v.SetDefault("cache_entries", 16)
	v.SetDefault("default_top_n", 10)
	v.SetDefault("max_rows", 0)
	v.SetDefault("mbti_file", "countriesMBTI_16types.csv")
	v.SetDefault("ridership_file", "subway_daily.csv")
	v.SetDefault("hourly_file", "subway_hourly.csv")
	v.SetDefault("activists_file", "activists.csv")
	v.SetDefault("crime_file", "crime.csv")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvdash")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
