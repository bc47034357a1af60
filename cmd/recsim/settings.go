package main

import (
	"fmt"

	"github.com/scttfrdmn/recsim-go/pkg/bench"
	"github.com/scttfrdmn/recsim-go/pkg/recsim"
	"github.com/spf13/viper"
)

// settings mirrors the config file layout and is unmarshalled from viper,
// which merges flags, environment and file values
type settings struct {
	Simulate simulateSettings `mapstructure:"simulate"`
	Bench    benchSettings    `mapstructure:"bench"`
}

type simulateSettings struct {
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	Mode       string `mapstructure:"mode"`
	Events     int    `mapstructure:"events"`
	PoolExtra  int    `mapstructure:"pool-extra"`
	Seed       uint64 `mapstructure:"seed"`
	Originals  string `mapstructure:"originals"`
	Index      bool   `mapstructure:"index"`
	NoManifest bool   `mapstructure:"no-manifest"`

	seedSet bool
}

type benchSettings struct {
	Executable string `mapstructure:"executable"`
	Input      string `mapstructure:"input"`
	Settings   string `mapstructure:"settings"`
	LogsDir    string `mapstructure:"logs-dir"`
	OutDir     string `mapstructure:"out-dir"`
	From       int    `mapstructure:"from"`
	To         int    `mapstructure:"to"`
}

func loadSettings() (settings, error) {
	var s settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("unable to decode settings: %w", err)
	}
	// an unset seed and --seed 0 both decode to 0
	s.Simulate.seedSet = viper.IsSet("simulate.seed")
	return s, nil
}

// runConfig converts simulate settings into a validated RunConfig
func (s simulateSettings) runConfig() (*recsim.RunConfig, error) {
	mode, err := recsim.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	originals, err := recsim.ParseOriginalsPolicy(s.Originals)
	if err != nil {
		return nil, err
	}

	config := recsim.NewRunConfig()
	config.InputPath = s.Input
	config.OutputPath = s.Output
	config.Mode = mode
	config.EventCount = s.Events
	config.PoolExtra = s.PoolExtra
	if s.seedSet {
		seed := s.Seed
		config.Seed = &seed
	}
	config.Originals = originals
	config.WriteIndex = s.Index
	config.WriteManifest = !s.NoManifest

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (s benchSettings) config() *bench.Config {
	config := bench.NewConfig()
	config.Executable = s.Executable
	config.InputFasta = s.Input
	config.SettingsFile = s.Settings
	config.LogsDir = s.LogsDir
	config.OutDir = s.OutDir
	config.FromThreads = s.From
	config.ToThreads = s.To
	return config
}
