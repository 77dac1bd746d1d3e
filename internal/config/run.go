package config

import "fmt"

// RunConfig drives the CLI: which policies steer each squad and how many
// episodes to play.
type RunConfig struct {
	PolicyA  string `yaml:"policy_a"`
	PolicyB  string `yaml:"policy_b"`
	Seed     int64  `yaml:"seed"`
	Episodes int    `yaml:"episodes"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

func (rc *RunConfig) Validate() error {
	if rc.Episodes < 1 {
		return fmt.Errorf("episodes must be at least 1, got %d", rc.Episodes)
	}
	if rc.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", rc.Workers)
	}
	return nil
}
