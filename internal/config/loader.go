package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the config directory.
const FileName = "match.yaml"

type File struct {
	Match MatchConfig `yaml:"match"`
	Run   RunConfig   `yaml:"run"`
}

// Default mirrors the prototype field: 3v3 on a 30x30 board, A spawning along
// the bottom strip and B along the top.
func Default() *File {
	return &File{
		Match: MatchConfig{
			RosterSize: 3,
			Board:      Vec2Def{X: 30, Y: 30},
			SpawnA: BoundsDef{
				Lo: Vec2Def{X: 0, Y: 0},
				Hi: Vec2Def{X: 30, Y: 10},
			},
			SpawnB: BoundsDef{
				Lo: Vec2Def{X: 0, Y: 20},
				Hi: Vec2Def{X: 30, Y: 30},
			},
			InteractionRadius: 20,
			Horizon:           200,
		},
		Run: RunConfig{
			PolicyA:  "random",
			PolicyB:  "stationary",
			Seed:     12345,
			Episodes: 1,
			Workers:  8,
			LogLevel: "info",
		},
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads dir/match.yaml over the defaults, so a file only needs the keys it
// changes.
func Load(dir string) (*File, error) {
	f := Default()
	path := filepath.Join(dir, FileName)
	if err := loadYAML(path, f); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := f.Match.Validate(); err != nil {
		return nil, fmt.Errorf("%s: match: %w", path, err)
	}
	if err := f.Run.Validate(); err != nil {
		return nil, fmt.Errorf("%s: run: %w", path, err)
	}
	return f, nil
}
