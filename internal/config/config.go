// Package config resolves runtime settings from defaults, an optional config
// file, ARENA_* environment variables (a .env file is honored) and CLI flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	DataDir     string
	PlayersPath string
	MatchesPath string
	DBPath      string
	LogLevel    string
	Venue       string
	Kickoff     time.Duration // offset from midnight
	Location    *time.Location
	TeamColors  [2]string
}

var defaults = map[string]any{
	"data_dir":     "data",
	"players_file": "players.csv",
	"matches_file": "matches.csv",
	"db_path":      "~/.arenametrics/arena.db",
	"log_level":    "info",
	"venue":        "Dok-Noord Arena",
	"kickoff":      "20:00",
	"timezone":     "Local",
	"team_colors":  "black,white",
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":  "data_dir",
	"db":        "db_path",
	"log-level": "log_level",
	"timezone":  "timezone",
}

// Load builds the configuration. flags may be nil. The "config" flag, when
// set, names an explicit config file; otherwise arenametrics.yaml is looked
// up in the working directory and in ~/.arenametrics.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("arena")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}
	return resolve(v)
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			path, err := homedir.Expand(f.Value.String())
			if err != nil {
				return fmt.Errorf("config path: %w", err)
			}
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", path, err)
			}
			return nil
		}
	}

	v.SetConfigName("arenametrics")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".arenametrics"))
	}
	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func resolve(v *viper.Viper) (*Config, error) {
	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("data_dir: %w", err)
	}
	dbPath, err := homedir.Expand(v.GetString("db_path"))
	if err != nil {
		return nil, fmt.Errorf("db_path: %w", err)
	}

	kickoff, err := ParseKickoff(v.GetString("kickoff"))
	if err != nil {
		return nil, err
	}

	loc, err := loadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, err
	}

	colors, err := teamColors(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		DataDir:     dataDir,
		PlayersPath: inDir(dataDir, v.GetString("players_file")),
		MatchesPath: inDir(dataDir, v.GetString("matches_file")),
		DBPath:      dbPath,
		LogLevel:    v.GetString("log_level"),
		Venue:       v.GetString("venue"),
		Kickoff:     kickoff,
		Location:    loc,
		TeamColors:  colors,
	}, nil
}

// ParseKickoff parses an "HH:MM" time of day.
func ParseKickoff(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("kickoff %q: expected HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// teamColors accepts a comma separated string or a YAML list.
func teamColors(v *viper.Viper) ([2]string, error) {
	var raw []string
	if s, ok := v.Get("team_colors").(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = v.GetStringSlice("team_colors")
	}
	if len(raw) != 2 {
		return [2]string{}, fmt.Errorf("team_colors: want two colors, got %d", len(raw))
	}
	var out [2]string
	for i, c := range raw {
		out[i] = strings.TrimSpace(c)
		if out[i] == "" || strings.ContainsAny(out[i], "[]") {
			return [2]string{}, fmt.Errorf("team_colors: invalid color %q", c)
		}
	}
	if out[0] == out[1] {
		return [2]string{}, fmt.Errorf("team_colors: both teams are %q", out[0])
	}
	return out, nil
}

func inDir(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}
