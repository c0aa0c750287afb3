package emu

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"yane/emu/log"
)

type Config struct {
	General   GeneralConfig   `toml:"general"`
	Emulation EmulationConfig `toml:"emulation"`
	Debug     DebugConfig     `toml:"debug"`

	TraceOut io.WriteCloser `toml:"-"`
}

type GeneralConfig struct {
	DefaultROM string `toml:"default_rom"`
}

type EmulationConfig struct {
	// Number of frames to run, 0 runs until stopped.
	Frames int `toml:"frames"`
}

type DebugConfig struct {
	LogModules  []string `toml:"log_modules"`
	TraceFile   string   `toml:"trace_file"`
	Breakpoints []string `toml:"breakpoints"`
	ReadWatch   []string `toml:"read_watch"`
	WriteWatch  []string `toml:"write_watch"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultROM: filepath.Join(".", "test-roms", "nestest.nes"),
		},
		Emulation: EmulationConfig{
			Frames: 60,
		},
	}
}

const cfgFilename = "config.toml"

// ConfigPath returns the path of the config file in the user config
// directory.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "yane", cfgFilename), nil
}

// LoadConfigOrDefault loads the configuration at path. An empty path means
// the user config directory. The default config is returned when the file
// doesn't exist, or can't be decoded.
func LoadConfigOrDefault(path string) Config {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			log.ModEmu.WarnZ("no user config directory").Error("err", err).End()
			return DefaultConfig()
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("failed to load config, using defaults").
				String("path", path).
				Error("err", err).
				End()
		}
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig decodes the configuration at path. Missing keys keep their
// default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown config key").String("key", key.String()).End()
	}
	return cfg, nil
}

// SaveConfig writes cfg at path, creating the parent directory if needed.
// An empty path means the user config directory.
func SaveConfig(cfg Config, path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
