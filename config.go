package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"famicore/emu/log"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Audio   AudioConfig   `toml:"audio"`
}

type GeneralConfig struct {
	// Palette is the path of a 192-byte RGB palette file overriding the
	// built-in one.
	Palette string `toml:"palette"`
}

type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

func defaultConfig() Config {
	return Config{
		Audio: AudioConfig{SampleRate: 44100},
	}
}

var configDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("famicore")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// loadConfigOrDefault loads the configuration from the famicore config
// directory, or provides a default one.
func loadConfigOrDefault() Config {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(filepath.Join(configDir(), cfgFilename), &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 44100
	}
	return cfg
}

// saveConfig writes cfg into the famicore config directory.
func saveConfig(cfg Config) error {
	f, err := os.Create(filepath.Join(configDir(), cfgFilename))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
