package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

type Configuration struct {
	Scan          ScanConfig          `koanf:"scan"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// ScanConfig holds the config-file side of a scan: candidate filtering that
// is too unwieldy for flags. The boolean switches live on the command line.
type ScanConfig struct {
	// regexp patterns; a candidate whose path matches any of them is skipped
	IgnorePatterns []string `koanf:"ignore_patterns"`
	// optional expression evaluated per candidate, e.g. `Size > 4096`
	Filter string `koanf:"filter"`
}

type NotificationsConfig struct {
	Detailed     bool                `koanf:"detailed"`
	SkipEmptyRun bool                `koanf:"skip_empty_run"`
	Service      NotificationService `koanf:"service"`
}

type NotificationService struct {
	Discord string `koanf:"discord"`
}

// Config is the active configuration, set by Init
var Config *Configuration

// Init loads the configuration file at configFilePath on top of defaults.
// A missing file is fine; defaults apply.
func Init(configFilePath string) error {
	cfg := &Configuration{}
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"notifications.detailed": true,
	}, "."), nil); err != nil {
		return errors.Wrap(err, "load default configuration")
	}

	if _, err := os.Stat(configFilePath); err == nil {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "load configuration file: %q", configFilePath)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat configuration file: %q", configFilePath)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return errors.Wrap(err, "unmarshal configuration")
	}

	Config = cfg
	return nil
}

// GetDefaultConfigDirectory returns the default config directory for appName,
// preferring a directory that already contains configFile next to the binary.
func GetDefaultConfigDirectory(appName string, configFile string) string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if _, err := os.Stat(filepath.Join(dir, configFile)); err == nil {
			return dir
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", appName)
}
