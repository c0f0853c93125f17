package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/service/fetcher"
)

// Settings holds the defaults a swap run starts from.
type Settings struct {
	// Runtime selects which NW.js build is downloaded.
	Runtime RuntimeSettings `yaml:"runtime" mapstructure:"runtime"`
	// Game controls what happens to the game folder.
	Game GameSettings `yaml:"game" mapstructure:"game"`
	// Cleanup controls which runtime files are stripped after install.
	Cleanup CleanupSettings `yaml:"cleanup" mapstructure:"cleanup"`
	// Log controls console output.
	Log LogSettings `yaml:"log" mapstructure:"log"`
}

// RuntimeSettings selects the NW.js build.
type RuntimeSettings struct {
	// BaseURL is the download host, without a trailing slash.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Version is the NW.js release, e.g. v0.49.2.
	Version string `yaml:"version" mapstructure:"version"`
	// SDK selects the SDK flavor with developer tools.
	SDK bool `yaml:"sdk" mapstructure:"sdk"`
}

// GameSettings controls the game folder.
type GameSettings struct {
	// ExecutableName is the name given to the runtime executable, without suffix.
	ExecutableName string `yaml:"executable_name" mapstructure:"executable_name"`
	// Backup copies the whole game folder aside before touching it.
	Backup bool `yaml:"backup" mapstructure:"backup"`
	// Shortcut creates a desktop shortcut on Windows.
	Shortcut bool `yaml:"shortcut" mapstructure:"shortcut"`
}

// CleanupSettings controls post-install cleanup.
type CleanupSettings struct {
	// KeepLocale is the only locale left in the locales folder.
	KeepLocale string `yaml:"keep_locale" mapstructure:"keep_locale"`
	// Extra names are removed in addition to the built-in cleanup list.
	Extra []string `yaml:"extra,omitempty" mapstructure:"extra"`
}

// LogSettings controls console output.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}

const (
	// AppName names the settings folder under the XDG config home.
	AppName = "nwjs-swap"

	// DefaultConfigFilename is the settings file searched for.
	DefaultConfigFilename = AppName + ".yaml"

	// EnvPrefix prefixes environment overrides, e.g. NWJS_SWAP_RUNTIME_VERSION.
	EnvPrefix = "NWJS_SWAP"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	configName = AppName
	configType = "yaml"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errExecutableNameRequired is returned when the executable name is blank.
	errExecutableNameRequired = errors.New("executable name must be provided")
	// errLocaleRequired is returned when the kept locale is blank.
	errLocaleRequired = errors.New("locale to keep must be provided")
	// errBadBaseURL is returned for a base URL that is not an absolute http(s) URL.
	errBadBaseURL = errors.New("base URL must be an absolute http or https URL")
	// errBadLogLevel is returned for an unknown log level.
	errBadLogLevel = errors.New("unknown log level")
)

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Runtime: RuntimeSettings{
			BaseURL: fetcher.DefaultBaseURL,
			Version: fetcher.DefaultVersion,
			SDK:     true,
		},
		Game: GameSettings{
			ExecutableName: game.DefaultExecutableName,
			Backup:         true,
			Shortcut:       true,
		},
		Cleanup: CleanupSettings{
			KeepLocale: game.DefaultLocale,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// DefaultPath returns the settings file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFilename)
}

// Load reads settings from path, or searches the working directory and the
// XDG config home when path is empty. A missing settings file found by the
// search yields the defaults; an explicit path must exist.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType(configType)

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path, creating its folder.
func Save(path string, cfg *Settings) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultPath()
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return fmt.Errorf("create settings folder: %w", err)
	}

	// Restrict permissions.
	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and normalizes the version and executable name.
func Validate(settings *Settings) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	baseURL, err := url.ParseRequestURI(settings.Runtime.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return fmt.Errorf("%s: %w", settings.Runtime.BaseURL, errBadBaseURL)
	}

	settings.Runtime.BaseURL = strings.TrimRight(settings.Runtime.BaseURL, "/")

	settings.Runtime.Version = fetcher.NormalizeVersion(settings.Runtime.Version)
	if err = fetcher.ValidateVersion(settings.Runtime.Version); err != nil {
		return err
	}

	settings.Game.ExecutableName = strings.TrimSpace(settings.Game.ExecutableName)
	if settings.Game.ExecutableName == "" {
		return errExecutableNameRequired
	}

	if err = game.CheckExecutableName(settings.Game.ExecutableName); err != nil {
		return err
	}

	settings.Cleanup.KeepLocale = strings.TrimSpace(settings.Cleanup.KeepLocale)
	if settings.Cleanup.KeepLocale == "" {
		return errLocaleRequired
	}

	if _, ok := logger.ParseLogLevel(settings.Log.Level); !ok {
		return fmt.Errorf("%q: %w", settings.Log.Level, errBadLogLevel)
	}

	return nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, defaults *Settings) {
	v.SetDefault("runtime.base_url", defaults.Runtime.BaseURL)
	v.SetDefault("runtime.version", defaults.Runtime.Version)
	v.SetDefault("runtime.sdk", defaults.Runtime.SDK)
	v.SetDefault("game.executable_name", defaults.Game.ExecutableName)
	v.SetDefault("game.backup", defaults.Game.Backup)
	v.SetDefault("game.shortcut", defaults.Game.Shortcut)
	v.SetDefault("cleanup.keep_locale", defaults.Cleanup.KeepLocale)
	v.SetDefault("cleanup.extra", []string{})
	v.SetDefault("log.level", defaults.Log.Level)
}
