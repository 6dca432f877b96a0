package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/zalando/go-keyring"
)

// Settings holds the user-tunable values read from settings.toml.
// Zero values are replaced by defaults in Load, and CLI flags override the result.
type Settings struct {
	Language        string `toml:"language"`
	DefaultTimezone string `toml:"default_timezone"`

	Geocoder GeocoderSettings `toml:"geocoder"`
	Cache    CacheSettings    `toml:"cache"`
	Server   ServerSettings   `toml:"server"`
	Calendar CalendarSettings `toml:"calendar"`

	Transitions TransitionSettings `toml:"transitions"`
}

// GeocoderSettings configures the Nominatim client.
type GeocoderSettings struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// CacheSettings selects where geocode results are kept between runs.
type CacheSettings struct {
	Backend   string   `toml:"backend"` // file, redis or none
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisUser string   `toml:"redis_user"` // Password is read from the OS keyring.
	RedisDB   int      `toml:"redis_db"`
}

// ServerSettings configures the HTTP server.
type ServerSettings struct {
	Port         string `toml:"port"`
	Source       string `toml:"source"`
	SourceUser   string `toml:"source_user"`
	RefreshEvery int    `toml:"refresh_minutes"`
}

// CalendarSettings configures the ICS export.
type CalendarSettings struct {
	ReminderTrigger string `toml:"reminder_trigger"` // ISO8601 duration, e.g. "-PT1H"
}

// TransitionSettings picks the end-time strategy per element ("scan" or "linear").
type TransitionSettings struct {
	Tithi     string `toml:"tithi"`
	Nakshatra string `toml:"nakshatra"`
	Yoga      string `toml:"yoga"`
	Karana    string `toml:"karana"`
}

// Duration lets TOML files use Go duration strings ("30s", "720h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Language:        DefaultLanguage,
		DefaultTimezone: DefaultTimezone,
		Geocoder: GeocoderSettings{
			URL:     DefaultGeocoderURL,
			Timeout: Duration{HTTPTimeout},
		},
		Cache: CacheSettings{
			Backend: CacheBackendFile,
			TTL:     Duration{DefaultCacheTTL},
		},
		Server: ServerSettings{
			Port:         DefaultPort,
			RefreshEvery: DefaultRefreshMin,
		},
		Transitions: TransitionSettings{
			Tithi:     StrategyScan,
			Nakshatra: StrategyScan,
			Yoga:      StrategyLinear,
			Karana:    StrategyLinear,
		},
	}
}

// LoadSettings reads the TOML file at path on top of DefaultSettings.
// An empty path means the default location in the user config dir; a missing
// default file is not an error, a missing explicit file is.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		p, err := DefaultSettingsPath()
		if err != nil {
			return s, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}
	if err := s.validate(); err != nil {
		return s, err
	}

	slog.Debug(MsgSettingsFound,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
	)
	return s, nil
}

// DefaultSettingsPath returns <user config dir>/<AppID>/settings.toml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// DefaultCacheDir returns <user cache dir>/<AppID>/cache.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrCacheDir, err)
	}
	return filepath.Join(dir, AppID, CacheDirName), nil
}

func (s *Settings) validate() error {
	for _, v := range []string{s.Transitions.Tithi, s.Transitions.Nakshatra, s.Transitions.Yoga, s.Transitions.Karana} {
		switch strings.ToLower(v) {
		case StrategyScan, StrategyLinear:
		default:
			return fmt.Errorf("%s: %q", ErrUnknownStrategy, v)
		}
	}
	switch s.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("%s: %q", ErrUnknownCache, s.Cache.Backend)
	}
	return nil
}

// LookupPassword reads the secret stored for user in the OS keyring.
// A missing entry yields an empty password; the caller decides whether that is fatal.
func LookupPassword(user string) string {
	if user == "" {
		return ""
	}
	p, err := keyring.Get(KeyringService, user)
	if err != nil {
		slog.Debug(MsgPassFail,
			LogKeyComponent, CompSettings,
			LogKeyUser, user,
			LogKeyError, err,
		)
		return ""
	}
	return p
}
