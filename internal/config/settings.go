package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ytget/yt-fetch/internal/model"
	"github.com/ytget/yt-fetch/internal/platform"
)

// EnvPrefix is prepended to every environment override, e.g. YTFETCH_QUALITY
const EnvPrefix = "YTFETCH"

// Settings keys
const (
	KeyDownloadDir      = "download_directory"
	KeyQuality          = "quality"
	KeyTheme            = "theme"
	KeyLanguage         = "language"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
	KeyEnumerateTimeout = "enumerate_timeout"
)

// Theme variants
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Default values
const (
	DefaultQuality          = model.QualityBest
	DefaultTheme            = ThemeLight
	DefaultLanguage         = "system"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultEnumerateTimeout = 60 * time.Second
)

// Settings manages application configuration. Values come from defaults, an
// optional config file and YTFETCH_* environment variables; setters only
// change the running process.
type Settings struct {
	v *viper.Viper
}

// NewSettings creates a new settings manager over v, or a fresh viper if nil
func NewSettings(v *viper.Viper) *Settings {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	s := &Settings{v: v}
	s.setDefaults()
	return s
}

// Load reads configFile when given, otherwise looks for an optional
// yt-fetch config in the working directory
func (s *Settings) Load(configFile string) error {
	if configFile != "" {
		s.v.SetConfigFile(configFile)
		if err := s.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return nil
	}

	s.v.SetConfigName("yt-fetch")
	s.v.AddConfigPath(".")
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (s *Settings) setDefaults() {
	s.v.SetDefault(KeyDownloadDir, platform.DefaultDownloadsDir())
	s.v.SetDefault(KeyQuality, string(DefaultQuality))
	s.v.SetDefault(KeyTheme, DefaultTheme)
	s.v.SetDefault(KeyLanguage, DefaultLanguage)
	s.v.SetDefault(KeyLogLevel, DefaultLogLevel)
	s.v.SetDefault(KeyLogFormat, DefaultLogFormat)
	s.v.SetDefault(KeyEnumerateTimeout, DefaultEnumerateTimeout)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := strings.TrimSpace(s.v.GetString(KeyDownloadDir))
	if dir == "" {
		return platform.DefaultDownloadsDir()
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.v.Set(KeyDownloadDir, dir)
}

// GetQuality returns the configured quality, falling back to the default
// when the stored value is unknown
func (s *Settings) GetQuality() model.Quality {
	q, err := model.ParseQuality(s.v.GetString(KeyQuality))
	if err != nil {
		return DefaultQuality
	}
	return q
}

// SetQuality sets the quality
func (s *Settings) SetQuality(q model.Quality) {
	s.v.Set(KeyQuality, string(q))
}

// GetTheme returns the configured theme variant
func (s *Settings) GetTheme() string {
	switch strings.ToLower(s.v.GetString(KeyTheme)) {
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeLight
	}
}

// SetTheme sets the theme variant
func (s *Settings) SetTheme(theme string) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.v.Set(KeyTheme, theme)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.v.GetString(KeyLanguage)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.v.Set(KeyLanguage, lang)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	return s.v.GetString(KeyLogLevel)
}

// GetLogFormat returns the configured log format
func (s *Settings) GetLogFormat() string {
	return s.v.GetString(KeyLogFormat)
}

// GetEnumerateTimeout returns the metadata pass timeout
func (s *Settings) GetEnumerateTimeout() time.Duration {
	timeout := s.v.GetDuration(KeyEnumerateTimeout)
	if timeout <= 0 {
		return DefaultEnumerateTimeout
	}
	return timeout
}

// GetQualityOptions returns available quality options
func (s *Settings) GetQualityOptions() []model.Quality {
	return model.QualityOptions()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
