package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/jask/datepick/core"
)

// Config holds application configuration.
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Picker   PickerConfig   `mapstructure:"picker"`
	Display  DisplayConfig  `mapstructure:"display"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig fixes the day boundaries used for shortcut matching.
type CalendarConfig struct {
	Timezone  string `mapstructure:"timezone"`
	Locale    string `mapstructure:"locale"`
	WeekStart string `mapstructure:"week_start"`
}

// PickerConfig selects the mode and the shortcuts offered.
type PickerConfig struct {
	ID        string           `mapstructure:"id"`
	Mode      string           `mapstructure:"mode"`
	Shortcuts []string         `mapstructure:"shortcuts"`
	Custom    []CustomShortcut `mapstructure:"custom"`
}

// CustomShortcut is a relative shortcut defined by a calendar offset from now.
type CustomShortcut struct {
	Name   string `mapstructure:"name"`
	Days   int    `mapstructure:"days"`
	Months int    `mapstructure:"months"`
	Years  int    `mapstructure:"years"`
}

// DisplayConfig holds presentation settings. Layouts use Go reference time.
type DisplayConfig struct {
	Format            string `mapstructure:"format"`
	MonthFormat       string `mapstructure:"month_format"`
	Separator         string `mapstructure:"separator"`
	PlaceholderRange  string `mapstructure:"placeholder_range"`
	PlaceholderSingle string `mapstructure:"placeholder_single"`
}

// DatabaseConfig holds sqlite settings. Keep bounds the stored history per
// picker; 0 keeps everything.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	Keep int    `mapstructure:"keep"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

const envPrefix = "DATEPICK"

// DefaultPath is used when neither a path nor DATEPICK_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "datepick", "config.toml")
}

// ResolvePath returns path, or $DATEPICK_CONFIG, or DefaultPath.
func ResolvePath(path string) string {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	return path
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.locale", "en-AU")
	v.SetDefault("calendar.week_start", "")
	v.SetDefault("picker.id", "default")
	v.SetDefault("picker.mode", "range")
	v.SetDefault("picker.shortcuts", []string{"today", "last_week", "last_month"})
	v.SetDefault("display.format", "2 January")
	v.SetDefault("display.month_format", "January 2006")
	v.SetDefault("display.separator", " – ")
	v.SetDefault("display.placeholder_range", "Select date range")
	v.SetDefault("display.placeholder_single", "Select date")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "datepick", "datepick.db"))
	v.SetDefault("database.keep", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "datepick"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix
// DATEPICK_. An empty path falls back to $DATEPICK_CONFIG and then to
// ~/.config/datepick/config.toml. A missing file is not an error.
func Load(path string) (Config, error) {
	v := newViper(path)
	if err := readIn(v); err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Watch loads the configuration like Load and calls onChange with the
// re-decoded configuration every time the file is written.
func Watch(path string, onChange func(Config, error)) (Config, error) {
	v := newViper(path)
	if err := readIn(v); err != nil {
		return Config{}, err
	}
	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		slog.Debug("config changed", "file", e.Name, "op", e.Op.String())
		onChange(decode(v))
	})
	v.WatchConfig()
	return cfg, nil
}

func readIn(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the fields that are parsed later at use sites so that bad
// values fail at startup.
func (c Config) Validate() error {
	if _, err := core.ParseMode(c.Picker.Mode); err != nil {
		return fmt.Errorf("picker.mode: %w", err)
	}
	if _, err := language.Parse(c.Calendar.Locale); err != nil {
		return fmt.Errorf("calendar.locale: %w", err)
	}
	if _, err := c.loadLocation(); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	if _, err := parseWeekday(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("calendar.week_start: %w", err)
	}
	if c.Database.Keep < 0 {
		return fmt.Errorf("database.keep: must not be negative")
	}
	for i, cs := range c.Picker.Custom {
		if strings.TrimSpace(cs.Name) == "" {
			return fmt.Errorf("picker.custom[%d]: name is empty", i)
		}
	}
	return nil
}

// Mode returns the parsed picker mode.
func (c Config) Mode() core.Mode {
	m, err := core.ParseMode(c.Picker.Mode)
	if err != nil {
		return core.ModeRange
	}
	return m
}

// Locale returns the configured language tag, or English when unparsable.
func (c Config) Locale() language.Tag {
	tag, err := language.Parse(c.Calendar.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// ResolveCalendar builds the calendar from timezone and week start. An
// empty week start is derived from the locale's region.
func (c Config) ResolveCalendar() (core.Calendar, error) {
	loc, err := c.loadLocation()
	if err != nil {
		return core.Calendar{}, err
	}
	first, err := parseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return core.Calendar{}, err
	}
	if strings.TrimSpace(c.Calendar.WeekStart) == "" {
		first = WeekStartFor(c.Locale())
	}
	return core.NewCalendar(loc, first), nil
}

func (c Config) loadLocation() (*time.Location, error) {
	switch strings.TrimSpace(c.Calendar.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Timezone)
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unsupported week start %q", s)
	}
}

// sundayRegions start the week on Sunday; the rest of the world uses Monday,
// except the regions in saturdayRegions.
var (
	sundayRegions   = []string{"US", "CA", "MX", "BR", "JP", "KR", "TW", "HK", "IL", "PH", "ZA", "IN", "SA"}
	saturdayRegions = []string{"AE", "AF", "BH", "DJ", "DZ", "EG", "IQ", "IR", "JO", "KW", "LY", "OM", "QA", "SD", "SY"}
)

// WeekStartFor returns the customary first weekday for the tag's region.
func WeekStartFor(tag language.Tag) time.Weekday {
	region, _ := tag.Region()
	code := region.String()
	for _, r := range sundayRegions {
		if r == code {
			return time.Sunday
		}
	}
	for _, r := range saturdayRegions {
		if r == code {
			return time.Saturday
		}
	}
	return time.Monday
}

// Save writes the provided config to path, creating the config directory if
// needed. An empty path resolves like Load.
func Save(path string, cfg Config) error {
	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	custom := make([]map[string]any, 0, len(cfg.Picker.Custom))
	for _, cs := range cfg.Picker.Custom {
		custom = append(custom, map[string]any{
			"name":   cs.Name,
			"days":   cs.Days,
			"months": cs.Months,
			"years":  cs.Years,
		})
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("calendar.timezone", cfg.Calendar.Timezone)
	v.Set("calendar.locale", cfg.Calendar.Locale)
	v.Set("calendar.week_start", cfg.Calendar.WeekStart)
	v.Set("picker.id", cfg.Picker.ID)
	v.Set("picker.mode", cfg.Picker.Mode)
	v.Set("picker.shortcuts", cfg.Picker.Shortcuts)
	v.Set("picker.custom", custom)
	v.Set("display.format", cfg.Display.Format)
	v.Set("display.month_format", cfg.Display.MonthFormat)
	v.Set("display.separator", cfg.Display.Separator)
	v.Set("display.placeholder_range", cfg.Display.PlaceholderRange)
	v.Set("display.placeholder_single", cfg.Display.PlaceholderSingle)
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.keep", cfg.Database.Keep)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
