package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kodagames/romtext/pkg/log"
)

// Conf is the global configuration instance.
var Conf AppConfig

// --- configuration key names ---
const (
	// Log
	KeyLogFilename   = "log.filename"
	KeyLogLevel      = "log.level"
	KeyLogMaxSize    = "log.max_size"
	KeyLogMaxBackups = "log.max_backups"
	KeyLogMaxAge     = "log.max_age"
	KeyLogCompress   = "log.compress"
	KeyLogConsole    = "log.console"

	// Layout
	KeyLayoutTextStartOffset     = "layout.text_start_offset"
	KeyLayoutPointersStartOffset = "layout.pointers_start_offset"
	KeyLayoutPointersDistance    = "layout.pointers_distance"
	KeyLayoutStrictPointers      = "layout.strict_pointers"
	KeyLayoutTable               = "layout.table"
)

// --- default values ---
//
// The layout defaults are the Exodus ROM region this tool was first built
// for. Any other target layout overrides them through the config file.
const (
	DefaultLogFilename   = "romtext.log"
	DefaultLogLevel      = "info"
	DefaultLogMaxSize    = 100 // MB
	DefaultLogMaxBackups = 5
	DefaultLogMaxAge     = 30 // days

	DefaultTextStartOffset     = 0x1007B
	DefaultPointersStartOffset = 0x144F4
	DefaultPointersDistance    = 0x8010
)

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	Log    log.Config   `mapstructure:"log"`
	Layout LayoutConfig `mapstructure:"layout"`
}

// LayoutConfig describes the fixed layout of the target ROM image: where the
// text block and the pointer table live, and the distance constant that maps
// stored text addresses into the address space the game reads pointers in.
type LayoutConfig struct {
	TextStartOffset     int64             `mapstructure:"text_start_offset"`
	PointersStartOffset int64             `mapstructure:"pointers_start_offset"`
	PointersDistance    int64             `mapstructure:"pointers_distance"`
	StrictPointers      bool              `mapstructure:"strict_pointers"`
	Table               map[string]string `mapstructure:"table"`
}

// Init loads the configuration from the given file, falling back to defaults
// when no file is provided.
func Init(configPath string) error {
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Info("No config file provided, using default values.")
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	log.Init(Conf.Log)
	log.Info("Config loaded successfully")

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("Config file changed: %s", e.Name)
		if err := viper.Unmarshal(&Conf); err != nil {
			log.Errorf("Failed to re-unmarshal config: %v", err)
			return
		}
		log.Init(Conf.Log)
		log.Info("Config reloaded and applied")
	})

	return nil
}

func setDefaults() {
	// Log
	viper.SetDefault(KeyLogFilename, DefaultLogFilename)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyLogMaxSize, DefaultLogMaxSize)
	viper.SetDefault(KeyLogMaxBackups, DefaultLogMaxBackups)
	viper.SetDefault(KeyLogMaxAge, DefaultLogMaxAge)
	viper.SetDefault(KeyLogCompress, true)
	viper.SetDefault(KeyLogConsole, false)

	// Layout
	viper.SetDefault(KeyLayoutTextStartOffset, DefaultTextStartOffset)
	viper.SetDefault(KeyLayoutPointersStartOffset, DefaultPointersStartOffset)
	viper.SetDefault(KeyLayoutPointersDistance, DefaultPointersDistance)
	viper.SetDefault(KeyLayoutStrictPointers, false)
	viper.SetDefault(KeyLayoutTable, map[string]string{})
}

// GetConfig returns a copy of the current configuration.
func GetConfig() AppConfig {
	return Conf
}

// GetLayout returns a copy of the current layout configuration.
func GetLayout() LayoutConfig {
	return Conf.Layout
}
