// Package config loads Xion's runtime configuration.
//
// Values are layered, highest priority first: bound CLI flags, XION_* environment
// variables, the working directory .env file, the config directory .env file,
// the YAML config file, and finally built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables and .env keys read by Xion.
const EnvPrefix = "XION"

// Configuration keys. Flag names match these keys so they can be bound directly.
const (
	KeyLogLevel      = "log-level"
	KeyLogFile       = "log-file"
	KeyTestMode      = "test-mode"
	KeyNoColor       = "no-color"
	KeySuggest       = "suggest"
	KeyDefaultModule = "default-module"
	KeyRCFile        = "rc-file"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel      string
	LogFile       string
	TestMode      bool
	NoColor       bool
	Suggest       bool
	DefaultModule string
	RCFile        string

	// ConfigFile is the YAML file that was read, empty if none was found.
	ConfigFile string
	// EnvFiles lists the .env files that were loaded, lowest priority first.
	EnvFiles []string
}

// Paths controls where configuration files are looked up. Empty fields fall
// back to the user config directory and the current working directory.
type Paths struct {
	ConfigFile string
	ConfigDir  string
	WorkDir    string
}

// Load resolves the configuration into v. Flags should already be bound to v.
func Load(v *viper.Viper, paths Paths) (*Config, error) {
	configDir := paths.ConfigDir
	if configDir == "" {
		dir, err := UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	workDir := paths.WorkDir
	if workDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = dir
	}

	setDefaults(v, configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile, err := readConfigFile(v, paths.ConfigFile, configDir)
	if err != nil {
		return nil, err
	}

	envFiles, err := mergeDotEnv(v,
		filepath.Join(configDir, ".env"),
		filepath.Join(workDir, ".env"),
	)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
		TestMode:      v.GetBool(KeyTestMode),
		NoColor:       v.GetBool(KeyNoColor),
		Suggest:       v.GetBool(KeySuggest),
		DefaultModule: v.GetString(KeyDefaultModule),
		RCFile:        v.GetString(KeyRCFile),
		ConfigFile:    configFile,
		EnvFiles:      envFiles,
	}, nil
}

// UserConfigDir returns $XION_CONFIG_DIR, or $XDG_CONFIG_HOME/xion, or ~/.config/xion.
func UserConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, "xion"), nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeySuggest, true)
	v.SetDefault(KeyDefaultModule, "main")
	v.SetDefault(KeyRCFile, filepath.Join(configDir, ".xionrc"))
}

// readConfigFile reads an explicit config file, which must exist, or
// config.yaml from configDir, which may be absent.
func readConfigFile(v *viper.Viper, explicit, configDir string) (string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// mergeDotEnv loads XION_* entries from the given .env files, later files
// overriding earlier ones, and merges them over the config file layer.
// Missing files are skipped.
func mergeDotEnv(v *viper.Viper, paths ...string) ([]string, error) {
	values := make(map[string]interface{})
	var loaded []string

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		envMap, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse .env file %s: %w", path, err)
		}
		for key, value := range envMap {
			if name, ok := keyFromEnv(key); ok {
				values[name] = value
			}
		}
		loaded = append(loaded, path)
	}

	if len(values) > 0 {
		if err := v.MergeConfigMap(values); err != nil {
			return nil, fmt.Errorf("failed to merge .env values: %w", err)
		}
	}
	return loaded, nil
}

// keyFromEnv maps XION_DEFAULT_MODULE to default-module.
func keyFromEnv(name string) (string, bool) {
	prefix := EnvPrefix + "_"
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	key := strings.ToLower(strings.TrimPrefix(name, prefix))
	return strings.ReplaceAll(key, "_", "-"), key != ""
}
