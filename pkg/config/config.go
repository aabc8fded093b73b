package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	configDir  string = ".jdwpdump"
	configFile string = "config.yml"

	xdgConfigHomeEnv string = "XDG_CONFIG_HOME"
	xdgConfigDir     string = "jdwpdump"
)

const (
	defaultMaxHexBytes        = 64
	defaultSignatureCacheSize = 1024
)

// Color modes accepted by the color option.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IDSizes are the identifier widths assumed for captures that do not
// contain a VirtualMachine.IDSizes exchange.
type IDSizes struct {
	Field         int32 `yaml:"field"`
	Method        int32 `yaml:"method"`
	Object        int32 `yaml:"object"`
	ReferenceType int32 `yaml:"reference-type"`
	Frame         int32 `yaml:"frame"`
}

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// Commands aliases, keyed by qualified command name.
	Aliases map[string][]string `yaml:"aliases"`

	// IDSizes, if set, is applied before decoding a capture.
	IDSizes *IDSizes `yaml:"id-sizes,omitempty"`

	// MaxHexBytes is the maximum number of raw bytes printed for a packet
	// that could not be decoded.
	MaxHexBytes *int `yaml:"max-hex-bytes,omitempty"`

	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty"`

	// SignatureCacheSize is the number of class signatures remembered
	// while dumping a capture.
	SignatureCacheSize *int `yaml:"signature-cache-size,omitempty"`
}

// GetMaxHexBytes returns MaxHexBytes or its default.
func (c *Config) GetMaxHexBytes() int {
	if c == nil || c.MaxHexBytes == nil || *c.MaxHexBytes <= 0 {
		return defaultMaxHexBytes
	}
	return *c.MaxHexBytes
}

// GetSignatureCacheSize returns SignatureCacheSize or its default.
func (c *Config) GetSignatureCacheSize() int {
	if c == nil || c.SignatureCacheSize == nil || *c.SignatureCacheSize <= 0 {
		return defaultSignatureCacheSize
	}
	return *c.SignatureCacheSize
}

// GetColor returns the color mode, auto when unset.
func (c *Config) GetColor() string {
	if c == nil || c.Color == "" {
		return ColorAuto
	}
	return c.Color
}

// LoadConfig attempts to populate a Config object from the config.yml file.
func LoadConfig() (*Config, error) {
	err := createConfigPath()
	if err != nil {
		return &Config{}, fmt.Errorf("could not create config directory: %v", err)
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to get config file path: %v", err)
	}

	f, err := os.Open(fullConfigFile)
	if err != nil {
		f, err = createDefaultConfig(fullConfigFile)
		if err != nil {
			return &Config{}, fmt.Errorf("error creating default config file: %v", err)
		}
	}
	defer f.Close()

	return readConfig(f)
}

func readConfig(rd io.Reader) (*Config, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to read config data: %v", err)
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to decode config file: %v", err)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return &Config{}, fmt.Errorf("invalid color %q, must be one of auto, always or never", c.Color)
	}

	return &c, nil
}

// SaveConfig will marshal and save the config struct
// to disk.
func SaveConfig(conf *Config) error {
	if err := createConfigPath(); err != nil {
		return err
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}

	f, err := os.Create(fullConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(out)
	return err
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	err = writeDefaultConfig(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeDefaultConfig(f *os.File) error {
	_, err := f.WriteString(
		`# Configuration file for jdwpdump.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# Provided aliases will be added to the default names of a given command.
aliases:
  # VirtualMachine.AllThreads: ["threads"]

# Identifier widths used for captures that start after the
# VirtualMachine.IDSizes exchange.
# id-sizes: {field: 8, method: 8, object: 8, reference-type: 8, frame: 8}

# Maximum number of raw bytes printed for a packet that can not be decoded.
# max-hex-bytes: 64

# Colorize output: auto, always or never.
# color: auto

# Number of class signatures remembered while dumping a capture.
# signature-cache-size: 1024
`)
	return err
}

// createConfigPath creates the directory structure at which all config files are saved.
func createConfigPath() error {
	path, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0700)
}

// GetConfigFilePath gets the full path to the given config file name.
// $XDG_CONFIG_HOME/jdwpdump is used when XDG_CONFIG_HOME is set,
// ~/.jdwpdump otherwise.
func GetConfigFilePath(file string) (string, error) {
	if xdg := os.Getenv(xdgConfigHomeEnv); xdg != "" {
		return path.Join(xdg, xdgConfigDir, file), nil
	}
	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return path.Join(userHomeDir, configDir, file), nil
}
