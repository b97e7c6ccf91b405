package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the tool configuration. Values come from config.toml next
// to the executable, overridden by environment variables, overridden by
// command-line flags (applied by the CLI layer).
type AppConfig struct {
	Paths  PathsConfig  `toml:"paths"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// PathsConfig holds the input locations.
type PathsConfig struct {
	ReportsDir string `toml:"reports_dir"` // folder holding the diff report CSVs
	PDFRoot    string `toml:"pdf_root"`    // base of the PDF document tree
}

// OutputConfig holds the output location and format.
type OutputConfig struct {
	Dir      string `toml:"dir"`
	Filename string `toml:"filename"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the built-in defaults, matching the standard
// ADMS data-engineering shares.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Paths: PathsConfig{
			ReportsDir: `\\admssim01\ADMS_DataEngineering\CompositeViewBackup\DiffReport`,
			PDFRoot:    `\\admssim01\ADMS_DataEngineering\DMS_Picture_offline`,
		},
		Output: OutputConfig{
			Dir:      `C:\ADMS_DataEngineering\DMS_Picture_offline`,
			Filename: "_CVOfflineCheck.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// Load reads config.toml from path. An empty path means config.toml next
// to the executable; a missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	config := DefaultConfig()

	if path == "" {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		path = filepath.Join(exeDir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv overrides file values from the environment (used for
// scheduled runs where editing config.toml is not practical).
func applyEnv(config *AppConfig) {
	if v := os.Getenv("CVCHECK_REPORTS_DIR"); v != "" {
		config.Paths.ReportsDir = v
	}
	if v := os.Getenv("CVCHECK_PDF_ROOT"); v != "" {
		config.Paths.PDFRoot = v
	}
	if v := os.Getenv("CVCHECK_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
}

// EnsureOutputDir creates the output directory if needed and returns it.
func EnsureOutputDir(config *AppConfig) (string, error) {
	if err := os.MkdirAll(config.Output.Dir, 0755); err != nil {
		return "", err
	}
	return config.Output.Dir, nil
}
