package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
)

const (
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".codedigest"
	// GlobalConfigFileName is the file name of the global configuration.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the file name of the per-project configuration.
	LocalConfigFileName = ".codedigest.yaml"

	maximumDefaultWorkers = 8
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults for an analysis run.
// Unset values are nil so that later sources only override what they name.
type ApplicationConfiguration struct {
	Paths   PathConfiguration   `mapstructure:"paths" yaml:"paths"`
	Limits  LimitConfiguration  `mapstructure:"limits" yaml:"limits"`
	Output  OutputConfiguration `mapstructure:"output" yaml:"output"`
	Workers *int                `mapstructure:"workers" yaml:"workers"`
}

// PathConfiguration configures inclusion and exclusion rules for discovery.
type PathConfiguration struct {
	Include       []string `mapstructure:"include" yaml:"include"`
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore" yaml:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore" yaml:"use_ignore"`
}

// LimitConfiguration configures admission limits and the recency window.
type LimitConfiguration struct {
	MaxFileSize *int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
	MaxTokens   *int   `mapstructure:"max_tokens" yaml:"max_tokens"`
	RecentDays  *int   `mapstructure:"recent_days" yaml:"recent_days"`
}

// OutputConfiguration configures document rendering and diagnostics.
type OutputConfiguration struct {
	Summary   *bool `mapstructure:"summary" yaml:"summary"`
	Tokens    *bool `mapstructure:"tokens" yaml:"tokens"`
	Verbose   *bool `mapstructure:"verbose" yaml:"verbose"`
	Clipboard *bool `mapstructure:"clipboard" yaml:"clipboard"`
}

// DefaultAnalysisOptions returns the built-in options used when neither configuration nor flags set a value.
func DefaultAnalysisOptions() types.AnalysisOptions {
	workers := runtime.NumCPU()
	if workers > maximumDefaultWorkers {
		workers = maximumDefaultWorkers
	}
	return types.AnalysisOptions{
		UseGitignore:  true,
		UseIgnoreFile: true,
		Workers:       workers,
	}
}

// DefaultApplicationConfiguration returns the configuration written by InitializeConfiguration.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	defaults := DefaultAnalysisOptions()
	return ApplicationConfiguration{
		Paths: PathConfiguration{
			Include:       []string{},
			Exclude:       []string{},
			UseGitignore:  boolPointer(defaults.UseGitignore),
			UseIgnoreFile: boolPointer(defaults.UseIgnoreFile),
		},
		Limits: LimitConfiguration{
			MaxFileSize: int64Pointer(defaults.MaxFileSize),
			MaxTokens:   intPointer(defaults.MaxTotalTokens),
			RecentDays:  intPointer(defaults.RecentDays),
		},
		Output: OutputConfiguration{
			Summary:   boolPointer(defaults.Summary),
			Tokens:    boolPointer(defaults.ShowTokens),
			Verbose:   boolPointer(defaults.Verbose),
			Clipboard: boolPointer(false),
		},
		Workers: intPointer(defaults.Workers),
	}
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one.
// An explicit file path replaces the local file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Paths.Include = utils.DeduplicatePatterns(merged.Paths.Include)
	merged.Paths.Exclude = utils.DeduplicatePatterns(merged.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, LocalConfigFileName)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Paths = result.Paths.merge(override.Paths)
	result.Limits = result.Limits.merge(override.Limits)
	result.Output = result.Output.merge(override.Output)
	if override.Workers != nil {
		result.Workers = cloneInt(override.Workers)
	}
	return result
}

// Options overlays the configured values onto defaults.
func (config ApplicationConfiguration) Options(defaults types.AnalysisOptions) types.AnalysisOptions {
	result := defaults
	if len(config.Paths.Include) > 0 {
		result.Include = append([]string{}, config.Paths.Include...)
	}
	if len(config.Paths.Exclude) > 0 {
		result.Exclude = append([]string{}, config.Paths.Exclude...)
	}
	if config.Paths.UseGitignore != nil {
		result.UseGitignore = *config.Paths.UseGitignore
	}
	if config.Paths.UseIgnoreFile != nil {
		result.UseIgnoreFile = *config.Paths.UseIgnoreFile
	}
	if config.Limits.MaxFileSize != nil {
		result.MaxFileSize = *config.Limits.MaxFileSize
	}
	if config.Limits.MaxTokens != nil {
		result.MaxTotalTokens = *config.Limits.MaxTokens
	}
	if config.Limits.RecentDays != nil {
		result.RecentDays = *config.Limits.RecentDays
	}
	if config.Output.Summary != nil {
		result.Summary = *config.Output.Summary
	}
	if config.Output.Tokens != nil {
		result.ShowTokens = *config.Output.Tokens
	}
	if config.Output.Verbose != nil {
		result.Verbose = *config.Output.Verbose
	}
	if config.Workers != nil && *config.Workers > 0 {
		result.Workers = *config.Workers
	}
	return result
}

// ClipboardEnabled reports whether the configuration asks for clipboard output.
func (config ApplicationConfiguration) ClipboardEnabled() bool {
	return config.Output.Clipboard != nil && *config.Output.Clipboard
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Include) > 0 {
		result.Include = append([]string{}, utils.DeduplicatePatterns(override.Include)...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	return result
}

func (config LimitConfiguration) merge(override LimitConfiguration) LimitConfiguration {
	result := config
	if override.MaxFileSize != nil {
		value := *override.MaxFileSize
		result.MaxFileSize = &value
	}
	if override.MaxTokens != nil {
		result.MaxTokens = cloneInt(override.MaxTokens)
	}
	if override.RecentDays != nil {
		result.RecentDays = cloneInt(override.RecentDays)
	}
	return result
}

func (config OutputConfiguration) merge(override OutputConfiguration) OutputConfiguration {
	result := config
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func boolPointer(value bool) *bool {
	return &value
}

func intPointer(value int) *int {
	return &value
}

func int64Pointer(value int64) *int64 {
	return &value
}
