// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/analyzer"
	"github.com/temirov/codedigest/internal/config"
	"github.com/temirov/codedigest/internal/output"
	"github.com/temirov/codedigest/internal/services/clipboard"
	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
	"github.com/temirov/codedigest/internal/vcs"
)

const (
	defaultPath          = "."
	rootUse              = "codedigest [paths...]"
	rootShortDescription = "summarize a codebase as one Markdown document"
	rootLongDescription  = `codedigest scans directories and files and renders a single Markdown document
with the project location, git information, directory tree, file contents or a
code summary, and statistics.
Settings are read from ~/.codedigest/config.yaml and ./.codedigest.yaml; flags override them.`
	rootUsageExample = `  # Describe the current directory
  codedigest

  # Summarize TypeScript sources changed in the last week
  codedigest --summary --recent 7 -i '**/*.ts' src

  # Stay within a token budget and copy the result
  codedigest --max-tokens 50000 --tokens --clipboard .

  # Keep context.md current while editing
  codedigest --watch -o context.md .`
	versionTemplate = "codedigest version: %s\n"

	documentWrittenMessage   = "document written"
	documentCopiedMessage    = "document copied to clipboard"
	logFieldPath             = "path"
	logFieldFiles            = "files"
	configurationErrorFormat = "load configuration: %w"
	analysisErrorFormat      = "analyze paths: %w"
	writeOutputErrorFormat   = "write document to %s: %w"
	writeStdoutErrorFormat   = "write document: %w"
	outputFilePermissions    = 0o644
)

// environment carries the collaborators of a command invocation.
type environment struct {
	standardOutput   io.Writer
	copier           clipboard.Copier
	workingDirectory string
	newLogger        func(verbose bool) (*zap.Logger, error)
}

func defaultEnvironment() environment {
	return environment{
		standardOutput: os.Stdout,
		copier:         clipboard.NewService(),
		newLogger:      utils.NewApplicationLogger,
	}
}

// Execute runs the codedigest application with the process arguments.
func Execute(ctx context.Context) error {
	rootCommand := createRootCommand(defaultEnvironment())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(commandEnvironment environment) *cobra.Command {
	var flags analysisFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, printError := fmt.Fprintf(commandEnvironment.standardOutput, versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runAnalysis(command, commandEnvironment, flags, arguments)
		},
	}
	registerAnalysisFlags(rootCommand.Flags(), &flags)
	rootCommand.AddCommand(createInitCommand(commandEnvironment))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runAnalysis merges defaults, configuration and flags, runs the analyzer and
// delivers the assembled document.
func runAnalysis(command *cobra.Command, commandEnvironment environment, flags analysisFlags, arguments []string) error {
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: commandEnvironment.workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if configurationError != nil {
		return fmt.Errorf(configurationErrorFormat, configurationError)
	}
	options, flagError := flags.apply(command.Flags(), configuration.Options(config.DefaultAnalysisOptions()))
	if flagError != nil {
		return flagError
	}

	logger, loggerError := commandEnvironment.newLogger(options.Verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if flags.outputPath != "" {
		if absoluteOutputPath, absoluteError := filepath.Abs(flags.outputPath); absoluteError == nil {
			options.ExcludePaths = append(options.ExcludePaths, absoluteOutputPath)
		}
	}

	copyToClipboard := flags.clipboardEnabled(command.Flags(), configuration.ClipboardEnabled())
	digest := func() error {
		return analyzeAndDeliver(command.Context(), commandEnvironment, logger, arguments, options, flags.outputPath, copyToClipboard)
	}
	if digestError := digest(); digestError != nil {
		return digestError
	}
	if !flags.watch {
		return nil
	}
	return watchAndDeliver(command.Context(), logger, arguments, options, digest)
}

// analyzeAndDeliver runs one analysis and writes the document to its destinations.
func analyzeAndDeliver(ctx context.Context, commandEnvironment environment, logger *zap.Logger, arguments []string, options types.AnalysisOptions, outputPath string, copyToClipboard bool) error {
	result, runError := analyzer.NewAnalyzer(logger, vcs.NewGitProvider(logger)).Run(ctx, arguments, options)
	if runError != nil {
		return fmt.Errorf(analysisErrorFormat, runError)
	}
	document := output.Assemble(result)

	if outputPath != "" {
		if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermissions); writeError != nil {
			return fmt.Errorf(writeOutputErrorFormat, outputPath, writeError)
		}
		logger.Info(documentWrittenMessage, zap.String(logFieldPath, outputPath), zap.Int(logFieldFiles, len(result.Files)))
	}
	if copyToClipboard {
		if copyError := commandEnvironment.copier.Copy(document); copyError != nil {
			return copyError
		}
		logger.Info(documentCopiedMessage, zap.Int(logFieldFiles, len(result.Files)))
	}
	if outputPath == "" && !copyToClipboard {
		if _, writeError := io.WriteString(commandEnvironment.standardOutput, document); writeError != nil {
			return fmt.Errorf(writeStdoutErrorFormat, writeError)
		}
	}
	return nil
}
