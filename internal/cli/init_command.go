package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/codedigest/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to ./.codedigest.yaml, or to
~/.codedigest/config.yaml with --global. Existing files are kept unless --force is given.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the global configuration instead of the local one"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initCompletedTemplate     = "configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(commandEnvironment environment) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: commandEnvironment.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(commandEnvironment.standardOutput, initCompletedTemplate, destinationPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, "", false, initForceFlagDescription)
	return initCommand
}
