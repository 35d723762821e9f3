package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/codedigest/internal/config"
	"github.com/temirov/codedigest/internal/types"
)

const (
	includeFlagName     = "include"
	includeFlagShort    = "i"
	excludeFlagName     = "exclude"
	excludeFlagShort    = "e"
	maxSizeFlagName     = "max-size"
	maxTokensFlagName   = "max-tokens"
	summaryFlagName     = "summary"
	tokensFlagName      = "tokens"
	verboseFlagName     = "verbose"
	verboseFlagShort    = "v"
	recentFlagName      = "recent"
	noGitignoreFlagName = "no-gitignore"
	noIgnoreFlagName    = "no-ignore"
	workersFlagName     = "workers"
	outputFlagName      = "output"
	outputFlagShort     = "o"
	clipboardFlagName   = "clipboard"
	configFlagName      = "config"
	versionFlagName     = "version"
	watchFlagName       = "watch"
	watchFlagShort      = "w"

	includeFlagDescription     = "glob pattern of files to include (repeatable); replaces the default of all files"
	excludeFlagDescription     = "glob pattern of paths to exclude (repeatable)"
	maxSizeFlagDescription     = "skip files larger than this many bytes (0 for no limit)"
	maxTokensFlagDescription   = "stop adding files once the estimated token total would exceed this limit (0 for no limit)"
	summaryFlagDescription     = "render a code summary instead of full file contents"
	tokensFlagDescription      = "include the estimated token total in the statistics"
	verboseFlagDescription     = "log diagnostics for skipped, truncated and summarized files"
	recentFlagDescription      = "only include files modified within this many days (0 for all files)"
	noGitignoreFlagDescription = "do not use .gitignore"
	noIgnoreFlagDescription    = "do not use .ignore"
	workersFlagDescription     = "number of files read in parallel"
	outputFlagDescription      = "write the document to this file instead of standard output"
	clipboardFlagDescription   = "copy the document to the system clipboard"
	configFlagDescription      = "configuration file to use instead of " + config.LocalConfigFileName
	versionFlagDescription     = "display application version"
	watchFlagDescription       = "keep running and rebuild the document whenever a watched file changes"

	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
	negativeFlagValueFormat           = "--%s must not be negative, got %d"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// analysisFlags holds the raw values of the root command flags. Only flags the
// user set explicitly override the configured options.
type analysisFlags struct {
	include     []string
	exclude     []string
	maxSize     int64
	maxTokens   int
	summary     bool
	tokens      bool
	verbose     bool
	recentDays  int
	noGitignore bool
	noIgnore    bool
	workers     int
	outputPath  string
	clipboard   bool
	configPath  string
	showVersion bool
	watch       bool
}

func registerAnalysisFlags(flagSet *pflag.FlagSet, flags *analysisFlags) {
	flagSet.StringArrayVarP(&flags.include, includeFlagName, includeFlagShort, nil, includeFlagDescription)
	flagSet.StringArrayVarP(&flags.exclude, excludeFlagName, excludeFlagShort, nil, excludeFlagDescription)
	flagSet.Int64Var(&flags.maxSize, maxSizeFlagName, 0, maxSizeFlagDescription)
	flagSet.IntVar(&flags.maxTokens, maxTokensFlagName, 0, maxTokensFlagDescription)
	flagSet.IntVar(&flags.recentDays, recentFlagName, 0, recentFlagDescription)
	flagSet.IntVar(&flags.workers, workersFlagName, 0, workersFlagDescription)
	flagSet.StringVarP(&flags.outputPath, outputFlagName, outputFlagShort, "", outputFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &flags.summary, summaryFlagName, "", false, summaryFlagDescription)
	registerBooleanFlag(flagSet, &flags.tokens, tokensFlagName, "", false, tokensFlagDescription)
	registerBooleanFlag(flagSet, &flags.verbose, verboseFlagName, verboseFlagShort, false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &flags.noGitignore, noGitignoreFlagName, "", false, noGitignoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.noIgnore, noIgnoreFlagName, "", false, noIgnoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.clipboard, clipboardFlagName, "", false, clipboardFlagDescription)
	registerBooleanFlag(flagSet, &flags.showVersion, versionFlagName, "", false, versionFlagDescription)
	registerBooleanFlag(flagSet, &flags.watch, watchFlagName, watchFlagShort, false, watchFlagDescription)
}

// apply overlays every explicitly set flag onto options.
func (flags analysisFlags) apply(flagSet *pflag.FlagSet, options types.AnalysisOptions) (types.AnalysisOptions, error) {
	integerFlags := []struct {
		name  string
		value int64
	}{
		{name: maxSizeFlagName, value: flags.maxSize},
		{name: maxTokensFlagName, value: int64(flags.maxTokens)},
		{name: recentFlagName, value: int64(flags.recentDays)},
		{name: workersFlagName, value: int64(flags.workers)},
	}
	for _, integerFlag := range integerFlags {
		if flagSet.Changed(integerFlag.name) && integerFlag.value < 0 {
			return options, fmt.Errorf(negativeFlagValueFormat, integerFlag.name, integerFlag.value)
		}
	}

	if flagSet.Changed(includeFlagName) {
		options.Include = append([]string{}, flags.include...)
	}
	if flagSet.Changed(excludeFlagName) {
		options.Exclude = append(append([]string{}, options.Exclude...), flags.exclude...)
	}
	if flagSet.Changed(maxSizeFlagName) {
		options.MaxFileSize = flags.maxSize
	}
	if flagSet.Changed(maxTokensFlagName) {
		options.MaxTotalTokens = flags.maxTokens
	}
	if flagSet.Changed(recentFlagName) {
		options.RecentDays = flags.recentDays
	}
	if flagSet.Changed(workersFlagName) && flags.workers > 0 {
		options.Workers = flags.workers
	}
	if flagSet.Changed(summaryFlagName) {
		options.Summary = flags.summary
	}
	if flagSet.Changed(tokensFlagName) {
		options.ShowTokens = flags.tokens
	}
	if flagSet.Changed(verboseFlagName) {
		options.Verbose = flags.verbose
	}
	if flagSet.Changed(noGitignoreFlagName) {
		options.UseGitignore = !flags.noGitignore
	}
	if flagSet.Changed(noIgnoreFlagName) {
		options.UseIgnoreFile = !flags.noIgnore
	}
	return options, nil
}

// clipboardEnabled resolves the clipboard destination, preferring an explicit flag.
func (flags analysisFlags) clipboardEnabled(flagSet *pflag.FlagSet, configured bool) bool {
	if flagSet.Changed(clipboardFlagName) {
		return flags.clipboard
	}
	return configured
}

type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q", booleanFlagInvalidValueErrorLabel, input)
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag defines a boolean flag that also accepts yes/no and on/off literals.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.VarP(&booleanFlagValue{target: target, flagKey: name}, name, shorthand, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" pairs into "--flag=value" when
// the flag is boolean and the value is a boolean literal, so that the value is not
// taken for a path argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") {
			flagName := strings.TrimPrefix(currentArgument, "--")
			if _, exists := booleanFlags[flagName]; exists && index+1 < len(arguments) {
				nextArgument := arguments[index+1]
				literal := strings.ToLower(strings.TrimSpace(nextArgument))
				if _, valid := booleanFlagLiterals[literal]; valid && !strings.HasPrefix(nextArgument, "-") {
					normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
					index += 2
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
				target[flag.Name] = struct{}{}
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
