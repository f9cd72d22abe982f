package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"reflect-registry/internal/diagnostic"
)

const rootLongDescription = `reflectgen generates field registries for Go types.

For every type named in a YAML config it writes key constants, a
reflection.Registry and the reflection.Reflectable methods, so values can be
read and written by field key and by dotted path at runtime:

  reflectgen gen reflect.yaml
  reflectgen check ./a/reflect.yaml ./b/reflect.yaml
  reflectgen keys reflect.yaml --json`

const configArgsHelp = `Config paths default to ./reflect.yaml.`

var (
	verboseFlag bool
	logFileFlag string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reflectgen",
		Short:         "Field registry generator",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	cmd.AddCommand(newGenCmd(), newCheckCmd(), newKeysCmd(), newVersionCmd())

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default log.filename, "+defaultLogFilename+")")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "reflectgen:", err)
		os.Exit(1)
	}
}

func configArgs(args []string) []string {
	if len(args) == 0 {
		return []string{defaultConfigPath}
	}

	return args
}

// printDiagnostics writes warnings and errors, prefixed with the config path.
func printDiagnostics(w io.Writer, config string, d *diagnostic.Diagnostics) {
	if d == nil {
		return
	}

	for _, diag := range d.Errors {
		fmt.Fprintf(w, "%s: error: %s\n", config, diag)
	}

	for _, diag := range d.Warnings {
		fmt.Fprintf(w, "%s: warning: %s\n", config, diag)
	}
}
