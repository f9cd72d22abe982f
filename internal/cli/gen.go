package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reflect-registry/internal/gen"
)

const genLongDescription = `Generate reflect_gen.go for each config.

Each config is planned against its package; configs with errors produce no
output. Unchanged files are not rewritten. ` + configArgsHelp

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [config...]",
		Short: "Generate registries from configs",
		Long:  genLongDescription,
		// gen and check share gen.parallel, so flags bind when the command runs.
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), genDryRunKey)
			bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), genParallelKey)
		},
		RunE: runGen,
	}

	cmd.Flags().Bool(dryRunFlagName, false, "print generated code instead of writing it")
	cmd.Flags().IntP(parallelFlagName, "p", defaultGenParallel, "configs processed at once (0 = unlimited)")

	return cmd
}

func newGenerator() *gen.Generator {
	cfg := gen.DefaultGeneratorConfig()
	cfg.GenerateComments = viper.GetBool(genCommentsKey)

	return gen.NewGenerator(cfg)
}

func runGen(cmd *cobra.Command, args []string) error {
	configs := configArgs(args)
	dryRun := viper.GetBool(genDryRunKey)

	slog.Info("generating", "configs", configs, "dry_run", dryRun)

	results, err := gen.GenerateAll(cmd.Context(), newGenerator(), configs, viper.GetInt(genParallelKey))

	var files []gen.GeneratedFile
	for _, r := range results {
		if r.Plan != nil {
			printDiagnostics(cmd.ErrOrStderr(), r.Config, &r.Plan.Diagnostics)
		}

		if r.Err != nil || r.File == nil {
			slog.Warn("no output", "config", r.Config, "error", r.Err)
			continue
		}

		files = append(files, *r.File)
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", f.Path(), f.Content)
		}

		return err
	}

	written, werr := gen.WriteFiles(files)
	for _, path := range written {
		slog.Info("wrote", "file", path)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}

	return errors.Join(err, werr)
}
