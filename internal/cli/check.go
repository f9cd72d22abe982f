package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reflect-registry/internal/gen"
)

// ErrStale is returned by check when a generated file is out of date.
var ErrStale = errors.New("generated file is out of date")

const checkLongDescription = `Check configs without writing anything.

Reports config and path diagnostics, prints every path check, and fails
when a config has errors or its generated file differs from what gen would
write. ` + configArgsHelp

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [config...]",
		Short: "Validate configs and detect stale output",
		Long:  checkLongDescription,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), genParallelKey)
		},
		RunE: runCheck,
	}

	cmd.Flags().IntP(parallelFlagName, "p", defaultGenParallel, "configs processed at once (0 = unlimited)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	configs := configArgs(args)
	out := cmd.OutOrStdout()

	results, err := gen.GenerateAll(cmd.Context(), newGenerator(), configs, viper.GetInt(genParallelKey))
	errs := []error{err}

	for _, r := range results {
		if r.Plan == nil {
			continue
		}

		printDiagnostics(cmd.ErrOrStderr(), r.Config, &r.Plan.Diagnostics)

		for _, pr := range r.Plan.Paths {
			status := "ok"

			switch {
			case pr.Field == nil:
				status = "FAIL"
			case !pr.Verified:
				status = "unverified"
			}

			fmt.Fprintf(out, "%s: path %s.%s: %s\n", r.Config, pr.Check.Root, pr.Check.Path, status)
		}

		if r.File == nil {
			continue
		}

		stale, serr := gen.Stale(*r.File)
		if serr != nil {
			errs = append(errs, serr)
			continue
		}

		if stale {
			slog.Warn("stale output", "config", r.Config, "file", r.File.Path())
			fmt.Fprintf(out, "%s: %s is out of date\n", r.Config, r.File.Path())
			errs = append(errs, fmt.Errorf("%s: %w", r.File.Path(), ErrStale))
		}
	}

	return errors.Join(errs...)
}
