package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"distfit/adapters/samplefile"
	"distfit/app"
	domain "distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/analysis/fit"
	"distfit/internal/config"
	"distfit/internal/errors"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := internal.NewLogger(cfg.Log.Level)
	svc := app.NewEvaluationService(samplefile.NewStore(logger), cfg, logger)

	if err := newRootCmd(svc).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newRootCmd(svc *app.EvaluationService) *cobra.Command {
	var (
		generate string
		size     string
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "distfit <archivo>",
		Short: "Check whether a sample looks uniform, normal or neither",
		Long: `Evaluate a file of comma-separated numbers (or an .xlsx workbook) with the
chi-square and Kolmogorov-Smirnov tests against a fitted uniform and a fitted
normal distribution, and report which one the sample most resembles.

With --generar the file is written instead of read:

  distfit muestra.csv --generar normal --tamano 1000 --seed 7`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if generate == "" {
				return runAnalyze(cmd, svc, path)
			}

			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			return runGenerate(cmd, svc, path, generate, size, seedPtr)
		},
	}

	cmd.Flags().StringVar(&generate, "generar", "", `generate a sample file instead of analyzing: "uniforme" or "normal"`)
	cmd.Flags().StringVar(&size, "tamano", "", "number of values to generate (required with --generar)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible generation (overrides GENERATOR_SEED)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, svc *app.EvaluationService, path string) error {
	eval, err := svc.AnalyzeFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, fit.Report(eval))
	return nil
}

func runGenerate(cmd *cobra.Command, svc *app.EvaluationService, path, family, size string, seed *uint64) error {
	fam, err := domain.ParseFamily(family)
	if err != nil {
		return err
	}

	count, err := domain.ParseSize(size)
	if err != nil {
		return errors.Wrap(err, "invalid --tamano")
	}

	if err := svc.GenerateFile(cmd.Context(), fam, count, seed, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d values from the %s distribution into %s\n", count, fam, path)
	return nil
}
