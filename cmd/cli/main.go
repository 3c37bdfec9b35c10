package main

import (
	"fmt"
	"os"
	"strings"

	"augbench/adapters/checkpoint"
	"augbench/adapters/excel"
	"augbench/adapters/trainer"
	"augbench/app"
	"augbench/domain/run"
	"augbench/internal"
	"augbench/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "augbench",
		Short: "Aggregate repeated augmentation-experiment results and orchestrate re-runs",
	}

	rootCmd.AddCommand(
		newResultsCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newResultsCmd() *cobra.Command {
	var modelA, modelB string
	var paper []string
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "results <checkpoint-dir> [<second-checkpoint-dir>]",
		Short: "Aggregate checkpoint directories into per-method statistics",
		Long: `Aggregate every checkpoint in a directory into per-run and per-method
tables (mean accuracy with 95% confidence interval per augmentation method).
With a second directory, both models are aggregated and compared.

Example: augbench results wrn_40x2 wrn_28x2 --model "WRN-40-2" --model-b "WRN-28-2" \
  --paper "FAA (RA)=96.39 ± 0.06" --xlsx results.xlsx`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			paperResults, err := parsePaperResults(paper)
			if err != nil {
				return err
			}
			return runResults(args, modelA, modelB, paperResults, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&modelA, "model", "Model A", "Display name for the first model")
	cmd.Flags().StringVar(&modelB, "model-b", "Model B", "Display name for the second model")
	cmd.Flags().StringArrayVar(&paper, "paper", nil, `Published reference result, repeatable: "<method>=<result>"`)
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also export the tables to an Excel workbook at this path")

	return cmd
}

func runResults(dirs []string, modelA, modelB string, paperResults map[string]string, xlsxPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := internal.DefaultLogger
	registry := run.DefaultRegistry()
	loader := checkpoint.NewLoader(cfg.Checkpoint.Extension, logger)
	aggregator := app.NewAggregationService(loader, registry, os.Stdout, logger)
	banner := appBanner(os.Stdout)

	var reports []*app.DirectoryReport
	models := []string{modelA, modelB}
	for i, dir := range dirs {
		banner(fmt.Sprintf("%s EXPERIMENTS", models[i]))
		// Published numbers only accompany the first model; the second
		// block typically has none to compare against.
		var paper map[string]string
		if i == 0 {
			paper = paperResults
		}
		rep, err := aggregator.ProcessDirectory(dir, models[i], paper)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	if len(reports) == 2 && reports[0].Result != nil && reports[1].Result != nil {
		comparator := app.NewComparisonService(registry, os.Stdout, logger)
		if _, err := comparator.Compare(reports[0].Result, reports[1].Result); err != nil {
			return err
		}
	}

	if xlsxPath != "" {
		return exportWorkbook(xlsxPath, registry, models, reports, logger)
	}
	return nil
}

func exportWorkbook(path string, registry run.MethodRegistry, models []string, reports []*app.DirectoryReport, logger *internal.Logger) error {
	writer := excel.NewResultsWriter(logger)
	defer writer.Close()

	exported := 0
	for i, rep := range reports {
		if rep.Result == nil {
			continue
		}
		rows, err := app.BuildSummaryRows(registry, rep.Result)
		if err != nil {
			return err
		}
		if err := writer.AddModel(models[i], rep.Records, rows); err != nil {
			return err
		}
		exported++
	}
	if exported == 0 {
		logger.Warn("no results to export, skipping workbook %s", path)
		return nil
	}
	return writer.Save(path)
}

func newRunCmd() *cobra.Command {
	var batch app.BatchConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run repeated training experiments sequentially",
		Long: `Invoke the external trainer N times with the same configuration, saving
one checkpoint per run under "<prefix>_<model-tag>_<run>". Failed runs stop
the batch unless --keep-going is set.

Example: augbench run --config confs/wrn40x2_ua.yaml --prefix expUAua \
  --model-tag wrn40x2 --runs 10 --output-dir wrn_40x2 --keep-going`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			batch.DataRoot = cfg.Trainer.DataRoot
			batch.Extension = cfg.Checkpoint.Extension
			if batch.ExperimentName == "" {
				batch.ExperimentName = fmt.Sprintf("%s %s", batch.ModelTag, batch.Prefix)
			}

			logger := internal.DefaultLogger
			sub := trainer.NewSubprocessTrainer(trainer.Command{
				Python: cfg.Trainer.Python,
				Module: cfg.Trainer.Module,
			}, logger)
			service := app.NewBatchService(sub, os.Stdout, logger)

			summary, err := service.Run(cmd.Context(), batch)
			if err != nil {
				return err
			}
			if summary.Succeeded < len(summary.Results) || summary.Stopped {
				return fmt.Errorf("%d of %d runs failed", len(summary.Results)-summary.Succeeded, len(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&batch.ConfigPath, "config", "", "Training configuration path (passed through verbatim)")
	cmd.Flags().StringVar(&batch.ExperimentName, "name", "", "Experiment display name (default: \"<model-tag> <prefix>\")")
	cmd.Flags().StringVar(&batch.OutputDir, "output-dir", ".", "Directory receiving checkpoint artifacts")
	cmd.Flags().StringVar(&batch.Prefix, "prefix", "", "Method prefix for run tags, e.g. expUAua")
	cmd.Flags().StringVar(&batch.ModelTag, "model-tag", "", "Model tag for run tags, e.g. wrn40x2")
	cmd.Flags().IntVar(&batch.Runs, "runs", 10, "Number of sequential runs")
	cmd.Flags().BoolVar(&batch.ContinueOnFailure, "keep-going", false, "Continue remaining runs after a failure")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("model-tag")

	return cmd
}

// parsePaperResults parses repeated "<method>=<result>" flags.
func parsePaperResults(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	results := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		method, result, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --paper value %q (want \"<method>=<result>\")", pair)
		}
		results[strings.TrimSpace(method)] = strings.TrimSpace(result)
	}
	return results, nil
}

// appBanner returns a banner printer for the top-level model sections.
func appBanner(out *os.File) func(string) {
	return func(title string) {
		rule := strings.Repeat("#", 80)
		pad := 78 - len(title)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(out, "\n%s\n#%s%s%s#\n%s\n",
			rule, strings.Repeat(" ", pad/2), title, strings.Repeat(" ", pad-pad/2), rule)
	}
}
