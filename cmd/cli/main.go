package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gostoch/adapters/excel"
	"gostoch/adapters/export"
	"gostoch/adapters/stats/engine"
	"gostoch/adapters/stats/markov"
	"gostoch/adapters/tabular"
	"gostoch/domain/sample"
	"gostoch/domain/theory"
	"gostoch/internal/config"
	"gostoch/internal/testkit"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gostoch",
		Short: "Empirical distribution estimation and dependence analysis",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newTimeSeriesCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		modelFiles []string
		typeSpecs  []string
		orderSpecs []string
		format     string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Run a cross-sectional analysis over a CSV or Excel dataset",
		Long: `Estimate marginal and pairwise empirical distributions, dependence
measures, and optional theoretical-model fits for one dataset.

Example: gostoch analyze data.csv --model fair_dice.csv --type grade=ordinal --order grade=low,mid,high`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			dataPath, err := resolveInput(args, appConfig.Data.InputFile)
			if err != nil {
				return err
			}

			opts, err := buildOptions(typeSpecs, orderSpecs)
			if err != nil {
				return err
			}

			smpl, err := excel.NewDataReader(dataPath).ReadSample(opts)
			if err != nil {
				return err
			}

			if len(modelFiles) == 0 && appConfig.Data.ModelFile != "" {
				modelFiles = []string{appConfig.Data.ModelFile}
			}
			models := make([]*theory.TheoreticalModel, 0, len(modelFiles))
			for _, path := range modelFiles {
				model, err := readModel(path)
				if err != nil {
					return err
				}
				models = append(models, model)
			}

			report, err := engine.NewStatsEngine(appConfig.Policy).Analyze(smpl, models)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer closeOut()

			switch format {
			case "json":
				return export.WriteJSON(out, report)
			case "markdown":
				_, err := io.WriteString(out, export.RenderMarkdown(report))
				return err
			case "html":
				_, err := out.Write(export.ToHTML(export.RenderMarkdown(report)))
				return err
			case "csv":
				return export.WriteCSV(out, report)
			default:
				return fmt.Errorf("unknown format %q (want json, markdown, html or csv)", format)
			}
		},
	}

	cmd.Flags().StringArrayVar(&modelFiles, "model", nil, "Theoretical model CSV to evaluate (repeatable)")
	cmd.Flags().StringArrayVar(&typeSpecs, "type", nil, "Variable type override, e.g. grade=ordinal (repeatable)")
	cmd.Flags().StringArrayVar(&orderSpecs, "order", nil, "Ordinal value order, e.g. grade=low,mid,high (repeatable)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown, html or csv")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")

	return cmd
}

func newTimeSeriesCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "timeseries [panel-file]",
		Short: "Run Markov-chain diagnostics over a state panel",
		Long: `Estimate per-step transition matrices from a panel of state sequences
and report homogeneity, Markovian fit and weak stationarity.

The panel layout is Time,Instance1..InstanceK with one row per time step.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			dataPath, err := resolveInput(args, appConfig.Data.InputFile)
			if err != nil {
				return err
			}

			panel, err := excel.NewDataReader(dataPath).ReadPanel()
			if err != nil {
				return err
			}

			report, err := markov.NewAnalyzer(appConfig.Policy).Analyze(panel)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer closeOut()

			switch format {
			case "json":
				return export.WriteTimeSeriesJSON(out, report)
			case "markdown":
				_, err := io.WriteString(out, export.RenderTimeSeriesMarkdown(report))
				return err
			case "html":
				_, err := out.Write(export.ToHTML(export.RenderTimeSeriesMarkdown(report)))
				return err
			default:
				return fmt.Errorf("unknown format %q (want json, markdown or html)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var (
		rows int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Analyze a synthetic correlated dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			genConfig := testkit.DefaultConfig()
			genConfig.Rows = rows
			genConfig.Seed = seed

			smpl, err := testkit.NewGenerator(genConfig).CorrelatedPair()
			if err != nil {
				return err
			}

			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			report, err := engine.NewStatsEngine(appConfig.Policy).Analyze(smpl, nil)
			if err != nil {
				return err
			}
			_, err = io.WriteString(os.Stdout, export.RenderMarkdown(report))
			return err
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 200, "Number of synthetic observations")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")

	return cmd
}

func buildOptions(typeSpecs, orderSpecs []string) (tabular.Options, error) {
	opts := tabular.Options{
		Types:  make(map[string]sample.VarType),
		Orders: make(map[string][]string),
	}
	for _, spec := range typeSpecs {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return opts, fmt.Errorf("invalid --type %q (want name=numerical|nominal|ordinal)", spec)
		}
		switch strings.ToLower(value) {
		case "numerical":
			opts.Types[name] = sample.Numerical
		case "nominal":
			opts.Types[name] = sample.Nominal
		case "ordinal":
			opts.Types[name] = sample.Ordinal
		default:
			return opts, fmt.Errorf("unknown variable type %q", value)
		}
	}
	for _, spec := range orderSpecs {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return opts, fmt.Errorf("invalid --order %q (want name=v1,v2,...)", spec)
		}
		opts.Orders[name] = strings.Split(value, ",")
	}
	return opts, nil
}

func resolveInput(args []string, fallback string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("no data file given and INPUT_FILE is not set")
}

func readModel(path string) (*theory.TheoreticalModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return tabular.ParseModel(name, f)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
