package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	"housingdata/internal/config"
	"housingdata/internal/dataprocessing"
	"housingdata/internal/exporter"
	"housingdata/internal/files"
	"housingdata/internal/infrastructure"
	"housingdata/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command and returns the process exit code
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("housingdata", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configFile := fs.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml)")
	dataDir := fs.String("data", "", "directory holding the downloaded dataset files")
	outDir := fs.String("out", "", "directory CSV exports are written to")
	datasetArg := fs.String("dataset", "all", "comma-separated dataset names, or \"all\" for every dataset present")
	list := fs.Bool("list", false, "list known datasets and whether their files are present")
	bom := fs.Bool("bom", false, "prefix exported CSV files with a UTF-8 BOM")
	metricsFile := fs.String("metrics", "", "write Prometheus metrics to this textfile after the run")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, contracts.FullVersion())
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stdout, "failed to load config: %v\n", err)
		return 1
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *metricsFile != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = *metricsFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, stdout)
	if err != nil {
		fmt.Fprintf(stdout, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	discovery := files.NewDiscovery(cfg.Paths.DataDir)
	if *list {
		printCatalog(stdout, discovery)
		return 0
	}

	reg := prometheus.NewRegistry()
	metrics, err := infrastructure.NewLoaderMetrics(reg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to register metrics", slog.String("error", err.Error()))
		return 1
	}

	names := selectDatasets(*datasetArg, discovery)
	if len(names) == 0 {
		logger.WarnContext(ctx, "No datasets to load", slog.String("data_dir", cfg.Paths.DataDir))
		return 1
	}

	logger.InfoContext(ctx, "Starting dataset export",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.Any("datasets", names))

	datasets := dataprocessing.NewHousingDatasets(cfg.Paths.DataDir,
		dataprocessing.WithLogger(logger),
		dataprocessing.WithMetrics(metrics))
	writer := exporter.NewCSVWriter(cfg.Paths.OutputDir)

	failed := 0
	for _, name := range names {
		table, err := datasets.LoadContext(ctx, name)
		if err != nil {
			failed++
			continue
		}

		path, err := writer.WriteTable(ctx, table, *bom)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to export dataset",
				slog.String("dataset", name),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		logger.InfoContext(ctx, "Dataset exported",
			slog.String("dataset", name),
			slog.String("title", table.Title),
			slog.String("value_label", table.ValueLabel),
			slog.Int("rows", table.Rows()),
			slog.String("path", path))
	}

	if cfg.Metrics.Enabled {
		if err := infrastructure.WriteTextfile(cfg.Metrics.TextfilePath, reg); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics textfile",
				slog.String("path", cfg.Metrics.TextfilePath),
				slog.String("error", err.Error()))
			failed++
		}
	}

	logger.InfoContext(ctx, "Dataset export finished",
		slog.Int("total", len(names)),
		slog.Int("failed", failed))

	if failed > 0 {
		return 1
	}
	return 0
}

// selectDatasets expands the -dataset flag into catalog names
func selectDatasets(arg string, discovery *files.Discovery) []string {
	if strings.TrimSpace(arg) == "all" {
		return discovery.PresentDatasets()
	}

	var names []string
	for _, name := range strings.Split(arg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// printCatalog writes one line per known dataset
func printCatalog(w io.Writer, discovery *files.Discovery) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tPRESENT\tFILE")
	for _, s := range discovery.AvailableDatasets() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", s.Spec.Name, s.Spec.Source, s.Present, s.Spec.FileName())
	}
	tw.Flush()
}
