// Command activation-report declares a list of namespaces, validating each
// one's key from the environment, then prints the activation report a
// process-exit hook would emit. It doubles as a demo of the full
// declare-validate-record-report flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/prometheus/common/expfmt"

	"shareware/internal/config"
	"shareware/internal/corpus"
	"shareware/internal/infrastructure"
	"shareware/internal/license"
	"shareware/internal/report"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC RECOVERED: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	namespaces := flag.String("namespaces", "", "comma-separated namespace names to declare (required)")
	xlsxPath := flag.String("xlsx", "", "optional path to export the report as an Excel workbook")
	dumpMetrics := flag.Bool("metrics", false, "dump validation metrics in prometheus text format")
	flag.Parse()

	if *namespaces == "" {
		fmt.Fprintln(os.Stderr, "usage: activation-report -namespaces A,B,C [-xlsx report.xlsx] [-metrics]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := infrastructure.MustInitializeLogger(cfg.Logging)

	ctx := context.Background()
	providers, err := infrastructure.InitializeOTel(logger)
	if err != nil {
		logger.Error("otel initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer providers.Shutdown(ctx)

	metrics, err := license.InitializeMetrics(infrastructure.Meter(license.MeterName))
	if err != nil {
		logger.Error("metrics initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engineOpts := []license.EngineOption{license.WithMetrics(metrics)}
	if cfg.License.Cache.Enabled {
		engineOpts = append(engineOpts, license.WithCache(cfg.License.Cache.MaxSize))
	}
	engine := license.NewEngine(corpus.New(cfg.License.CorpusPath), cfg.License.EpochOrdinal, engineOpts...)

	registry := license.NewRegistry()
	declOpts := []license.DeclarerOption{}
	if cfg.License.RateLimit.Enabled {
		declOpts = append(declOpts, license.WithGuard(
			license.NewAttemptGuard(cfg.License.RateLimit.PerMin, cfg.License.RateLimit.Burst)))
	}
	declarer := license.NewDeclarer(engine, registry, cfg.License.KeyEnvPrefix, declOpts...)

	for _, name := range strings.Split(*namespaces, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := declarer.Declare(ctx, name); err != nil {
			logger.Warn("declaration rejected",
				slog.String("namespace", name),
				slog.String("error", err.Error()),
			)
		}
	}

	snapshot := registry.Snapshot()
	if err := report.Render(os.Stdout, snapshot); err != nil {
		logger.Error("report rendering failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *xlsxPath != "" {
		if err := report.WriteWorkbook(*xlsxPath, snapshot); err != nil {
			logger.Error("workbook export failed",
				slog.String("path", *xlsxPath),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Info("workbook exported", slog.String("path", *xlsxPath))
	}

	if *dumpMetrics {
		families, err := providers.Registry.Gather()
		if err != nil {
			logger.Error("metrics gather failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, family := range families {
			if err := enc.Encode(family); err != nil {
				logger.Error("metrics encoding failed", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}
}
