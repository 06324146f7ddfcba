// Command keygen issues activation keys. Given a namespace and a calendar
// month it prints the key a paying user would set in the environment for
// that month.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"shareware/internal/config"
	"shareware/internal/corpus"
	"shareware/internal/infrastructure"
	"shareware/internal/license"
	"shareware/internal/window"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC RECOVERED: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	namespace := flag.String("namespace", "", "namespace name to issue a key for (required)")
	monthStr := flag.String("month", "", "validity month as YYYY-MM (defaults to the current month)")
	flag.Parse()

	if *namespace == "" {
		fmt.Fprintln(os.Stderr, "usage: keygen -namespace NAME [-month YYYY-MM]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := infrastructure.MustInitializeLogger(cfg.Logging)

	monthOrdinal, err := parseMonth(*monthStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -month: %v\n", err)
		os.Exit(2)
	}

	engine := license.NewEngine(corpus.New(cfg.License.CorpusPath), cfg.License.EpochOrdinal)
	key, err := engine.Issue(*namespace, monthOrdinal)
	if err != nil {
		logger.Error("key issuance failed",
			slog.String("namespace", *namespace),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("key issued",
		slog.String("namespace", *namespace),
		slog.Int("month_ordinal", monthOrdinal),
	)
	fmt.Printf("%s=%s\n", license.KeyEnvVar(cfg.License.KeyEnvPrefix, *namespace), key)
}

// parseMonth converts YYYY-MM to an absolute month ordinal; empty means the
// current month.
func parseMonth(s string) (int, error) {
	if s == "" {
		return window.Ordinal(time.Now()), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, err
	}
	return window.OrdinalOf(t.Year(), t.Month()), nil
}
