// Command fitcheck runs the outfit gate and rating pipeline on local image
// files and prints one JSON outcome per file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/your-org/fitcheck/internal/analysis"
	"github.com/your-org/fitcheck/internal/app"
	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/observability"
	"github.com/your-org/fitcheck/internal/storage"
	"github.com/your-org/fitcheck/internal/stylemetrics"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanups finish first.
func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("fitcheck", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configPath := fset.String("config", "", "path to config file (defaults apply when empty)")
	noRate := fset.Bool("no-rate", false, "use demo ratings instead of OpenAI")
	noFallback := fset.Bool("no-fallback", false, "disable the filename heuristic classifier")
	summary := fset.Bool("summary", false, "print a history summary after all files")
	fset.Usage = func() {
		fmt.Fprintln(fset.Output(), "usage: fitcheck [flags] image...")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if fset.NArg() == 0 {
		fset.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	// stdout carries results; logs go to stderr.
	slog.SetDefault(observability.NewLogger(stderr, cfg.Logging.Level, "text"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("open metrics store", "driver", cfg.MetricsStore.Driver, "error", err)
		return 1
	}
	defer store.Close()
	history := storage.NewHistory(store, cfg.MetricsStore.Capacity)

	classifier, closeClassifier := app.NewClassifier(cfg, app.ClassifierOptions{SkipFilename: *noFallback})
	defer closeClassifier()

	svc := analysis.NewService(classifier, app.NewRater(cfg.OpenAI, *noRate), stylemetrics.New(), history, nil)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	failed := 0
	for _, path := range fset.Args() {
		if err := analyzeFile(ctx, svc, enc, path); err != nil {
			slog.Error("analyze file", "path", path, "error", err)
			failed++
		}
		if ctx.Err() != nil {
			break
		}
	}

	if *summary {
		if err := enc.Encode(history.Summary(ctx)); err != nil {
			slog.Error("write summary", "error", err)
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(nil)
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s not found", path)
	}
	return cfg, err
}

func analyzeFile(ctx context.Context, svc *analysis.Service, enc *json.Encoder, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	out, err := svc.Analyze(ctx, analysis.Upload{
		Filename:    filepath.Base(path),
		ContentType: contentType(path, data),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return enc.Encode(out)
}

// contentType prefers the file extension and falls back to sniffing.
func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
