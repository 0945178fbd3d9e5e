// Command hazopd runs the HazOps compliance engine: an HTTP server plus
// small operational subcommands for offline validation and catalog checks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/procsafe/hazard-engine/pkg/api"
	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/config"
	"github.com/procsafe/hazard-engine/pkg/hazop"
	"github.com/procsafe/hazard-engine/pkg/observability"
	"github.com/procsafe/hazard-engine/pkg/store"
)

const version = "1.0.0"

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return runServer(stderr)
	}

	switch args[1] {
	case "server", "serve":
		return runServer(stderr)
	case "validate":
		return runValidateCmd(args[2:], stdout, stderr)
	case "catalog":
		return runCatalogCmd(args[2:], stdout, stderr)
	case "health":
		return runHealthCmd(stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "hazopd %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		if args[1][0] == '-' {
			return runServer(stderr)
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "hazopd %s - HazOps compliance engine\n\n", version)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  hazopd <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")
	fmt.Fprintln(w, "  server    Run the HTTP server (default)")
	fmt.Fprintln(w, "  validate  Validate analysis entries from a JSON file (--entries, --standards, --lopa)")
	fmt.Fprintln(w, "  catalog   Inspect clause catalogs (--dir to load external catalogs)")
	fmt.Fprintln(w, "  health    Check a running server over HTTP")
	fmt.Fprintln(w, "  version   Print the version")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// buildRegistry returns the built-in catalogs, extended from CatalogDir
// when configured.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*compliance.Registry, error) {
	reg := compliance.NewRegistry()
	if cfg.CatalogDir == "" {
		return reg, nil
	}
	loaded, err := reg.LoadCatalogDir(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("load catalogs from %s: %w", cfg.CatalogDir, err)
	}
	for _, std := range loaded {
		logger.Info("catalog loaded", "standard", std)
	}
	return reg, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.AnalysisStore, error) {
	if cfg.LiteMode {
		logger.Info("lite mode", "sqlite_path", cfg.SQLitePath)
		return store.OpenSQLite(cfg.SQLitePath)
	}
	st, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("postgres connected")
	return st, nil
}

func runServer(stderr io.Writer) int {
	ctx := context.Background()
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.Profile != "" && cfg.ProfileDir != "" {
		profile, err := config.LoadProfile(cfg.ProfileDir, cfg.Profile)
		if err != nil {
			log.Fatalf("load deployment profile: %v", err)
		}
		logger.Info("deployment profile",
			"code", profile.Code, "name", profile.Name, "standards", profile.Standards)
		if profile.CatalogDir != "" && cfg.CatalogDir == "" {
			cfg.CatalogDir = profile.CatalogDir
		}
	}

	var obs *observability.Provider
	if cfg.OTELEnabled {
		obsCfg := observability.DefaultConfig()
		obsCfg.ServiceVersion = version
		obsCfg.OTLPEndpoint = cfg.OTLPEndpoint
		var err error
		obs, err = observability.New(ctx, obsCfg)
		if err != nil {
			log.Fatalf("init observability: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = obs.Shutdown(shutdownCtx)
		}()
	}

	reg, err := buildRegistry(cfg, logger)
	if err != nil {
		log.Fatalf("build registry: %v", err)
	}
	logger.Info("clause registry ready",
		"standards", len(reg.Standards()), "clauses", reg.ClauseCount())

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	var cache *api.QuickStatusCache
	if cfg.RedisAddr != "" {
		cache = api.NewQuickStatusCache(cfg.RedisAddr, 5*time.Minute)
		defer cache.Close()
		logger.Info("quick-status cache enabled", "redis", cfg.RedisAddr)
	}

	svc := api.NewService(compliance.NewEngine(reg), st, cache, logger)
	svc.Obs = obs

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           svc.Handler(api.NewGlobalRateLimiter(50, 100)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(stderr, "server error: %v\n", err)
			return 1
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(stderr, "shutdown error: %v\n", err)
			return 1
		}
	}
	return 0
}

func runValidateCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	entriesPath := fs.String("entries", "", "path to a JSON file holding analysis entries")
	standardsArg := fs.String("standards", "", "comma separated standard IDs (default: all mandatory)")
	lopa := fs.Bool("lopa", false, "a LOPA study exists for this analysis")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *entriesPath == "" {
		fmt.Fprintln(stderr, "validate: --entries is required")
		return 2
	}

	raw, err := os.ReadFile(*entriesPath)
	if err != nil {
		fmt.Fprintf(stderr, "validate: %v\n", err)
		return 1
	}
	var entries []hazop.AnalysisEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		fmt.Fprintf(stderr, "validate: decode entries: %v\n", err)
		return 1
	}

	standards := compliance.MandatoryStandards
	if *standardsArg != "" {
		standards = nil
		for _, s := range strings.Split(*standardsArg, ",") {
			standards = append(standards, compliance.StandardID(strings.TrimSpace(s)))
		}
	}

	eng := compliance.NewEngine(nil)
	result := eng.ValidateCompliance(entries, standards, compliance.Options{HasLOPA: *lopa})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "validate: %v\n", err)
		return 1
	}
	if result.OverallStatus == compliance.StatusNonCompliant {
		return 1
	}
	return 0
}

func runCatalogCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "", "directory of catalog JSON files to load on top of the built-ins")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg := compliance.NewRegistry()
	if *dir != "" {
		loaded, err := reg.LoadCatalogDir(*dir)
		if err != nil {
			fmt.Fprintf(stderr, "catalog: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Loaded %d external catalog(s) from %s\n", len(loaded), *dir)
	}

	for _, std := range reg.Standards() {
		clauses := reg.Clauses(std)
		fmt.Fprintf(stdout, "%s (%d clauses)\n", std, len(clauses))
		for _, c := range clauses {
			fmt.Fprintf(stdout, "  %-10s %s\n", c.ID, c.Title)
		}
	}
	return 0
}

func runHealthCmd(out, errOut io.Writer) int {
	cfg := config.Load()
	resp, err := http.Get("http://localhost:" + cfg.Port + "/healthz")
	if err != nil {
		fmt.Fprintf(errOut, "Health check failed: %v\n", err)
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(errOut, "Health check failed: status %d\n", resp.StatusCode)
		return 1
	}
	fmt.Fprintln(out, "OK")
	return 0
}
