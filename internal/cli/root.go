// Package cli provides the abstractrank command.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/input"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/progress"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/ranker"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/report"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/resilience"
)

// Options are the resolved command-line inputs of one run.
type Options struct {
	InputPath  string
	OutputPath string
	ConfigPath string
	LogLevel   string
	LogFormat  string
	SourceDir  string
}

// Execute runs the root command against os.Args and returns the process
// exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[ERROR] %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}

// NewRootCmd creates the abstractrank command.
func NewRootCmd() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "abstractrank <input_file> <output_file>",
		Short: "Rank abstracts by Jaccard similarity to a set of target words",
		Long: `abstractrank reads a job file (thread/abstract/result counts, target
words, abstract file names), scores every abstract concurrently and writes
the top results with their matching sentences to the output file.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return apperrors.Newf(apperrors.ErrUsage, apperrors.ExitUsage,
					"expected input_file and output_file, got %d argument(s)", len(args))
			}
			return nil
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			opts.InputPath = args[0]
			opts.OutputPath = args[1]
			return Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", "", "log format (text, json)")
	cmd.Flags().StringVar(&opts.SourceDir, "abstracts-dir", "", "directory holding the abstract files")

	return cmd
}

// Run performs one ranking run. Configuration and input errors are returned
// before the output file is created.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrConfig, apperrors.ExitFailure, err, "loading config")
	}
	applyFlagOverrides(cfg, opts)
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("cli")

	job, err := input.ReadFile(opts.InputPath)
	if err != nil {
		return err
	}

	source, closeSource, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	m := metrics.New()
	if cfg.Metrics.Enabled {
		srv, err := metrics.StartServer(cfg.Metrics.Port, m)
		if err != nil {
			return apperrors.Wrapf(apperrors.ErrConfig, apperrors.ExitFailure, err, "starting metrics server")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	f, err := os.Create(opts.OutputPath)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrOutput, apperrors.ExitFailure, err, "creating %s", opts.OutputPath)
	}
	defer f.Close()
	out := bufio.NewWriter(f)

	if err := rank(ctx, cfg, job, source, m, out); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("%w: flushing %s: %w", apperrors.ErrOutput, opts.OutputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", apperrors.ErrOutput, opts.OutputPath, err)
	}
	log.Info("report written", "output", opts.OutputPath)
	return nil
}

func rank(ctx context.Context, cfg *config.Config, job *input.Job, source loader.Source, m *metrics.Metrics, out io.Writer) error {
	log := logger.WithComponent("cli")
	if err := report.WriteHeader(out); err != nil {
		return err
	}

	plog := progress.New(out, cfg.Progress.Labels)
	p := pipeline.New(loader.New(source), plog, m)
	results, err := p.Run(ctx, pipeline.Job{
		Threads: job.Threads,
		Targets: abstract.NewTargetWords(job.Targets),
		IDs:     job.IDs,
	})
	if err != nil {
		return err
	}
	if err := plog.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrOutput, err)
	}

	scored := results.Results()
	logLoadFailures(log, scored)

	ranked, err := ranker.Rank(scored, job.ReturnCount, ranker.FromConfig(cfg.Ranker))
	if err != nil {
		return err
	}
	if err := report.WriteResults(out, ranked); err != nil {
		return err
	}
	m.ResultsReported.Set(float64(len(ranked)))
	return nil
}

func newSource(cfg *config.Config) (loader.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceRedis:
		client, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, apperrors.Wrapf(apperrors.ErrConfig, apperrors.ExitFailure, err, "connecting to redis at %s", cfg.Redis.Addr)
		}
		src := loader.NewRedisSource(client, cfg.Source.RedisKeyPrefix, resilience.FromConfig(cfg.Retry))
		return src, func() { _ = client.Close() }, nil
	default:
		return loader.NewDirSource(cfg.Source.Dir), func() {}, nil
	}
}

func applyFlagOverrides(cfg *config.Config, opts Options) {
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Logging.Format = opts.LogFormat
	}
	if opts.SourceDir != "" {
		cfg.Source.Kind = config.SourceDir
		cfg.Source.Dir = opts.SourceDir
	}
}

func logLoadFailures(log *slog.Logger, scored []abstract.Abstract) {
	failed := 0
	for _, a := range scored {
		if a.Status == abstract.StatusLoadFailed {
			failed++
		}
	}
	if failed > 0 {
		log.Warn("some abstracts could not be loaded and were scored as empty",
			"failed", failed,
			"total", len(scored),
		)
	}
}
