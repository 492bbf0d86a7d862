// Command mood-to-music serves playlist suggestions for a described or selected mood.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/justestif/go-mood-to-music/internal/config"
	"github.com/justestif/go-mood-to-music/internal/llm"
	"github.com/justestif/go-mood-to-music/internal/recommend"
	"github.com/justestif/go-mood-to-music/internal/web"
	webfs "github.com/justestif/go-mood-to-music/web"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mood-to-music",
	Short: "Turn a mood into playlist ideas",
	Long: `mood-to-music classifies how you feel (free text or a mood button)
and suggests playlist titles and search queries for streaming services.

Run without a subcommand to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured language model answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Second)
		defer cancel()

		opts := cfg.LLM.Options()
		completer, err := llm.NewCompleter(ctx, opts)
		if err != nil {
			return fmt.Errorf("creating %s client: %w", opts.Provider, err)
		}

		reply, err := llm.Ping(ctx, completer)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", opts.Provider, modelName(opts), reply)
		return nil
	},
}

var classifyButton bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Print the recommendation JSON for a mood without starting the server",
	Example: `  mood-to-music classify "tired but hopeful"
  mood-to-music classify --button calm`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		input := strings.Join(args, " ")
		var resp *recommend.Response
		if classifyButton {
			resp, err = a.service.AnalyzeSelection(ctx, input)
		} else {
			resp, err = a.service.AnalyzeText(ctx, input)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables take precedence)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	classifyCmd.Flags().BoolVar(&classifyButton, "button", false, "Treat the argument as a mood button label")

	rootCmd.AddCommand(serveCmd, pingCmd, classifyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.maintain(ctx, cfg); err != nil {
		logger.Warn("history maintenance failed", zap.Error(err))
	}

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.ListenAddr(),
		Moods:       a.service,
		History:     a.store,
		TemplatesFS: templates,
		StaticFS:    static,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

// newLogger builds a production zap logger at level, or debug when verbose.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}

func modelName(opts llm.Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return llm.DefaultModel(opts.Provider)
}
