// Command golingo localizes text, JSON objects, chat transcripts and HTML
// documents through the Lingo.dev engine.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ZaguanLabs/golingo"
	"github.com/ZaguanLabs/golingo/provider"
	"github.com/spf13/cobra"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = golingo.Version
	commit    = golingo.GitCommit
	buildDate = golingo.BuildDate
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(&app{stdin: stdin, stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app holds the global flags and streams shared by every subcommand.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	envFile   string
	apiKey    string
	apiURL    string
	batchSize int
	idealSize int
	verbose   bool
	retries   int

	provider    string
	providerKey string
	model       string
	baseURL     string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "golingo",
		Short:         golingo.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `golingo localizes content through the Lingo.dev engine.

Configuration is read from LINGODOTDEV_* environment variables and an
optional .env file; flags override both.`,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "Load environment variables from this file")
	flags.StringVar(&a.apiKey, "api-key", "", "API key (or LINGODOTDEV_API_KEY env var)")
	flags.StringVar(&a.apiURL, "api-url", "", "API base URL (or LINGODOTDEV_API_URL env var)")
	flags.IntVar(&a.batchSize, "batch-size", 0, "Maximum entries per request")
	flags.IntVar(&a.idealSize, "ideal-batch-item-size", 0, "Target words per request")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&a.retries, "retries", 0, "Retry server errors this many times")
	flags.StringVar(&a.provider, "provider", "lingo", "Chunk translation backend: lingo, openai")
	flags.StringVar(&a.providerKey, "provider-api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	flags.StringVar(&a.model, "model", "gpt-4o-mini", "OpenAI model to use")
	flags.StringVar(&a.baseURL, "base-url", "", "Custom OpenAI-compatible base URL")

	root.AddCommand(
		newTextCmd(a),
		newBatchCmd(a),
		newObjectCmd(a),
		newChatCmd(a),
		newHTMLCmd(a),
		newRecognizeCmd(a),
		newWhoAmICmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// engine builds an Engine from the environment with flag overrides.
func (a *app) engine(cmd *cobra.Command) (*golingo.Engine, error) {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	cfg, err := golingo.ConfigFromEnv(envFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = a.apiKey
	}
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = a.batchSize
	}
	if flags.Changed("ideal-batch-item-size") {
		cfg.IdealBatchItemSize = a.idealSize
	}

	opts := []golingo.Option{golingo.WithLogger(a.logger())}

	switch a.provider {
	case "", "lingo":
	case "openai":
		key := a.providerKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("OpenAI API key required (--provider-api-key or OPENAI_API_KEY env)")
		}
		// recognize and whoami still talk to the Lingo.dev API
		if cfg.APIKey == "" {
			cfg.APIKey = key
		}
		opts = append(opts, golingo.WithChunkTranslator(provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  key,
			Model:   a.model,
			BaseURL: a.baseURL,
		})))
	default:
		return nil, fmt.Errorf("unknown provider %q (want lingo or openai)", a.provider)
	}

	if a.retries > 0 {
		retry := golingo.DefaultRetryConfig()
		retry.MaxRetries = a.retries
		opts = append(opts, golingo.WithRetry(retry))
	}
	return golingo.NewEngine(cfg, opts...)
}

// localeFlags are shared by the localization subcommands.
type localeFlags struct {
	source string
	target string
	fast   bool
	output string
}

func (f *localeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Source locale (empty to auto-detect)")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Target locale (required)")
	cmd.Flags().BoolVar(&f.fast, "fast", false, "Trade quality for speed")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("target")
}

func (f *localeFlags) params() golingo.LocalizationParams {
	return golingo.LocalizationParams{
		SourceLocale: golingo.LocaleCode(f.source),
		TargetLocale: golingo.LocaleCode(f.target),
		Fast:         f.fast,
	}
}

// readInput reads the file named by args[0], or stdin without arguments.
func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or stdout when path is empty.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - output is user content
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// progress prints percentages to stderr in verbose mode.
func (a *app) progress() golingo.SimpleProgressFunc {
	if !a.verbose {
		return nil
	}
	return func(percent int) {
		fmt.Fprintf(a.stderr, "progress: %d%%\n", percent)
	}
}
