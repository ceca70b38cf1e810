package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mistralbridge/internal/common/fsutil"
	"mistralbridge/internal/config"
	"mistralbridge/internal/mockapi"
	"mistralbridge/pkg/llm"
	"mistralbridge/pkg/mistral"
)

// options collects flag/env inputs before they are resolved into a client.
type options struct {
	configPath  string
	endpoint    string
	authToken   string
	temperature float64
	insecure    bool
	timeoutSec  int
	logLevel    string
	mockAddr    string
	corsEnabled bool
	corsOrigins []string
}

// optionsFromEnv seeds defaults from the environment.
func optionsFromEnv() *options {
	return &options{
		configPath:  envStr("MISTRALBRIDGE_CONFIG", ""),
		endpoint:    envStr("MISTRAL_ENDPOINT", ""),
		authToken:   envStr("MISTRAL_AUTH_TOKEN", ""),
		temperature: envFloat("MISTRAL_TEMPERATURE", 0),
		insecure:    envBool("MISTRAL_INSECURE_TLS", false),
		timeoutSec:  envInt("MISTRALBRIDGE_TIMEOUT_SEC", 0),
		logLevel:    envStr("MISTRALBRIDGE_LOG_LEVEL", "info"),
		mockAddr:    envStr("MISTRALBRIDGE_MOCK_ADDR", ":8089"),
	}
}

// resolve overlays the config file (if any) under the flag/env values.
// Flags and env vars win when set; the file fills the gaps.
func (o *options) resolve() error {
	if o.configPath == "" {
		return nil
	}
	path, err := fsutil.ExpandHome(o.configPath)
	if err != nil {
		return err
	}
	if !fsutil.PathExists(path) {
		return fmt.Errorf("config file not found: %s", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if o.endpoint == "" {
		o.endpoint = cfg.Endpoint
	}
	if o.authToken == "" {
		o.authToken = cfg.AuthToken
	}
	if o.temperature == 0 {
		o.temperature = cfg.Temperature
	}
	if !o.insecure {
		o.insecure = cfg.InsecureTLS
	}
	if o.timeoutSec == 0 {
		o.timeoutSec = cfg.TimeoutSec
	}
	if o.mockAddr == ":8089" && cfg.MockAddr != "" {
		o.mockAddr = cfg.MockAddr
	}
	return nil
}

func (o *options) client() *mistral.Client {
	return mistral.New(mistral.Config{
		Endpoint:           o.endpoint,
		AuthToken:          o.authToken,
		Temperature:        o.temperature,
		InsecureSkipVerify: o.insecure,
		Timeout:            time.Duration(o.timeoutSec) * time.Second,
	})
}

func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "mistralctl",
		Short:         "Call a Mistral-style text-generation endpoint from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", opts.configPath, "Path to a yaml/json/toml config file (defaults MISTRALBRIDGE_CONFIG)")
	pf.StringVar(&opts.endpoint, "endpoint", opts.endpoint, "Generation endpoint URL (defaults MISTRAL_ENDPOINT)")
	pf.StringVar(&opts.authToken, "auth-token", opts.authToken, "Bearer token for the endpoint (defaults MISTRAL_AUTH_TOKEN)")
	pf.Float64Var(&opts.temperature, "temperature", opts.temperature, "Sampling temperature kept as identifying metadata (0 = default 0.7)")
	pf.BoolVar(&opts.insecure, "insecure-tls", opts.insecure, "Skip TLS certificate verification (only for trusted internal endpoints)")
	pf.IntVar(&opts.timeoutSec, "timeout-sec", opts.timeoutSec, "Per-request timeout in seconds (0 = no client-side deadline)")
	pf.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug|info|warn|error (defaults MISTRALBRIDGE_LOG_LEVEL or info)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(parseLogLevel(opts.logLevel)).
			With().Timestamp().Logger()
		mistral.SetLogger(logger)
		mockapi.SetLogger(logger)
		return opts.resolve()
	}

	var stop []string
	generateCmd := &cobra.Command{
		Use:     "generate [prompt...]",
		Short:   "Send a prompt and print the generated text",
		Example: "  mistralctl generate --endpoint https://llm.internal/v1/generate 'Write a haiku'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			text, err := opts.client().Generate(ctx, strings.Join(args, " "), llm.Options{Stop: stop})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	generateCmd.Flags().StringArrayVar(&stop, "stop", nil, "Stop sequences (accepted for pipeline compatibility; not sent to the endpoint)")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Print the adapter's identifying parameters as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(opts.client().IdentifyingParams())
		},
	}

	mockCmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a local stand-in for the remote endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMock(opts)
		},
	}
	mockCmd.Flags().StringVar(&opts.mockAddr, "addr", opts.mockAddr, "Listen address for the mock endpoint (defaults MISTRALBRIDGE_MOCK_ADDR or :8089)")
	mockCmd.Flags().BoolVar(&opts.corsEnabled, "cors-enabled", false, "Enable CORS on the mock endpoint")
	mockCmd.Flags().StringSliceVar(&opts.corsOrigins, "cors-origins", []string{"*"}, "Allowed CORS origins")

	root.AddCommand(generateCmd, paramsCmd, mockCmd)
	return root
}

// runMock serves the mock endpoint until SIGINT/SIGTERM.
func runMock(opts *options) error {
	mockapi.SetCORSOptions(opts.corsEnabled, opts.corsOrigins, []string{"GET", "POST", "OPTIONS"}, []string{"Authorization", "Content-Type"})
	srv := &http.Server{Addr: opts.mockAddr, Handler: mockapi.New(opts.authToken, nil).NewMux()}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "mock endpoint listening on %s\n", opts.mockAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
