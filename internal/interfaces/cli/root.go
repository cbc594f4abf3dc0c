// Package cli implements the shipcert command line.  Every command runs the
// survey engine offline, either over a JSON snapshot exported from the
// document store or over dates given as flags.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/turtacn/ShipCert-Intelligence/internal/config"
	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	NoColor      bool
	// Now is the clock used when --date is omitted.
	Now func() time.Time
}

// Today returns the current civil date.
func (c *CLIContext) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return domain.Civil(now())
}

// NewRootCommand creates the root command with its global flags and every
// subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "shipcert",
		Short:   "ShipCert survey scheduling",
		Long:    "shipcert computes next-survey dates, survey windows, drydocking and equipment\nvalidity for ship certificates, and scans a fleet snapshot for surveys that\nare currently actionable.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (built-in defaults when empty)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newScanCmd(),
		newNextSurveyCmd(),
		newDockingCmd(),
		newEquipmentCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	format := strings.ToLower(opts.OutputFormat)
	if format != OutputText && format != OutputJSON {
		return errors.InvalidParam("unsupported output format").WithDetail(opts.OutputFormat)
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return err
	}
	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if existing, ok := ctx.Value(cliContextKey{}).(*CLIContext); ok && existing != nil {
		// Injected by tests; keep the clock, refresh the rest.
		existing.Config, existing.Logger = cfg, logger
		existing.OutputFormat, existing.NoColor = format, opts.NoColor
		return nil
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: format,
		NoColor:      opts.NoColor,
	}))
	return nil
}

func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "config initialization failed")
	}
	return cfg, nil
}

func initLogger(opts *RootOptions) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            opts.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// WithClock returns a context that pins the CLI clock to now.
func WithClock(ctx context.Context, now func() time.Time) context.Context {
	return context.WithValue(ctx, cliContextKey{}, &CLIContext{Now: now})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil || cliCtx.Config == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// PrintError writes a formatted error message.  Application errors print
// their chained messages and the offending value.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	msg, detail := errors.ChainMessage(err)
	if root := rootCause(err); msg == "" {
		msg = err.Error()
	} else if !errors.As(root, new(*errors.AppError)) {
		msg += ": " + root.Error()
	}
	if detail != "" {
		fmt.Fprintf(w, "Error: %s (%s)\n", msg, detail)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
}

func rootCause(err error) error {
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func printJSON(w io.Writer, data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode output")
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// dateFlag parses an optional YYYY-MM-DD flag value.
func dateFlag(name, raw string) (*time.Time, error) {
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, errors.InvalidParam(fmt.Sprintf("--%s must be YYYY-MM-DD", name)).WithDetail(raw)
	}
	return t, nil
}

// requiredDateFlag is dateFlag for flags that must be present.
func requiredDateFlag(name, raw string) (time.Time, error) {
	t, err := dateFlag(name, raw)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, errors.InvalidParam(fmt.Sprintf("--%s is required", name))
	}
	return *t, nil
}

// todayFlag returns --date when given, otherwise the CLI clock's date.
func todayFlag(cc *CLIContext, raw string) (time.Time, error) {
	t, err := dateFlag("date", raw)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return cc.Today(), nil
	}
	return *t, nil
}

//Personal.AI order the ending
