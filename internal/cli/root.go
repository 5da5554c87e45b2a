package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser/engines"
	"github.com/R167/a11ycheck/internal/config"
	"github.com/R167/a11ycheck/internal/logging"
	"github.com/R167/a11ycheck/internal/output"
	"github.com/R167/a11ycheck/internal/runner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// newEngine is swapped out in tests.
var newEngine = engines.New

// NewRootCommand creates and returns the root cobra command for a11ycheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a11ycheck",
		Short: "Accessibility smoke test for the slideshow player page",
		Long: `a11ycheck loads the player page in a headless browser, checks that the
controls have associated labels and that the slide buttons carry the expected
aria-label, then saves a full-page screenshot.

The first failing check stops the run and the command exits non-zero.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChecks,
	}

	addConfigFlags(cmd.PersistentFlags())
	cmd.Flags().Bool("labels", false, "Run only the label checks (combine with --buttons)")
	cmd.Flags().Bool("buttons", false, "Run only the button checks (combine with --labels)")

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewInstallCommand())
	cmd.AddCommand(NewMCPCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (default: "+config.DefaultConfigFile+" if present)")
	fs.String("url", common.DefaultTargetURL, "Page to check")
	fs.String("screenshot", common.DefaultScreenshotPath, "Where to write the full-page PNG (directory must exist)")
	fs.String("engine", engines.Default, "Browser engine: playwright or chromedp")
	fs.Bool("headless", true, "Run the browser headless (--headless=false to watch)")
	fs.Duration("timeout", 2*time.Minute, "Maximum time for the whole run")
	fs.Duration("assert-timeout", common.AssertTimeout, "How long each check polls before failing")
	fs.Duration("navigation-timeout", common.NavigationTimeout, "Page load timeout")
	fs.Bool("no-preflight", false, "Skip the HTTP reachability check before launching the browser")
	fs.Bool("allow-remote", false, "Allow non-local target URLs")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text or json")
	fs.Bool("no-color", false, "Disable colored output")
	fs.Bool("debug", false, "Print debug progress lines and debug logs")
}

// loadConfig layers defaults, the config file, the environment and explicitly
// set flags, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fs := cmd.Flags()
	path, _ := fs.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var o config.Overrides
	if fs.Changed("url") {
		v, _ := fs.GetString("url")
		o.TargetURL = &v
	}
	if fs.Changed("screenshot") {
		v, _ := fs.GetString("screenshot")
		o.ScreenshotPath = &v
	}
	if fs.Changed("engine") {
		v, _ := fs.GetString("engine")
		o.Engine = &v
	}
	if fs.Changed("headless") {
		v, _ := fs.GetBool("headless")
		o.Headless = &v
	}
	if fs.Changed("timeout") {
		v, _ := fs.GetDuration("timeout")
		o.Timeout = &v
	}
	if fs.Changed("assert-timeout") {
		v, _ := fs.GetDuration("assert-timeout")
		o.AssertTimeout = &v
	}
	if fs.Changed("navigation-timeout") {
		v, _ := fs.GetDuration("navigation-timeout")
		o.NavigationTimeout = &v
	}
	if fs.Changed("no-preflight") {
		v, _ := fs.GetBool("no-preflight")
		v = !v
		o.Preflight = &v
	}
	if fs.Changed("allow-remote") {
		v, _ := fs.GetBool("allow-remote")
		o.AllowRemote = &v
	}
	if fs.Changed("log-level") {
		v, _ := fs.GetString("log-level")
		o.LogLevel = &v
	}
	if fs.Changed("log-format") {
		v, _ := fs.GetString("log-format")
		o.LogFormat = &v
	}
	if fs.Changed("no-color") {
		v, _ := fs.GetBool("no-color")
		o.NoColor = &v
	}
	if debug, _ := fs.GetBool("debug"); debug {
		level := "debug"
		o.LogLevel = &level
		common.SetDebugMode(true)
	}
	cfg.MergeWithFlags(o)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
}

func colorFor(w io.Writer, noColor bool) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return output.ColorEnabled(f, noColor)
}

func runChecks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	var names []string
	if v, _ := cmd.Flags().GetBool("labels"); v {
		names = append(names, "labels")
	}
	if v, _ := cmd.Flags().GetBool("buttons"); v {
		names = append(names, "buttons")
	}

	engine, err := newEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	out := output.NewStreamingOutput(w).WithColor(colorFor(w, cfg.NoColor))

	rc := runner.NewRunContext(ctx).
		WithTargetURL(cfg.TargetURL).
		WithScreenshotPath(cfg.ScreenshotPath).
		WithHeadless(cfg.Headless).
		WithGlobalTimeout(cfg.Timeout).
		WithAssertTimeout(cfg.AssertTimeout).
		WithNavigationTimeout(cfg.NavigationTimeout).
		WithPreflight(cfg.Preflight).
		WithAllowRemote(cfg.AllowRemote).
		WithCheckers(names...).
		WithLogger(logger)

	report, err := runner.Run(rc, engine, out)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"checks", len(report.Results),
		"screenshot", report.ScreenshotPath,
		"duration", report.Duration)
	return nil
}
