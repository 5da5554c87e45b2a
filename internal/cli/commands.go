package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/R167/a11ycheck/checkers"
	"github.com/R167/a11ycheck/checkers/buttons"
	"github.com/R167/a11ycheck/checkers/labels"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/browser/cdpengine"
	"github.com/R167/a11ycheck/internal/browser/pwengine"
	"github.com/R167/a11ycheck/internal/mcp"
)

// installBrowsers is swapped out in tests.
var installBrowsers = pwengine.Install

// NewListCommand prints the checkers and what each asserts, in run order.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the checks in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			if !colorFor(w, false) {
				bold.DisableColor()
			}

			for _, c := range checkers.AllCheckers() {
				bold.Fprintf(w, "%s %s", c.Icon(), c.Name())
				fmt.Fprintf(w, "  %s\n", c.Description())

				switch c := c.(type) {
				case *labels.LabelChecker:
					for _, a := range c.Associations {
						fmt.Fprintf(w, "    %-20s label contains %q\n", a.ElementID, a.ExpectedText)
					}
				case *buttons.ButtonChecker:
					for _, b := range c.Assertions {
						fmt.Fprintf(w, "    %-20s aria-label is %q\n", "#"+b.ElementID, b.ExpectedAriaLabel)
					}
				}
			}
			return nil
		},
	}
}

// NewInstallCommand downloads the browser the playwright engine drives.
func NewInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the Chromium build used by the playwright engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Engine == cdpengine.Name {
				fmt.Fprintln(cmd.OutOrStdout(), "chromedp drives the locally installed Chrome; nothing to install.")
				return nil
			}
			if err := installBrowsers(); err != nil {
				return fmt.Errorf("install browsers: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Chromium installed.")
			return nil
		},
	}
}

// NewMCPCommand serves the checks as MCP tools over stdio.
func NewMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the checks as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			registry := mcp.DefaultRegistry(&mcp.Checks{
				Config: cfg,
				Logger: logger,
				NewEngine: func() (browser.Engine, error) {
					return newEngine(cfg.Engine, logger)
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving MCP over stdio", "tools", registry.Names())
			return mcp.RunServer(ctx, registry, Version, logger)
		},
	}
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "a11ycheck %s\n", Version)
		},
	}
}
