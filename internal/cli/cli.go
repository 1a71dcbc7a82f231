package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/edgesvg/pkg/buildinfo"
	"github.com/matzehuels/edgesvg/pkg/config"
	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/observability"
	"github.com/matzehuels/edgesvg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "edgesvg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableHooks routes pipeline events to the CLI logger.
func (c *CLI) EnableHooks() {
	observability.SetPipelineHooks(&logHooks{logger: c.Logger})
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Edgesvg traces image edges into SVG line drawings",
		Long:         `Edgesvg runs Canny edge detection on a raster image at one or more smoothing scales and writes each edge map as a vector SVG document.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns path if set, otherwise the default config location.
func configPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseSigmas parses a comma-separated list of smoothing scales.
func parseSigmas(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one sigma is required")
	}
	parts := strings.Split(s, ",")
	sigmas := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "sigma %q", p)
		}
		sigmas = append(sigmas, v)
	}
	if err := errors.ValidateSigmas(sigmas); err != nil {
		return nil, err
	}
	return sigmas, nil
}
