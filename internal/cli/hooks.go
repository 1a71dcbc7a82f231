package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/edgesvg/pkg/observability"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.PipelineHooks = (*logHooks)(nil)

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("loading image", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("loaded image", "width", width, "height", height, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnScaleStart(_ context.Context, sigma float64) {
	h.logger.Debug("scale started", "sigma", sigma)
}

func (h *logHooks) OnScaleComplete(_ context.Context, sigma float64, stats observability.ScaleStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scale failed", "sigma", sigma, "err", err)
		return
	}
	h.logger.Debug("scale complete",
		"sigma", sigma,
		"edges", stats.Edges,
		"paths", stats.Paths,
		"bytes", stats.Bytes,
		"duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnOutput(_ context.Context, documents, size int) {
	h.logger.Debug("output ready", "documents", documents, "bytes", size)
}
