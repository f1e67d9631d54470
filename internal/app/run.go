package app

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/orchestrator"
)

// Run executes one pre-compilation and returns its report.
func (a *App) Run(ctx context.Context) (*orchestrator.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	proj := a.config.ProjectModel(a.properties)
	report, err := orchestrator.New(&a.config.JSPC, proj, a.translator).Run(ctx)
	if err != nil {
		return nil, err
	}
	if report.Skipped {
		return report, nil
	}

	attrs := []any{
		"files", report.FileCount,
		"elapsed", report.Elapsed,
		"classes_copied", report.CopiedArtifacts,
	}
	if report.Merge != nil {
		attrs = append(attrs,
			"web_xml", report.Merge.Path,
			"web_xml_size", humanize.Bytes(uint64(report.Merge.BytesWritten)),
		)
	}
	a.logger.Info("JSP pre-compilation finished.", attrs...)

	a.logger.Debug("App.Run method finished.")
	return report, nil
}
