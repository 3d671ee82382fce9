package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/tahoe-conditions/internal/pipeline"
	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Format selects the run-report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// WriteReport renders a completed run to w in the requested format.
func WriteReport(w io.Writer, report *pipeline.Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, report *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeText(w io.Writer, report *pipeline.Report) error {
	fmt.Fprintf(w, "Updated %d resorts in %s (%d fresh, %d stale)\n\n",
		len(report.Resorts), report.Duration.Round(10*time.Millisecond), report.Fresh, report.Stale)

	for _, c := range report.Resorts {
		fmt.Fprintln(w, resortLine(c))
	}

	if report.Summary != nil && len(report.Summary.Highlights) > 0 {
		fmt.Fprintln(w)
		for _, h := range report.Summary.Highlights {
			fmt.Fprintf(w, "  * %s\n", h)
		}
	}

	return nil
}

func resortLine(c *resort.Conditions) string {
	status := "closed"
	switch {
	case c.Stale:
		status = "stale"
	case c.Ops.OpenFlag != nil && *c.Ops.OpenFlag:
		status = "open"
	}

	line := fmt.Sprintf("  %-16s %-6s", c.Slug, status)

	if c.Ops.LiftsTotal != nil {
		line += fmt.Sprintf("  lifts %d/%d", c.Ops.LiftsAvailable(), *c.Ops.LiftsTotal)
	}
	if c.Ops.TrailsTotal != nil {
		line += fmt.Sprintf("  trails %d/%d", c.Ops.TrailsAvailable(), *c.Ops.TrailsTotal)
	}
	if c.Snow.BaseDepthIn != nil {
		line += fmt.Sprintf("  base %.0f\"", *c.Snow.BaseDepthIn)
	}
	if c.Weather.TempF != nil {
		line += fmt.Sprintf("  %.0f F", *c.Weather.TempF)
	}

	return line
}
