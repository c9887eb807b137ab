package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l10n.T("Conversion Summary"))
	fmt.Fprintf(&b, "- %s: %s\n", l10n.T("Generated"), s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- %s: %s\n", l10n.T("Sticker kind"), s.Kind)
	converted, oversize, failed := s.Counts()
	fmt.Fprintf(&b, "- %s: %d / %d\n", l10n.T("Converted"), converted, len(s.Entries))
	if oversize > 0 {
		fmt.Fprintf(&b, "- %s: %d\n", l10n.T("Over the size limit"), oversize)
	}
	if failed > 0 {
		fmt.Fprintf(&b, "- %s: %d\n", l10n.T("Failed"), failed)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Results"))
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
		l10n.T("Input"), l10n.T("Source"), l10n.T("Output"), l10n.T("Frames"),
		l10n.T("Duration"), l10n.T("Speed-up"), l10n.T("Size"))
	b.WriteString("|---|---|---|---:|---:|---:|---:|\n")

	for _, e := range s.Entries {
		if e.Failed() {
			fmt.Fprintf(&b, "| %s | %s | %s | | | | |\n",
				escape(e.Input), orDash(string(e.ContentKind)), escape(l10n.F("failed: %v", e.Err)))
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			escape(e.Input),
			e.ContentKind,
			escape(e.Output),
			frames(e),
			duration(e),
			speedUp(e),
			size(e))
	}
	return b.String()
}

func frames(e Entry) string {
	if !e.Plan.IsAnimated {
		return l10n.T("still")
	}
	return fmt.Sprintf("%d", e.Plan.FrameCount)
}

func duration(e Entry) string {
	if !e.Plan.IsAnimated {
		return "-"
	}
	return fmt.Sprintf("%.2f s", e.Plan.DurationSeconds)
}

func speedUp(e Entry) string {
	if !e.Plan.IsAnimated || !e.Plan.Compressed {
		return "-"
	}
	return fmt.Sprintf("x%.2f", e.Plan.SpeedUp)
}

func size(e Entry) string {
	s := fmt.Sprintf("%s / %s", formatBytes(e.FileSize), formatBytes(e.Plan.MaxBytes))
	if e.Oversize {
		s += " ⚠"
	}
	return s
}

func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/1024)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// escape keeps table cells on one line.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
