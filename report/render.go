package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer writes human-readable run output with the original tool's
// color palette: cyan headers, green best, magenta worst.
type Renderer struct {
	header lipgloss.Style
	info   lipgloss.Style
	total  lipgloss.Style
	avg    lipgloss.Style
	best   lipgloss.Style
	worst  lipgloss.Style
	failed lipgloss.Style
}

func NewRenderer(noColor bool) *Renderer {
	if noColor {
		plain := lipgloss.NewStyle()
		return &Renderer{plain, plain, plain, plain, plain, plain, plain}
	}
	return &Renderer{
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		total:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		avg:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		best:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		worst:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		failed: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Banner prints the run header line.
func (rn *Renderer) Banner(w io.Writer, codec string, bitDepth int) {
	fmt.Fprintf(w, "%s\n\n", rn.header.Render(
		fmt.Sprintf("BPG Batch Encoder • %s • %d-bit • PNG + JPG Only", strings.ToUpper(codec), bitDepth)))
}

// Render writes the end-of-run summary.
func (rn *Renderer) Render(w io.Writer, s RunSummary, outputRoot string) {
	if s.Succeeded == 0 {
		fmt.Fprintf(w, "%s\n", rn.failed.Render("No files converted successfully."))
		rn.renderFailures(w, s)
		return
	}

	fmt.Fprintf(w, "\n%s\n\n", rn.header.Render("Conversion Complete!"))
	fmt.Fprintf(w, "%s\n", rn.total.Render(
		fmt.Sprintf("Processed   : %d files (%d success, %d failed)", s.Total, s.Succeeded, s.Failed)))
	fmt.Fprintf(w, "%s\n\n", rn.total.Render(
		fmt.Sprintf("Total time  : %.2fs (%.1f files/sec)", s.TotalElapsed.Seconds(), s.Throughput)))

	fmt.Fprintf(w, "%s\n", rn.info.Render("Size Summary:"))
	fmt.Fprintf(w, "   Original → %s\n", FormatBytes(s.TotalInput))
	fmt.Fprintf(w, "   BPG      → %s\n", FormatBytes(s.TotalOutput))
	fmt.Fprintf(w, "   Saved    → %s\n\n", rn.best.Render(
		fmt.Sprintf("%s (%.1f%% smaller)", FormatBytes(s.TotalSaved), 100*float64(s.TotalSaved)/float64(s.TotalInput))))

	fmt.Fprintf(w, "%s\n", rn.avg.Render(fmt.Sprintf("Avg ratio   : %.1f%%", 100*s.AvgRatio)))
	fmt.Fprintf(w, "%s\n", rn.best.Render(
		fmt.Sprintf("Best        : %.1f%% ← %s", 100*s.Best.Ratio, filepath.Base(s.Best.InputPath))))
	fmt.Fprintf(w, "%s\n", rn.worst.Render(
		fmt.Sprintf("Worst       : %.1f%% ← %s", 100*s.Worst.Ratio, filepath.Base(s.Worst.InputPath))))
	fmt.Fprintf(w, "%s\n", rn.best.Render(
		fmt.Sprintf("Most saved  : %s ← %s", FormatBytes(s.MostSaved.BytesSaved), filepath.Base(s.MostSaved.InputPath))))

	rn.renderFailures(w, s)

	fmt.Fprintf(w, "\n%s\n", rn.header.Render("Output → "+outputRoot))
}

func (rn *Renderer) renderFailures(w io.Writer, s RunSummary) {
	if len(s.Failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", rn.failed.Render(fmt.Sprintf("Failed (%d):", len(s.Failures))))
	for _, f := range s.Failures {
		fmt.Fprintf(w, "   %s\n", rn.failed.Render(fmt.Sprintf("%s: %v", f.InputPath, f.Err)))
	}
}

// FormatBytes renders a byte count the way the original reporter did:
// 1024-based steps with B/KB/MB/GB/TB labels, two decimals.
func FormatBytes(b int64) string {
	v := float64(b)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if v < 1024 && v > -1024 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f TB", v)
}
