package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/capture/internal/actions"
	"github.com/Veraticus/capture/internal/model"
)

// FormatClassification renders a classification as a labelled box.
func FormatClassification(c model.Classification) string {
	var lines []string
	add := func(label, value string) {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-11s", label))+" "+value)
	}

	add("Action", actionLabel(c))
	add("Title", c.Title)
	add("Confidence", confidenceLabel(c.Confidence))
	if u := c.URLValue(); u != "" {
		add("URL", linkIcon+" "+u)
	}
	if p := c.ProjectValue(); p != "" {
		add("Project", p)
	}
	if len(c.Tags) > 0 {
		add("Tags", actions.JoinTags(c.Tags))
	}
	if c.Comment != "" {
		add("Comment", c.Comment)
	}

	return RenderBox(robotIcon+" Classification", strings.Join(lines, "\n"))
}

func actionLabel(c model.Classification) string {
	label := string(c.Action)
	if s := c.SuggestedAction(); s != c.Action {
		label += subtleStyle.Render(fmt.Sprintf(" (suggested %s)", s))
	}
	return label
}

func confidenceLabel(confidence float64) string {
	text := actions.FormatConfidence(confidence)
	if confidence < model.ConfidenceThreshold {
		return warningStyle.Render(text)
	}
	return successStyle.Render(text)
}

// FormatKeyValues renders pairs as aligned "key: value" lines.
func FormatKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width+1, p[0]+":", subtleStyle.Render(p[1])))
	}
	return strings.Join(lines, "\n")
}

// NewProgressBar creates a counting progress bar on w.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Advance moves bar forward one step, logging instead of failing.
func Advance(bar *progressbar.ProgressBar) {
	if err := bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}
