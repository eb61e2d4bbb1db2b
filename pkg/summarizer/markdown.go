package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Playback Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Cycle\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	if s.Cycle.SessionID != "" {
		fmt.Fprintf(&b, "| Session | %s |\n", s.Cycle.SessionID)
	}
	if s.Cycle.Source != "" {
		fmt.Fprintf(&b, "| Source | %s |\n", escapeCell(s.Cycle.Source))
	}
	if !s.Cycle.StartedAt.IsZero() {
		fmt.Fprintf(&b, "| Started | %s |\n", s.Cycle.StartedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "| Duration | %s |\n", formatMs(s.Cycle.Duration))
	outcome := s.Cycle.Outcome
	if outcome == "" {
		outcome = "N/A"
	}
	fmt.Fprintf(&b, "| Outcome | %s |\n", outcome)
	if s.Cycle.Error != "" {
		fmt.Fprintf(&b, "| Error | %s |\n", escapeCell(s.Cycle.Error))
	}
	b.WriteString("\n")

	b.WriteString("## Parts\n\n")
	if len(s.Parts) == 0 {
		b.WriteString("No parts were played.\n\n")
	} else {
		b.WriteString("| Part | Frames | Elapsed | Avg Drift | Max Drift | Avg Process | FPS |\n")
		b.WriteString("|------|--------|---------|-----------|-----------|-------------|-----|\n")
		for _, p := range s.Parts {
			fmt.Fprintf(&b, "| %d | %d | %s | %s | %s | %s | %.2f |\n",
				p.Part, p.Frames, formatMs(p.Elapsed), formatMs(p.AvgDrift),
				formatMs(p.MaxDrift), formatMs(p.AvgProcess), p.AchievedFPS)
		}
		fmt.Fprintf(&b, "| **Total** | %d | | | %s | | %.2f |\n\n",
			s.TotalFrames(), formatMs(s.MaxDrift()), s.AchievedFPS())
	}

	if len(s.Failures) > 0 {
		b.WriteString("## Frame Failures\n\n")
		b.WriteString("| Part | Frame | Error |\n|------|-------|-------|\n")
		for _, fl := range s.Failures {
			fmt.Fprintf(&b, "| %d | %d | %s |\n", fl.Part, fl.Frame, escapeCell(fl.Error))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Settings\n\n")
	b.WriteString("| Setting | Value |\n|---------|-------|\n")
	fmt.Fprintf(&b, "| Default FPS | %d |\n", s.Settings.DefaultFPS)
	fmt.Fprintf(&b, "| Fetch Attempts | %d |\n", s.Settings.FetchAttempts)
	if s.Settings.MaxParts > 0 {
		fmt.Fprintf(&b, "| Max Parts | %d |\n", s.Settings.MaxParts)
	} else {
		b.WriteString("| Max Parts | Unlimited |\n")
	}
	if s.Settings.Trigger != "" {
		fmt.Fprintf(&b, "| Trigger | %s |\n", s.Settings.Trigger)
	}

	return b.String()
}

func formatMs(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Milliseconds())
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
