package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clipnote/clipnote/internal/shortform"
	"github.com/clipnote/clipnote/internal/state"
)

var (
	logoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// pipelineSteps orders the non-terminal statuses for display.
var pipelineSteps = []shortform.ProcessingStatus{
	shortform.StatusCreated,
	shortform.StatusDetecting,
	shortform.StatusMetadata,
	shortform.StatusTranscript,
}

var stepLabels = map[shortform.ProcessingStatus]string{
	shortform.StatusCreated:    "queued",
	shortform.StatusDetecting:  "detecting platform",
	shortform.StatusMetadata:   "extracting metadata",
	shortform.StatusTranscript: "fetching transcript",
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	snap := m.snapshot

	b.WriteString(logoStyle.Render("clipnote"))
	if snap.Detection.Supported {
		b.WriteString("  " + badgeStyle.Render(string(snap.Detection.Platform)))
	}
	b.WriteString("\n")
	if snap.Detection.NormalizedURL != "" {
		b.WriteString(urlStyle.Render(snap.Detection.NormalizedURL) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderPhase(snap))

	if snap.HasJob && !snap.Phase.Done() {
		b.WriteString(m.renderJob(snap.Job))
	}

	if snap.SlowWarning && !snap.Phase.Done() {
		b.WriteString(warnStyle.Render("this is taking longer than usual, still tracking") + "\n")
	}
	if snap.ConsecutiveFailures > 0 && !snap.Phase.Done() {
		b.WriteString(warnStyle.Render(fmt.Sprintf("connection hiccup, retrying (%d in a row)", snap.ConsecutiveFailures)) + "\n")
	}

	b.WriteString("\n")
	if m.quitting && !snap.Phase.Done() {
		b.WriteString(mutedStyle.Render("stopped watching; processing continues server-side, run clipnote again to pick it up") + "\n")
	} else if !snap.Phase.Done() {
		b.WriteString(mutedStyle.Render("q to stop watching (processing continues server-side)") + "\n")
	}

	return b.String()
}

func (m Model) renderPhase(snap state.Snapshot) string {
	var line string
	switch snap.Phase {
	case state.PhaseCompleted:
		line = okStyle.Render("✓ saved to library")
		if snap.SavedPath != "" {
			line += "\n" + stepStyle.Render("  "+snap.SavedPath)
		}
	case state.PhaseAlreadyProcessed:
		line = okStyle.Render("✓ already processed")
	case state.PhaseFailed, state.PhasePriorFailure:
		line = dangerStyle.Render("✗ processing failed")
	case state.PhaseSaveFailed:
		line = dangerStyle.Render("✗ processed but not saved")
	case state.PhaseConnectivityLost:
		line = dangerStyle.Render("✗ lost contact with the service")
	case "":
		line = m.spinner.View() + stepStyle.Render("starting")
	default:
		line = m.spinner.View() + stepStyle.Render(phaseLabel(snap.Phase))
	}
	out := line + "\n"
	if snap.Notice != "" {
		out += mutedStyle.Render(snap.Notice) + "\n"
	}
	return out
}

func (m Model) renderJob(job shortform.Job) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, step := range pipelineSteps {
		marker := "  "
		style := mutedStyle
		switch {
		case step == job.Status:
			marker = "› "
			style = stepStyle
		case stepIndex(step) < stepIndex(job.Status):
			marker = "✓ "
			style = okStyle
		}
		label := stepLabels[step]
		if step == job.Status && job.CurrentStep != "" {
			label += " (" + job.CurrentStep + ")"
		}
		b.WriteString(style.Render(marker+label) + "\n")
	}
	b.WriteString("\n" + m.progress.ViewAs(float64(job.Progress)/100) + "\n")
	return b.String()
}

func phaseLabel(p state.Phase) string {
	switch p {
	case state.PhaseRecovering:
		return "checking for an existing job"
	case state.PhaseSubmitting:
		return "submitting"
	case state.PhasePolling:
		return "processing"
	case state.PhaseSaving:
		return "saving"
	}
	return string(p)
}

func stepIndex(s shortform.ProcessingStatus) int {
	for i, step := range pipelineSteps {
		if step == s {
			return i
		}
	}
	// Terminal statuses sort after every pipeline step.
	return len(pipelineSteps)
}
