package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/progress"
)

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("ytcatalog · channel export")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%s • q: quit", truncate(m.input, 60)))
	return title + "\n" + sub
}

func (m Model) viewStages() string {
	if len(m.stages) == 0 {
		return m.styles.Box.Render(m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.Faint.Render("starting"))
	}
	var b strings.Builder
	for _, s := range m.stages {
		b.WriteString(m.viewStage(s))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStage(s stageLine) string {
	stageStyle := m.styles.StageName
	switch s.stage {
	case progress.StagePlaylists, progress.StageUploads:
		stageStyle = stageStyle.Foreground(m.styles.StageFetch.GetForeground())
	case progress.StageMapping:
		stageStyle = stageStyle.Foreground(m.styles.StageMerge.GetForeground())
	case progress.StageCompleted:
		stageStyle = m.styles.StageName.Foreground(m.styles.Success.GetForeground())
	case progress.StageError:
		stageStyle = m.styles.StageName.Foreground(m.styles.Error.GetForeground())
	}

	var mark string
	switch {
	case s.stage == progress.StageError:
		mark = m.styles.Error.Render("✗")
	case s.done:
		mark = m.styles.Success.Render("✓")
	default:
		mark = m.styles.Spinner.Render(m.spinner.View())
	}

	line := fmt.Sprintf("%s %s %s", mark, stageStyle.Render(string(s.stage)), m.styles.StageInfo.Render(s.status))
	if p := s.percent(); p >= 0 && !s.done {
		line += "\n  " + m.bar.ViewAs(p) + m.styles.Faint.Render(fmt.Sprintf(" %d/%d", s.count, s.total))
	}
	return m.styles.Box.Render(line)
}

func (m Model) viewWarnings() string {
	if len(m.warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d warning(s):", len(m.warnings))))
	b.WriteString("\n")
	for _, w := range m.warnings {
		b.WriteString(m.styles.Warning.Render("  ! " + w))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSummary() string {
	if !m.done {
		return ""
	}
	switch {
	case errors.Is(m.err, catalog.ErrNoVideos):
		return m.styles.Subtitle.Render("No videos found on this channel") + "\n"
	case m.err != nil:
		return m.styles.Error.Render("✗ "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("✓ Export complete:"))
	b.WriteString("\n")
	b.WriteString(m.styles.Success.Render(fmt.Sprintf("  • %s: %s videos", m.out.Channel.Title, humanize.Comma(int64(len(m.out.Videos))))))
	b.WriteString("\n")
	b.WriteString(m.styles.Success.Render(fmt.Sprintf("  • %s (%s)", m.out.OutputPath, humanize.Bytes(uint64(m.out.Bytes)))))
	b.WriteString("\n")
	if m.out.Merged {
		b.WriteString(m.styles.Faint.Render(fmt.Sprintf("  • %d custom playlists merged, %d skipped",
			len(m.out.CustomPlaylists)-len(m.out.Skipped), len(m.out.Skipped))))
		b.WriteString("\n")
	}
	if m.out.LedgerErr == nil && m.out.LedgerPath != "" {
		b.WriteString(m.styles.Faint.Render("  • tracked in " + filepath.Base(m.out.LedgerPath)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
