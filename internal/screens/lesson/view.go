package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmehra/learnly/internal/quiz"
	"github.com/dmehra/learnly/internal/ui/components"
	"github.com/dmehra/learnly/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.loading:
		v.SetContent(theme.Subtitle.Render("Loading lesson..."))
	case m.errText != "":
		v.SetContent(theme.Incorrect.Render(m.errText) + "\n\n" + theme.Hint.Render("Press Ctrl+C to quit."))
	default:
		v.SetContent(m.render())
	}
	return v
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.pane {
	case paneReading:
		b.WriteString(m.readingView())
	case paneQuiz:
		b.WriteString(m.quizView())
	case paneNotes:
		b.WriteString(m.notesView())
	case paneChat:
		b.WriteString(m.chatView())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	lesson := m.ctrl.Lesson()
	title := theme.Title.Render(lesson.Title)

	var marks []string
	if m.ctrl.Completed() {
		marks = append(marks, theme.Correct.Render("✓ completed"))
	}
	if m.ctrl.Bookmarked() {
		marks = append(marks, theme.Warning.Render("★ bookmarked"))
	}
	marks = append(marks, theme.Subtitle.Render(fmt.Sprintf("%d min read", m.ctrl.ReadingMinutes())))

	return title + "  " + strings.Join(marks, "  ")
}

func (m Model) readingView() string {
	lesson := m.ctrl.Lesson()
	body := theme.Body.Render(lesson.Markdown)

	var b strings.Builder
	b.WriteString(body)
	if m.quizMsg != "" {
		b.WriteString("\n\n" + theme.Hint.Render(m.quizMsg))
	}
	return b.String()
}

func (m Model) quizView() string {
	attempt := m.ctrl.Attempt()
	if attempt == nil {
		return ""
	}

	var b strings.Builder

	if attempt.Completed() {
		score := attempt.Score()
		total := attempt.Len()
		b.WriteString(theme.Title.Render("Quiz complete"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d / %d", score, total)))
		bar := components.NewProgressBar("", float64(score)/float64(total), true, 40)
		b.WriteString("\n" + bar.View())
		if m.lastGrade != nil {
			b.WriteString("\n\n" + theme.Subtitle.Render("AI feedback"))
			b.WriteString("\n" + theme.Body.Render(fmt.Sprintf("Essay score: %d/5. %s", m.lastGrade.Score, m.lastGrade.Reasoning)))
		}
		if m.quizMsg != "" {
			b.WriteString("\n\n" + theme.Hint.Render(m.quizMsg))
		}
		return b.String()
	}

	position := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", attempt.Index()+1, attempt.Len()),
		float64(attempt.Index())/float64(attempt.Len()),
		false, 40,
	)
	b.WriteString(position.View())
	b.WriteString("\n\n")

	q, err := m.ctrl.CurrentQuestion()
	if err != nil {
		return b.String()
	}

	switch q.Kind {
	case quiz.KindChoice:
		b.WriteString(m.choice.View())
	case quiz.KindEssay:
		b.WriteString(theme.Body.Render(q.Prompt))
		b.WriteString("\n\n")
		b.WriteString(m.essay.View())
	}

	if m.quizMsg != "" {
		b.WriteString("\n" + theme.Hint.Render(m.quizMsg))
	}
	return b.String()
}

func (m Model) notesView() string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Notes"))
	b.WriteString("\n\n")
	b.WriteString(m.notepad.View())
	if m.noteStatus != "" {
		b.WriteString("\n" + m.notepad.StatusLine(m.noteStatus, m.noteFailed))
	}
	return b.String()
}

func (m Model) chatView() string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("AI Tutor"))
	b.WriteString("\n\n")
	for _, line := range m.chatLog {
		b.WriteString(theme.Body.Render(line) + "\n")
	}
	if m.chatWaiting {
		b.WriteString(theme.Hint.Render("Thinking...") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	return b.String()
}

func (m Model) footerView() string {
	var hints []string
	switch m.pane {
	case paneReading:
		hints = []string{"s quiz", "n notes", "t tutor", "b bookmark", "d done", "ctrl+c quit"}
	case paneQuiz:
		q, err := m.ctrl.CurrentQuestion()
		if err == nil && q.Kind == quiz.KindEssay {
			hints = []string{"ctrl+d submit answer", "esc back"}
		} else {
			hints = []string{"↑↓ choose", "enter select/continue", "esc back"}
		}
	case paneNotes:
		hints = []string{"ctrl+s save", "esc back"}
	case paneChat:
		hints = []string{"enter send", "esc back"}
	}
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	return style.Render(strings.Join(hints, "  ·  "))
}
