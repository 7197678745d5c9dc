package lesson

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dmehra/learnly/internal/premium"
	"github.com/dmehra/learnly/internal/quiz"
	"github.com/dmehra/learnly/internal/session"
	"github.com/dmehra/learnly/internal/ui/components"
)

// pane identifies the focused area of the lesson screen.
type pane int

const (
	paneReading pane = iota
	paneQuiz
	paneNotes
	paneChat
)

// Model is the Bubble Tea model for one lesson view. All domain logic
// lives in the session controller; the model translates key presses
// into controller calls and async results into messages.
type Model struct {
	ctrl *session.Controller
	slug string

	pane    pane
	width   int
	height  int
	loading bool
	errText string

	choice    components.MultiChoice
	essay     components.Notepad
	notepad   components.Notepad
	chatInput components.TextInput

	noteStatus  string
	noteFailed  bool
	chatLog     []string
	chatWaiting bool
	lastGrade   *premium.GradeResult
	quizMsg     string
}

// New creates the lesson screen for a slug.
func New(ctrl *session.Controller, slug string) Model {
	return Model{
		ctrl:      ctrl,
		slug:      slug,
		loading:   true,
		chatInput: components.NewTextInput("Ask the tutor...", 500),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), refreshTick())
}

func refreshTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.LoadLesson(context.Background(), m.slug)
		if err == nil {
			m.ctrl.StartReadingClock(context.Background())
		}
		return lessonLoadedMsg{Err: err}
	}
}

func (m Model) completeCmd() tea.Cmd {
	return func() tea.Msg {
		return progressSavedMsg{Err: m.ctrl.CompleteLesson(context.Background())}
	}
}

func (m Model) saveNoteCmd(text string) tea.Cmd {
	return func() tea.Msg {
		handle, err := m.ctrl.SaveNote(context.Background(), text)
		if err != nil {
			return noteSaveDoneMsg{Err: err}
		}
		<-handle.Done()
		return noteSaveDoneMsg{
			Attempts: handle.Attempts(),
			Aborted:  handle.Aborted(),
			Err:      handle.Err(),
		}
	}
}

func (m Model) toggleBookmarkCmd() tea.Cmd {
	return func() tea.Msg {
		return bookmarkSyncedMsg{Err: m.ctrl.ToggleBookmark(context.Background())}
	}
}

func (m Model) chatCmd(message string) tea.Cmd {
	return func() tea.Msg {
		reply, outcome, err := m.ctrl.Chat(context.Background(), message)
		return chatReplyMsg{Reply: reply, Outcome: outcome, Err: err}
	}
}

func (m Model) gradeCmd(questionID, answer string) tea.Cmd {
	return func() tea.Msg {
		result, outcome, err := m.ctrl.GradeEssay(context.Background(), questionID, answer)
		return gradeResultMsg{QuestionID: questionID, Result: result, Outcome: outcome, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshTickMsg:
		return m, refreshTick()

	case lessonLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		}
		return m, nil

	case progressSavedMsg:
		if msg.Err != nil {
			// Completion stays set locally; only the sync is reported.
			m.quizMsg = "Progress could not be saved, it will not block you here."
		} else {
			m.quizMsg = "Progress saved."
		}
		return m, nil

	case noteSaveDoneMsg:
		m.applyNoteResult(msg)
		return m, nil

	case bookmarkSyncedMsg:
		if msg.Err != nil {
			m.noteStatus = "Bookmark could not be synced."
			m.noteFailed = true
		}
		return m, nil

	case chatReplyMsg:
		m.chatWaiting = false
		m.chatLog = append(m.chatLog, tutorLine(msg))
		return m, nil

	case gradeResultMsg:
		if msg.Outcome == premium.OutcomeGranted {
			m.lastGrade = msg.Result
		} else {
			m.quizMsg = outcomeText(msg.Outcome)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.loading || m.errText != "" {
		return m, nil
	}

	// Pane switching works from the reading pane; editors capture keys.
	if m.pane == paneReading {
		switch msg.String() {
		case "s":
			if err := m.ctrl.StartQuiz(); err == nil {
				m.pane = paneQuiz
				m.quizMsg = ""
				m.lastGrade = nil
				return m.nextQuestion()
			}
			m.quizMsg = "This lesson has no quiz."
			return m, nil
		case "n":
			m.pane = paneNotes
			m.notepad = components.NewNotepad("Write your notes...", m.ctrl.NoteContent())
			return m, m.notepad.Init()
		case "t":
			m.pane = paneChat
			return m, m.chatInput.Init()
		case "b":
			return m, m.toggleBookmarkCmd()
		case "d":
			// Mark a quiz-less lesson done directly.
			return m, m.completeCmd()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.pane = paneReading
		return m, nil
	}

	switch m.pane {
	case paneQuiz:
		return m.handleQuizKey(msg)
	case paneNotes:
		if msg.String() == "ctrl+s" {
			m.noteStatus = "Saving..."
			m.noteFailed = false
			return m, m.saveNoteCmd(m.notepad.Value())
		}
		var cmd tea.Cmd
		m.notepad, cmd = m.notepad.Update(msg)
		return m, cmd
	case paneChat:
		if msg.String() == "enter" {
			question := strings.TrimSpace(m.chatInput.Value())
			if question == "" || m.chatWaiting {
				return m, nil
			}
			m.chatLog = append(m.chatLog, "You: "+question)
			m.chatInput.Reset()
			m.chatWaiting = true
			return m, m.chatCmd(question)
		}
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleQuizKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	attempt := m.ctrl.Attempt()
	if attempt == nil {
		return m, nil
	}

	if attempt.Completed() {
		return m, nil
	}

	q, err := m.ctrl.CurrentQuestion()
	if err != nil {
		return m, nil
	}

	switch q.Kind {
	case quiz.KindChoice:
		wasSubmitted := m.choice.Submitted
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted && !wasSubmitted {
			if err := m.ctrl.SubmitAnswer(quiz.Answer{OptionIndex: m.choice.ChosenIndex}); err != nil {
				m.quizMsg = err.Error()
			}
			return m, cmd
		}
		if m.choice.Submitted && msg.String() == "enter" {
			return m.advance()
		}
		return m, cmd

	case quiz.KindEssay:
		if msg.String() == "ctrl+d" {
			answer := m.essay.Value()
			if err := m.ctrl.SubmitAnswer(quiz.Answer{Text: answer}); err != nil {
				m.quizMsg = "An answer is required."
				return m, nil
			}
			model, cmd := m.advance()
			// Grading runs in the background, never blocking the quiz.
			return model, tea.Batch(cmd, model.gradeCmd(q.ID, answer))
		}
		var cmd tea.Cmd
		m.essay, cmd = m.essay.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) advance() (Model, tea.Cmd) {
	if err := m.ctrl.AdvanceQuiz(); err != nil {
		m.quizMsg = err.Error()
		return m, nil
	}
	if m.ctrl.Attempt().Completed() {
		return m, m.completeCmd()
	}
	return m.nextQuestion()
}

// nextQuestion rebuilds the per-question input component.
func (m Model) nextQuestion() (Model, tea.Cmd) {
	q, err := m.ctrl.CurrentQuestion()
	if err != nil {
		return m, nil
	}
	switch q.Kind {
	case quiz.KindChoice:
		m.choice = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
		return m, nil
	case quiz.KindEssay:
		m.essay = components.NewNotepad("Type your answer...", "")
		return m, m.essay.Init()
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.pane {
	case paneNotes:
		m.notepad, cmd = m.notepad.Update(msg)
	case paneChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) applyNoteResult(msg noteSaveDoneMsg) {
	switch {
	case msg.Err == nil && !msg.Aborted:
		m.noteStatus = "Note saved."
		m.noteFailed = false
	case msg.Aborted:
		m.noteStatus = "Note save cancelled."
		m.noteFailed = false
	default:
		m.noteFailed = true
		if msg.Attempts > 1 {
			m.noteStatus = fmt.Sprintf("Note save failed after %d attempts.", msg.Attempts)
		} else {
			m.noteStatus = "Note save failed: " + msg.Err.Error()
		}
	}
}

func tutorLine(msg chatReplyMsg) string {
	if msg.Outcome == premium.OutcomeGranted && msg.Reply != nil {
		return "Tutor: " + msg.Reply.Response
	}
	return "Tutor: " + outcomeText(msg.Outcome)
}

// outcomeText keeps the three denial outcomes distinguishable in the
// UI: upgrade prompt, back-off hint, and transient failure each get
// their own message.
func outcomeText(o premium.Outcome) string {
	switch o {
	case premium.OutcomePremiumRequired:
		return "This is a premium feature. Upgrade your plan to use it."
	case premium.OutcomeRateLimited:
		return "You're sending requests too quickly. Try again in a moment."
	case premium.OutcomeUnavailable:
		return "The AI service is temporarily unavailable. Try again."
	}
	return ""
}
