package premium

import (
	"fmt"
	"strings"

	"github.com/dmehra/learnly/internal/store"
)

const tutorSystemPrompt = `You are a patient programming tutor helping a learner work through a course chapter.

Rules:
- Answer the learner's question using the provided chapter content as primary context.
- Keep answers short and concrete. Prefer a small example over a long explanation.
- If the question is unrelated to the chapter, answer briefly and steer back to the material.
- Never invent course content that contradicts the chapter text.`

const graderSystemPrompt = `You grade short essay answers to course quiz questions.

Rules:
- Score from 0 (no understanding) to 5 (complete and precise).
- Be generous with partial credit: reward correct ideas even when poorly worded.
- Feedback entries should name one strength and one concrete improvement.
- The reasoning must justify the score against the question, not restate the answer.`

const plannerSystemPrompt = `You build a short personalized study plan from a learner's quiz history.

Rules:
- Identify at most 3 weak topics from the history. Fewer is fine.
- Each recommendation needs one specific, doable action item.
- Priority is "high", "medium" or "low".
- If the history shows no weakness, say so with an empty weak_topics list.`

// buildChatMessage attaches lesson context to the learner's question.
func buildChatMessage(message, lessonContext string) string {
	if lessonContext == "" {
		return message
	}
	var b strings.Builder
	b.WriteString("Chapter content:\n")
	b.WriteString(lessonContext)
	b.WriteString("\n\nLearner question:\n")
	b.WriteString(message)
	return b.String()
}

// buildGradeMessage formats one essay answer for grading.
func buildGradeMessage(chapterID, questionID, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chapter: %s\n", chapterID)
	fmt.Fprintf(&b, "Question: %s\n", questionID)
	b.WriteString("\nLearner answer:\n")
	b.WriteString(answer)
	return b.String()
}

// buildHistoryMessage formats recent lesson results for the planner.
func buildHistoryMessage(events []store.LessonEvent) string {
	if len(events) == 0 {
		return "No lesson history yet."
	}
	var b strings.Builder
	b.WriteString("Recent lessons (newest first):\n")
	for i, ev := range events {
		fmt.Fprintf(&b, "%d. %s", i+1, ev.LessonTitle)
		if ev.QuizTotal > 0 {
			fmt.Fprintf(&b, ": quiz %d/%d", ev.QuizCorrect, ev.QuizTotal)
		}
		if !ev.Completed {
			b.WriteString(" (abandoned)")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
