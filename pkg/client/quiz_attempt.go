package client

import (
	"fmt"
	"time"

	"github.com/noah-isme/portal-api/internal/models"
)

const unanswered = -1

// QuizAttempt is an in-progress quiz kept locally until submission.
type QuizAttempt struct {
	QuizID    string    `json:"quizId"`
	Answers   []int     `json:"answers"`
	StartedAt time.Time `json:"startedAt"`
	TimeLimit int       `json:"timeLimit"`
}

func attemptKey(quizID string) string {
	return "quiz-attempt:" + quizID
}

// StartAttempt resumes the saved attempt for quiz, or begins a new one at now.
func StartAttempt(state *StateStore, quiz models.Quiz, now time.Time) (*QuizAttempt, error) {
	var attempt QuizAttempt
	found, err := state.Load(attemptKey(quiz.ID), &attempt)
	if err != nil {
		return nil, err
	}
	if found && len(attempt.Answers) == len(quiz.Questions) {
		return &attempt, nil
	}
	attempt = QuizAttempt{
		QuizID:    quiz.ID,
		Answers:   make([]int, len(quiz.Questions)),
		StartedAt: now.UTC(),
		TimeLimit: quiz.TimeLimit,
	}
	for i := range attempt.Answers {
		attempt.Answers[i] = unanswered
	}
	return &attempt, state.Save(attemptKey(quiz.ID), attempt)
}

// Answer records option (0..3) for question index and persists the attempt.
func (a *QuizAttempt) Answer(state *StateStore, index, option int) error {
	if index < 0 || index >= len(a.Answers) {
		return fmt.Errorf("client: question %d out of range", index)
	}
	if option < 0 || option > 3 {
		return fmt.Errorf("client: option %d out of range", option)
	}
	a.Answers[index] = option
	return state.Save(attemptKey(a.QuizID), a)
}

// Unanswered lists the indexes of questions without an answer.
func (a *QuizAttempt) Unanswered() []int {
	var missing []int
	for i, answer := range a.Answers {
		if answer == unanswered {
			missing = append(missing, i)
		}
	}
	return missing
}

// Complete reports whether every question has an answer.
func (a *QuizAttempt) Complete() bool {
	return len(a.Unanswered()) == 0
}

// Elapsed is the whole seconds since the attempt started.
func (a *QuizAttempt) Elapsed(now time.Time) int {
	secs := int(now.Sub(a.StartedAt).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// Remaining is the time left under the quiz's limit; ok is false when the
// quiz has no limit.
func (a *QuizAttempt) Remaining(now time.Time) (remaining time.Duration, ok bool) {
	if a.TimeLimit <= 0 {
		return 0, false
	}
	left := a.StartedAt.Add(time.Duration(a.TimeLimit) * time.Minute).Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Discard forgets the attempt, after submission or when abandoned.
func (a *QuizAttempt) Discard(state *StateStore) error {
	return state.Delete(attemptKey(a.QuizID))
}
