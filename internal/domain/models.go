package domain

import "time"

// Screen identifies which view a connected app instance is presenting.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenMenu     Screen = "menu"
	ScreenQuiz     Screen = "quiz"
	ScreenProfile  Screen = "profile"
	ScreenLoading  Screen = "loading"
)

// Question is a single multiple-choice question. CorrectOption indexes into
// Options and is stripped from anything sent to clients.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// Category is a named, ordered question list from the catalog.
type Category struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// AnswerResult summarizes one submission for the answering client.
type AnswerResult struct {
	Option   int  `json:"option"`
	Correct  bool `json:"correct"`
	Score    int  `json:"score"`
	Finished bool `json:"finished"`
}

// QuestionView is the sanitized question payload pushed to clients while a
// quiz is in progress. Number is 1-based.
type QuestionView struct {
	Category string   `json:"category"`
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

// ResultView replaces the question payload once the quiz is finished.
type ResultView struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
}

// LeaderboardEntry is one client's best recorded run for a category.
type LeaderboardEntry struct {
	ClientID   string    `json:"clientId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	FinishedAt time.Time `json:"finishedAt"`
}

// PlayerStats aggregates a client's recorded play history.
type PlayerStats struct {
	Games int                `json:"games"`
	Bests []LeaderboardEntry `json:"bests"`
}

// ProfileView is the payload behind the profile screen.
type ProfileView struct {
	Name  string             `json:"name"`
	Games int                `json:"games"`
	Bests []LeaderboardEntry `json:"bests"`
}

// ScreenView is pushed to subscribers on every navigation or quiz change.
// At most one of the optional payloads is set, matching Screen.
type ScreenView struct {
	Screen     Screen        `json:"screen"`
	Categories []string      `json:"categories,omitempty"`
	Question   *QuestionView `json:"question,omitempty"`
	Result     *ResultView   `json:"result,omitempty"`
	Profile    *ProfileView  `json:"profile,omitempty"`
}
