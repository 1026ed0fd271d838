package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// StateRepository abstracts how per-client states are stored (in-memory, Redis-tracked, etc).
type StateRepository interface {
	GetOrCreate(clientID string) *ClientState
	Get(clientID string) (*ClientState, bool)
	DeleteIfInactive(clientID string)
}

// CatalogRepository serves quiz content (from cache/backing store).
type CatalogRepository interface {
	QuestionsFor(ctx context.Context, category string) ([]domain.Question, error)
	Categories(ctx context.Context) ([]string, error)
}

// LeaderboardRepository records finished runs and serves rankings.
type LeaderboardRepository interface {
	Record(ctx context.Context, entry domain.LeaderboardEntry) error
	Top(ctx context.Context, category string, limit int) ([]domain.LeaderboardEntry, error)
	ForClient(ctx context.Context, clientID string) (domain.PlayerStats, error)
}

// QuizService drives each client's navigation and quiz session. Every
// state change is broadcast to the client's subscribers as a ScreenView.
type QuizService struct {
	states  StateRepository
	catalog CatalogRepository
	boards  LeaderboardRepository

	loadingDelay time.Duration
	after        func(d time.Duration, fn func())
}

func NewQuizService(states StateRepository, catalog CatalogRepository, boards LeaderboardRepository, loadingDelay time.Duration) *QuizService {
	return newQuizService(states, catalog, boards, loadingDelay, func(d time.Duration, fn func()) {
		time.AfterFunc(d, fn)
	})
}

// NewQuizServiceWithAfter is test-only for deterministic loading transitions.
func NewQuizServiceWithAfter(states StateRepository, catalog CatalogRepository, boards LeaderboardRepository, loadingDelay time.Duration, after func(time.Duration, func())) *QuizService {
	return newQuizService(states, catalog, boards, loadingDelay, after)
}

func newQuizService(states StateRepository, catalog CatalogRepository, boards LeaderboardRepository, loadingDelay time.Duration, after func(time.Duration, func())) *QuizService {
	return &QuizService{
		states:       states,
		catalog:      catalog,
		boards:       boards,
		loadingDelay: loadingDelay,
		after:        after,
	}
}

// Connect registers a client, or resumes its state after a reconnect. New
// clients start on the login screen.
func (s *QuizService) Connect(clientID string) {
	s.states.GetOrCreate(clientID)
}

// Login is the unauthenticated stub: any non-empty display name is accepted
// and the client is parked on the loading screen before landing on the menu.
func (s *QuizService) Login(ctx context.Context, clientID, name string) error {
	return s.beginAuth(ctx, clientID, name, EventSubmitLogin)
}

// Register behaves exactly like Login; no account is stored anywhere.
func (s *QuizService) Register(ctx context.Context, clientID, name string) error {
	return s.beginAuth(ctx, clientID, name, EventSubmitRegistration)
}

func (s *QuizService) beginAuth(_ context.Context, clientID, name string, ev Event) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrDisplayNameRequired
	}
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.ErrClientNotFound
	}

	state.mu.Lock()
	_, pending, err := state.nav.Fire(ev)
	if err != nil {
		state.mu.Unlock()
		return err
	}
	state.name = name
	state.broadcastLocked(domain.ScreenView{Screen: domain.ScreenLoading})
	state.mu.Unlock()

	if pending {
		s.scheduleFinish(clientID)
	}
	return nil
}

// GoToRegister moves the client from the login to the registration screen.
func (s *QuizService) GoToRegister(ctx context.Context, clientID string) error {
	return s.fire(ctx, clientID, EventGoToRegister)
}

// BackToLogin moves the client from the registration to the login screen.
func (s *QuizService) BackToLogin(ctx context.Context, clientID string) error {
	return s.fire(ctx, clientID, EventBackToLogin)
}

// OpenProfile moves the client from the menu to the profile screen.
func (s *QuizService) OpenProfile(ctx context.Context, clientID string) error {
	return s.fire(ctx, clientID, EventOpenProfile)
}

// QuitQuiz abandons the quiz screen for the menu. The session keeps its
// progress so the score stays readable; the next category selection resets it.
func (s *QuizService) QuitQuiz(ctx context.Context, clientID string) error {
	return s.fire(ctx, clientID, EventQuitQuiz)
}

// Logout drops the quiz session and display name, then parks the client on
// the loading screen on its way back to login.
func (s *QuizService) Logout(_ context.Context, clientID string) error {
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.ErrClientNotFound
	}

	state.mu.Lock()
	_, pending, err := state.nav.Fire(EventLogout)
	if err != nil {
		state.mu.Unlock()
		return err
	}
	state.session.Reset()
	state.name = ""
	state.broadcastLocked(domain.ScreenView{Screen: domain.ScreenLoading})
	state.mu.Unlock()

	if pending {
		s.scheduleFinish(clientID)
	}
	return nil
}

// SelectCategory starts a quiz session on the chosen category and moves the
// client to the quiz screen. An unknown category yields the empty quiz,
// which lands directly on the result view with a zero score.
func (s *QuizService) SelectCategory(ctx context.Context, clientID, category string) error {
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.ErrClientNotFound
	}

	questions, err := s.catalog.QuestionsFor(ctx, category)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if _, _, err := state.nav.Fire(EventSelectCategory); err != nil {
		return err
	}
	state.session.Start(category, questions)
	state.broadcastLocked(s.viewForLocked(ctx, state))
	return nil
}

// SubmitAnswer scores one answer for the client's active session. The final
// answer flips the quiz screen to its result view and records the run on the
// leaderboard.
func (s *QuizService) SubmitAnswer(ctx context.Context, clientID string, option int) (domain.AnswerResult, error) {
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrClientNotFound
	}

	state.mu.Lock()
	if state.nav.Screen() != domain.ScreenQuiz {
		state.mu.Unlock()
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}
	result, err := state.session.SubmitAnswer(option)
	if err != nil {
		state.mu.Unlock()
		return domain.AnswerResult{}, err
	}
	state.broadcastLocked(s.viewForLocked(ctx, state))
	entry := domain.LeaderboardEntry{
		ClientID:   clientID,
		Name:       state.name,
		Category:   state.session.Category(),
		Score:      state.session.Score(),
		Total:      state.session.Total(),
		FinishedAt: state.now(),
	}
	state.mu.Unlock()

	if result.Finished {
		// Best-effort: a leaderboard outage must not fail the answer.
		_ = s.boards.Record(ctx, entry)
	}
	return result, nil
}

// Back resolves the hardware back gesture for the client's current screen.
// exit reports that the client should terminate (back on the login screen).
func (s *QuizService) Back(ctx context.Context, clientID string) (bool, error) {
	state, ok := s.states.Get(clientID)
	if !ok {
		return false, domain.ErrClientNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	_, exit, moved := state.nav.Back()
	if moved {
		state.broadcastLocked(s.viewForLocked(ctx, state))
	}
	return exit, nil
}

// Subscribe returns a channel of screen updates for a client, primed with
// the current view. The caller must invoke cancel to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, clientID string) (<-chan domain.ScreenView, func(), error) {
	state, ok := s.states.Get(clientID)
	if !ok {
		return nil, nil, domain.ErrClientNotFound
	}

	state.mu.Lock()
	view := s.viewForLocked(ctx, state)
	ch, cancel := state.subscribeLocked(view)
	state.mu.Unlock()
	return ch, cancel, nil
}

// Leave drops the client's state if nothing keeps it alive anymore. Callers
// detach their subscription first.
func (s *QuizService) Leave(clientID string) {
	s.states.DeleteIfInactive(clientID)
}

// View composes the render payload for the client's current screen.
func (s *QuizService) View(ctx context.Context, clientID string) (domain.ScreenView, error) {
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.ScreenView{}, domain.ErrClientNotFound
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	return s.viewForLocked(ctx, state), nil
}

func (s *QuizService) fire(ctx context.Context, clientID string, ev Event) error {
	state, ok := s.states.Get(clientID)
	if !ok {
		return domain.ErrClientNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if _, _, err := state.nav.Fire(ev); err != nil {
		return err
	}
	state.broadcastLocked(s.viewForLocked(ctx, state))
	return nil
}

func (s *QuizService) scheduleFinish(clientID string) {
	s.after(s.loadingDelay, func() {
		s.finishLoading(clientID)
	})
}

// finishLoading fires when the loading pause elapses. The state may be gone
// or already moved on; both are fine.
func (s *QuizService) finishLoading(clientID string) {
	state, ok := s.states.Get(clientID)
	if !ok {
		return
	}

	ctx := context.Background()
	state.mu.Lock()
	defer state.mu.Unlock()
	if _, moved := state.nav.FinishLoading(); !moved {
		return
	}
	state.broadcastLocked(s.viewForLocked(ctx, state))
}

// viewForLocked builds the screen payload. The caller holds state.mu.
func (s *QuizService) viewForLocked(ctx context.Context, state *ClientState) domain.ScreenView {
	view := domain.ScreenView{Screen: state.nav.Screen()}
	switch view.Screen {
	case domain.ScreenMenu:
		if names, err := s.catalog.Categories(ctx); err == nil {
			view.Categories = names
		}
	case domain.ScreenQuiz:
		if question, ok := state.session.CurrentQuestion(); ok {
			view.Question = &domain.QuestionView{
				Category: state.session.Category(),
				Number:   state.session.Position() + 1,
				Total:    state.session.Total(),
				Text:     question.Text,
				Options:  question.Options,
			}
		} else {
			view.Result = &domain.ResultView{
				Category: state.session.Category(),
				Score:    state.session.Score(),
				Total:    state.session.Total(),
			}
		}
	case domain.ScreenProfile:
		profile := &domain.ProfileView{Name: state.name}
		if stats, err := s.boards.ForClient(ctx, state.id); err == nil {
			profile.Games = stats.Games
			profile.Bests = stats.Bests
		}
		view.Profile = profile
	}
	return view
}
