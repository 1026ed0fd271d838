package app

import (
	"github.com/olwandejj/Quizzify/internal/domain"
)

// Event is a user action the navigation controller reacts to.
type Event string

const (
	EventSubmitLogin        Event = "submit_login"
	EventGoToRegister       Event = "go_to_register"
	EventSubmitRegistration Event = "submit_registration"
	EventBackToLogin        Event = "back_to_login"
	EventSelectCategory     Event = "select_category"
	EventOpenProfile        Event = "open_profile"
	EventQuitQuiz           Event = "quit_quiz"
	EventLogout             Event = "logout"
)

type transition struct {
	next       domain.Screen
	viaLoading bool
}

// transitions is the full table of allowed screen changes. Anything not
// listed is rejected; the loading screen in particular accepts no events.
var transitions = map[domain.Screen]map[Event]transition{
	domain.ScreenLogin: {
		EventSubmitLogin:  {next: domain.ScreenMenu, viaLoading: true},
		EventGoToRegister: {next: domain.ScreenRegister},
	},
	domain.ScreenRegister: {
		EventSubmitRegistration: {next: domain.ScreenMenu, viaLoading: true},
		EventBackToLogin:        {next: domain.ScreenLogin},
	},
	domain.ScreenMenu: {
		EventSelectCategory: {next: domain.ScreenQuiz},
		EventOpenProfile:    {next: domain.ScreenProfile},
		EventLogout:         {next: domain.ScreenLogin, viaLoading: true},
	},
	domain.ScreenQuiz: {
		EventQuitQuiz: {next: domain.ScreenMenu},
	},
}

// Navigator holds one client's current screen and applies the transition
// table. Transitions flagged viaLoading park on the loading screen until
// FinishLoading is called; the caller owns the timer.
type Navigator struct {
	screen  domain.Screen
	pending domain.Screen
}

func NewNavigator() *Navigator {
	return &Navigator{screen: domain.ScreenLogin}
}

// Screen returns the currently presented screen.
func (n *Navigator) Screen() domain.Screen {
	return n.screen
}

// Fire applies one trigger. The boolean is true when the navigator entered
// the loading screen and the caller must schedule FinishLoading.
func (n *Navigator) Fire(ev Event) (domain.Screen, bool, error) {
	target, ok := transitions[n.screen][ev]
	if !ok {
		return n.screen, false, domain.ErrInvalidTransition
	}
	if target.viaLoading {
		n.screen = domain.ScreenLoading
		n.pending = target.next
		return n.screen, true, nil
	}
	n.screen = target.next
	return n.screen, false, nil
}

// FinishLoading advances from the loading screen to the pending target. On
// any other screen it is a no-op. The loading pause is not cancellable, so
// this is the only way off that screen.
func (n *Navigator) FinishLoading() (domain.Screen, bool) {
	if n.screen != domain.ScreenLoading || n.pending == "" {
		return n.screen, false
	}
	n.screen = n.pending
	n.pending = ""
	return n.screen, true
}

// Back resolves the hardware back gesture. exit is true on the login screen,
// where back leaves the application. On the menu and loading screens the
// gesture changes nothing.
func (n *Navigator) Back() (screen domain.Screen, exit bool, moved bool) {
	switch n.screen {
	case domain.ScreenLogin:
		return n.screen, true, false
	case domain.ScreenRegister:
		n.screen = domain.ScreenLogin
		return n.screen, false, true
	case domain.ScreenQuiz:
		n.screen = domain.ScreenMenu
		return n.screen, false, true
	case domain.ScreenProfile:
		n.screen = domain.ScreenMenu
		return n.screen, false, true
	default:
		return n.screen, false, false
	}
}
