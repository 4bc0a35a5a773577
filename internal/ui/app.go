package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/api"
	"github.com/tgienger/kinfolk/internal/nav"
	"github.com/tgienger/kinfolk/internal/session"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
	"github.com/tgienger/kinfolk/internal/ui/views"
	"go.uber.org/zap"
)

const (
	emergencyFallback = "Calling 112...\n\nIn a real app, this would dial emergency services."
	emergencyNotified = "Emergency services notified and family members alerted"

	// navBarHeight is the number of rows reserved below each screen
	navBarHeight = 3
)

type authResultMsg struct {
	signup bool
	resp   *api.AuthResponse
	err    error
}

type emergencyResultMsg struct {
	notified bool
	err      error
}

type prefetchResultMsg struct {
	screen nav.Screen
	size   int
	err    error
}

// App routes input and rendering according to the navigation controller
type App struct {
	nav    *nav.Controller
	state  *state.Container
	api    *api.Client
	tokens session.TokenStore
	log    *zap.Logger
	styles *styles.Styles
	keys   keys.KeyMap

	login   *views.LoginView
	signup  *views.SignupView
	voice   *views.VoiceView
	screens map[nav.Screen]tea.Model

	width  int
	height int

	// alert is a blocking message dismissed by any key
	alert               string
	confirmingEmergency bool
}

// NewApp creates the application. The styles are shared by every screen so a
// text-size change reaches all of them.
func NewApp(ctl *nav.Controller, st *state.Container, client *api.Client, tokens session.TokenStore, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	s := styles.NewStyles(ctl.TextScale())
	user := ctl.User

	a := &App{
		nav:    ctl,
		state:  st,
		api:    client,
		tokens: tokens,
		log:    log,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		login:  views.NewLoginView(s),
		signup: views.NewSignupView(s),
		voice:  views.NewVoiceView(st, s),
	}
	a.screens = map[nav.Screen]tea.Model{
		nav.ScreenHome:      views.NewHomeView(st, user, s),
		nav.ScreenFeed:      views.NewFeedView(st, user, s),
		nav.ScreenFamily:    views.NewFamilyView(st, s),
		nav.ScreenEvents:    views.NewEventsView(st, s),
		nav.ScreenDiary:     views.NewDiaryView(s),
		nav.ScreenReminders: views.NewRemindersView(st, s),
		nav.ScreenProfile:   views.NewProfileView(st, user, s),
		nav.ScreenSettings:  views.NewSettingsView(s),
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.login.Init()
}

// Alert returns the message currently blocking the screen, if any
func (a *App) Alert() string {
	return a.alert
}

func (a *App) current() tea.Model {
	switch {
	case a.nav.Phase() == nav.PhaseLogin:
		return a.login
	case a.nav.Phase() == nav.PhaseSignup:
		return a.signup
	case a.nav.Mode() == nav.ModeVoice:
		return a.voice
	default:
		return a.screens[a.nav.Screen()]
	}
}

func (a *App) capturing() bool {
	c, ok := a.current().(views.InputCapturer)
	return ok && c.CapturingInput()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.Update(msg)
		a.signup.Update(msg)
		a.voice.Update(msg)
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-navBarHeight, 0)}
		for _, s := range a.screens {
			s.Update(inner)
		}
		return a, nil

	case views.Alert:
		a.alert = msg.Text
		return a, nil

	case views.ShowSignup:
		if err := a.nav.ShowSignup(); err != nil {
			a.log.Debug("ignoring signup transition", zap.Error(err))
			return a, nil
		}
		return a, a.signup.Init()

	case views.ShowLogin:
		if err := a.nav.ShowLogin(); err != nil {
			a.log.Debug("ignoring login transition", zap.Error(err))
			return a, nil
		}
		return a, a.login.Init()

	case views.LoginSubmitted:
		return a, a.submitLogin(msg.Request)

	case views.SignupSubmitted:
		return a, a.submitSignup(msg.Request)

	case authResultMsg:
		return a, a.handleAuthResult(msg)

	case views.Navigate:
		return a, a.navigate(msg.Screen)

	case views.SetVoiceMode:
		return a, a.setVoiceMode(msg.On)

	case views.ToggleTextScale:
		a.toggleTextScale()
		return a, nil

	case emergencyResultMsg:
		switch {
		case msg.err != nil:
			a.log.Warn("emergency call notification failed", zap.Error(msg.err))
			a.alert = emergencyFallback
		case !msg.notified:
			a.log.Warn("emergency call not acknowledged by server")
			a.alert = emergencyFallback
		default:
			a.alert = emergencyNotified
		}
		return a, nil

	case prefetchResultMsg:
		if msg.err != nil {
			a.log.Warn("prefetch failed", zap.String("screen", string(msg.screen)), zap.Error(msg.err))
		} else {
			a.log.Info("prefetched screen data", zap.String("screen", string(msg.screen)), zap.Int("bytes", msg.size))
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	_, cmd := a.current().Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.alert != "" {
		a.alert = ""
		return a, nil
	}

	if a.confirmingEmergency {
		switch msg.String() {
		case "y", "Y":
			a.confirmingEmergency = false
			return a, a.emergencyCall()
		case "n", "N", "esc":
			a.confirmingEmergency = false
		}
		return a, nil
	}

	if !a.nav.Authenticated() {
		_, cmd := a.current().Update(msg)
		return a, cmd
	}

	// Text size and the emergency call stay reachable in voice mode
	if a.nav.Mode() == nav.ModeVoice {
		switch {
		case key.Matches(msg, a.keys.TextSize):
			a.toggleTextScale()
			return a, nil
		case key.Matches(msg, a.keys.Emergency):
			a.confirmingEmergency = true
			return a, nil
		}
		_, cmd := a.current().Update(msg)
		return a, cmd
	}

	if a.nav.ModeMenuVisible() {
		return a, a.updateModeMenu(msg)
	}

	if !a.capturing() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Menu):
			a.nav.ToggleModeMenu()
			return a, nil
		case key.Matches(msg, a.keys.TextSize):
			a.toggleTextScale()
			return a, nil
		case key.Matches(msg, a.keys.Emergency):
			a.confirmingEmergency = true
			return a, nil
		case key.Matches(msg, a.keys.Assistant):
			a.alert = "Voice Assistant activated"
			return a, nil
		}
		if screen, ok := a.navKey(msg); ok {
			return a, a.navigate(screen)
		}
	}

	_, cmd := a.current().Update(msg)
	return a, cmd
}

// navKey maps the bottom navigation shortcuts to screens
func (a *App) navKey(msg tea.KeyMsg) (nav.Screen, bool) {
	bindings := []struct {
		binding key.Binding
		screen  nav.Screen
	}{
		{a.keys.Home, nav.ScreenHome},
		{a.keys.Feed, nav.ScreenFeed},
		{a.keys.Family, nav.ScreenFamily},
		{a.keys.Events, nav.ScreenEvents},
		{a.keys.Diary, nav.ScreenDiary},
		{a.keys.Reminders, nav.ScreenReminders},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.screen, true
		}
	}
	return "", false
}

func (a *App) updateModeMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Profile):
		a.nav.HideModeMenu()
		return a.navigate(nav.ScreenProfile)
	case key.Matches(msg, a.keys.Settings):
		a.nav.HideModeMenu()
		return a.navigate(nav.ScreenSettings)
	case key.Matches(msg, a.keys.Voice):
		return a.setVoiceMode(true)
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Menu):
		a.nav.HideModeMenu()
	}
	return nil
}

// navigate activates screen. Prefetch only fires when the screen changes.
func (a *App) navigate(screen nav.Screen) tea.Cmd {
	changed := screen != a.nav.Screen()
	if err := a.nav.Navigate(screen); err != nil {
		a.log.Debug("navigation rejected", zap.String("screen", string(screen)), zap.Error(err))
		return nil
	}
	if !changed {
		return a.screens[screen].Init()
	}
	return tea.Batch(a.screens[screen].Init(), a.prefetch(screen))
}

func (a *App) setVoiceMode(on bool) tea.Cmd {
	mode := nav.ModeStandard
	if on {
		mode = nav.ModeVoice
	}
	if err := a.nav.SetMode(mode); err != nil {
		a.log.Debug("mode change rejected", zap.Error(err))
		return nil
	}
	if on {
		return a.voice.Init()
	}
	return a.screens[a.nav.Screen()].Init()
}

// toggleTextScale rebuilds the shared styles in place
func (a *App) toggleTextScale() {
	scale := a.nav.ToggleTextScale()
	*a.styles = *styles.NewStyles(scale)
	a.log.Debug("text scale changed", zap.Float64("scale", scale))
}

func (a *App) submitLogin(req api.LoginRequest) tea.Cmd {
	client := a.api
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), req)
		return authResultMsg{resp: resp, err: err}
	}
}

func (a *App) submitSignup(req api.SignupRequest) tea.Cmd {
	client := a.api
	return func() tea.Msg {
		resp, err := client.Signup(context.Background(), req)
		return authResultMsg{signup: true, resp: resp, err: err}
	}
}

func (a *App) handleAuthResult(msg authResultMsg) tea.Cmd {
	a.login.SetPending(false)
	a.signup.SetPending(false)

	action := "Login"
	if msg.signup {
		action = "Sign up"
	}

	if msg.err != nil {
		a.log.Warn("authentication failed", zap.Bool("signup", msg.signup), zap.Error(msg.err))
		var apiErr *api.Error
		if errors.As(msg.err, &apiErr) && apiErr.Message != "" {
			a.alert = apiErr.Message
		} else {
			a.alert = action + " failed. Please try again."
		}
		return nil
	}
	if !msg.resp.Success {
		a.alert = msg.resp.Message
		if a.alert == "" {
			a.alert = action + " failed. Please try again."
		}
		return nil
	}

	if err := a.tokens.SetToken(msg.resp.Token); err != nil {
		a.log.Error("failed to store session token", zap.Error(err))
	}
	if err := a.nav.Authenticate(*msg.resp.User); err != nil {
		a.log.Warn("authentication ignored", zap.Error(err))
		return nil
	}
	a.log.Info("signed in", zap.Int64("user_id", msg.resp.User.ID))
	return tea.Batch(a.screens[a.nav.Screen()].Init(), a.prefetch(a.nav.Screen()))
}

func (a *App) hasSession() bool {
	token, err := a.tokens.Token()
	if err != nil {
		a.log.Warn("failed to read session token", zap.Error(err))
		return false
	}
	return token != "" && a.nav.User() != nil
}

// prefetch loads the screen's remote data. The payload is only logged.
func (a *App) prefetch(screen nav.Screen) tea.Cmd {
	if _, ok := api.PrefetchEndpoint(string(screen)); !ok || !a.hasSession() {
		return nil
	}
	client := a.api
	return func() tea.Msg {
		raw, err := client.Prefetch(context.Background(), string(screen))
		return prefetchResultMsg{screen: screen, size: len(raw), err: err}
	}
}

func (a *App) emergencyCall() tea.Cmd {
	var userID int64
	if u := a.nav.User(); u != nil {
		userID = u.ID
	}
	client := a.api
	return func() tea.Msg {
		resp, err := client.EmergencyCall(context.Background(), userID)
		if err != nil {
			return emergencyResultMsg{err: err}
		}
		return emergencyResultMsg{notified: resp.Success}
	}
}

func (a *App) View() string {
	if a.alert != "" {
		return a.renderOverlay(a.alert, "Press any key to continue")
	}
	if a.confirmingEmergency {
		return a.renderOverlay("Call Emergency Services (112)?", "Y - call • N - cancel")
	}

	if !a.nav.Authenticated() || a.nav.Mode() == nav.ModeVoice {
		return a.current().View()
	}

	if a.nav.ModeMenuVisible() {
		return a.renderModeMenu()
	}

	body := a.current().View()
	return lipgloss.JoinVertical(lipgloss.Left, body, a.renderNavBar())
}

func (a *App) renderOverlay(text, hint string) string {
	s := a.styles
	box := s.Popup.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(strings.TrimSpace(text)),
		s.TitleMuted.Render(hint),
	))
	return lipgloss.Place(max(a.width, lipgloss.Width(box)), max(a.height, lipgloss.Height(box)),
		lipgloss.Center, lipgloss.Center, box)
}

func (a *App) renderModeMenu() string {
	s := a.styles
	item := func(k, label string, screen nav.Screen) string {
		style := s.ListItem
		if screen != "" && a.nav.Screen() == screen {
			style = s.ListSelected
		}
		return style.Render(s.HelpKey.Render(k) + "  " + label)
	}
	menu := s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Menu"),
		item("p", "My Profile", nav.ScreenProfile),
		item("s", "Settings", nav.ScreenSettings),
		item("v", "Voice Control Mode", ""),
		s.TitleMuted.Render("esc to close"),
	))
	return lipgloss.Place(max(a.width, lipgloss.Width(menu)), max(a.height, lipgloss.Height(menu)),
		lipgloss.Center, lipgloss.Center, menu)
}

func (a *App) renderNavBar() string {
	s := a.styles
	labels := map[nav.Screen]string{
		nav.ScreenHome:      "1 Home",
		nav.ScreenFeed:      "2 Photos",
		nav.ScreenFamily:    "3 Family",
		nav.ScreenEvents:    "4 Events",
		nav.ScreenDiary:     "5 Diary",
		nav.ScreenReminders: "6 Meds",
	}
	items := make([]string, 0, len(labels))
	for _, screen := range nav.Screens {
		label, ok := labels[screen]
		if !ok {
			continue
		}
		style := s.NavItem
		if screen == a.nav.Screen() {
			style = s.NavActive
		}
		items = append(items, style.Render(label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	extras := s.HelpKey.Render("m") + s.HelpDesc.Render(" menu  ") +
		s.HelpKey.Render("!") + s.HelpDesc.Render(" SOS  ") +
		s.HelpKey.Render("t") + s.HelpDesc.Render(" text size")
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, bar, extras), a.width, navBarHeight)
}
