package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/kinfolk/internal/api"
	"github.com/tgienger/kinfolk/internal/db"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/nav"
	"github.com/tgienger/kinfolk/internal/persist"
	"github.com/tgienger/kinfolk/internal/session"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/views"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type route struct {
	status int
	body   string
}

// backend is a fake API that records every path it serves
type backend struct {
	mu     sync.Mutex
	routes map[string]route
	hits   []string
}

func (b *backend) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.hits...)
}

type harness struct {
	app     *App
	nav     *nav.Controller
	state   *state.Container
	tokens  session.TokenStore
	backend *backend
	logs    *observer.ObservedLogs
}

const loginOK = `{"success":true,"user":{"id":7,"name":"Margaret Lee","email":"margaret@example.com","age":78},"token":"tok-123"}`

func newHarness(t *testing.T, routes map[string]route) *harness {
	t.Helper()

	b := &backend{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits = append(b.hits, r.URL.Path)
		rt, ok := b.routes[r.URL.Path]
		b.mu.Unlock()
		if !ok {
			rt = route{status: http.StatusNotFound, body: `{"message":"not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(srv.Close)

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	kv := db.NewMemory()
	st := state.Open(persist.NewAdapter(kv, log), state.WithLogger(log))
	ctl := nav.New()
	tokens := session.NewStorageTokenStore(kv)

	app := NewApp(ctl, st, api.NewClient(srv.URL+"/api", 0, log), tokens, log)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &harness{app: app, nav: ctl, state: st, tokens: tokens, backend: b, logs: logs}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// collect runs cmd and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds the application's own messages back until none remain.
// Cursor blink messages are dropped.
func (h *harness) settle(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case views.Alert, views.ShowSignup, views.ShowLogin,
			views.LoginSubmitted, views.SignupSubmitted, views.Navigate,
			views.SetVoiceMode, views.ToggleTextScale,
			authResultMsg, emergencyResultMsg, prefetchResultMsg:
			_, next := h.app.Update(msg)
			h.settle(next)
		}
	}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		_, cmd := h.app.Update(keyMsg(k))
		h.settle(cmd)
	}
}

// typeText sends runes without running the blink commands they return
func (h *harness) typeText(s string) {
	for _, r := range s {
		h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	h.typeText("margaret@example.com")
	h.press("tab")
	h.typeText("secret")
	h.press("ctrl+s")
	require.True(t, h.nav.Authenticated(), "alert: %q", h.app.Alert())
}

func TestLogin_InvalidCredentialsStaysOnLogin(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login": {http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`},
	})

	h.typeText("margaret@example.com")
	h.press("tab")
	h.typeText("wrong")
	h.press("ctrl+s")

	assert.Equal(t, nav.PhaseLogin, h.nav.Phase())
	assert.Nil(t, h.nav.User())
	assert.Equal(t, "Invalid credentials", h.app.Alert())
	token, err := h.tokens.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, []string{"/api/login"}, h.backend.paths())
}

func TestLogin_UnsuccessfulBodyStaysOnLogin(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login": {http.StatusOK, `{"success":false,"message":"Invalid credentials"}`},
	})

	h.typeText("margaret@example.com")
	h.press("tab")
	h.typeText("wrong")
	h.press("ctrl+s")

	assert.Equal(t, nav.PhaseLogin, h.nav.Phase())
	assert.Nil(t, h.nav.User())
	assert.Equal(t, "Invalid credentials", h.app.Alert())
}

func TestLogin_EmptyFormNeverCallsServer(t *testing.T) {
	h := newHarness(t, nil)

	h.press("ctrl+s")

	assert.Equal(t, nav.PhaseLogin, h.nav.Phase())
	assert.NotEmpty(t, h.app.Alert())
	assert.Empty(t, h.backend.paths())
}

func TestLogin_SuccessStoresTokenAndUser(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})

	h.signIn(t)

	token, err := h.tokens.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, &models.User{ID: 7, Name: "Margaret Lee", Email: "margaret@example.com", Age: 78}, h.nav.User())
	assert.Equal(t, nav.ScreenHome, h.nav.Screen())
	assert.Contains(t, h.app.View(), "Margaret!")
}

func TestSignup_RoundTrip(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/signup": {http.StatusOK, loginOK}})

	h.press("ctrl+n")
	require.Equal(t, nav.PhaseSignup, h.nav.Phase())

	h.press("esc")
	require.Equal(t, nav.PhaseLogin, h.nav.Phase())

	h.press("ctrl+n")
	h.typeText("Margaret Lee")
	h.press("tab")
	h.typeText("margaret@example.com")
	h.press("tab")
	h.typeText("secret")
	h.press("tab")
	h.typeText("78")
	h.press("ctrl+s")

	assert.True(t, h.nav.Authenticated())
	assert.Equal(t, []string{"/api/signup"}, h.backend.paths())
}

func TestNavigation_BottomBarAndPrefetch(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login":          {http.StatusOK, loginOK},
		"/api/family-members": {http.StatusOK, `[{"name":"Anna"}]`},
	})
	h.signIn(t)

	tests := []struct {
		key    string
		screen nav.Screen
	}{
		{"2", nav.ScreenFeed},
		{"3", nav.ScreenFamily},
		{"4", nav.ScreenEvents},
		{"5", nav.ScreenDiary},
		{"6", nav.ScreenReminders},
		{"1", nav.ScreenHome},
	}
	for _, tt := range tests {
		h.press(tt.key)
		assert.Equal(t, tt.screen, h.nav.Screen(), "key %s", tt.key)
	}

	assert.Equal(t, []string{
		"/api/login", "/api/feed", "/api/family-members", "/api/events", "/api/diary", "/api/reminders",
	}, h.backend.paths())

	// Prefetched data is logged, never merged into local state
	assert.Equal(t, 1, h.logs.FilterMessage("prefetched screen data").Len())
	assert.GreaterOrEqual(t, h.logs.FilterMessage("prefetch failed").Len(), 4)
	assert.Empty(t, h.state.Contacts())
}

func TestNavigation_NoPrefetchWithoutToken(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)
	require.NoError(t, h.tokens.Clear())

	h.press("3")

	assert.Equal(t, nav.ScreenFamily, h.nav.Screen())
	assert.Equal(t, []string{"/api/login"}, h.backend.paths())
}

func TestModeMenu(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)

	h.press("m")
	require.True(t, h.nav.ModeMenuVisible())
	assert.Contains(t, h.app.View(), "Voice Control Mode")

	h.press("esc")
	assert.False(t, h.nav.ModeMenuVisible())

	h.press("m", "p")
	assert.Equal(t, nav.ScreenProfile, h.nav.Screen())
	assert.False(t, h.nav.ModeMenuVisible())
	assert.Contains(t, h.app.View(), "margaret@example.com")

	h.press("m", "s")
	assert.Equal(t, nav.ScreenSettings, h.nav.Screen())
}

func TestVoiceMode_ResumesPreviousScreen(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)
	h.press("6")

	h.press("m", "v")
	require.Equal(t, nav.ModeVoice, h.nav.Mode())
	assert.False(t, h.nav.ModeMenuVisible())
	assert.Contains(t, h.app.View(), "Voice Control")

	// Digits pick phrases in voice mode, they do not navigate
	_, cmd := h.app.Update(keyMsg("2"))
	assert.NotNil(t, cmd)
	assert.Equal(t, nav.ScreenReminders, h.nav.Screen())

	h.press("s")
	assert.Equal(t, nav.ModeStandard, h.nav.Mode())
	assert.Equal(t, nav.ScreenReminders, h.nav.Screen())
}

func TestVoiceMode_TextSizeAndEmergency(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login":          {http.StatusOK, loginOK},
		"/api/emergency-call": {http.StatusOK, `{"success":true}`},
	})
	h.signIn(t)
	h.press("m", "v")
	require.Equal(t, nav.ModeVoice, h.nav.Mode())

	h.press("t")
	assert.Equal(t, nav.ScaleLarge, h.nav.TextScale())
	assert.True(t, h.app.styles.Large())
	assert.Equal(t, nav.ModeVoice, h.nav.Mode())

	h.press("!")
	assert.Contains(t, h.app.View(), "Call Emergency Services (112)?")
	h.press("y")
	assert.Equal(t, emergencyNotified, h.app.Alert())
	assert.Contains(t, h.backend.paths(), "/api/emergency-call")

	h.press("esc")
	assert.Equal(t, nav.ModeVoice, h.nav.Mode())
	assert.Contains(t, h.app.View(), "Voice Control")
}

func TestNavigation_SameScreenDoesNotPrefetchAgain(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login":          {http.StatusOK, loginOK},
		"/api/family-members": {http.StatusOK, `[]`},
	})
	h.signIn(t)

	h.press("3", "3", "3")
	assert.Equal(t, []string{"/api/login", "/api/family-members"}, h.backend.paths())

	h.press("1", "3")
	assert.Equal(t, []string{"/api/login", "/api/family-members", "/api/family-members"}, h.backend.paths())
}

func TestHome_WhitespaceNameDoesNotPanic(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login": {http.StatusOK, `{"success":true,"user":{"id":7,"name":"   ","email":"m@example.com"},"token":"tok"}`},
	})
	h.signIn(t)

	require.NotPanics(t, func() { _ = h.app.View() })
	assert.Contains(t, h.app.View(), "there!")
}

func TestTextScale_ReachesEveryScreen(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)

	h.press("t")
	assert.Equal(t, nav.ScaleLarge, h.nav.TextScale())
	assert.True(t, h.app.styles.Large())

	h.press("m", "s")
	assert.Contains(t, h.app.View(), "Text size: Large")

	// The settings entry toggles the same state
	h.press("enter")
	assert.Equal(t, nav.ScaleNormal, h.nav.TextScale())
	assert.Contains(t, h.app.View(), "Text size: Normal")
}

func TestEmergency(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server notified", http.StatusOK, `{"success":true}`, emergencyNotified},
		{"server declined", http.StatusOK, `{"success":false}`, emergencyFallback},
		{"server unavailable", http.StatusInternalServerError, `{"success":true}`, emergencyFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, map[string]route{
				"/api/login":          {http.StatusOK, loginOK},
				"/api/emergency-call": {tt.status, tt.body},
			})
			h.signIn(t)

			h.press("!")
			assert.Contains(t, h.app.View(), "Call Emergency Services (112)?")

			h.press("n")
			assert.NotContains(t, h.backend.paths(), "/api/emergency-call")

			h.press("!", "y")
			assert.Equal(t, tt.want, h.app.Alert())
			assert.Contains(t, h.backend.paths(), "/api/emergency-call")

			// Any key dismisses without acting
			h.press("3")
			assert.Empty(t, h.app.Alert())
			assert.Equal(t, nav.ScreenHome, h.nav.Screen())
		})
	}
}

func TestHome_FormCapturesGlobalKeys(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)

	h.press("n")
	h.typeText("Walk 3 blocks")
	assert.Equal(t, nav.ScreenHome, h.nav.Screen())
	h.press("ctrl+s")

	tasks := h.state.Tasks()
	last := tasks[len(tasks)-1]
	assert.Equal(t, "Walk 3 blocks", last.Title)
	assert.Equal(t, models.IconWalk, last.Icon)
	assert.Equal(t, 10, last.Points)
	assert.False(t, last.Completed)
}

func TestHome_ToggleTask(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)

	h.press(" ")
	assert.True(t, h.state.Tasks()[0].Completed)
	assert.Contains(t, h.app.View(), "1 done")

	h.press("j", "d", "y")
	assert.Len(t, h.state.Tasks(), 2)
}

func TestReminders_Alerts(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)
	h.press("6", "n")

	h.press("ctrl+s")
	assert.Equal(t, "Please fill in all fields", h.app.Alert())
	h.press("enter")

	h.typeText("Aspirin")
	h.press("tab")
	h.typeText("20:00")
	h.press("ctrl+s")
	assert.Equal(t, "Reminder added!", h.app.Alert())

	reminders := h.state.Reminders()
	require.Len(t, reminders, 3)
	assert.Equal(t, models.Reminder{
		ID:             reminders[2].ID,
		MedicationName: "Aspirin",
		Time:           "20:00",
		Dosage:         "1 tablet",
	}, reminders[2])
}

func TestFamily_CallAndDuplicate(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})
	h.signIn(t)
	require.NoError(t, h.state.AddContact(models.Contact{Name: "Anna", Relationship: "Daughter", PhoneNumber: "555-0101"}))

	h.press("3", "enter")
	assert.Equal(t, "Calling Anna...", h.app.Alert())
	h.press("esc")

	h.press("v")
	assert.Equal(t, "Starting video call with Anna...", h.app.Alert())
	h.press("esc")

	h.press("n")
	h.typeText("Anna again")
	h.press("tab")
	h.typeText("Daughter")
	h.press("tab")
	h.typeText("555-0101")
	h.press("ctrl+s")
	assert.True(t, strings.Contains(h.app.Alert(), "already exists"))
	assert.Len(t, h.state.Contacts(), 1)
}

func TestFeed_LikeAndComment(t *testing.T) {
	h := newHarness(t, map[string]route{
		"/api/login": {http.StatusOK, loginOK},
		"/api/feed":  {http.StatusOK, `[]`},
	})
	h.signIn(t)
	post := h.state.AddFeedPost(state.NewPost{AuthorName: "Anna", Photo: "garden.jpg"})

	h.press("2", "l")
	assert.True(t, h.state.FeedPosts()[0].IsLiked)
	assert.Equal(t, 1, h.state.FeedPosts()[0].Likes)

	h.press("c")
	h.typeText("Lovely roses")
	h.press("enter")

	got := h.state.FeedPosts()[0]
	assert.Equal(t, post.ID, got.ID)
	require.Len(t, got.CommentsList, 1)
	assert.Equal(t, "Margaret Lee", got.CommentsList[0].Author)
	assert.Equal(t, "Lovely roses", got.CommentsList[0].Text)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, map[string]route{"/api/login": {http.StatusOK, loginOK}})

	// q is text while a form has focus
	_, cmd := h.app.Update(keyMsg("q"))
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}

	h.app.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	h.signIn(t)
	_, cmd = h.app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
