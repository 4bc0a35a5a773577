package views

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/kinfolk/internal/api"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// LoginView collects credentials and emits LoginSubmitted
type LoginView struct {
	form    *form
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	pending bool
}

func NewLoginView(s *styles.Styles) *LoginView {
	return &LoginView{
		form: newForm("Welcome to Kinfolk", "Sign In",
			newField("Email", "you@example.com", 200),
			newPasswordField("Password"),
		),
		styles: s,
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// SetPending disables submission while a login request is in flight
func (v *LoginView) SetPending(pending bool) {
	v.pending = pending
}

func (v *LoginView) CapturingInput() bool { return true }

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.SignUp) {
			return v, send(ShowSignup{})
		}
		submitted, cmd := v.form.update(msg, v.keys)
		if !submitted {
			return v, cmd
		}
		if v.pending {
			return v, nil
		}
		req := api.LoginRequest{Email: v.form.value(0), Password: v.form.fields[1].input.Value()}
		if err := req.Validate(); err != nil {
			return v, alert("Please enter your email and password")
		}
		v.pending = true
		return v, send(LoginSubmitted{Request: req})
	}

	return v, v.form.updateInput(msg)
}

func (v *LoginView) View() string {
	hint := "Tab: next • Enter: sign in • Ctrl+N: create account • Ctrl+C: quit"
	if v.pending {
		hint = "Signing in..."
	}
	return v.form.view(v.styles, v.width, v.height, hint)
}

// SignupView collects a new account and emits SignupSubmitted
type SignupView struct {
	form    *form
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	pending bool
}

func NewSignupView(s *styles.Styles) *SignupView {
	return &SignupView{
		form: newForm("Create your account", "Sign Up",
			newField("Name", "Full name", 100),
			newField("Email", "you@example.com", 200),
			newPasswordField("Password"),
			newField("Age", "Age", 3),
		),
		styles: s,
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *SignupView) Init() tea.Cmd {
	return v.form.reset()
}

func (v *SignupView) SetPending(pending bool) {
	v.pending = pending
}

func (v *SignupView) CapturingInput() bool { return true }

func (v *SignupView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Back) {
			return v, send(ShowLogin{})
		}
		submitted, cmd := v.form.update(msg, v.keys)
		if !submitted {
			return v, cmd
		}
		if v.pending {
			return v, nil
		}
		age, err := strconv.Atoi(v.form.value(3))
		if err != nil {
			return v, alert("Please enter your age as a number")
		}
		req := api.SignupRequest{
			Name:     v.form.value(0),
			Email:    v.form.value(1),
			Password: v.form.fields[2].input.Value(),
			Age:      age,
		}
		if err := req.Validate(); err != nil {
			return v, alert("Please check your details: %v", err)
		}
		v.pending = true
		return v, send(SignupSubmitted{Request: req})
	}

	return v, v.form.updateInput(msg)
}

func (v *SignupView) View() string {
	hint := "Tab: next • Enter: sign up • Esc: back to sign in"
	if v.pending {
		hint = "Creating account..."
	}
	return v.form.view(v.styles, v.width, v.height, hint)
}
