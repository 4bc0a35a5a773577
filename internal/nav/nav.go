// Package nav tracks which view the application renders: the auth phase,
// the interaction mode, the active screen, the mode menu overlay and the
// global text scale.
package nav

import (
	"errors"
	"fmt"

	"github.com/tgienger/kinfolk/internal/models"
)

type Phase int

const (
	PhaseLogin Phase = iota
	PhaseSignup
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseLogin:
		return "login"
	case PhaseSignup:
		return "signup"
	case PhaseAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type Mode int

const (
	ModeStandard Mode = iota
	ModeVoice
)

func (m Mode) String() string {
	if m == ModeVoice {
		return "voice"
	}
	return "standard"
}

// Screen is a full-view presentation state in standard mode
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenFamily    Screen = "family"
	ScreenEvents    Screen = "events"
	ScreenReminders Screen = "reminders"
	ScreenFeed      Screen = "feed"
	ScreenDiary     Screen = "diary"
	ScreenProfile   Screen = "profile"
	ScreenSettings  Screen = "settings"
)

// Screens lists every screen in bottom-navigation order, followed by the menu-only ones
var Screens = []Screen{
	ScreenHome, ScreenFeed, ScreenFamily, ScreenEvents, ScreenDiary, ScreenReminders,
	ScreenProfile, ScreenSettings,
}

func (s Screen) Valid() bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}

// Text scale multipliers
const (
	ScaleNormal = 1.0
	ScaleLarge  = 1.5
)

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrVoiceMode            = errors.New("screens are unavailable in voice mode")
	ErrUnknownScreen        = errors.New("unknown screen")
	ErrInvalidTransition    = errors.New("invalid auth transition")
)

// Controller holds navigation state. The zero value is not usable; call New.
type Controller struct {
	phase    Phase
	mode     Mode
	screen   Screen
	menuOpen bool
	scale    float64
	user     *models.User
}

func New() *Controller {
	return &Controller{
		phase:  PhaseLogin,
		mode:   ModeStandard,
		screen: ScreenHome,
		scale:  ScaleNormal,
	}
}

func (c *Controller) Phase() Phase          { return c.phase }
func (c *Controller) Mode() Mode            { return c.mode }
func (c *Controller) Screen() Screen        { return c.screen }
func (c *Controller) ModeMenuVisible() bool { return c.menuOpen }
func (c *Controller) TextScale() float64    { return c.scale }
func (c *Controller) Authenticated() bool   { return c.phase == PhaseAuthenticated }

// User returns a copy of the signed-in profile, or nil
func (c *Controller) User() *models.User {
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// ShowSignup moves from the login form to the signup form
func (c *Controller) ShowSignup() error {
	if c.phase != PhaseLogin {
		return fmt.Errorf("%w: %s -> signup", ErrInvalidTransition, c.phase)
	}
	c.phase = PhaseSignup
	return nil
}

// ShowLogin moves from the signup form back to the login form
func (c *Controller) ShowLogin() error {
	if c.phase != PhaseSignup {
		return fmt.Errorf("%w: %s -> login", ErrInvalidTransition, c.phase)
	}
	c.phase = PhaseLogin
	return nil
}

// Authenticate records a successful login or signup. There is no way back.
func (c *Controller) Authenticate(user models.User) error {
	if c.phase == PhaseAuthenticated {
		return ErrAlreadyAuthenticated
	}
	c.phase = PhaseAuthenticated
	c.user = &user
	return nil
}

// SetMode switches between standard and voice interaction. The selected
// screen is kept so returning to standard mode resumes it.
func (c *Controller) SetMode(m Mode) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	c.mode = m
	if m == ModeVoice {
		c.menuOpen = false
	}
	return nil
}

func (c *Controller) ToggleMode() error {
	if c.mode == ModeVoice {
		return c.SetMode(ModeStandard)
	}
	return c.SetMode(ModeVoice)
}

// Navigate selects the active screen. Every screen is reachable from every other.
func (c *Controller) Navigate(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, s)
	}
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	if c.mode == ModeVoice {
		return ErrVoiceMode
	}
	c.screen = s
	return nil
}

func (c *Controller) ToggleModeMenu() {
	c.menuOpen = !c.menuOpen
}

func (c *Controller) HideModeMenu() {
	c.menuOpen = false
}

// ToggleTextScale flips between normal and large text and returns the new multiplier
func (c *Controller) ToggleTextScale() float64 {
	if c.scale == ScaleNormal {
		c.scale = ScaleLarge
	} else {
		c.scale = ScaleNormal
	}
	return c.scale
}
