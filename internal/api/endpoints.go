package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tgienger/kinfolk/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest is returned before sending a request that fails validation
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidResponse is returned for a 2xx body that does not match its schema
	ErrInvalidResponse = errors.New("invalid response")
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidRequest)
	}
	return nil
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

func (r SignupRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	case strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", ErrInvalidRequest)
	case r.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidRequest)
	case r.Age <= 0 || r.Age > 150:
		return fmt.Errorf("%w: age must be between 1 and 150", ErrInvalidRequest)
	}
	return nil
}

// AuthResponse is the body of /login and /signup
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// Validate checks a successful response carries the session it promises
func (r *AuthResponse) Validate() error {
	if !r.Success {
		return nil
	}
	if r.User == nil || r.Token == "" {
		return fmt.Errorf("%w: successful auth response without user or token", ErrInvalidResponse)
	}
	return nil
}

type EmergencyRequest struct {
	UserID int64 `json:"user_id"`
}

type EmergencyResponse struct {
	Success bool `json:"success"`
}

// Login posts credentials. A 2xx response with success=false is returned
// without error so the caller can show its message.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/login", req, req.Validate())
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/signup", req, req.Validate())
}

func (c *Client) authenticate(ctx context.Context, endpoint string, body any, invalid error) (*AuthResponse, error) {
	if invalid != nil {
		return nil, invalid
	}
	var resp AuthResponse
	if err := c.Request(ctx, endpoint, Options{Method: http.MethodPost, Body: body}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EmergencyCall notifies the backend that the user asked for emergency services
func (c *Client) EmergencyCall(ctx context.Context, userID int64) (*EmergencyResponse, error) {
	var resp EmergencyResponse
	err := c.Request(ctx, "/emergency-call", Options{
		Method: http.MethodPost,
		Body:   EmergencyRequest{UserID: userID},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

var prefetchEndpoints = map[string]string{
	"family":    "/family-members",
	"events":    "/events",
	"reminders": "/reminders",
	"feed":      "/feed",
	"diary":     "/diary",
}

// PrefetchEndpoint returns the GET path loaded when screen becomes active
func PrefetchEndpoint(screen string) (string, bool) {
	ep, ok := prefetchEndpoints[screen]
	return ep, ok
}

// Prefetch loads the raw data for a screen. Screens without an endpoint return nil, nil.
func (c *Client) Prefetch(ctx context.Context, screen string) (json.RawMessage, error) {
	ep, ok := PrefetchEndpoint(screen)
	if !ok {
		return nil, nil
	}
	var raw json.RawMessage
	if err := c.Request(ctx, ep, Options{}, &raw); err != nil {
		return nil, err
	}
	c.log.Debug("prefetched screen data", zap.String("screen", screen), zap.Int("bytes", len(raw)))
	return raw, nil
}
