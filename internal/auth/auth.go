// Package auth validates credentials locally and drives the signup, login,
// logout and password-reset calls.
package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"taskpad/internal/api"
	"taskpad/internal/session"
)

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-z]{2,}$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[@#$&*!]`)
)

const minPasswordLen = 8

// Validation messages shown to the user.
const (
	MsgFillBoth      = "Please fill in both fields!"
	MsgInvalidEmail  = "Please enter a valid email address!"
	MsgWeakPassword  = "Password does not meet security requirements!"
	MsgEmailRequired = "Email is required!"
)

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &api.ValidationError{Msg: MsgInvalidEmail}
	}
	return nil
}

// ValidatePassword requires at least eight characters including an
// uppercase letter, a digit and one of @#$&*!.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen ||
		!upperPattern.MatchString(password) ||
		!digitPattern.MatchString(password) ||
		!specialPattern.MatchString(password) {
		return &api.ValidationError{Msg: MsgWeakPassword}
	}
	return nil
}

// Client is the subset of the API the auth flows use.
type Client interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) (string, error)
}

type Service struct {
	client  Client
	session *session.Session
	logger  *slog.Logger
}

func NewService(client Client, sess *session.Session, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{client: client, session: sess, logger: logger}
}

// Signup validates the credentials and registers the account. It does not
// log in.
func (s *Service) Signup(ctx context.Context, email, password string) error {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return &api.ValidationError{Msg: MsgFillBoth}
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if err := s.client.Signup(ctx, email, password); err != nil {
		s.logger.Error("signup failed", "email", email, "error", err)
		return err
	}
	s.logger.Info("signed up", "email", email)
	return nil
}

// Login authenticates and stores the session. It returns the user id.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", &api.ValidationError{Msg: MsgFillBoth}
	}
	userID, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Error("login failed", "email", email, "error", err)
		return "", err
	}
	if err := s.session.Start(userID); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	s.logger.Info("logged in", "user_id", userID)
	return userID, nil
}

// Logout tells the server and clears the session only if the server
// accepted it.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Error("logout failed", "error", err)
		return err
	}
	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &api.ValidationError{Msg: MsgEmailRequired}
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	msg, err := s.client.ForgotPassword(ctx, email)
	if err != nil {
		s.logger.Error("forgot password failed", "email", email, "error", err)
		return "", err
	}
	return msg, nil
}

// Invalidate clears a session the server no longer honours.
func (s *Service) Invalidate(reason error) {
	s.logger.Warn("session invalidated", "error", reason)
	if err := s.session.Clear(); err != nil {
		s.logger.Error("clear session", "error", err)
	}
}

func (s *Service) Session() *session.Session { return s.session }
