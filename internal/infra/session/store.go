// Package session keeps the logged-in principal in a signed cookie.
package session

import (
	"net/http"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const (
	keyUsername         = "username"
	keyRole             = "role"
	keyLoginType        = "login_type"
	keyCheckoutRedirect = "checkout_redirect"
)

// Store wraps a gorilla cookie store for the marketplace session.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	maxAge  int
}

// NewStore builds the cookie store from the session config.
func NewStore(cfg *config.Config) (*Store, error) {
	if cfg.Session == nil || cfg.Session.Key == "" {
		return nil, errors.New("session key must be configured")
	}

	cookies := sessions.NewCookieStore([]byte(cfg.Session.Key))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: cookies, name: cfg.Session.Name, maxAge: cfg.Session.MaxAge}, nil
}

// get never fails on a tampered or stale cookie; it starts a fresh session instead.
func (s *Store) get(r *http.Request) *sessions.Session {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil || sess == nil {
		sess = sessions.NewSession(s.cookies, s.name)
		opts := *s.cookies.Options
		sess.Options = &opts
		sess.IsNew = true
	}

	return sess
}

// Principal returns the logged-in caller stored in the cookie.
func (s *Store) Principal(r *http.Request) (*entity.Principal, bool) {
	sess := s.get(r)

	username, _ := sess.Values[keyUsername].(string)
	if username == "" {
		return nil, false
	}
	role, _ := sess.Values[keyRole].(string)

	return &entity.Principal{Username: username, Role: entity.Role(role)}, true
}

// LoginType returns the stored login type, empty for console accounts and anonymous callers.
func (s *Store) LoginType(r *http.Request) string {
	lt, _ := s.get(r).Values[keyLoginType].(string)

	return lt
}

// Login stores the principal and reports whether a checkout redirect was pending.
// The pending flag is consumed.
func (s *Store) Login(w http.ResponseWriter, r *http.Request, principal entity.Principal, loginType string) (bool, error) {
	sess := s.get(r)

	pending, _ := sess.Values[keyCheckoutRedirect].(bool)
	delete(sess.Values, keyCheckoutRedirect)

	sess.Values[keyUsername] = principal.Username
	sess.Values[keyRole] = principal.Role.String()
	sess.Values[keyLoginType] = loginType

	if err := sess.Save(r, w); err != nil {
		return false, errors.Wrap(err, "save session")
	}

	return pending, nil
}

// RememberCheckout marks the session so the next login lands on the checkout page.
func (s *Store) RememberCheckout(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	sess.Values[keyCheckoutRedirect] = true

	return errors.Wrap(sess.Save(r, w), "save session")
}

// Clear drops every session value and expires the cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1

	return errors.Wrap(sess.Save(r, w), "clear session")
}
