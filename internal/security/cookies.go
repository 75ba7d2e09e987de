package security

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	cookieSessionName = "koreality-session"
	keySessionToken   = "session_token"
	keyOAuthState     = "oauth_state"
)

// CookieStore wraps a gorilla session store holding the session token and the
// in-flight OAuth state.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore builds the cookie store from the configured session secret.
func NewCookieStore(secret string) *CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store}
}

// SessionToken returns the session token stored in the request cookie.
func (cs *CookieStore) SessionToken(c echo.Context) string {
	session, err := cs.store.Get(c.Request(), cookieSessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[keySessionToken].(string)
	return token
}

// SetSessionToken writes the session token into the response cookie.
func (cs *CookieStore) SetSessionToken(c echo.Context, token string) error {
	session, _ := cs.store.Get(c.Request(), cookieSessionName)
	session.Values[keySessionToken] = token
	return session.Save(c.Request(), c.Response())
}

// ClearSession drops the session cookie.
func (cs *CookieStore) ClearSession(c echo.Context) error {
	session, _ := cs.store.Get(c.Request(), cookieSessionName)
	delete(session.Values, keySessionToken)
	session.Options.MaxAge = -1
	return session.Save(c.Request(), c.Response())
}

// OAuthState returns and clears the stored OAuth state token.
func (cs *CookieStore) OAuthState(c echo.Context) string {
	session, err := cs.store.Get(c.Request(), cookieSessionName)
	if err != nil {
		return ""
	}
	state, _ := session.Values[keyOAuthState].(string)
	delete(session.Values, keyOAuthState)
	_ = session.Save(c.Request(), c.Response())
	return state
}

// SetOAuthState stores the OAuth state token for the redirect round trip.
func (cs *CookieStore) SetOAuthState(c echo.Context, state string) error {
	session, _ := cs.store.Get(c.Request(), cookieSessionName)
	session.Values[keyOAuthState] = state
	return session.Save(c.Request(), c.Response())
}
