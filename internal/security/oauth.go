// Package security implements OAuth sign-in and session management.
package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/errors"
)

const (
	sessionTTL      = 24 * time.Hour
	cleanupInterval = time.Hour

	googleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// User is the signed-in identity attached to a session.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SessionChange is delivered to subscribers whenever the session set changes.
type SessionChange struct {
	User     *User // the affected user, nil after a sign-out
	SignedIn bool
}

// OAuth2Server drives the sign-in redirect flow and keeps the session
// registry. Sessions live in an expiring in-memory cache keyed by a random
// session token.
type OAuth2Server struct {
	Settings *conf.Settings

	config   *oauth2.Config
	sessions *cache.Cache

	subscribers *subscriberList
}

// NewOAuth2Server constructs the OAuth server from settings.
func NewOAuth2Server(settings *conf.Settings) *OAuth2Server {
	googleConf := settings.Security.GoogleAuth
	return &OAuth2Server{
		Settings: settings,
		config: &oauth2.Config{
			ClientID:     googleConf.ClientID,
			ClientSecret: googleConf.ClientSecret,
			RedirectURL:  settings.Security.Host + googleConf.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		sessions:    cache.New(sessionTTL, cleanupInterval),
		subscribers: newSubscriberList(),
	}
}

// AuthCodeURL returns the provider redirect URL for the given state token.
func (s *OAuth2Server) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the signed-in user and opens a
// session for them. It returns the session token the client stores in its
// cookie.
func (s *OAuth2Server) Exchange(ctx context.Context, code string) (string, *User, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return "", nil, errors.Wrap(err).
			Component("security").
			Category(errors.CategoryAuth).
			Context("operation", "code_exchange").
			Build()
	}

	user, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return "", nil, err
	}

	sessionToken := uuid.NewString()
	s.sessions.Set(sessionToken, user, sessionTTL)
	s.subscribers.notify(SessionChange{User: user, SignedIn: true})

	return sessionToken, user, nil
}

// fetchUserInfo retrieves the user's profile from the provider.
func (s *OAuth2Server) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*User, error) {
	client := s.config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoEndpoint)
	if err != nil {
		return nil, errors.Wrap(err).
			Component("security").
			Category(errors.CategoryNetwork).
			Context("operation", "fetch_userinfo").
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("userinfo request failed with status %d", resp.StatusCode).
			Component("security").
			Category(errors.CategoryAuth).
			Build()
	}

	var payload struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err).
			Component("security").
			Category(errors.CategoryAuth).
			Context("operation", "decode_userinfo").
			Build()
	}

	return &User{
		ID:        payload.ID,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Picture,
	}, nil
}

// Session returns the user attached to a session token.
func (s *OAuth2Server) Session(token string) (*User, bool) {
	value, found := s.sessions.Get(token)
	if !found {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok
}

// SignOut removes the session for the given token and notifies subscribers.
func (s *OAuth2Server) SignOut(token string) {
	_, found := s.sessions.Get(token)
	s.sessions.Delete(token)
	if found {
		s.subscribers.notify(SessionChange{User: nil, SignedIn: false})
	}
}

// Subscribe registers a listener for session changes. The returned cancel
// function must be called to release the subscription.
func (s *OAuth2Server) Subscribe() (<-chan SessionChange, func()) {
	return s.subscribers.add()
}

// GenerateState returns an unguessable state token for the redirect flow.
func GenerateState() string {
	return fmt.Sprintf("st-%s", uuid.NewString())
}
