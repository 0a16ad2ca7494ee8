/*
Package session ties chat conversations to browser sessions. The cookie only
carries an opaque session id; conversations live in memory for the lifetime
of the process and the least recently used ones are evicted once the store
is full.
*/
package session

import (
	"errors"
	"net/http"

	"FitPlanner/internal/geminiservice"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

const (
	CookieName = "fitplanner_session"
	idKey      = "sid"
	cookieAge  = 7 * 24 * 60 * 60
)

// Store hands out the conversation belonging to a request's session.
type Store struct {
	cookies  *sessions.CookieStore
	convs    *lru.Cache[string, *geminiservice.Conversation]
	maxTurns int
}

// Options configures a Store.
type Options struct {
	// Secret signs the session cookie. A random key is used when empty, so
	// sessions do not survive a restart.
	Secret      string
	Secure      bool
	MaxSessions int
	MaxTurns    int
}

func NewStore(opts Options) (*Store, error) {
	secret := []byte(opts.Secret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		if secret == nil {
			return nil, errors.New("session: failed to generate cookie key")
		}
		log.Warn().Msg("SESSION_SECRET not set, using an ephemeral cookie key")
	}

	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1000
	}
	convs, err := lru.New[string, *geminiservice.Conversation](opts.MaxSessions)
	if err != nil {
		return nil, err
	}

	cookies := sessions.NewCookieStore(secret)
	cookies.MaxAge(cookieAge)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = opts.Secure
	cookies.Options.SameSite = http.SameSiteLaxMode

	return &Store{cookies: cookies, convs: convs, maxTurns: opts.MaxTurns}, nil
}

// Conversation returns the conversation for the request, starting a new
// session and conversation when the request has none.
func (s *Store) Conversation(w http.ResponseWriter, r *http.Request) (*geminiservice.Conversation, error) {
	id, err := s.sessionID(w, r)
	if err != nil {
		return nil, err
	}

	if conv, ok := s.convs.Get(id); ok {
		return conv, nil
	}
	conv := geminiservice.NewConversation(s.maxTurns)
	s.convs.Add(id, conv)
	return conv, nil
}

// Reset replaces the session's conversation with an empty one. The previous
// conversation is left untouched for anyone still holding it.
func (s *Store) Reset(w http.ResponseWriter, r *http.Request) (*geminiservice.Conversation, error) {
	id, err := s.sessionID(w, r)
	if err != nil {
		return nil, err
	}
	conv := geminiservice.NewConversation(s.maxTurns)
	s.convs.Add(id, conv)
	return conv, nil
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	return s.convs.Len()
}

// sessionID reads the id from the cookie, issuing a new one if needed.
func (s *Store) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	// A decode error still yields a fresh session, which is what we want for
	// cookies signed with an old key.
	sess, _ := s.cookies.Get(r, CookieName)

	if id, ok := sess.Values[idKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[idKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}
