// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/carterperez-dev/petshop-backend/internal/config"
)

const tokenValueKey = "token"

// CookieJar carries the opaque session token to the browser inside a
// signed, and optionally encrypted, cookie. The cookie holds nothing but the
// token; identity and role always come from the database.
type CookieJar struct {
	store *sessions.CookieStore
	name  string
}

func NewCookieJar(cfg config.SessionConfig) *CookieJar {
	keys := [][]byte{[]byte(cfg.HashKey)}
	if cfg.BlockKey != "" {
		keys = append(keys, []byte(cfg.BlockKey))
	}

	store := sessions.NewCookieStore(keys...)
	store.MaxAge(int(cfg.TTL.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	store.Options.SameSite = cfg.SameSiteMode()

	return &CookieJar{store: store, name: cfg.CookieName}
}

func (j *CookieJar) Name() string {
	return j.name
}

// Issue writes token into a fresh cookie, replacing whatever the request
// carried.
func (j *CookieJar) Issue(w http.ResponseWriter, r *http.Request, token string) error {
	session := sessions.NewSession(j.store, j.name)
	opts := *j.store.Options
	session.Options = &opts
	session.IsNew = true
	session.Values[tokenValueKey] = token

	return j.store.Save(r, w, session)
}

// Token returns the session token carried by r, or "" when there is no
// cookie or it fails signature verification.
func (j *CookieJar) Token(r *http.Request) string {
	if _, err := r.Cookie(j.name); err != nil {
		return ""
	}

	session, err := j.store.New(r, j.name)
	if err != nil {
		return ""
	}

	token, _ := session.Values[tokenValueKey].(string)
	return token
}

// Clear expires the cookie on the client.
func (j *CookieJar) Clear(w http.ResponseWriter, r *http.Request) error {
	session := sessions.NewSession(j.store, j.name)
	opts := *j.store.Options
	opts.MaxAge = -1
	session.Options = &opts

	return j.store.Save(r, w, session)
}
