package middleware

import (
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/model"
)

const (
	sessionName   = "campushub_session"
	sessionMaxAge = 7 * 24 * 60 * 60 // 7 days
)

// SessionUser is the snapshot stored at login time. Role changes made after
// login do not reach an existing session until the account logs in again.
type SessionUser struct {
	ID    string
	Email string
	Name  string
	Role  model.Role
}

var store *sessions.CookieStore

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-secret-please-change"
	}
	store = sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	}
}

// EstablishSession writes the login snapshot into the session cookie.
func EstablishSession(c echo.Context, u SessionUser) error {
	sess, _ := store.Get(c.Request(), sessionName)
	sess.Values["id"] = u.ID
	sess.Values["email"] = u.Email
	sess.Values["name"] = u.Name
	sess.Values["role"] = string(u.Role)
	return sess.Save(c.Request(), c.Response())
}

// RefreshSessionName updates the stored display name (after a profile edit).
func RefreshSessionName(c echo.Context, name string) error {
	sess, _ := store.Get(c.Request(), sessionName)
	if _, ok := sess.Values["id"].(string); !ok {
		return nil
	}
	sess.Values["name"] = name
	return sess.Save(c.Request(), c.Response())
}

// DestroySession expires the cookie. A save failure signals a store fault.
func DestroySession(c echo.Context) error {
	sess, _ := store.Get(c.Request(), sessionName)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// CurrentUser returns the session snapshot, or nil when not logged in.
func CurrentUser(c echo.Context) *SessionUser {
	if v := c.Get("session_user"); v != nil {
		if su, ok := v.(*SessionUser); ok {
			return su
		}
	}
	sess, err := store.Get(c.Request(), sessionName)
	if err != nil {
		return nil
	}
	id, ok := sess.Values["id"].(string)
	if !ok || id == "" {
		return nil
	}
	email, _ := sess.Values["email"].(string)
	name, _ := sess.Values["name"].(string)
	role, _ := sess.Values["role"].(string)
	return &SessionUser{ID: id, Email: email, Name: name, Role: model.Role(role)}
}

// RequireSession rejects requests without a valid login session.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		su := CurrentUser(c)
		if su == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized. Please log in first."})
		}
		c.Set("session_user", su)
		return next(c)
	}
}

// RequireRoles allows only sessions whose snapshot role is in the given set.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			su := CurrentUser(c)
			if su == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized. Please log in first."})
			}
			for _, r := range allowed {
				if su.Role == r {
					c.Set("session_user", su)
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"message": "Insufficient role"})
		}
	}
}

// RequireAtLeast gates on the role hierarchy instead of an explicit set.
func RequireAtLeast(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			su := CurrentUser(c)
			if su == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized. Please log in first."})
			}
			if !su.Role.AtLeast(required) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Insufficient role"})
			}
			c.Set("session_user", su)
			return next(c)
		}
	}
}
