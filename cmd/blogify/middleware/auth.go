package middleware

import (
	"context"
	"net/http"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/common/auth"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// IdentityKey is the context key for the resolved request identity
	IdentityKey ContextKey = "identity"
)

// UserLookup resolves a subject id to a known identity
type UserLookup interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// ResolveIdentity returns the identity-resolver middleware. It runs on
// every request before any route logic: that ordering is a correctness
// precondition, not an optimization.
//
// A request ends up in exactly one of two states:
//   - Resolved: the cookie held a valid token and the subject is a
//     known identity, now attached to the echo context
//   - Anonymous: no cookie, or the cookie failed to decode or resolve
//
// Decode and lookup failures deliberately fail open to Anonymous
// instead of rejecting the request. A corrupted or expired cookie
// demotes the user to anonymous rather than locking them out; read
// paths stay reachable, write paths reject later on the missing
// identity. The trade-off is that a user with a rotten cookie silently
// browses logged-out until they sign in again.
func ResolveIdentity(codec *auth.Codec, lookup UserLookup, cookieName string, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				// No cookie: anonymous, not an error
				return next(c)
			}

			claims, err := codec.Decode(cookie.Value)
			if err != nil {
				// Fail open: malformed, tampered or expired token
				log.Debug("credential decode failed, proceeding anonymous", "error", err)
				return next(c)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				log.Debug("credential subject is not a user id, proceeding anonymous", "subject", claims.Subject)
				return next(c)
			}

			user, err := lookup.GetByID(c.Request().Context(), userID)
			if err != nil {
				// Fail open: the token was valid but the identity is gone
				// or the lookup store is down
				log.Debug("identity lookup failed, proceeding anonymous", "user_id", userID, "error", err)
				return next(c)
			}

			c.Set(string(IdentityKey), user)
			return next(c)
		}
	}
}

// GetIdentity retrieves the resolved identity from the request context.
// The second return is false for anonymous requests.
func GetIdentity(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(string(IdentityKey)).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// SetAuthCookie writes the credential token cookie on the response
func SetAuthCookie(c echo.Context, name, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the credential token cookie
func ClearAuthCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
