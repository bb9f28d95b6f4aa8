package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-filecms/internal/sessions"
)

const sessionLocalKey = "filecms.session"

// sessionMiddleware resolves the client's session from the cookie token,
// issuing a fresh session when the token is absent or stale, and persists
// any handler mutations once the request completes. Only the opaque token
// ever travels in the cookie.
func (s *Server) sessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var session *sessions.Session
		if token := c.Cookies(s.cookie); token != "" {
			if found, err := s.store.Get(ctx, token); err == nil {
				session = found
			}
		}

		if session == nil {
			issued, err := s.store.Issue(ctx)
			if err != nil {
				return err
			}
			session = issued
			c.Cookie(&fiber.Cookie{
				Name:     s.cookie,
				Value:    session.Token,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(sessionLocalKey, session)

		err := c.Next()

		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			s.logger.Error("session.save.failed", "token", session.Token, "error", saveErr)
			if err == nil {
				err = saveErr
			}
		}
		return err
	}
}

func sessionFrom(c *fiber.Ctx) *sessions.Session {
	session, _ := c.Locals(sessionLocalKey).(*sessions.Session)
	return session
}

// requireUser gates protected operations: anonymous sessions pick up the
// fixed notice and bounce to the index without touching any store.
func (s *Server) requireUser(c *fiber.Ctx) error {
	session := sessionFrom(c)
	if !session.Authenticated() {
		session.SetMessage("You must be logged in to do that.")
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}
