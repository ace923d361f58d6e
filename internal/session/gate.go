package session

import (
	"errors"
	"time"

	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	CookieName = "sid"

	keyAdminID = "admin_id"
	keyEmail   = "email"
)

// Gate binds an authenticated admin to a server-side session. Only the
// opaque session id travels to the client, in the "sid" cookie.
type Gate struct {
	store *fibersession.Store
}

type GateConfig struct {
	Storage fiber.Storage // nil means in-process memory
	TTL     time.Duration
	Secure  bool
}

func NewGate(cfg GateConfig) *Gate {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	store := fibersession.New(fibersession.Config{
		Expiration:     ttl,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   cfg.Secure,
		CookiePath:     "/",
	})
	return &Gate{store: store}
}

// Begin starts a fresh session for the admin. The id is regenerated so a
// pre-login session id is never promoted.
func (g *Gate) Begin(ctx *fiber.Ctx, p dto.AuthPrincipal) error {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(keyAdminID, p.AdminID)
	sess.Set(keyEmail, p.Email)
	return sess.Save()
}

// End destroys the caller's session. Calling it without a session is fine.
func (g *Gate) End(ctx *fiber.Ctx) error {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

var ErrNoSession = errors.New("no authenticated session")

// Current returns the admin bound to the caller's session, or ErrNoSession.
func (g *Gate) Current(ctx *fiber.Ctx) (dto.AuthPrincipal, error) {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return dto.AuthPrincipal{}, err
	}

	id, ok := sess.Get(keyAdminID).(uint)
	if !ok || id == 0 {
		return dto.AuthPrincipal{}, ErrNoSession
	}
	email, _ := sess.Get(keyEmail).(string)
	return dto.AuthPrincipal{AdminID: id, Email: email}, nil
}
