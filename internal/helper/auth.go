package helper

import (
	"errors"

	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// LocalsAdmin is the fiber.Ctx Locals key holding the authenticated principal.
const LocalsAdmin = "admin"

type Auth struct {
	Cost int
}

func SetupAuth(cost int) Auth {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return Auth{
		Cost: cost,
	}
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), a.Cost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}

// dummyHash is compared against when the email is unknown, so a miss costs
// the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("claim-service-dummy"), bcrypt.DefaultCost)

func (a Auth) BurnVerify(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}

func (a Auth) GetCurrentAdmin(ctx *fiber.Ctx) (dto.AuthPrincipal, error) {
	p, ok := ctx.Locals(LocalsAdmin).(dto.AuthPrincipal)
	if !ok || p.AdminID == 0 {
		return dto.AuthPrincipal{}, errors.New("missing auth admin in context")
	}
	return p, nil
}
