package context

import (
	"agriconnect/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal holds the authenticated caller on echo.Context.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated caller.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(*entity.Principal)
	if !ok || principal == nil || principal.Username == "" {
		return nil, false
	}

	return principal, true
}
