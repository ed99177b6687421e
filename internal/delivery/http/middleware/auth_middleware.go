package middleware

import (
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/infra/session"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller from the session cookie or a bearer token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	sessions *session.Store
	bearer   echo.MiddlewareFunc
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, sessions *session.Store) *AuthMiddleware {
	m := &AuthMiddleware{tokenSvc: tokenSvc, sessions: sessions}
	m.bearer = echojwt.WithConfig(echojwt.Config{
		// a session principal wins over the header
		Skipper: func(c echo.Context) bool {
			_, ok := deliverycontext.GetPrincipal(c)

			return ok
		},
		ParseTokenFunc: m.parseToken,
		// missing or invalid tokens leave the request anonymous
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})

	return m
}

func (m *AuthMiddleware) parseToken(c echo.Context, auth string) (any, error) {
	claims, err := m.tokenSvc.ValidateToken(auth)
	if err != nil {
		return nil, err
	}

	deliverycontext.SetPrincipal(c, &entity.Principal{
		Username: claims.Subject,
		Role:     entity.Role(claims.Role),
	})

	return claims, nil
}

// Authenticate attaches the caller, if any, to the request. It never rejects.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	withBearer := m.bearer(next)

	return func(c echo.Context) error {
		if principal, ok := m.sessions.Principal(c.Request()); ok {
			deliverycontext.SetPrincipal(c, principal)
		}

		return withBearer(c)
	}
}

// RequireLogin rejects anonymous callers. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetPrincipal(c); !ok {
			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that lets through callers holding one of roles.
// denied is returned to logged-in callers without the role.
func (m *AuthMiddleware) RequireRole(denied error, roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}
			if !principal.HasRole(roles...) {
				return denied
			}

			return next(c)
		}
	}
}
