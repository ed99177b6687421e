package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/infra/auth"
	"agriconnect/internal/infra/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, *session.Store, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		Session: &config.SessionConfig{Key: "0123456789abcdef0123456789abcdef", Name: "sid", MaxAge: 600},
		Auth:    &config.AuthConfig{BcryptCost: 4, TokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "test-secret"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	sessions, err := session.NewStore(cfg)
	require.NoError(t, err)

	return NewAuthMiddleware(tokens, sessions), sessions, cfg
}

// whoami echoes the principal that Authenticate attached.
func whoami(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return c.String(http.StatusOK, "anonymous")
	}

	return c.String(http.StatusOK, principal.Username+":"+principal.Role.String())
}

func serve(h echo.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	return rec, h(c)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	m, sessions, cfg := newAuthFixture(t)
	h := m.Authenticate(whoami)

	rec, err := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "anonymous", rec.Body.String())

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	token, err := tokens.GenerateAccessToken("ravi", entity.RoleFarmer.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec, err = serve(h, req)
	require.NoError(t, err)
	assert.Equal(t, "ravi:farmer", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec, err = serve(h, req)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", rec.Body.String(), "invalid tokens are ignored")

	loginRec := httptest.NewRecorder()
	_, err = sessions.Login(loginRec, httptest.NewRequest(http.MethodPost, "/login", nil),
		entity.Principal{Username: "asha", Role: entity.RoleCustomer}, "customer")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range loginRec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec, err = serve(h, req)
	require.NoError(t, err)
	assert.Equal(t, "asha:customer", rec.Body.String(), "the session wins over a bearer token")
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m, _, _ := newAuthFixture(t)
	h := m.RequireRole(domainerrors.ErrAdminOnly, entity.RoleAdmin, entity.RoleFieldAdmin)(whoami)

	tests := []struct {
		name      string
		principal *entity.Principal
		wantErr   error
	}{
		{"anonymous", nil, domainerrors.ErrUnauthorized},
		{"customer", &entity.Principal{Username: "asha", Role: entity.RoleCustomer}, domainerrors.ErrAdminOnly},
		{"field admin", &entity.Principal{Username: "field", Role: entity.RoleFieldAdmin}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if tt.principal != nil {
				deliverycontext.SetPrincipal(c, tt.principal)
			}

			err := h(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, "field:field_admin", rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	assert.ErrorIs(t, m.RequireLogin(whoami)(c), domainerrors.ErrUnauthorized)
}
