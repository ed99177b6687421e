package handler

import (
	"net/http"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/infra/session"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RedirectCheckout is where a login lands when checkout was interrupted by it.
const RedirectCheckout = "/checkout"

type signupRequest struct {
	Name      string `json:"name" form:"name"`
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	Address   string `json:"address" form:"address"`
	Phone     string `json:"phone" form:"phone"`
	Pincode   string `json:"pincode" form:"pincode"`
	LoginType string `json:"login_type" form:"login_type"`
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type updateDetailsRequest struct {
	Name    string `json:"name" form:"name"`
	Address string `json:"address" form:"address"`
	Pincode string `json:"pincode" form:"pincode"`
	Phone   string `json:"phone" form:"phone"`
}

// AccountHandler serves signup, login and profile pages.
type AccountHandler struct {
	uc       usecase.AccountUsecase
	sessions *session.Store
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, sessions *session.Store) *AccountHandler {
	return &AccountHandler{uc: uc, sessions: sessions}
}

// Signup opens an account from the signup form and logs the caller in.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	out, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:      req.Name,
		Username:  req.Username,
		Password:  req.Password,
		Address:   req.Address,
		Phone:     req.Phone,
		Pincode:   req.Pincode,
		LoginType: entity.LoginType(req.LoginType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.startSession(c, http.StatusCreated, "Signup successful", out)
}

// APISignup opens a customer account from a username and password only.
func (h *AccountHandler) APISignup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	out, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		Username:  req.Username,
		Password:  req.Password,
		LoginType: entity.LoginTypeCustomer,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.startSession(c, http.StatusCreated, "Signup successful", out)
}

// Login checks credentials, sets the session cookie and returns a bearer token.
func (h *AccountHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	out, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.startSession(c, http.StatusOK, "Login successful", out)
}

func (h *AccountHandler) startSession(c echo.Context, status int, message string, out *usecase.AuthOutput) error {
	isAdmin := out.Principal.Role.IsAdmin()

	loginType := string(out.LoginType)
	if isAdmin {
		loginType = entity.RoleAdmin.String()
	}

	pending, err := h.sessions.Login(c.Response(), c.Request(), out.Principal, loginType)
	if err != nil {
		return errors.WithStack(err)
	}

	redirect := out.Redirect
	if pending && !isAdmin {
		redirect = RedirectCheckout
	}

	return response.Flat(c, status, message, response.Fields{
		"redirect":     redirect,
		"role":         out.Principal.Role,
		"user":         newUserView(out.Details),
		"access_token": out.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   int64(out.ExpiresIn.Seconds()),
	})
}

// Logout clears the session and sends the browser home.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Response(), c.Request()); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, "/")
}

// APILogout clears the session.
func (h *AccountHandler) APILogout(c echo.Context) error {
	if err := h.sessions.Clear(c.Response(), c.Request()); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", nil)
}

// Me returns the contact details of the caller.
func (h *AccountHandler) Me(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	details, err := h.uc.Me(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"user": newUserView(details)})
}

// Checkout returns the delivery details to confirm. Anonymous callers are sent to login
// and come back here afterwards.
func (h *AccountHandler) Checkout(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		if err := h.sessions.RememberCheckout(c.Response(), c.Request()); err != nil {
			return errors.WithStack(err)
		}

		return domainerrors.ErrUnauthorized
	}

	details, err := h.uc.Me(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"user": newUserView(details)})
}

// UpdateDetails replaces the caller's delivery details.
func (h *AccountHandler) UpdateDetails(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid details input")
	}

	if err := h.uc.UpdateDetails(c.Request().Context(), principal.Username, &usecase.UpdateDetailsInput{
		Name:    req.Name,
		Address: req.Address,
		Pincode: req.Pincode,
		Phone:   req.Phone,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Details updated successfully", nil)
}

// Profile returns the caller's order history and statistics.
func (h *AccountHandler) Profile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Profile(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	orders := make([]orderView, 0, len(out.Orders))
	for _, summary := range out.Orders {
		view := newOrderView(summary.Order)
		count := summary.ItemCount
		view.ItemCount = &count
		orders = append(orders, view)
	}

	memberSince := "Recent"
	if !out.MemberSince.IsZero() {
		memberSince = util.FormatDisplayTime(out.MemberSince)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"user":             newUserView(out.Details),
		"orders":           orders,
		"total_orders":     out.TotalOrders,
		"pending_orders":   out.PendingOrders,
		"completed_orders": out.CompletedOrders,
		"total_spent":      out.TotalSpent,
		"member_since":     memberSince,
		"soil_tests":       newSoilTestViews(out.SoilTests),
	})
}
