// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"slices"
	"strings"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Landing pages handed back after signup and login.
const (
	RedirectHome   = "/"
	RedirectFarmer = "/farmers2.html"
	RedirectAdmin  = "/admin"
)

const adminDisplayName = "Administrator"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
	soilTestRepo repository.SoilTestRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	adminInbox   service.AdminInbox
	config       *config.Config
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	OrderRepo    repository.OrderRepository
	SoilTestRepo repository.SoilTestRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	AdminInbox   service.AdminInbox
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		orderRepo:    params.OrderRepo,
		soilTestRepo: params.SoilTestRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		adminInbox:   params.AdminInbox,
		config:       params.Config,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the account and its details in one transaction and logs the caller in.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingCredentials, "signup rejected")
	}
	if _, isAdmin := srv.config.FindAdmin(username); isAdmin {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("username is reserved for a console account")
	}

	loginType := entity.ParseLoginType(string(input.LoginType))
	srv.log(ctx).Info("Starting signup", slog.String("username", username), slog.String("loginType", string(loginType)))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	details := &entity.UserDetails{
		Username:  username,
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Pincode:   strings.TrimSpace(input.Pincode),
		Phone:     strings.TrimSpace(input.Phone),
		LoginType: loginType,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if err := userRepo.Create(ctx, &entity.User{Username: username, PasswordHash: passwordHash}); err != nil {
			return errors.Wrap(err, "failed to create user during signup")
		}
		if err := userRepo.CreateDetails(ctx, details); err != nil {
			return errors.Wrap(err, "failed to create user details during signup")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	if details.IsFarmer() {
		srv.notifyNewFarmer(ctx, details)
	}

	principal := entity.Principal{Username: username, Role: entity.RoleForLoginType(loginType)}
	redirect := RedirectHome
	if details.IsFarmer() {
		redirect = RedirectFarmer
	}

	return srv.authenticate(ctx, principal, details, redirect)
}

func (srv *accountService) notifyNewFarmer(ctx context.Context, details *entity.UserDetails) {
	name := details.DisplayName()
	notification := &entity.AdminNotification{
		Type:      entity.AdminNotificationNewFarmer,
		Username:  details.Username,
		Name:      name,
		Message:   "New farmer registered: " + name + " (" + details.Username + ")",
		Timestamp: util.FormatDisplayTime(util.NowIST()),
	}
	if err := srv.adminInbox.Push(ctx, notification); err != nil {
		srv.log(ctx).Error("Failed to notify admins about new farmer", slog.String("username", details.Username), slog.Any("error", err))
	}
}

// Login checks console accounts first, then stored accounts.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	srv.log(ctx).Debug("Starting login", slog.String("username", username))

	if admin, ok := srv.config.FindAdmin(username); ok {
		if subtle.ConstantTimeCompare([]byte(admin.Password), []byte(input.Password)) != 1 {
			srv.log(ctx).Warn("Console login failed", slog.String("username", username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		principal := entity.Principal{Username: username, Role: adminRole(admin.Role)}

		return srv.authenticate(ctx, principal, adminDetails(username), RedirectAdmin)
	}

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed", slog.String("username", username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt is CPU-bound; keep it outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	details, err := srv.userRepo.FindDetails(ctx, username)
	if errors.Is(err, repository.ErrUserDetailsNotFound) {
		details = &entity.UserDetails{Username: username, LoginType: entity.LoginTypeCustomer}
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to load user details for login")
	}

	principal := entity.Principal{Username: username, Role: entity.RoleForLoginType(details.LoginType)}
	redirect := RedirectHome
	if details.IsFarmer() {
		redirect = RedirectFarmer
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("username", username))

	return srv.authenticate(ctx, principal, details, redirect)
}

func (srv *accountService) authenticate(ctx context.Context, principal entity.Principal, details *entity.UserDetails, redirect string) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(principal.Username, principal.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.String("username", principal.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		Principal:   principal,
		LoginType:   details.LoginType,
		Details:     details,
		AccessToken: token,
		ExpiresIn:   srv.tokenService.AccessTokenDuration(),
		Redirect:    redirect,
	}, nil
}

// Me returns the caller's contact details.
func (srv *accountService) Me(ctx context.Context, principal *entity.Principal) (*entity.UserDetails, error) {
	if principal.Role.IsAdmin() {
		return adminDetails(principal.Username), nil
	}

	details, err := srv.userRepo.FindDetails(ctx, principal.Username)
	if errors.Is(err, repository.ErrUserDetailsNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, principal.Username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user details")
	}

	return details, nil
}

// UpdateDetails validates and replaces the contact details of an account.
func (srv *accountService) UpdateDetails(ctx context.Context, username string, input *usecase.UpdateDetailsInput) error {
	details := &entity.UserDetails{
		Username: username,
		Name:     strings.TrimSpace(input.Name),
		Address:  strings.TrimSpace(input.Address),
		Pincode:  strings.TrimSpace(input.Pincode),
		Phone:    strings.TrimSpace(input.Phone),
	}

	if !details.HasDeliveryDetails() {
		return errors.Wrap(domainerrors.ErrRequiredFields, "update details rejected")
	}
	if !entity.IsValidPincode(details.Pincode) {
		return errors.Wrap(domainerrors.ErrInvalidPincode, "update details rejected")
	}
	if !entity.IsValidPhone(details.Phone) {
		return errors.Wrap(domainerrors.ErrInvalidPhone, "update details rejected")
	}

	err := srv.userRepo.UpdateContact(ctx, details)
	if errors.Is(err, repository.ErrUserDetailsNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, username)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to update user details", slog.String("username", username), slog.Any("error", err))

		return errors.Wrap(err, "failed to update user details")
	}

	return nil
}

// Profile assembles the account page.
func (srv *accountService) Profile(ctx context.Context, principal *entity.Principal) (*usecase.ProfileOutput, error) {
	details, err := srv.Me(ctx, principal)
	if err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.FindByUsername(ctx, principal.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order history")
	}

	out := &usecase.ProfileOutput{
		Details:     details,
		Orders:      orders,
		TotalOrders: len(orders),
	}
	for _, summary := range orders {
		order := summary.Order
		out.TotalSpent += order.TotalAmount
		switch order.Status {
		case entity.OrderStatusPending:
			out.PendingOrders++
		case entity.OrderStatusCompleted:
			out.CompletedOrders++
		}
		if out.MemberSince.IsZero() || order.CreatedAt.Before(out.MemberSince) {
			out.MemberSince = order.CreatedAt
		}
	}

	if details.IsFarmer() {
		out.SoilTests, err = srv.soilTestRepo.FindByUsername(ctx, principal.Username)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load soil test bookings")
		}
	}

	return out, nil
}

func adminRole(role string) entity.Role {
	if r := entity.Role(role); slices.Contains([]entity.Role{entity.RoleAdmin, entity.RoleFieldAdmin}, r) {
		return r
	}

	return entity.RoleAdmin
}

func adminDetails(username string) *entity.UserDetails {
	return &entity.UserDetails{Username: username, Name: adminDisplayName}
}
