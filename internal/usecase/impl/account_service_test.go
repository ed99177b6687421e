package impl

import (
	"context"
	"testing"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_SignupFarmer(t *testing.T) {
	env := newTestEnv(t)
	srv := env.accountService()
	ctx := context.Background()

	out, err := srv.Signup(ctx, &usecase.SignupInput{
		Name:      "Ravi Kumar",
		Username:  "  ravi ",
		Password:  "secret",
		Address:   "Farm Lane",
		Phone:     "9876543210",
		Pincode:   "560001",
		LoginType: entity.LoginTypeFarmer,
	})
	require.NoError(t, err)

	assert.Equal(t, "ravi", out.Principal.Username)
	assert.Equal(t, entity.RoleFarmer, out.Principal.Role)
	assert.Equal(t, entity.LoginTypeFarmer, out.LoginType)
	assert.Equal(t, RedirectFarmer, out.Redirect)
	assert.Equal(t, env.tokens.AccessTokenDuration(), out.ExpiresIn)

	claims, err := env.tokens.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ravi", claims.Subject)
	assert.Equal(t, "farmer", claims.Role)

	notifications, err := env.inbox.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.AdminNotificationNewFarmer, notifications[0].Type)
	assert.Equal(t, "New farmer registered: Ravi Kumar (ravi)", notifications[0].Message)
}

func TestAccountService_SignupCustomerDoesNotNotify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.accountService().Signup(ctx, &usecase.SignupInput{
		Username:  "asha",
		Password:  "secret",
		LoginType: "something-else",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.Principal.Role)
	assert.Equal(t, RedirectHome, out.Redirect)

	notifications, err := env.inbox.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestAccountService_SignupRejections(t *testing.T) {
	env := newTestEnv(t)
	srv := env.accountService()
	ctx := context.Background()
	env.seedUser(t, "asha", entity.LoginTypeCustomer)

	tests := []struct {
		name  string
		input *usecase.SignupInput
		want  error
	}{
		{"missing username", &usecase.SignupInput{Password: "x"}, domainerrors.ErrMissingCredentials},
		{"missing password", &usecase.SignupInput{Username: "new"}, domainerrors.ErrMissingCredentials},
		{"taken username", &usecase.SignupInput{Username: "asha", Password: "x"}, domainerrors.ErrUserAlreadyExists},
		{"console username", &usecase.SignupInput{Username: "admin", Password: "x"}, domainerrors.ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Signup(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAccountService_Login(t *testing.T) {
	env := newTestEnv(t)
	srv := env.accountService()
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)
	env.seedUser(t, "asha", entity.LoginTypeCustomer)

	t.Run("farmer", func(t *testing.T) {
		out, err := srv.Login(ctx, &usecase.LoginInput{Username: "ravi", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleFarmer, out.Principal.Role)
		assert.Equal(t, RedirectFarmer, out.Redirect)
		assert.Equal(t, "Name of ravi", out.Details.Name)
	})

	t.Run("customer", func(t *testing.T) {
		out, err := srv.Login(ctx, &usecase.LoginInput{Username: "asha", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleCustomer, out.Principal.Role)
		assert.Equal(t, RedirectHome, out.Redirect)
	})

	t.Run("field admin", func(t *testing.T) {
		out, err := srv.Login(ctx, &usecase.LoginInput{Username: "field", Password: "field123"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleFieldAdmin, out.Principal.Role)
		assert.Equal(t, RedirectAdmin, out.Redirect)
		assert.Equal(t, "Administrator", out.Details.Name)
	})

	t.Run("wrong admin password", func(t *testing.T) {
		_, err := srv.Login(ctx, &usecase.LoginInput{Username: "admin", Password: "nope"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := srv.Login(ctx, &usecase.LoginInput{Username: "asha", Password: "nope"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := srv.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "secret"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestAccountService_UpdateDetails(t *testing.T) {
	env := newTestEnv(t)
	srv := env.accountService()
	ctx := context.Background()
	env.seedUser(t, "asha", entity.LoginTypeCustomer)

	valid := usecase.UpdateDetailsInput{Name: "Asha", Address: "New Street", Pincode: "400001", Phone: "9123456780"}

	tests := []struct {
		name   string
		mutate func(in *usecase.UpdateDetailsInput)
		want   error
	}{
		{"missing address", func(in *usecase.UpdateDetailsInput) { in.Address = " " }, domainerrors.ErrRequiredFields},
		{"short pincode", func(in *usecase.UpdateDetailsInput) { in.Pincode = "4000" }, domainerrors.ErrInvalidPincode},
		{"letters in phone", func(in *usecase.UpdateDetailsInput) { in.Phone = "98765abcde" }, domainerrors.ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.ErrorIs(t, srv.UpdateDetails(ctx, "asha", &in), tt.want)
		})
	}

	require.NoError(t, srv.UpdateDetails(ctx, "asha", &valid))

	details, err := srv.Me(ctx, &entity.Principal{Username: "asha", Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "New Street", details.Address)
	assert.Equal(t, "400001", details.Pincode)
	assert.Equal(t, entity.LoginTypeCustomer, details.LoginType)

	assert.ErrorIs(t, srv.UpdateDetails(ctx, "ghost", &valid), domainerrors.ErrUserNotFound)
}

func TestAccountService_Profile(t *testing.T) {
	env := newTestEnv(t)
	srv := env.accountService()
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)

	first := env.seedOrder(t, "ravi", entity.OrderStatusPending,
		&entity.OrderItem{ProductID: "7", ProductName: "Rice", Quantity: 2, Price: 50})
	env.seedOrder(t, "ravi", entity.OrderStatusCompleted,
		&entity.OrderItem{ProductID: "7", ProductName: "Rice", Quantity: 1, Price: 40})

	_, err := env.soilTestService().Book(ctx, "ravi", &usecase.BookSoilTestInput{
		FarmLocation: "North field", FarmSize: "2 acres", ContactNumber: "9876543210",
		PreferredDate: "2026-11-01", TestType: "basic",
	})
	require.NoError(t, err)

	out, err := srv.Profile(ctx, &entity.Principal{Username: "ravi", Role: entity.RoleFarmer})
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalOrders)
	assert.Equal(t, 1, out.PendingOrders)
	assert.Equal(t, 1, out.CompletedOrders)
	assert.InDelta(t, 140.0, out.TotalSpent, 0.001)
	assert.WithinDuration(t, first.CreatedAt, out.MemberSince, time.Second)
	assert.Len(t, out.SoilTests, 1)
}

func TestAccountService_MeForConsoleAccount(t *testing.T) {
	env := newTestEnv(t)

	details, err := env.accountService().Me(context.Background(), &entity.Principal{Username: "admin", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", details.Name)

	_, err = env.accountService().Me(context.Background(), &entity.Principal{Username: "ghost", Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
