package impl

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoilTestService_Book(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)

	booking, err := env.soilTestService().Book(ctx, "ravi", &usecase.BookSoilTestInput{
		FarmLocation:  "North field",
		FarmSize:      "2.5",
		ContactNumber: "9876543210",
		PreferredDate: "2026-11-01",
		TestType:      "comprehensive",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ST\d{8}$`), booking.BookingID)
	assert.Equal(t, entity.SoilTestPending, booking.Status)

	notifications, err := env.inbox.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, booking.BookingID, notifications[0].BookingID)
	assert.Equal(t, fmt.Sprintf("Soil test booked by Name of ravi: comprehensive (ID: %s)", booking.BookingID), notifications[0].Message)
}

func TestSoilTestService_BookRequiresAllFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.soilTestService().Book(context.Background(), "ravi", &usecase.BookSoilTestInput{
		FarmLocation: "North field",
		FarmSize:     "2",
		TestType:     "basic",
	})
	assert.ErrorIs(t, err, domainerrors.ErrRequiredFields)
}
