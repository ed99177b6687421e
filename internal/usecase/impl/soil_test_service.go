package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

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

const (
	bookingIDPrefix = "ST"
	bookingIDDigits = 8
)

type soilTestService struct {
	soilTestRepo repository.SoilTestRepository
	userRepo     repository.UserRepository
	adminInbox   service.AdminInbox
	logger       *slog.Logger
}

// SoilTestServiceParams holds dependencies for SoilTestService, injected by Fx.
type SoilTestServiceParams struct {
	fx.In

	SoilTestRepo repository.SoilTestRepository
	UserRepo     repository.UserRepository
	AdminInbox   service.AdminInbox
	Logger       *slog.Logger
}

// NewSoilTestService is the constructor for soilTestService.
func NewSoilTestService(params SoilTestServiceParams) usecase.SoilTestUsecase {
	return &soilTestService{
		soilTestRepo: params.SoilTestRepo,
		userRepo:     params.UserRepo,
		adminInbox:   params.AdminInbox,
		logger:       params.Logger,
	}
}

func (srv *soilTestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Book stores a pending booking and tells the field admin about it.
func (srv *soilTestService) Book(ctx context.Context, username string, input *usecase.BookSoilTestInput) (*entity.SoilTestBooking, error) {
	booking := &entity.SoilTestBooking{
		Username:      username,
		FarmLocation:  strings.TrimSpace(input.FarmLocation),
		FarmSize:      strings.TrimSpace(input.FarmSize),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		PreferredDate: strings.TrimSpace(input.PreferredDate),
		TestType:      strings.TrimSpace(input.TestType),
		Status:        entity.SoilTestPending,
		CreatedAt:     time.Now().UTC(),
	}
	if booking.FarmLocation == "" || booking.FarmSize == "" || booking.ContactNumber == "" ||
		booking.PreferredDate == "" || booking.TestType == "" {
		return nil, errors.Wrap(domainerrors.ErrRequiredFields, "book soil test")
	}

	var err error
	for attempt := 1; ; attempt++ {
		booking.BookingID, err = util.PrefixedCode(bookingIDPrefix, bookingIDDigits)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate booking id")
		}
		err = srv.soilTestRepo.Create(ctx, booking)
		if err == nil || !errors.Is(err, domainerrors.ErrConflict) || attempt >= maxOrderNumberAttempts {
			break
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create soil test booking")
	}

	srv.log(ctx).Info("Soil test booked", slog.String("username", username), slog.String("bookingID", booking.BookingID))
	srv.notifyFieldAdmin(ctx, booking)

	return booking, nil
}

func (srv *soilTestService) notifyFieldAdmin(ctx context.Context, booking *entity.SoilTestBooking) {
	name := booking.Username
	if details, err := srv.userRepo.FindDetails(ctx, booking.Username); err == nil {
		name = details.DisplayName()
	}

	notification := &entity.AdminNotification{
		Type:      entity.AdminNotificationSoilTest,
		Username:  booking.Username,
		Name:      name,
		BookingID: booking.BookingID,
		TestType:  booking.TestType,
		Message:   fmt.Sprintf("Soil test booked by %s: %s (ID: %s)", name, booking.TestType, booking.BookingID),
		Timestamp: util.FormatDisplayTime(util.NowIST()),
	}
	if err := srv.adminInbox.Push(ctx, notification); err != nil {
		srv.log(ctx).Error("Failed to notify admins about soil test", slog.String("bookingID", booking.BookingID), slog.Any("error", err))
	}
}
