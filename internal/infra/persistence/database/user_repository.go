package database

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

func (repo *userRepository) FindDetails(ctx context.Context, username string) (*entity.UserDetails, error) {
	var detailsM model.UserDetailsModel
	err := repo.db.WithContext(ctx).Where("username = ?", username).First(&detailsM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserDetailsNotFound
		}

		return nil, errors.Wrap(err, "failed to find user details")
	}

	return toUserDetailsDomain(&detailsM), nil
}

func (repo *userRepository) FindDetailsByUsernames(ctx context.Context, usernames []string) (map[string]*entity.UserDetails, error) {
	result := make(map[string]*entity.UserDetails, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	var rows []*model.UserDetailsModel
	if err := repo.db.WithContext(ctx).Where("username IN ?", usernames).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user details by usernames")
	}

	for _, row := range rows {
		result[row.Username] = toUserDetailsDomain(row)
	}

	return result, nil
}

func (repo *userRepository) CreateDetails(ctx context.Context, details *entity.UserDetails) error {
	detailsM := fromUserDetailsDomain(details)

	if err := repo.db.WithContext(ctx).Create(detailsM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("user details already exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user details")
	}

	details.ID = detailsM.ID

	return nil
}

func (repo *userRepository) UpdateContact(ctx context.Context, details *entity.UserDetails) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserDetailsModel{}).
		Where("username = ?", details.Username).
		Updates(map[string]any{
			"name":    details.Name,
			"address": details.Address,
			"pincode": details.Pincode,
			"phone":   details.Phone,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user details")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserDetailsNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}

func toUserDetailsDomain(data *model.UserDetailsModel) *entity.UserDetails {
	if data == nil {
		return nil
	}

	return &entity.UserDetails{
		ID:        data.ID,
		Username:  data.Username,
		Name:      data.Name,
		Address:   data.Address,
		Pincode:   data.Pincode,
		Phone:     data.Phone,
		LoginType: entity.ParseLoginType(data.LoginType),
	}
}

func fromUserDetailsDomain(data *entity.UserDetails) *model.UserDetailsModel {
	if data == nil {
		return nil
	}

	loginType := data.LoginType
	if loginType == "" {
		loginType = entity.LoginTypeCustomer
	}

	return &model.UserDetailsModel{
		ID:        data.ID,
		Username:  data.Username,
		Name:      data.Name,
		Address:   data.Address,
		Pincode:   data.Pincode,
		Phone:     data.Phone,
		LoginType: string(loginType),
	}
}
