package database

import (
	"context"

	"agriconnect/internal/domain/repository"
	"agriconnect/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f *gormRepositoryFactory) NewFarmerNotificationRepository() repository.FarmerNotificationRepository {
	return NewFarmerNotificationRepository(f.tx)
}

func (f *gormRepositoryFactory) NewRatingRepository() repository.RatingRepository {
	return NewRatingRepository(f.tx)
}

func (f *gormRepositoryFactory) NewSoilTestRepository() repository.SoilTestRepository {
	return NewSoilTestRepository(f.tx)
}

func (f *gormRepositoryFactory) NewCommunityRepository() repository.CommunityRepository {
	return NewCommunityRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside one transaction, committing on success and rolling back on error or panic.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
