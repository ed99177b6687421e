package model

import "time"

// ProductRatingModel mirrors the 'product_ratings' table.
type ProductRatingModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProductID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_ratings_product_user"`
	Username  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_product_ratings_product_user"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductRatingModel) TableName() string {
	return "product_ratings"
}

// FarmerRatingModel mirrors the 'farmer_ratings' table.
type FarmerRatingModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	FarmerUsername   string `gorm:"type:varchar(100);not null;uniqueIndex:idx_farmer_ratings_farmer_customer"`
	CustomerUsername string `gorm:"type:varchar(100);not null;uniqueIndex:idx_farmer_ratings_farmer_customer"`
	Rating           int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment          string `gorm:"type:text"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (FarmerRatingModel) TableName() string {
	return "farmer_ratings"
}
