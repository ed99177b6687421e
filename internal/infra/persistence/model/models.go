// Package model contains the GORM persistence models.
package model

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&UserDetailsModel{},
		&OrderModel{},
		&OrderItemModel{},
		&FarmerOrderNotificationModel{},
		&ProductRatingModel{},
		&FarmerRatingModel{},
		&SoilTestBookingModel{},
		&CustomerFeedbackModel{},
		&CommunityPostModel{},
		&CommunityReplyModel{},
	}
}
