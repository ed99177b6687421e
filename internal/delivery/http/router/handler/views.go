package handler

import (
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"
)

type userView struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

func newUserView(d *entity.UserDetails) *userView {
	if d == nil {
		return nil
	}

	return &userView{Username: d.Username, Name: d.Name, Address: d.Address, Pincode: d.Pincode, Phone: d.Phone}
}

type orderItemView struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func newOrderItemViews(items []*entity.OrderItem) []orderItemView {
	views := make([]orderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, orderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return views
}

type orderView struct {
	ID            uint            `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Username      string          `json:"username"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Pincode       string          `json:"pincode"`
	Phone         string          `json:"phone"`
	TotalAmount   float64         `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     string          `json:"created_at"`
	ItemCount     *int            `json:"item_count,omitempty"`
	Items         []orderItemView `json:"items,omitempty"`
}

func newOrderView(o *entity.Order) orderView {
	return orderView{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Username:      o.Username,
		Name:          o.Name,
		Address:       o.Address,
		Pincode:       o.Pincode,
		Phone:         o.Phone,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     util.FormatDisplayTime(o.CreatedAt),
	}
}

func newOrderViews(orders []*entity.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}

	return views
}

type soilTestView struct {
	ID            uint   `json:"id"`
	BookingID     string `json:"booking_id"`
	Username      string `json:"username"`
	FarmerName    string `json:"farmer_name,omitempty"`
	FarmLocation  string `json:"farm_location"`
	FarmSize      string `json:"farm_size"`
	ContactNumber string `json:"contact_number"`
	PreferredDate string `json:"preferred_date"`
	TestType      string `json:"test_type"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

func newSoilTestViews(bookings []*entity.SoilTestBooking) []soilTestView {
	views := make([]soilTestView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, soilTestView{
			ID:            b.ID,
			BookingID:     b.BookingID,
			Username:      b.Username,
			FarmerName:    b.FarmerName,
			FarmLocation:  b.FarmLocation,
			FarmSize:      b.FarmSize,
			ContactNumber: b.ContactNumber,
			PreferredDate: b.PreferredDate,
			TestType:      b.TestType,
			Status:        string(b.Status),
			CreatedAt:     util.FormatDisplayTime(b.CreatedAt),
		})
	}

	return views
}

type productRatingView struct {
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type farmerRatingView struct {
	CustomerUsername string `json:"customer_username"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	CreatedAt        string `json:"created_at"`
}

type farmerProductView struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Unit        string  `json:"unit"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at,omitempty"`
	// category listings only
	FarmerUsername string `json:"farmer_username,omitempty"`
	FarmerName     string `json:"farmer_name,omitempty"`
}

func newFarmerProductView(p *entity.Product) farmerProductView {
	return farmerProductView{
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Unit:        p.Unit,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func newCategoryViews(grouped map[string][]*usecase.CategoryProduct) map[string][]farmerProductView {
	out := make(map[string][]farmerProductView, len(grouped))
	for category, products := range grouped {
		views := make([]farmerProductView, 0, len(products))
		for _, cp := range products {
			v := newFarmerProductView(cp.Product)
			v.Category = ""
			v.CreatedAt = ""
			v.FarmerUsername = cp.FarmerUsername
			v.FarmerName = cp.FarmerName
			views = append(views, v)
		}
		out[category] = views
	}

	return out
}

type farmerNotificationView struct {
	ID               uint    `json:"id"`
	OrderID          uint    `json:"order_id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Quantity         int     `json:"quantity"`
	CustomerUsername string  `json:"customer_username"`
	CustomerName     string  `json:"customer_name"`
	Status           string  `json:"status"`
	ReadStatus       int     `json:"read_status"`
	CreatedAt        string  `json:"created_at"`
	Price            float64 `json:"price"`
}

func newFarmerNotificationViews(notifications []*entity.FarmerNotification) []farmerNotificationView {
	views := make([]farmerNotificationView, 0, len(notifications))
	for _, n := range notifications {
		read := 0
		if n.Read {
			read = 1
		}
		views = append(views, farmerNotificationView{
			ID:               n.ID,
			OrderID:          n.OrderID,
			ProductID:        n.ProductID,
			ProductName:      n.ProductName,
			Quantity:         n.Quantity,
			CustomerUsername: n.CustomerUsername,
			CustomerName:     n.CustomerName,
			Status:           string(n.Status),
			ReadStatus:       read,
			CreatedAt:        util.FormatDisplayTime(n.CreatedAt),
			Price:            n.Price,
		})
	}

	return views
}

type replyView struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	AuthorName string `json:"author_name"`
}

func newReplyView(r *entity.CommunityReply) replyView {
	return replyView{
		ID:         r.ID,
		Username:   r.Username,
		Content:    r.Content,
		CreatedAt:  util.FormatDisplayTime(r.CreatedAt),
		AuthorName: r.AuthorName,
	}
}

type postView struct {
	ID         uint        `json:"id"`
	Username   string      `json:"username"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	ImagePath  *string     `json:"image_path"`
	CreatedAt  string      `json:"created_at"`
	AuthorName string      `json:"author_name"`
	Replies    []replyView `json:"replies"`
	ReplyCount int         `json:"reply_count"`
}

func newPostView(p *entity.CommunityPost) postView {
	replies := make([]replyView, 0, len(p.Replies))
	for _, r := range p.Replies {
		replies = append(replies, newReplyView(r))
	}

	var image *string
	if p.ImagePath != "" {
		image = &p.ImagePath
	}

	return postView{
		ID:         p.ID,
		Username:   p.Username,
		Title:      p.Title,
		Content:    p.Content,
		ImagePath:  image,
		CreatedAt:  util.FormatDisplayTime(p.CreatedAt),
		AuthorName: p.AuthorName,
		Replies:    replies,
		ReplyCount: len(replies),
	}
}
