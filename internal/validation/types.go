package validation

// OrderItemInput is a single cart line. No price field: the server resolves
// prices from the catalog and never trusts the client.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	UserID        *string          `json:"userId,omitempty"`
	CustomerName  *string          `json:"customerName,omitempty"`
	CustomerEmail *string          `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateReviewRequest is the payload for POST /api/reviews.
type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Rating    *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
