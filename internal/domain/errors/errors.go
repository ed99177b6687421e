package errors

import (
	"net/http"

	"agriconnect/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError with the same business code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Username already exists",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user details",
		"",
	)

	ErrMissingCredentials = NewBaseError(
		http.StatusBadRequest,
		"MISSING_CREDENTIALS",
		"Username and password are required",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Please login first",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	ErrInvalidPincode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PINCODE",
		"Pincode must be 6 digits",
		"",
	)

	ErrInvalidPhone = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PHONE",
		"Phone number must be 10 digits",
		"",
	)

	ErrFarmerOnly = NewBaseError(
		http.StatusForbidden,
		"FARMER_ONLY",
		"Only farmers can manage products",
		"",
	)

	ErrAdminOnly = NewBaseError(
		http.StatusForbidden,
		"ADMIN_ONLY",
		"Admin access required",
		"",
	)

	// Order errors
	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Cart is empty",
		"",
	)

	ErrCartItemsMissing = NewBaseError(
		http.StatusBadRequest,
		"CART_ITEMS_MISSING",
		"Cart items missing for this order",
		"",
	)

	ErrDeliveryDetailsMissing = NewBaseError(
		http.StatusBadRequest,
		"DELIVERY_DETAILS_MISSING",
		"Please complete your delivery details",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ORDER_STATUS",
		"Invalid order status",
		"",
	)

	ErrOrderFinalized = NewBaseError(
		http.StatusConflict,
		"ORDER_FINALIZED",
		"Order is already completed or cancelled",
		"",
	)

	ErrDuplicateRequest = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_REQUEST",
		"This request was already processed",
		"",
	)

	ErrPaymentVerificationFailed = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_VERIFICATION_FAILED",
		"Payment verification failed",
		"",
	)

	ErrPaymentGateway = NewBaseError(
		http.StatusBadGateway,
		"PAYMENT_GATEWAY_ERROR",
		"Payment gateway error",
		"",
	)

	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrProductFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_FIELDS_REQUIRED",
		"Name, category, price, and stock are required",
		"",
	)

	ErrProductNotOwned = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_OWNED",
		"Product not found or unauthorized",
		"",
	)

	ErrCatalogUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"CATALOG_UNAVAILABLE",
		"Product catalog is unavailable",
		"",
	)

	// Rating errors
	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RATING",
		"Rating must be between 1 and 5",
		"",
	)

	ErrPurchaseRequired = NewBaseError(
		http.StatusForbidden,
		"PURCHASE_REQUIRED",
		"You can only rate products you have purchased",
		"",
	)

	ErrInvalidFeedback = NewBaseError(
		http.StatusBadRequest,
		"INVALID_FEEDBACK",
		"Please provide name, email, and a valid rating (1-5)",
		"",
	)

	// Farmer inbox and soil test errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)

	ErrSoilTestNotFound = NewBaseError(
		http.StatusNotFound,
		"SOIL_TEST_NOT_FOUND",
		"Soil test booking not found",
		"",
	)

	ErrInvalidSoilTestStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SOIL_TEST_STATUS",
		"Invalid soil test status",
		"",
	)

	// Community errors
	ErrPostNotFound = NewBaseError(
		http.StatusNotFound,
		"POST_NOT_FOUND",
		"Post not found",
		"",
	)

	ErrPostFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"POST_FIELDS_REQUIRED",
		"Title and content are required",
		"",
	)

	ErrReplyContentRequired = NewBaseError(
		http.StatusBadRequest,
		"REPLY_CONTENT_REQUIRED",
		"Reply content is required",
		"",
	)

	ErrNotPostAuthor = NewBaseError(
		http.StatusForbidden,
		"NOT_POST_AUTHOR",
		"You can only delete your own posts",
		"",
	)

	ErrImageUploadFailed = NewBaseError(
		http.StatusInternalServerError,
		"IMAGE_UPLOAD_FAILED",
		"Failed to store image",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrRequiredFields = NewBaseError(
		http.StatusBadRequest,
		"REQUIRED_FIELDS",
		"All fields are required",
		"",
	)

	ErrInvalidRequest = NewBaseError(
		http.StatusBadRequest,
		"INVALID_REQUEST",
		"Invalid data",
		"",
	)

	// Transaction errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
