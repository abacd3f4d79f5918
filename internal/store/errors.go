package store

import "errors"

// Domain errors returned by repositories. Match them with [errors.Is].
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrProductNotFound     = errors.New("product not found")
	ErrSlugAlreadyExists   = errors.New("slug already exists")
	ErrProductInUse        = errors.New("product is referenced by orders")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category has subcategories or products")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderStatusConflict = errors.New("order status changed concurrently")

	ErrImageStorageDisabled = errors.New("image storage is not configured")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image is too large")

	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database errors wrapped around driver failures.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrPreparingStatement   = errors.New("failed to prepare statement")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
