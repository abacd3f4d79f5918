package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong email or password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrCannotModifySelf = errors.New("admins cannot demote or delete their own account")

	ErrCategoryCycle = errors.New("category parent would create a cycle")

	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidStatusTransition = errors.New("order status transition is not allowed")
	ErrOrderNotCancellable     = errors.New("only pending orders can be cancelled by the customer")
)

// Client-side errors.
var (
	ErrNotLoggedIn           = errors.New("not logged in")
	ErrSessionExpired        = errors.New("session expired, please log in again")
	ErrAdminOnly             = errors.New("admin role required")
	ErrTooManyRequests       = errors.New("too many requests, slow down")
	ErrCartSignatureRejected = errors.New("server rejected the cart signature")
	ErrRegisterOnServer      = errors.New("registration failed on server")
	ErrLoginOnServer         = errors.New("login failed on server")
)
