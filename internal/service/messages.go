package service

// Client-visible messages for service-level failures.
const (
	msgUserExists      = "User with this email already exists"
	msgInvalidSignup   = "Invalid data supplied when creating user"
	msgPasswordTooLong = "Password must not exceed 72 bytes"
	msgUserNotFound    = "User with the given _id not found"
	msgInvalidUserID   = "Invalid user _id supplied"
	msgInvalidProfile  = "Invalid data supplied when updating profile"
	msgInvalidAvatar   = "Invalid data supplied when updating avatar"
	msgInvalidCard     = "Invalid data supplied when creating card"
	msgCardNotFound    = "Card with the given _id not found"
	msgInvalidCardID   = "Invalid card _id supplied"
	msgDeleteForbidden = "You cannot delete a card you do not own"
	msgInvalidLike     = "Invalid data supplied for like or invalid card _id"
)
