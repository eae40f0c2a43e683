package http

import "strings"

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=30"`
	About    string `json:"about" validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar" validate:"omitempty,avatar"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest is the body of POST /signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest is the body of PATCH /users/me.
type ProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=30"`
	About string `json:"about" validate:"required,min=2,max=30"`
}

// AvatarRequest is the body of PATCH /users/me/avatar.
type AvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,avatar"`
}

// CardRequest is the body of POST /cards.
type CardRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,url"`
}

type userIDParam struct {
	UserID string `param:"userId" validate:"required,uuid"`
}

type cardIDParam struct {
	CardID string `param:"cardId" validate:"required,uuid"`
}

// normalizeID lowercases a path identifier. UUIDs are case-insensitive but
// the uuid rule and the stored form are lowercase.
func normalizeID(id string) string {
	return strings.ToLower(id)
}
