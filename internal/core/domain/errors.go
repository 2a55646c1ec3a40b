package domain

import "errors"

// Auth failures. ErrInvalidCredentials covers both unknown email and wrong
// password so the two cases are indistinguishable to the caller.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrToolNotFound     = errors.New("tool not found")
	ErrMediaNotFound    = errors.New("media not found")
)

var (
	ErrSlugExists     = errors.New("slug already exists")
	ErrCategoryInUse  = errors.New("category is referenced by posts")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUploadExpired  = errors.New("upload url expired")
	ErrBadSignature   = errors.New("invalid upload signature")
	ErrObjectTooLarge = errors.New("object exceeds size limit")
)
