package domain

import "errors"

var ErrServiceNotFound = errors.New("service not found")
var ErrProjectNotFound = errors.New("project not found")
var ErrProjectImageNotFound = errors.New("project image not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrUserNotFound = errors.New("user not found")
var ErrContentNotFound = errors.New("content not found")

var ErrSlugExists = errors.New("service with this slug already exists")
var ErrUserExists = errors.New("user already exists")

var ErrInvalidID = errors.New("invalid id")
var ErrInvalidStatus = errors.New("invalid order status")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountBanned = errors.New("account banned")
var ErrEmailNotVerified = errors.New("email not verified")
var ErrVerificationToken = errors.New("invalid or expired verification token")

var ErrUnauthorized = errors.New("unauthorized")
