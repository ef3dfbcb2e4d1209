package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrUsernameTaken     = errors.New("username already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
