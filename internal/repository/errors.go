package repository

import "errors"

var (
	ErrNotFound          = errors.New("entity not found")
	ErrAlreadyRequested  = errors.New("verification already requested")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUpdateFailed      = errors.New("update failed")
	ErrDeleteFailed      = errors.New("delete failed")
)
