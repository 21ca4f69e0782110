// Package repository holds storage-agnostic repository code shared by the
// infrastructure adapters.
package repository

import "errors"

var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrUserNotFound = errors.New("user not found")
)
