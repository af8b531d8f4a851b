package services

import "errors"

// Terminal error taxonomy. Handlers branch on these with errors.Is and map
// each to a distinct HTTP status.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrAuthorization = errors.New("not allowed")
	ErrSelfReference = errors.New("self reference")

	ErrUploadTimeout = errors.New("upload timed out")
	ErrUploadFailed  = errors.New("upload failed")
	ErrDispatch      = errors.New("dispatch failed")

	// ErrConflict is reserved for optimistic-concurrency rejection; nothing
	// in the current write paths produces it.
	ErrConflict = errors.New("conflict")
)
