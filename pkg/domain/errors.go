package domain

import "errors"

// ErrPreviewNotFound is returned when no preview request was stored for a target.
var ErrPreviewNotFound = errors.New("preview not found")

// ErrIncompleteRequest is returned when a preview request is missing a required field.
var ErrIncompleteRequest = errors.New("incomplete preview request")
