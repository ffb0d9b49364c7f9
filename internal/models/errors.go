package models

import "errors"

var (
	ErrUnknownField        = errors.New("unknown form field")
	ErrFieldValueMismatch  = errors.New("value does not match the field type")
	ErrInvalidOccupancy    = errors.New("invalid type of occupancy")
	ErrUnknownDocument     = errors.New("document requirement not found")
	ErrDocumentNotUploaded = errors.New("document has not been uploaded")
	ErrIncompleteFile      = errors.New("picked file is missing a name or uri")
)
