package entity

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrSignatureMismatch  = errors.New("signature mismatch")
	ErrDuplicateReference = errors.New("duplicate reference number")
	ErrDuplicateEmail     = errors.New("duplicate donor email")
	ErrConfiguration      = errors.New("configuration error")
)
