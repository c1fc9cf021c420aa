package postgres

import "errors"

var (
	ErrAlreadyExists            = errors.New("record already exists")
	ErrNoFieldsToUpdate         = errors.New("no fields to update")
	ErrFieldsNotAllowedToUpdate = errors.New("fields are not allowed to update")
)
