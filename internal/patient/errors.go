package patient

import "errors"

var (
	ErrMissingName       = errors.New("name is required")
	ErrMissingNationalID = errors.New("national id is required")
	ErrInvalidNationalID = errors.New("national id must be 16 digits")
	ErrMissingBirthDate  = errors.New("birth date is required")
	ErrInvalidSex        = errors.New("invalid sex value")
	ErrInvalidStatus     = errors.New("invalid patient status")
	ErrPatientNotFound   = errors.New("patient not found")
)
