package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNotPayable = errors.New("employee is not active or probationary")
)
