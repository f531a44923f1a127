package httperr

import "net/http"

// BusinessError is a coded failure outside the scheduling domain, such as
// bad credentials or a malformed path parameter.
type BusinessError struct {
	Code   string
	Status int
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Status: http.StatusBadRequest}
}

func ErrBusinessStatus(status int, code string) error {
	return BusinessError{Code: code, Status: status}
}
