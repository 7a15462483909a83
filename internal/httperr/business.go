package httperr

import "errors"

// BusinessError is an expected outcome of a request, identified by a stable
// code that clients switch on. It is compared by value, so errors.Is works
// against the package-level sentinels built with ErrBusiness.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// CodeOf unwraps err looking for a BusinessError.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
