package errno

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
)

// ErrCode doubles as the HTTP status of the response.
const (
	SuccessCode         = consts.StatusOK
	CreatedCode         = consts.StatusCreated
	InvalidArgumentCode = consts.StatusBadRequest
	UnauthorizedCode    = consts.StatusUnauthorized
	ForbiddenCode       = consts.StatusForbidden
	NotFoundCode        = consts.StatusNotFound
	ConflictCode        = consts.StatusConflict
	TooManyRequestsCode = consts.StatusTooManyRequests
	ServiceErrCode      = consts.StatusInternalServerError
)

type ErrNo struct {
	ErrCode int
	ErrMsg  string
	Errors  []string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is 同一错误码视为同一类错误
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	return ok && t.ErrCode == e.ErrCode
}

func NewErrNo(code int, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

func (e ErrNo) WithErrors(errs ...string) ErrNo {
	e.Errors = append(append([]string(nil), e.Errors...), errs...)
	return e
}

func (e ErrNo) Success() bool {
	return e.ErrCode < consts.StatusBadRequest
}

var (
	Success            = NewErrNo(SuccessCode, "Success")
	Created            = NewErrNo(CreatedCode, "Created")
	InvalidArgumentErr = NewErrNo(InvalidArgumentCode, "Invalid argument")
	UnauthorizedErr    = NewErrNo(UnauthorizedCode, "Unauthorized request")
	ForbiddenErr       = NewErrNo(ForbiddenCode, "You are not allowed to perform this action")
	NotFoundErr        = NewErrNo(NotFoundCode, "Resource not found")
	ConflictErr        = NewErrNo(ConflictCode, "Resource already exists")
	TooManyRequestsErr = NewErrNo(TooManyRequestsCode, "Too many requests, please retry later")
	ServiceErr         = NewErrNo(ServiceErrCode, "Internal server error")
)

// MissingFields InvalidArgument naming every blank field
func MissingFields(fields ...string) ErrNo {
	errs := make([]string, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, f+" is required")
	}
	return InvalidArgumentErr.WithMessage("All fields are required").WithErrors(errs...)
}

// ConvertErr convert error to ErrNo, anything unknown becomes ServiceErr
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	return ServiceErr
}
