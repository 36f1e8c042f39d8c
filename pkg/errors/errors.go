package errors

import (
	"fmt"

	"tradeflow/pkg/errors/ecode"
)

// 携带错误码的error，配合response包把错误渲染成统一的响应体

type CodedError struct {
	Code int
	Msg  string
	Err  error
}

func (e *CodedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// New 创建一个带错误码的error
func New(code int, msg string) error {
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &CodedError{Code: code, Msg: msg}
}

// Wrap 给已有的error附加错误码和提示信息
func Wrap(err error, code int, msg string) error {
	if msg == "" {
		msg = ecode.Text(code)
	}
	return &CodedError{Code: code, Msg: msg, Err: err}
}

// DecodeErr 从error中解出错误码和提示信息
// nil 返回Success；非CodedError统一按InternalErr处理
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	if ce, ok := err.(*CodedError); ok {
		return ce.Code, ce.Msg
	}
	return ecode.InternalErr, err.Error()
}
