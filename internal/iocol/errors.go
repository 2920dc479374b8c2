package iocol

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

func RequestError(name string, err error) error {
	msg := "Cannot reach Catalogue of Life for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: col request for %q: %w",
			fn, name, err),
	}
}

func ResponseError(name string, err error) error {
	msg := "Cannot use Catalogue of Life answer for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: col response for %q: %w",
			fn, name, err),
	}
}
