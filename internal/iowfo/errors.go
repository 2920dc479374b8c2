package iowfo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

func RequestError(name string, err error) error {
	msg := "Cannot reach WFO Plant List for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: wfo request for %q: %w",
			fn, name, err),
	}
}

func ResponseError(name string, err error) error {
	msg := "Cannot use WFO Plant List answer for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: wfo response for %q: %w",
			fn, name, err),
	}
}
