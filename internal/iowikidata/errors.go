package iowikidata

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

func RequestError(subject string, err error) error {
	msg := "Cannot reach Wikidata for <em>%s</em>"
	vars := []any{subject}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: wikidata request for %q: %w",
			fn, subject, err),
	}
}

func ResponseError(subject string, err error) error {
	msg := "Cannot use Wikidata answer for <em>%s</em>"
	vars := []any{subject}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: wikidata response for %q: %w",
			fn, subject, err),
	}
}
