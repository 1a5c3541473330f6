/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package perrors

import (
	"github.com/surister/conecta/perrors/errorglue"
)

// AppendError associates an additional error with err.
// err and err2 can be nil.
// Associated error instances can be retrieved using [ErrorList] or
// by printing using rich error printing of the perrors package.
// TODO 220319 fill in printing
func AppendError(err error, err2 error) (e error) {
	if err2 == nil {
		return err // noop return
	}
	if err == nil {
		return err2 // single error return
	}
	return errorglue.NewRelatedError(err, err2)
}

func InvokeIfError(errp *error, errFn func(err error)) {
	var err error
	if errp != nil {
		err = *errp
	} else {
		err = New("perrors.InvokeIfError errp nil")
	}
	if err != nil {
		errFn(err)
	}
}
