package perrors_test

import (
	"errors"
	"testing"

	"github.com/surister/conecta/perrors"
)

func TestIsWarning(t *testing.T) {
	err := errors.New("err")
	w := perrors.Warning(err) // mark as warning

	// outermost error is now the warning
	// *errorglue.WarningType *errorglue.errorStack *errors.errorString
	//t.Error(errorglue.DumpChain(w))

	actual := perrors.IsWarning(w)
	if !actual {
		t.Error("IsWarning broken")
	}
}
