/*
© 2018–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

/*
Package perrors enrichens error values with string data, stack traces, associated errors,
less severe warnings and
comprehensive error string representations.

Creating errors with stack traces:
  err := perrors.New("error message") // adds a stacktrace contained inside of err
  err = perrors.Errorf("Some text: '%w'", err) // adds a stacktrace if err does not already have it
  err = perrors.Stackn(err, 0) // adds a stack trace even if err already has it
Enriching errors:
	err = perrors.AddKeyValue(err, "record", "123") // adds a key-value string, last key wins
	err = perrors.AddKeyValue(err, "", "2022-03-19 11:10:00") // adds a string to a list, oldest first
Encapsulating associated errors allowing for a single error value to contain multiple errors:
  err = perrors.AppendError(err, err2) // err2 is inside of err, can be printed and retrieved
Marking errors as less severe:
  warning := perrors.Warning(err) // warning should not terminate the thread
  perrors.IsWarning(err) // Determine severity of an error value
Printing rich errors:
  perrors.Long(err)
  → error-message
  → github.com/surister/conecta/perrors.(*csTypeName).FuncName
  →   /opt/sw/privates/conecta/perrors/chainstring_test.go:26
  → runtime.goexit
  →   /opt/homebrew/Cellar/go/1.17.8/libexec/src/runtime/asm_arm64.s:1133
  → record: 1234
  → Other error: Close failed
  perrors.Short(err)
  → error-message at perrors.(*csTypeName).FuncName-chainstring_test.go:26
  fmt.Println(err)
  → error-message

Can be used with Printf, but only works if last error in chain is from perrors:
  fmt.Printf("err: %+v", err) // same as Long()
  fmt.Printf("err: %-v", err) // save as Short()
Is compatible:
  fmt.Println(err) // no change
  fmt.Printf("err: %v", err) // no change
  err.Error() // no change
  fmt.Printf("err: %s", err) // no change
  fmt.Printf("err: %q", err) // no change

© 2020–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
*/
package perrors
