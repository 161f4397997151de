package diag

// FatalError is the stop-compilation condition produced by Fatal and
// AbortIfErrors. The diagnostics explaining the stop were already
// emitted; FatalError itself carries nothing worth rendering twice.
type FatalError struct{}

func (FatalError) Error() string {
	return "fatal compilation error"
}

// Raise unwinds the current phase with this FatalError. Pair it with
// RecoverFatal at the phase boundary.
func (e FatalError) Raise() {
	panic(e)
}

// RecoverFatal converts a raised FatalError back into an ordinary error:
//
//	func compile(h *diag.Handler) (err error) {
//		defer diag.RecoverFatal(&err)
//		// ... emit diagnostics ...
//		h.AbortIfErrors()
//		return nil
//	}
//
// Panics that are not FatalError propagate unchanged.
func RecoverFatal(err *error) {
	switch r := recover().(type) {
	case nil:
	case FatalError:
		*err = r
	default:
		panic(r)
	}
}
