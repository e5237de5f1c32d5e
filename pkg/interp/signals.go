package interp

import "github.com/glossa-lang/glossa/pkg/runtime"

// returnSignal and stopSignal are internal non-local control flow,
// modeled as error-implementing structs walked up the Go call stack by
// ordinary panic/recover — the same idiom the teacher corpus uses for
// break/continue/raise/return inside a tree-walking interpreter. Neither
// is ever shown to the host: a returnSignal is caught at its matching
// call site (§9: "catch only at the immediate function call frame"),
// and Run translates a stopSignal, or a returnSignal raised by
// ΕΠΙΣΤΡΕΨΕ in the main body, into a Diagnostic.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "επιστροφή συνάρτησης εκτός συνάρτησης" }

// stopSignal unwinds every active call frame in response to the
// debugger hook requesting a stop (§5: "unwinds all active call frames,
// discards pending output, and reports 'execution stopped'").
type stopSignal struct {
	line int
}

func (stopSignal) Error() string { return "η εκτέλεση διακόπηκε" }
