// Package errors provides structured, coded error values for labelselect.
//
// Every error carries a stable code (e.g. "LS001") that maps to a category,
// a short message and a longer explanation. Callers that only care about the
// kind of failure use the standard library's errors.Is against the sentinel
// wrapped by the coded error:
//
//	err := errors.New("LS001").
//	    WithDetail(`values[2] uses id "none"`).
//	    WithSuggestion("Pick another id; \"none\" stands for the empty selection").
//	    Wrap(labelselect.ErrReservedIdentifier)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR LS001: Reserved option identifier
//	//
//	//   values[2] uses id "none"
//	//
//	//   Hint: Pick another id; "none" stands for the empty selection
package errors
