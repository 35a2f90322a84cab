package substitute

import (
	"errors"
)

// Configuration errors returned by New.
var (
	// ErrEmptySubstituteName is returned by WithName for an empty name.
	ErrEmptySubstituteName = errors.New("empty substitute name supplied")

	// ErrNilOption is returned when a nil Option is passed to New.
	ErrNilOption = errors.New("nil option supplied")
)

// Usage errors: the test code drove the substitute in a way that cannot be honored.
var (
	// ErrArgMatcherArity is returned when the matchers pushed before a specification call do not line up
	// with the number of arguments of that call.
	ErrArgMatcherArity = errors.New("argument matcher count does not match the call's argument count")

	// ErrUnconsumedArgMatchers is returned when matchers were pushed onto a Recorder but no specification
	// call consumed them.
	ErrUnconsumedArgMatchers = errors.New("argument matchers were declared but never consumed by a call")

	// ErrInvalidQuantity is returned when a verification is asked for a negative or empty count range.
	ErrInvalidQuantity = errors.New("invalid expected call quantity")

	// ErrNotAFuncType is returned by ForFunc when its type parameter is not a func type.
	ErrNotAFuncType = errors.New("type parameter is not a func type")

	// ErrResultType is raised when a configured result cannot be converted to the type the proxy expects.
	ErrResultType = errors.New("configured result has the wrong type")
)

// ErrReceivedCalls is the error every verification failure matches with errors.Is.
var ErrReceivedCalls = errors.New("received calls did not match the expected quantity")
