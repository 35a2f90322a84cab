package substitute

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
)

// ArgMatcher decides whether one actual argument satisfies a specification.
type ArgMatcher interface {
	Matches(arg any) bool
	String() string
}

/***** Any *****/

type anyMatcher struct{}

// Any matches every argument value, nil included.
func Any() ArgMatcher {
	return anyMatcher{}
}

func (anyMatcher) Matches(_ any) bool {
	return true
}

func (anyMatcher) String() string {
	return "any"
}

/***** Eq *****/

type eqMatcher struct {
	expected any
}

// Eq matches arguments equal to expected, using the same equality rule as testify
// (bytes.Equal for []byte, reflect.DeepEqual otherwise).
func Eq(expected any) ArgMatcher {
	return eqMatcher{expected: expected}
}

func (m eqMatcher) Matches(arg any) bool {
	return assert.ObjectsAreEqual(m.expected, arg)
}

func (m eqMatcher) String() string {
	return formatArg(m.expected)
}

/***** Nil *****/

type nilMatcher struct{}

// Nil matches untyped nil as well as nil pointers, maps, slices, channels, funcs and interfaces.
func Nil() ArgMatcher {
	return nilMatcher{}
}

func (nilMatcher) Matches(arg any) bool {
	return isNil(arg)
}

func (nilMatcher) String() string {
	return "nil"
}

/***** AnyOfType *****/

type typeMatcher[T any] struct{}

// AnyOfType matches every non-nil argument whose dynamic type is (or implements) T.
func AnyOfType[T any]() ArgMatcher {
	return typeMatcher[T]{}
}

func (typeMatcher[T]) Matches(arg any) bool {
	_, ok := arg.(T)
	return ok
}

func (typeMatcher[T]) String() string {
	return "any " + reflect.TypeOf((*T)(nil)).Elem().String()
}

/***** Match *****/

type predicateMatcher[T any] struct {
	description string
	predicate   func(T) bool
}

// Match matches arguments of type T for which predicate returns true.
// A nil argument is handed to the predicate as the zero T when T is a nilable type.
func Match[T any](description string, predicate func(T) bool) ArgMatcher {
	return predicateMatcher[T]{description: description, predicate: predicate}
}

func (m predicateMatcher[T]) Matches(arg any) bool {
	if arg == nil {
		var zero T
		if !isNilableType(reflect.TypeOf((*T)(nil)).Elem()) {
			return false
		}

		return m.predicate(zero)
	}

	typed, ok := arg.(T)
	if !ok {
		return false
	}

	return m.predicate(typed)
}

func (m predicateMatcher[T]) String() string {
	if m.description == "" {
		return fmt.Sprintf("<%s matching predicate>", reflect.TypeOf((*T)(nil)).Elem())
	}

	return m.description
}

// matcherFor turns an argument of a specification call into its matcher:
// matchers pass through, every other value is matched by literal equality.
func matcherFor(arg any) ArgMatcher {
	if matcher, ok := arg.(ArgMatcher); ok {
		return matcher
	}

	return Eq(arg)
}

func isNil(arg any) bool {
	if arg == nil {
		return true
	}

	value := reflect.ValueOf(arg)
	if isNilableType(value.Type()) {
		return value.IsNil()
	}

	return false
}

func isNilableType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
