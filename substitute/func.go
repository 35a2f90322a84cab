package substitute

import (
	"fmt"
	"reflect"
)

// FuncMember is the member name under which calls to a function substitute are recorded.
const FuncMember = "Invoke"

// ForFunc creates a substitute for the function type F and returns the function together with its
// Substitute. Every call of the function is recorded under FuncMember and answered from the
// responses configured on the Substitute:
//
//	greet, sub, _ := substitute.ForFunc[func(string) string]()
//	sub.When(substitute.FuncMember, "Ada").Returns("Hello Ada")
//
// Variadic arguments are recorded one by one, so calls of a func(string, ...int) are specified as
// sub.When(substitute.FuncMember, "a", 1, 2).
//
// The Substitute is named after F unless WithName is given.
func ForFunc[F any](options ...Option) (F, *Substitute, error) {
	var zero F

	funcType := reflect.TypeOf((*F)(nil)).Elem()
	if funcType.Kind() != reflect.Func {
		return zero, nil, fmt.Errorf("%w: %s", ErrNotAFuncType, funcType)
	}

	sub, err := New(append([]Option{WithName(funcType.String())}, options...)...)
	if err != nil {
		return zero, nil, err
	}

	fn := reflect.MakeFunc(funcType, func(in []reflect.Value) []reflect.Value {
		return funcResults(funcType, sub.Invoke(FuncMember, funcArgs(funcType, in)...))
	})

	return fn.Interface().(F), sub, nil
}

// funcArgs flattens the in values of a call; for a variadic funcType the trailing slice is expanded.
func funcArgs(funcType reflect.Type, in []reflect.Value) []any {
	fixed := in
	if funcType.IsVariadic() {
		fixed = in[:len(in)-1]
	}

	args := make([]any, 0, len(in))
	for _, arg := range fixed {
		args = append(args, arg.Interface())
	}

	if funcType.IsVariadic() {
		variadic := in[len(in)-1]
		for i := 0; i < variadic.Len(); i++ {
			args = append(args, variadic.Index(i).Interface())
		}
	}

	return args
}

// funcResults converts results to the out values of funcType; missing or nil results become zero values.
func funcResults(funcType reflect.Type, results Results) []reflect.Value {
	out := make([]reflect.Value, funcType.NumOut())

	for i := range out {
		if i >= len(results) {
			out[i] = reflect.Zero(funcType.Out(i))
			continue
		}

		value, err := convertValue(results[i], funcType.Out(i))
		if err != nil {
			panic(fmt.Errorf("result %d of %s: %w", i, funcType, err))
		}

		out[i] = value
	}

	return out
}
