package substitute

import (
	"fmt"
	"math"
	"reflect"
)

// ResultAt returns the result at index as a T, for use in proxies:
//
//	func (f fooSubstitute) Find(id string) (Book, error) {
//		results := f.sub.Invoke("Find", id)
//		return substitute.ResultAt[Book](results, 0), substitute.ResultAt[error](results, 1)
//	}
//
// Missing and nil results yield the zero T, which is the default of an unconfigured call.
// Numeric results are converted between numeric types when the value survives the conversion; a
// value that would be truncated, wrapped or overflow panics with an error wrapping ErrResultType,
// and so does any other mismatch.
func ResultAt[T any](results Results, index int) T {
	return valueAt[T](results, index, "result")
}

// ArgAt returns the argument at index as a T, with the same rules as ResultAt.
// It is meant for ReturnsFunc and Do callbacks.
func ArgAt[T any](args Args, index int) T {
	return valueAt[T](args, index, "argument")
}

func valueAt[T any](values []any, index int, what string) T {
	var zero T

	if index < 0 || index >= len(values) || values[index] == nil {
		return zero
	}

	if typed, ok := values[index].(T); ok {
		return typed
	}

	converted, err := convertValue(values[index], reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		panic(fmt.Errorf("%s %d: %w", what, index, err))
	}

	return converted.Interface().(T)
}

// convertValue turns value into a reflect.Value of type target. Assignable values are used as they
// are, numeric values are converted between numeric kinds unless the conversion loses the value.
func convertValue(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(value)

	if v.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(v)

		return out, nil
	}

	if isNumericKind(v.Kind()) && isNumericKind(target.Kind()) {
		return convertNumber(v, target)
	}

	return reflect.Value{}, fmt.Errorf("%w: got %T, want %s", ErrResultType, value, target)
}

func convertNumber(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	out := reflect.New(target).Elem()
	lossy := fmt.Errorf("%w: %v (%s) does not fit %s", ErrResultType, v.Interface(), v.Type(), target)

	switch {
	case v.CanInt():
		n := v.Int()

		switch {
		case out.CanInt():
			if out.OverflowInt(n) {
				return reflect.Value{}, lossy
			}
			out.SetInt(n)
		case out.CanUint():
			if n < 0 || out.OverflowUint(uint64(n)) {
				return reflect.Value{}, lossy
			}
			out.SetUint(uint64(n))
		default:
			out.SetFloat(float64(n))
			if f := out.Float(); f < -(1<<63) || f >= 1<<63 || int64(f) != n {
				return reflect.Value{}, lossy
			}
		}

	case v.CanUint():
		n := v.Uint()

		switch {
		case out.CanInt():
			if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
				return reflect.Value{}, lossy
			}
			out.SetInt(int64(n))
		case out.CanUint():
			if out.OverflowUint(n) {
				return reflect.Value{}, lossy
			}
			out.SetUint(n)
		default:
			out.SetFloat(float64(n))
			if f := out.Float(); f >= 1<<64 || uint64(f) != n {
				return reflect.Value{}, lossy
			}
		}

	default:
		f := v.Float()

		switch {
		case out.CanInt():
			if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 || out.OverflowInt(int64(f)) {
				return reflect.Value{}, lossy
			}
			out.SetInt(int64(f))
		case out.CanUint():
			if f != math.Trunc(f) || f < 0 || f >= 1<<64 || out.OverflowUint(uint64(f)) {
				return reflect.Value{}, lossy
			}
			out.SetUint(uint64(f))
		default:
			if out.OverflowFloat(f) {
				return reflect.Value{}, lossy
			}
			out.SetFloat(f)
		}
	}

	return out, nil
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
