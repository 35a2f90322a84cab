package substitute

import (
	"fmt"
)

// Quantity is the expected-count predicate of a verification.
type Quantity struct {
	min       int
	max       int
	unbounded bool
}

// Exactly expects exactly n matching calls.
func Exactly(n int) Quantity {
	return Quantity{min: n, max: n}
}

// AtLeast expects n or more matching calls.
func AtLeast(n int) Quantity {
	return Quantity{min: n, unbounded: true}
}

// AtMost expects between zero and n matching calls.
func AtMost(n int) Quantity {
	return Quantity{min: 0, max: n}
}

// Between expects between least and most matching calls, both inclusive.
func Between(least, most int) Quantity {
	return Quantity{min: least, max: most}
}

// Once expects exactly one matching call.
func Once() Quantity {
	return Exactly(1)
}

// Never expects no matching calls.
func Never() Quantity {
	return Exactly(0)
}

// Matches reports whether count satisfies the quantity.
func (q Quantity) Matches(count int) bool {
	if count < q.min {
		return false
	}

	return q.unbounded || count <= q.max
}

// Validate returns ErrInvalidQuantity for negative bounds or an empty range.
func (q Quantity) Validate() error {
	if q.min < 0 || (!q.unbounded && q.max < q.min) {
		return fmt.Errorf("%w: %s", ErrInvalidQuantity, q.rangeString())
	}

	return nil
}

func (q Quantity) String() string {
	switch {
	case q.unbounded:
		return "at least " + pluralCalls(q.min)
	case q.max == 0 && q.min == 0:
		return "no calls"
	case q.min == q.max:
		return "exactly " + pluralCalls(q.min)
	case q.min == 0:
		return "at most " + pluralCalls(q.max)
	default:
		return fmt.Sprintf("between %d and %s", q.min, pluralCalls(q.max))
	}
}

func (q Quantity) rangeString() string {
	if q.unbounded {
		return fmt.Sprintf("[%d, ∞)", q.min)
	}

	return fmt.Sprintf("[%d, %d]", q.min, q.max)
}

func pluralCalls(n int) string {
	if n == 1 {
		return "1 call"
	}

	return fmt.Sprintf("%d calls", n)
}
