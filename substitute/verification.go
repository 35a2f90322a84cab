package substitute

import (
	"fmt"
	"strings"
)

// ReceivedCallsError is returned when a verification fails.
//
// Actual is always len(MatchingCalls): both come from the same snapshot of the call history, so
// the reported count is the count the verification was decided on.
type ReceivedCallsError struct {
	Substitute    string
	Expected      Quantity
	Spec          CallSpec
	Actual        int
	MatchingCalls []Call
	RelatedCalls  []Call
}

func (e *ReceivedCallsError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: expected to receive %s matching:\n\t%s\n", e.Substitute, e.Expected, e.Spec)

	switch e.Actual {
	case 0:
		b.WriteString("Actually received no matching calls.")
	case 1:
		b.WriteString("Actually received 1 matching call:")
	default:
		fmt.Fprintf(&b, "Actually received %d matching calls:", e.Actual)
	}

	for _, call := range e.MatchingCalls {
		b.WriteString("\n\t")
		b.WriteString(call.String())
	}

	if len(e.RelatedCalls) > 0 {
		fmt.Fprintf(
			&b,
			"\nReceived %d non-matching %s (non-matching arguments indicated with '*' characters):",
			len(e.RelatedCalls),
			pluralWord(len(e.RelatedCalls), "call", "calls"),
		)

		for _, call := range e.RelatedCalls {
			b.WriteString("\n\t")
			b.WriteString(e.Spec.describeMismatch(call))
		}
	}

	return b.String()
}

// Unwrap makes every ReceivedCallsError match ErrReceivedCalls.
func (e *ReceivedCallsError) Unwrap() error {
	return ErrReceivedCalls
}

func pluralWord(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}

	return plural
}
