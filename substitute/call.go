package substitute

import (
	"slices"
	"strings"
	"time"
)

// Args holds the ordered argument values of one invocation.
type Args []any

// Results holds the ordered return values for one invocation. A nil or short Results means
// zero values for the missing positions.
type Results []any

// SequenceNumber is the position of a Call in its substitute's CallHistory.
type SequenceNumber = uint64

// Call describes one invocation: the member, its arguments and, for specifications, the
// matchers bound to those arguments. A Call is immutable once created.
type Call struct {
	member         string
	args           Args
	matchers       []ArgMatcher
	sequenceNumber SequenceNumber
	occurredAt     time.Time
}

func newCall(member string, args []any, matchers []ArgMatcher) Call {
	return Call{
		member:     member,
		args:       slices.Clone(args),
		matchers:   slices.Clone(matchers),
		occurredAt: time.Now(),
	}
}

// Member returns the name of the invoked member.
func (c Call) Member() string {
	return c.member
}

// Args returns a copy of the argument values.
func (c Call) Args() Args {
	return slices.Clone(c.args)
}

// Matchers returns a copy of the matchers bound at specification time; empty for real invocations.
func (c Call) Matchers() []ArgMatcher {
	return slices.Clone(c.matchers)
}

// SequenceNumber returns the position of the call in its CallHistory.
// It is only meaningful for calls returned from a CallHistory.
func (c Call) SequenceNumber() SequenceNumber {
	return c.sequenceNumber
}

// OccurredAt returns when the call was made.
func (c Call) OccurredAt() time.Time {
	return c.occurredAt
}

// Spec returns the matching specification described by this call: the bound matchers if there
// are any, literal equality on each argument otherwise.
func (c Call) Spec() CallSpec {
	if len(c.matchers) > 0 {
		return CallSpec{member: c.member, matchers: slices.Clone(c.matchers)}
	}

	matchers := make([]ArgMatcher, len(c.args))
	for i, arg := range c.args {
		matchers[i] = matcherFor(arg)
	}

	return CallSpec{member: c.member, matchers: matchers}
}

func (c Call) String() string {
	rendered := make([]string, len(c.args))
	for i, arg := range c.args {
		rendered[i] = formatArg(arg)
	}

	return c.member + "(" + strings.Join(rendered, ", ") + ")"
}

/***** CallSpec *****/

// CallSpec is an argument-matching specification for one member.
type CallSpec struct {
	member   string
	matchers []ArgMatcher
}

// SpecFor builds a CallSpec; arguments that are ArgMatchers are used as such, all others are
// matched by literal equality.
func SpecFor(member string, args ...any) CallSpec {
	matchers := make([]ArgMatcher, len(args))
	for i, arg := range args {
		matchers[i] = matcherFor(arg)
	}

	return CallSpec{member: member, matchers: matchers}
}

// Member returns the member the specification applies to.
func (s CallSpec) Member() string {
	return s.member
}

// Matches reports whether call is an invocation of the same member whose arguments satisfy
// every positional matcher.
func (s CallSpec) Matches(call Call) bool {
	if call.member != s.member || len(call.args) != len(s.matchers) {
		return false
	}

	for i, matcher := range s.matchers {
		if !matcher.Matches(call.args[i]) {
			return false
		}
	}

	return true
}

// withAnyArgs keeps the member and arity but accepts every argument value.
func (s CallSpec) withAnyArgs() CallSpec {
	matchers := make([]ArgMatcher, len(s.matchers))
	for i := range matchers {
		matchers[i] = Any()
	}

	return CallSpec{member: s.member, matchers: matchers}
}

func (s CallSpec) String() string {
	rendered := make([]string, len(s.matchers))
	for i, matcher := range s.matchers {
		rendered[i] = matcher.String()
	}

	return s.member + "(" + strings.Join(rendered, ", ") + ")"
}

// describeMismatch renders call with every argument that does not satisfy the spec marked as *arg*.
func (s CallSpec) describeMismatch(call Call) string {
	rendered := make([]string, len(call.args))
	for i, arg := range call.args {
		rendered[i] = formatArg(arg)
		if i >= len(s.matchers) || !s.matchers[i].Matches(arg) {
			rendered[i] = "*" + rendered[i] + "*"
		}
	}

	return call.member + "(" + strings.Join(rendered, ", ") + ")"
}
