// Package substitute provides the record/configure/verify engine behind test doubles.
//
// A Substitute records every invocation a proxy forwards to it, resolves the response for that
// invocation from the configured stubs, and answers verification queries against the recorded
// calls. All of it is safe to use from many goroutines at once.
//
// Go cannot implement an arbitrary interface at runtime, so a proxy is a small struct that
// forwards each method to Invoke (function types can be substituted directly with ForFunc):
//
//	type fooSubstitute struct{ sub *substitute.Substitute }
//
//	func (f fooSubstitute) Number() int {
//		return substitute.ResultAt[int](f.sub.Invoke("Number"), 0)
//	}
//
// Configuration and verification use an explicit token protocol instead of ambient
// "last call" state: a specification call returns a PendingCall, and responses or
// verifications are attached to that token.
//
//	sub, _ := substitute.New(substitute.WithName("Foo"))
//	foo := fooSubstitute{sub: sub}
//
//	number := sub.When("Number")
//	number.Returns(1, 2, 3) // 1st call -> 1, 2nd -> 2, then 3 forever
//
//	_ = foo.Number()
//
//	err := number.Verify(substitute.Once())
//
// Argument matchers are either passed in place of argument values:
//
//	lookup := sub.When("Lookup", substitute.Any(), "x")
//
// or declared through a Recorder immediately before a typed specification call; the Recorder is
// the explicit, per-goroutine matcher scope:
//
//	rec := sub.Recorder()
//	lookup, err := rec.Call("Lookup", substitute.AnyArg[int](rec), substitute.ArgEq(rec, "x"))
package substitute
