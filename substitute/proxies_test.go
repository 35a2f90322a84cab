package substitute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/substitute-go/substitute"
)

const (
	memberNumber     = "Number"
	memberBar        = "Bar"
	memberVoidMethod = "VoidMethod"
	memberLookup     = "Lookup"
)

type Bar interface {
	Name() string
}

type Foo interface {
	Number() int
	Bar() Bar
	VoidMethod()
	Lookup(id int, key string) (string, error)
}

// fooSubstitute is the proxy a code generator would emit for Foo.
type fooSubstitute struct {
	sub *substitute.Substitute
}

func (f fooSubstitute) Number() int {
	return substitute.ResultAt[int](f.sub.Invoke(memberNumber), 0)
}

func (f fooSubstitute) Bar() Bar {
	return substitute.ResultAt[Bar](f.sub.Invoke(memberBar), 0)
}

func (f fooSubstitute) VoidMethod() {
	f.sub.Invoke(memberVoidMethod)
}

func (f fooSubstitute) Lookup(id int, key string) (string, error) {
	results := f.sub.Invoke(memberLookup, id, key)
	return substitute.ResultAt[string](results, 0), substitute.ResultAt[error](results, 1)
}

var _ Foo = fooSubstitute{}

// fooRecorder is the typed specification side of the proxy.
type fooRecorder struct {
	rec *substitute.Recorder
}

func (f fooRecorder) Lookup(id int, key string) (*substitute.PendingCall, error) {
	return f.rec.Call(memberLookup, id, key)
}

type namedBar struct {
	name string
}

func (b namedBar) Name() string {
	return b.name
}

func GivenFooSubstitute(t *testing.T, options ...substitute.Option) (fooSubstitute, *substitute.Substitute) {
	t.Helper()

	sub, err := substitute.New(append([]substitute.Option{substitute.WithName("Foo")}, options...)...)
	require.NoError(t, err, "creating the substitute failed")

	return fooSubstitute{sub: sub}, sub
}
