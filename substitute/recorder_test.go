package substitute_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/substitute-go/substitute"
)

func Test_Recorder_Call_When_MatchersMatchArity_BindsThemToArguments(t *testing.T) {
	// setup
	foo, sub := GivenFooSubstitute(t)
	rec := sub.Recorder()
	spec := fooRecorder{rec: rec}

	// arrange
	pending, err := spec.Lookup(substitute.AnyArg[int](rec), substitute.ArgEq(rec, "title"))
	require.NoError(t, err)
	pending.ReturnsResults(substitute.Results{"Dune", nil})

	// act
	first, firstErr := foo.Lookup(1, "title")
	second, secondErr := foo.Lookup(2, "author")

	// assert
	assert.Equal(t, "Dune", first)
	assert.NoError(t, firstErr)
	assert.Empty(t, second)
	assert.NoError(t, secondErr)
	assert.Len(t, pending.Call().Matchers(), 2)
	assert.Equal(t, `Lookup(any, "title")`, pending.Spec().String())
}

func Test_Recorder_Call_When_NoMatchersArePending_UsesLiteralArguments(t *testing.T) {
	// setup
	foo, sub := GivenFooSubstitute(t)

	// arrange
	pending, err := fooRecorder{rec: sub.Recorder()}.Lookup(3, "key")
	require.NoError(t, err)
	pending.ReturnsResults(substitute.Results{"three", nil})

	// act
	matched, _ := foo.Lookup(3, "key")
	unmatched, _ := foo.Lookup(4, "key")

	// assert
	assert.Equal(t, "three", matched)
	assert.Empty(t, unmatched)
	assert.Empty(t, pending.Call().Matchers())
}

func Test_Recorder_Call_When_MatcherCountDiffersFromArity_Fails(t *testing.T) {
	// setup
	_, sub := GivenFooSubstitute(t)
	rec := sub.Recorder()

	// arrange
	rec.Push(substitute.Any())

	// act
	pending, err := fooRecorder{rec: rec}.Lookup(1, "key")

	// assert
	assert.ErrorIs(t, err, substitute.ErrArgMatcherArity)
	assert.Nil(t, pending)
	assert.NoError(t, rec.Close(), "a failed call must still consume the pending matchers")
}

func Test_Recorder_Matchers_DoNotLeakIntoTheNextCall(t *testing.T) {
	// setup
	foo, sub := GivenFooSubstitute(t)
	rec := sub.Recorder()
	spec := fooRecorder{rec: rec}

	// arrange
	first, err := spec.Lookup(substitute.AnyArg[int](rec), substitute.AnyArg[string](rec))
	require.NoError(t, err)
	first.ReturnsResults(substitute.Results{"anything", nil})

	second, err := spec.Lookup(7, "seven")
	require.NoError(t, err)
	second.ReturnsResults(substitute.Results{"seven", nil})

	// act
	sevenResult, _ := foo.Lookup(7, "seven")
	otherResult, _ := foo.Lookup(8, "eight")

	// assert
	assert.Equal(t, "seven", sevenResult)
	assert.Equal(t, "anything", otherResult)
	assert.Empty(t, second.Call().Matchers())
}

func Test_Recorder_Close(t *testing.T) {
	// setup
	_, sub := GivenFooSubstitute(t)
	rec := sub.Recorder()

	// arrange
	rec.Push(substitute.Any()).Push(substitute.Nil())

	// act
	err := rec.Close()

	// assert
	assert.ErrorIs(t, err, substitute.ErrUnconsumedArgMatchers)
	assert.ErrorContains(t, err, "2 pending")
	assert.NoError(t, rec.Close(), "pending matchers are discarded by Close")
}

func Test_Recorder_ArgThat(t *testing.T) {
	// setup
	foo, sub := GivenFooSubstitute(t)
	rec := sub.Recorder()

	// arrange
	pending, err := fooRecorder{rec: rec}.Lookup(
		substitute.ArgThat(rec, "even", func(id int) bool { return id%2 == 0 }),
		substitute.AnyArg[string](rec),
	)
	require.NoError(t, err)
	pending.ReturnsResults(substitute.Results{"even", nil})

	// act
	even, _ := foo.Lookup(2, "x")
	odd, _ := foo.Lookup(3, "x")

	// assert
	assert.Equal(t, "even", even)
	assert.Empty(t, odd)
	assert.Equal(t, "Lookup(even, any)", pending.Spec().String())
}

func Test_Recorders_OnDifferentGoroutines_DoNotSeeEachOthersMatchers(t *testing.T) {
	// setup
	foo, sub := GivenFooSubstitute(t)
	const goroutines = 20

	// arrange
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)

		go func() {
			defer wg.Done()

			rec := sub.Recorder()
			key := fmt.Sprintf("key-%d", g)

			pending, err := fooRecorder{rec: rec}.Lookup(substitute.AnyArg[int](rec), substitute.ArgEq(rec, key))
			if err != nil {
				errs <- err
				return
			}

			pending.ReturnsResults(substitute.Results{key, nil})
			errs <- rec.Close()
		}()
	}

	wg.Wait()
	close(errs)

	// assert
	for err := range errs {
		assert.NoError(t, err)
	}

	for g := 0; g < goroutines; g++ {
		key := fmt.Sprintf("key-%d", g)
		result, _ := foo.Lookup(g, key)
		assert.Equal(t, key, result)
	}
}
