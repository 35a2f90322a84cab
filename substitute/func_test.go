package substitute_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/substitute-go/substitute"
)

func Test_ForFunc_ReturnsConfiguredResults(t *testing.T) {
	// setup
	greet, sub, err := substitute.ForFunc[func(string) string]()
	require.NoError(t, err)

	// arrange
	sub.When(substitute.FuncMember, "Ada").Returns("Hello Ada")

	// act
	configured := greet("Ada")
	unconfigured := greet("Bob")

	// assert
	assert.Equal(t, "Hello Ada", configured)
	assert.Empty(t, unconfigured)
	assert.Equal(t, "func(string) string", sub.Name())
	assert.NoError(t, sub.Received(substitute.Once(), substitute.FuncMember, "Bob"))
}

func Test_ForFunc_When_TypeIsNotAFunc_Fails(t *testing.T) {
	// act
	_, sub, err := substitute.ForFunc[string]()

	// assert
	assert.ErrorIs(t, err, substitute.ErrNotAFuncType)
	assert.Nil(t, sub)
}

func Test_ForFunc_WithMultipleResults_ConvertsAndFillsZeroValues(t *testing.T) {
	// setup
	find, sub, err := substitute.ForFunc[func(id int) (int64, error)](substitute.WithName("find"))
	require.NoError(t, err)

	// arrange
	sub.When(substitute.FuncMember, 1).ReturnsResults(substitute.Results{42})
	sub.When(substitute.FuncMember, 2).ReturnsResults(substitute.Results{nil, errors.New("not found")})

	// act
	found, foundErr := find(1)
	missing, missingErr := find(2)

	// assert
	assert.Equal(t, int64(42), found)
	assert.NoError(t, foundErr)
	assert.Zero(t, missing)
	assert.EqualError(t, missingErr, "not found")
	assert.Equal(t, "find", sub.Name())
}

func Test_ForFunc_When_ResultHasTheWrongType_Panics(t *testing.T) {
	// setup
	count, sub, err := substitute.ForFunc[func() int]()
	require.NoError(t, err)

	// arrange
	sub.When(substitute.FuncMember).Returns("many")

	// act & assert
	defer func() {
		recovered, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, recovered, substitute.ErrResultType)
	}()

	count()
}

func Test_ForFunc_When_ResultDoesNotFitTheResultType_Panics(t *testing.T) {
	// setup
	level, sub, err := substitute.ForFunc[func() uint8]()
	require.NoError(t, err)

	// arrange
	sub.When(substitute.FuncMember).Returns(300)

	// act & assert
	defer func() {
		recovered, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, recovered, substitute.ErrResultType)
		assert.ErrorContains(t, recovered, "does not fit uint8")
	}()

	level()
}

func Test_ForFunc_When_FuncIsVariadic_RecordsEachVariadicArgument(t *testing.T) {
	// setup
	join, sub, err := substitute.ForFunc[func(sep string, parts ...string) string]()
	require.NoError(t, err)

	// arrange
	sub.When(substitute.FuncMember, "-", "a", "b").Returns("a-b")

	// act
	joined := join("-", "a", "b")
	other := join("-", []string{"a", "b", "c"}...)
	empty := join("-")

	// assert
	assert.Equal(t, "a-b", joined)
	assert.Empty(t, other)
	assert.Empty(t, empty)
	assert.NoError(t, sub.Received(substitute.Once(), substitute.FuncMember, "-", "a", "b"))
	assert.NoError(t, sub.Received(substitute.Once(), substitute.FuncMember, "-", "a", "b", "c"))
	assert.NoError(t, sub.Received(substitute.Once(), substitute.FuncMember, "-"))
}

func Test_ForFunc_When_CreatedAndCalledFromManyGoroutines_EachFuncAnswersForItself(t *testing.T) {
	const goroutines = 20
	const callsPerGoroutine = 1000

	var wg sync.WaitGroup
	failures := make(chan string, goroutines)

	for n := 0; n < goroutines; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			source, sub, err := substitute.ForFunc[func() string]()
			if err != nil {
				failures <- err.Error()
				return
			}

			sub.When(substitute.FuncMember).Returns("value")

			for n := 0; n < callsPerGoroutine; n++ {
				if got := source(); got != "value" {
					failures <- got
					return
				}
			}

			if err := sub.Received(substitute.Exactly(callsPerGoroutine), substitute.FuncMember); err != nil {
				failures <- err.Error()
			}
		}()
	}

	wg.Wait()
	close(failures)

	for failure := range failures {
		assert.Fail(t, failure)
	}
}
