package pipelineerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOfUnwrapsWrappedPipelineError(t *testing.T) {
	base := errors.New("boom")
	wrapped := fmtErrorf(Source("read_properties", base))

	cat, ok := CategoryOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CategorySource, cat)
}

func TestCategoryOfFalseForPlainError(t *testing.T) {
	_, ok := CategoryOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("cause")
	err := Configuration("load_config", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorIsMatchesSameCategory(t *testing.T) {
	a := Destination("file", errors.New("a"))
	b := Destination("search", errors.New("b"))
	assert.True(t, errors.Is(a, b))

	c := Schema("decode", errors.New("c"))
	assert.False(t, errors.Is(a, c))
}

func TestWithContextAttachesKeyValue(t *testing.T) {
	err := Source("read", errors.New("fail")).WithContext("file", "properties.jsonl")
	assert.Equal(t, "properties.jsonl", err.Context["file"])
}

func fmtErrorf(err *Error) error {
	return wrapOnce{err}
}

// wrapOnce simulates an external wrapper layer (e.g. fmt.Errorf("%w", ...))
// around a pipeline error, so CategoryOf must unwrap through it.
type wrapOnce struct{ err error }

func (w wrapOnce) Error() string { return w.err.Error() }
func (w wrapOnce) Unwrap() error { return w.err }
