package errors

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

func Test_ErrorMessage(t *testing.T) {
	t.Parallel()

	err := Errorf(fmt.Errorf("%s", "unknown"), "%s", "bla")
	assert.Equal(t, "bla: unknown", err.Error())
}

func Test_ErrorMessage_nilCause(t *testing.T) {
	t.Parallel()

	err := Errorf(nil, "table %s", "t1")
	assert.Equal(t, "table t1", err.Error())
	assert.Assert(t, !err.IsNotFound())
	assert.Assert(t, err.Unwrap() == nil)
}

func Test_Error_IsNotFound(t *testing.T) {
	t.Parallel()

	// SETUP
	cause := NotFound("table")

	// EXERCISE
	err := Errorf(cause, "%s", "lookup failed")

	// VERIFY
	assert.Assert(t, err.IsNotFound())
	assert.Equal(t, "table not found", cause.Error())
	assert.Equal(t, fmt.Sprintf("lookup failed: %s", cause.Error()), err.Error())
	assert.Assert(t, errors.Is(err, cause))
}

func Test_IsNotFound_throughAnnotations(t *testing.T) {
	t.Parallel()

	// SETUP
	cause := NotFound("shard")

	// EXERCISE
	err := Recoverable(Classify(pkgerrors.Wrap(cause, "outer"), ClassTableLookup))

	// VERIFY
	assert.Assert(t, IsNotFound(err))
	assert.Assert(t, !IsNotFound(fmt.Errorf("other")))
	assert.Assert(t, !IsNotFound(nil))
}
