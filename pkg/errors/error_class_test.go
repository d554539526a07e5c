package errors

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

func Test_GetClass_UnclassifiedError(t *testing.T) {
	t.Parallel()

	err1 := fmt.Errorf("err1")

	assert.Equal(t, ClassUndefined, GetClass(err1))
	assert.Equal(t, ClassUndefined, GetClass(nil))
}

func Test_Classify(t *testing.T) {
	t.Parallel()

	err1 := fmt.Errorf("err1")

	for _, tc := range []struct {
		class Class
	}{
		{ClassTableLookup},
		{ClassPropertyQuery},
		{ClassEngineIO},
		{ClassConfig},
	} {
		tc := tc
		t.Run(string(tc.class), func(t *testing.T) {
			t.Parallel()

			// EXERCISE
			classifiedErr := Classify(err1, tc.class)

			// VERIFY
			assert.Equal(t, tc.class, GetClass(classifiedErr))
			assert.Equal(t, tc.class, GetClass(fmt.Errorf("outer: %w", classifiedErr)))
			assert.Equal(t, err1.Error(), classifiedErr.Error())
		})
	}
}

func Test_Classify_innermostWins(t *testing.T) {
	t.Parallel()

	// SETUP
	inner := Classify(fmt.Errorf("err1"), ClassEngineIO)

	// EXERCISE
	result := Classify(Recoverable(inner), ClassPropertyQuery)

	// VERIFY
	assert.Equal(t, ClassEngineIO, GetClass(result))
}

func Test_Classify_nil(t *testing.T) {
	t.Parallel()

	assert.NilError(t, Classify(nil, ClassConfig))
}
