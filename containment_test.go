package easyvalidate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapContainment(t *testing.T) {
	fn := func(x any) error { return nil }
	sig, err := NewSignature(P("x", nil))
	require.NoError(t, err)

	t.Run("SliceMembership", func(t *testing.T) {
		f := Must(WrapContainment(fn, sig, map[string]any{
			"x": []string{"red", "green", "blue"},
		})).(func(any) error)

		assert.NoError(t, f("green"))

		err := f("purple")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "x", verr.Param)
		assert.ErrorContains(t, err, "not found among the allowed values")
	})

	t.Run("MapKeyMembership", func(t *testing.T) {
		f := Must(WrapContainment(fn, sig, map[string]any{
			"x": map[string]int{"a": 1, "b": 2},
		})).(func(any) error)

		assert.NoError(t, f("a"))
		assert.Error(t, f("z"))
		assert.Error(t, f(1)) // wrong key type is simply not a member
	})

	t.Run("StringSubstringMembership", func(t *testing.T) {
		f := Must(WrapContainment(fn, sig, map[string]any{"x": "abcdef"})).(func(any) error)

		assert.NoError(t, f("cde"))
		assert.Error(t, f("xyz"))
		assert.Error(t, f(5))
	})

	t.Run("DeepEqualElementComparison", func(t *testing.T) {
		id := uuid.New()
		f := Must(WrapContainment(fn, sig, map[string]any{
			"x": []uuid.UUID{id},
		})).(func(any) error)

		assert.NoError(t, f(id))
		assert.Error(t, f(uuid.New()))
	})
}

func TestWrapContainmentConstructionErrors(t *testing.T) {
	fn := func(x any) error { return nil }
	sig, err := NewSignature(P("x", nil))
	require.NoError(t, err)

	t.Run("UnknownParameter", func(t *testing.T) {
		_, err := WrapContainment(fn, sig, map[string]any{"y": []int{1}})
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})

	t.Run("CollectionWithoutMembership", func(t *testing.T) {
		_, err := WrapContainment(fn, sig, map[string]any{"x": 42})
		assert.ErrorIs(t, err, ErrNotAContainer)
	})

	t.Run("NilCollection", func(t *testing.T) {
		_, err := WrapContainment(fn, sig, map[string]any{"x": nil})
		assert.ErrorIs(t, err, ErrNotAContainer)
	})
}
