package easyvalidate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryDispatch(t *testing.T) {
	t.Run("AnyHint", func(t *testing.T) {
		v, err := NewValidator(Any)
		require.NoError(t, err)
		assert.Equal(t, validateAny, v.kind)
	})

	t.Run("EmptyInterfaceIsAny", func(t *testing.T) {
		v, err := NewValidator(TypeOf[any]())
		require.NoError(t, err)
		assert.Equal(t, validateAny, v.kind)
	})

	t.Run("PlainTypeIsGeneric", func(t *testing.T) {
		v, err := NewValidator(TypeOf[int]())
		require.NoError(t, err)
		assert.Equal(t, validateGeneric, v.kind)
		assert.Empty(t, v.SubValidators())
	})

	t.Run("MapTypeDecomposes", func(t *testing.T) {
		v, err := NewValidator(TypeOf[map[string]int]())
		require.NoError(t, err)
		assert.Equal(t, validateMapping, v.kind)
		assert.Len(t, v.SubValidators(), 2)
	})

	t.Run("SliceTypeDecomposes", func(t *testing.T) {
		v, err := NewValidator(TypeOf[[]int]())
		require.NoError(t, err)
		assert.Equal(t, validateSequence, v.kind)
		assert.Len(t, v.SubValidators(), 1)
	})

	t.Run("StringIsAtomic", func(t *testing.T) {
		v, err := NewValidator(TypeOf[string]())
		require.NoError(t, err)
		assert.Equal(t, validateGeneric, v.kind)
	})

	t.Run("ByteSliceIsAtomic", func(t *testing.T) {
		v, err := NewValidator(TypeOf[[]byte]())
		require.NoError(t, err)
		assert.Equal(t, validateGeneric, v.kind)
	})

	t.Run("SubValidatorArityMatchesHint", func(t *testing.T) {
		v, err := NewValidator(Union(TypeOf[int](), TypeOf[string](), TypeOf[bool]()))
		require.NoError(t, err)
		assert.Len(t, v.SubValidators(), 3)
	})
}

func TestFactoryConstructionErrors(t *testing.T) {
	t.Run("NilHint", func(t *testing.T) {
		_, err := NewValidator(nil)
		assert.ErrorIs(t, err, ErrUnsupportedHint)
	})

	t.Run("NilRuntimeType", func(t *testing.T) {
		_, err := NewValidator(Type(nil))
		assert.ErrorIs(t, err, ErrUnsupportedHint)
	})

	t.Run("EmptyUnion", func(t *testing.T) {
		_, err := NewValidator(Union())
		assert.ErrorIs(t, err, ErrUnsupportedHint)
	})

	t.Run("EmptyLiteral", func(t *testing.T) {
		_, err := NewValidator(Literal())
		assert.ErrorIs(t, err, ErrUnsupportedHint)
	})

	t.Run("BadUnionMemberSurfacesAtConstruction", func(t *testing.T) {
		_, err := NewValidator(Union(TypeOf[int](), Type(nil)))
		assert.ErrorIs(t, err, ErrUnsupportedHint)
	})
}

func TestGenericValidation(t *testing.T) {
	v, err := NewValidator(TypeOf[int]())
	require.NoError(t, err)

	assert.NoError(t, v.Validate(5, false))
	assert.NoError(t, v.Validate(5, true))

	err = v.Validate("five", false)
	require.Error(t, err)
	assert.EqualError(t, err, `failed to validate: Expected int not string`)

	assert.Error(t, v.Validate(nil, false))
}

func TestInterfaceHint(t *testing.T) {
	v, err := NewValidator(TypeOf[fmt.Stringer]())
	require.NoError(t, err)

	assert.NoError(t, v.Validate(uuid.New(), false))
	assert.Error(t, v.Validate(42, false))
}

func TestUnionValidation(t *testing.T) {
	v, err := NewValidator(Union(TypeOf[int](), TypeOf[string]()))
	require.NoError(t, err)

	t.Run("FirstMemberMatches", func(t *testing.T) {
		assert.NoError(t, v.Validate(5, false))
	})

	t.Run("LaterMemberMatches", func(t *testing.T) {
		assert.NoError(t, v.Validate("five", false))
	})

	t.Run("NoMemberMatches", func(t *testing.T) {
		err := v.Validate(1.5, false)
		require.Error(t, err)
		assert.ErrorContains(t, err, "Expected int | string not float64")
	})

	t.Run("MembersListedInDeclarationOrder", func(t *testing.T) {
		reversed, err := NewValidator(Union(TypeOf[string](), TypeOf[int]()))
		require.NoError(t, err)
		verr := reversed.Validate(1.5, false)
		assert.ErrorContains(t, verr, "Expected string | int")
	})

	t.Run("DeepFlagForwardedToMembers", func(t *testing.T) {
		nested, err := NewValidator(Union(SliceOf(TypeOf[int]()), TypeOf[string]()))
		require.NoError(t, err)
		// shallow accepts any slice; deep inspects the elements
		assert.NoError(t, nested.Validate([]any{"x"}, false))
		assert.Error(t, nested.Validate([]any{"x"}, true))
	})
}

func TestLiteralValidation(t *testing.T) {
	v, err := NewValidator(Literal("read", "write"))
	require.NoError(t, err)

	// only the runtime type of the first constant is checked, not value
	// membership; see the Literal doc
	assert.NoError(t, v.Validate("read", false))
	assert.NoError(t, v.Validate("anything", false))
	assert.Error(t, v.Validate(42, false))
}

func TestSequenceValidation(t *testing.T) {
	v, err := NewValidator(SliceOf(TypeOf[int]()))
	require.NoError(t, err)

	t.Run("OuterTypeOnly", func(t *testing.T) {
		assert.Error(t, v.Validate(5, false))
		assert.Error(t, v.Validate("not a slice", false))
	})

	t.Run("ShallowNeverDescends", func(t *testing.T) {
		assert.NoError(t, v.Validate([]any{"wrong", "types"}, false))
	})

	t.Run("DeepChecksEveryElement", func(t *testing.T) {
		assert.NoError(t, v.Validate([]any{1, 2, 3}, true))
		err := v.Validate([]any{1, "x"}, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, `Expected "int" but got "string"`)
	})

	t.Run("ConcreteSliceType", func(t *testing.T) {
		concrete, err := NewValidator(TypeOf[[]int]())
		require.NoError(t, err)
		assert.NoError(t, concrete.Validate([]int{1, 2}, true))
		assert.Error(t, concrete.Validate([]string{"a"}, false))
	})

	t.Run("ArraysCountAsSequences", func(t *testing.T) {
		assert.NoError(t, v.Validate([2]any{1, 2}, true))
	})
}

func TestMappingValidation(t *testing.T) {
	v, err := NewValidator(MapOf(TypeOf[string](), TypeOf[int]()))
	require.NoError(t, err)

	t.Run("OuterTypeOnly", func(t *testing.T) {
		assert.Error(t, v.Validate([]int{1}, false))
	})

	t.Run("ShallowNeverDescends", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[any]any{1: "backwards"}, false))
	})

	t.Run("DeepChecksKeysAndValues", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]any{"a": 1}, true))

		err := v.Validate(map[any]any{"a": "not an int"}, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, "Found invalid element in data.")

		assert.Error(t, v.Validate(map[any]any{1: 2}, true))
	})
}

// Scenario from the package's doctests: a nested sequence annotation where
// one inner element has the wrong type.
func TestNestedSequenceScenario(t *testing.T) {
	v, err := NewValidator(SliceOf(SliceOf(TypeOf[int]())))
	require.NoError(t, err)

	assert.NoError(t, v.Validate([]any{[]any{1, 2}, []any{3, 4}}, true))

	verr := v.Validate([]any{[]any{1, 2}, []any{3, "x"}}, true)
	require.Error(t, verr)
	assert.ErrorContains(t, verr, `Expected "[]int"`)
	assert.ErrorContains(t, verr, "string")
}

func TestUnionInsideMappingScenario(t *testing.T) {
	intOrString := Union(TypeOf[int](), TypeOf[string]())
	v, err := NewValidator(MapOf(intOrString, SliceOf(intOrString)))
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]any{"a": []any{1, "b"}}, true))
	assert.Error(t, v.Validate(map[any]any{3.5: []any{1}}, true))
}

func TestValidatorDescriptions(t *testing.T) {
	cases := []struct {
		hint *TypeHint
		want string
	}{
		{Any, "Any"},
		{TypeOf[int](), "int"},
		{TypeOf[[]int](), "[]int"},
		{Union(TypeOf[int](), TypeOf[string]()), "int | string"},
		{Literal("a", "b"), "string"},
		{SliceOf(Union(TypeOf[int](), TypeOf[string]())), "[](int | string)"},
		{MapOf(TypeOf[string](), TypeOf[int]()), "map[string]int"},
	}
	for _, tc := range cases {
		v, err := NewValidator(tc.hint)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v.String())
	}
}

func TestInstanceOf(t *testing.T) {
	assert.True(t, instanceOf(5, reflect.TypeOf(0)))
	assert.False(t, instanceOf("s", reflect.TypeOf(0)))
	assert.False(t, instanceOf(nil, reflect.TypeOf(0)))
	assert.True(t, instanceOf(uuid.New(), reflect.TypeOf((*fmt.Stringer)(nil)).Elem()))
}
