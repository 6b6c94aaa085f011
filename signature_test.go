package easyvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNewSignature(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		sig, err := NewSignature(P("a", TypeOf[int]()), P("b", nil))
		require.NoError(t, err)
		assert.Equal(t, 2, sig.Len())
		assert.Equal(t, []string{"a", "b"}, sig.Names())
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewSignature(P("", nil))
		assert.ErrorIs(t, err, ErrEmptyParamName)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := NewSignature(P("a", nil), P("a", nil))
		assert.ErrorIs(t, err, ErrDuplicateParam)
	})

	t.Run("AllProblemsReportedTogether", func(t *testing.T) {
		_, err := NewSignature(P("", nil), P("a", nil), P("a", nil))
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 2)
		assert.ErrorIs(t, err, ErrEmptyParamName)
		assert.ErrorIs(t, err, ErrDuplicateParam)
	})
}

func TestSignatureIndex(t *testing.T) {
	sig, err := NewSignature(P("a", nil), P("b", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, sig.Index("a"))
	assert.Equal(t, 1, sig.Index("b"))
	assert.Equal(t, -1, sig.Index("c"))
}

func TestSignatureBind(t *testing.T) {
	sig, err := NewSignature(P("a", nil), P("b", nil), P("c", nil))
	require.NoError(t, err)

	t.Run("PositionalZipByIndex", func(t *testing.T) {
		bound := sig.Bind([]any{1, 2}, nil)
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, bound)
	})

	t.Run("KeywordsMergeIn", func(t *testing.T) {
		bound := sig.Bind([]any{1}, map[string]any{"c": 3})
		assert.Equal(t, map[string]any{"a": 1, "c": 3}, bound)
	})

	t.Run("ExtraPositionalsIgnored", func(t *testing.T) {
		bound := sig.Bind([]any{1, 2, 3, 4}, nil)
		assert.Len(t, bound, 3)
	})
}

func TestSignatureMethodDetection(t *testing.T) {
	self, err := NewSignature(P("self", nil), P("x", nil))
	require.NoError(t, err)
	assert.True(t, self.isMethod())

	cls, err := NewSignature(P("cls", nil))
	require.NoError(t, err)
	assert.True(t, cls.isMethod())

	plain, err := NewSignature(P("x", nil), P("self", nil))
	require.NoError(t, err)
	assert.False(t, plain.isMethod())
}
