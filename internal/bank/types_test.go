package bank

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		isIndex bool
		isSet   bool
		index   int
		indices []int
		text    string
	}{
		{name: "index", input: `2`, isIndex: true, index: 2, text: "2"},
		{name: "set", input: `[3, 1]`, isSet: true, indices: []int{3, 1}},
		{name: "text", input: `"Paris"`, text: "Paris"},
		{name: "decimal", input: `3.14`, text: "3.14"},
		{name: "integral float", input: `1.0`, isIndex: true, index: 1, text: "1.0"},
		{name: "exponent", input: `2e0`, isIndex: true, index: 2, text: "2e0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Answer
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.isIndex, a.IsIndex())
			assert.Equal(t, tt.isSet, a.IsSet())
			if tt.isIndex {
				assert.Equal(t, tt.index, a.Index)
			}
			if tt.isSet {
				assert.Equal(t, tt.indices, a.Indices)
			}
			assert.Equal(t, tt.text, a.Text)
		})
	}
}

func TestAnswer_UnmarshalJSON_Invalid(t *testing.T) {
	var a Answer
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestAnswer_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(SetAnswer(0, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `[0, 2]`, string(out))

	out, err = json.Marshal(IndexAnswer(1))
	require.NoError(t, err)
	assert.JSONEq(t, `1`, string(out))
}

func TestQuestion_CloneDoesNotShare(t *testing.T) {
	q := Question{
		Kind:    KindMultiSelect,
		Options: []string{"a", "b"},
		Correct: SetAnswer(0, 1),
	}
	c := q.Clone()
	c.Options[0] = "changed"
	c.Correct.Indices[0] = 9

	assert.Equal(t, "a", q.Options[0])
	assert.Equal(t, 0, q.Correct.Indices[0])
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("")
	assert.True(t, ok)
	assert.Equal(t, KindSingle, k)

	k, ok = ParseKind("Multiple_Select")
	assert.True(t, ok)
	assert.Equal(t, KindMultiSelect, k)

	_, ok = ParseKind("essay")
	assert.False(t, ok)
}

func TestStore_Get(t *testing.T) {
	store, err := New([]Question{
		{Prompt: "Q", Options: []string{"a", "b"}, Correct: IndexAnswer(0)},
	})
	require.NoError(t, err)

	q, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Q", q.Prompt)

	_, err = store.Get(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = store.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store, err := New([]Question{
		{Prompt: "Q", Options: []string{"a", "b"}, Correct: IndexAnswer(0)},
	})
	require.NoError(t, err)

	q, _ := store.Get(0)
	q.Options[0] = "mutated"

	again, _ := store.Get(0)
	assert.Equal(t, "a", again.Options[0])
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyBank)
}
