package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zeta":  int64(1),
		"alpha": "a",
		"mid":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","mid":true,"zeta":1}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("x1<=x2 & x3")
	require.NoError(t, err)
	assert.Equal(t, `"x1<=x2 & x3"`, string(data))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" as e + combining acute accent
	decomposed := "e\u0301"
	data, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(data))
}

func TestMarshalCanonical_IDSlices(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"ids":     []int64{3, 1, 2},
		"symbols": []string{"p1", "p2"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[3,1,2],"symbols":["p1","p2"]}`, string(data))

	data, err = MarshalCanonical([]int64{7})
	require.NoError(t, err)
	assert.Equal(t, `[7]`, string(data))

	data, err = MarshalCanonical([]any{map[string]any{"ids": []int64{}, "skipped": []string{"x"}}})
	require.NoError(t, err)
	assert.Equal(t, `[{"ids":[],"skipped":["x"]}]`, string(data))
}

func TestMarshalCanonical_RejectsFloatsAndNull(t *testing.T) {
	_, err := MarshalCanonical(1.5)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)
}

func TestSortedKeys_UTF16Order(t *testing.T) {
	// U+FF61 sorts before U+1F600 in UTF-8 byte order but after it in UTF-16.
	obj := IRObject{
		"\U0001F600": IRInt(1),
		"\uFF61":     IRInt(2),
		"a":          IRInt(3),
	}
	assert.Equal(t, []string{"a", "\U0001F600", "\uFF61"}, obj.SortedKeys())
}

func TestSymbolValue(t *testing.T) {
	assert.Equal(t, IRInt(1), SymbolValue(true))
	assert.Equal(t, IRInt(0), SymbolValue(false))
}

func TestToIRValue(t *testing.T) {
	v, err := ToIRValue(map[string]any{"list": []any{"a", 1, true}})
	require.NoError(t, err)
	assert.Equal(t, IRObject{"list": IRArray{IRString("a"), IRInt(1), IRBool(true)}}, v)

	v, err = ToIRValue(map[string]any{"ids": []int64{2, 1}, "symbols": []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, IRObject{
		"ids":     IRArray{IRInt(2), IRInt(1)},
		"symbols": IRArray{IRString("p1")},
	}, v)

	_, err = ToIRValue(2.5)
	assert.Error(t, err)
}
