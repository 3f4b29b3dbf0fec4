package dtype_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonframe/dtype"
)

func TestCommonNumber(t *testing.T) {
	cases := []struct {
		a, b, want dtype.Kind
	}{
		{dtype.Int, dtype.Int, dtype.Int},
		{dtype.Int, dtype.Long, dtype.Long},
		{dtype.Long, dtype.Int, dtype.Long},
		{dtype.Int, dtype.Double, dtype.Double},
		{dtype.Float, dtype.Double, dtype.Double},
		{dtype.Int, dtype.Float, dtype.Double},
		{dtype.Long, dtype.Double, dtype.BigDecimal},
		{dtype.Double, dtype.Long, dtype.BigDecimal},
		{dtype.Long, dtype.BigInteger, dtype.BigInteger},
		{dtype.BigInteger, dtype.Double, dtype.BigDecimal},
		{dtype.Float, dtype.BigInteger, dtype.BigDecimal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, dtype.CommonNumber(c.a, c.b), "%s + %s", c.a, c.b)
	}
}

func TestCommonType(t *testing.T) {
	cases := []struct {
		in   []dtype.Type
		want string
	}{
		{nil, "Nothing"},
		{[]dtype.Type{dtype.Of(dtype.Int), dtype.Of(dtype.Int)}, "Int"},
		{[]dtype.Type{dtype.Of(dtype.Int), dtype.NullableOf(dtype.Nothing)}, "Int?"},
		{[]dtype.Type{dtype.Of(dtype.Int), dtype.Of(dtype.String)}, "Comparable"},
		{[]dtype.Type{dtype.Of(dtype.Bool), dtype.Of(dtype.Double), dtype.NullableOf(dtype.Nothing)}, "Comparable?"},
		{[]dtype.Type{dtype.Of(dtype.Int), dtype.ListOf(dtype.Of(dtype.Int))}, "Any"},
		{[]dtype.Type{dtype.Of(dtype.Row), dtype.Of(dtype.Frame)}, "Any"},
		{[]dtype.Type{dtype.ListOf(dtype.Of(dtype.Int)), dtype.ListOf(dtype.Of(dtype.Long))}, "List<Long>"},
		{[]dtype.Type{dtype.ListOf(dtype.Of(dtype.Nothing)), dtype.ListOf(dtype.Of(dtype.String))}, "List<String>"},
		{[]dtype.Type{dtype.ListOf(dtype.Of(dtype.Int)), dtype.ListOf(dtype.Of(dtype.String))}, "List<Comparable>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, dtype.CommonType(c.in...).String(), "%v", c.in)
	}
}

func TestCommonType_NothingIsIdentity(t *testing.T) {
	for k := dtype.Nothing; k <= dtype.Any; k++ {
		if k == dtype.List {
			continue
		}
		assert.Equal(t, dtype.Of(k), dtype.CommonType(dtype.Of(dtype.Nothing), dtype.Of(k)), k.String())
	}
}

func TestGuess(t *testing.T) {
	assert.Equal(t, "Nothing", dtype.Guess(nil).String())
	assert.Equal(t, "Nothing?", dtype.Guess([]any{nil, nil}).String())
	assert.Equal(t, "Int?", dtype.Guess([]any{int32(1), nil}).String())
	assert.Equal(t, "BigInteger", dtype.Guess([]any{int32(1), big.NewInt(7)}).String())
	assert.Equal(t, "List<Double?>", dtype.Guess([]any{[]any{1.5, nil}, []any{}}).String())
	assert.Equal(t, "Comparable", dtype.Guess([]any{"a", true}).String())
}

func TestConvert(t *testing.T) {
	assert.Equal(t, int64(3), dtype.Convert(int32(3), dtype.Of(dtype.Long)))
	assert.Equal(t, 3.0, dtype.Convert(int32(3), dtype.Of(dtype.Double)))
	assert.Equal(t, 0, big.NewInt(3).Cmp(dtype.Convert(int64(3), dtype.Of(dtype.BigInteger)).(*big.Int)))

	d, ok := dtype.Convert(1.5, dtype.Of(dtype.BigDecimal)).(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1.5")))

	// values outside the target representation are kept
	assert.Equal(t, "x", dtype.Convert("x", dtype.Of(dtype.Long)))
	assert.Nil(t, dtype.Convert(nil, dtype.Of(dtype.Long)))
}

func TestConvertAll_ListsAndIdentity(t *testing.T) {
	in := []any{int32(1), nil, int32(2)}
	out := dtype.ConvertAll(in, dtype.Of(dtype.Long))
	assert.Equal(t, []any{int64(1), nil, int64(2)}, out)
	assert.Equal(t, int32(1), in[0], "input is not modified")

	same := []any{"a", "b"}
	assert.Equal(t, &same[0], &dtype.ConvertAll(same, dtype.Of(dtype.String))[0])

	nested := dtype.ConvertAll([]any{[]any{int32(1)}}, dtype.ListOf(dtype.Of(dtype.Double)))
	assert.Equal(t, []any{[]any{1.0}}, nested)
}

func TestType_String(t *testing.T) {
	typ := dtype.ListOf(dtype.NullableOf(dtype.Int)).WithNullable(true)
	assert.Equal(t, "List<Int?>?", typ.String())
	b, err := typ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "List<Int?>?", string(b))
	assert.True(t, typ.Equal(dtype.ListOf(dtype.NullableOf(dtype.Int)).WithNullable(true)))
	assert.False(t, typ.Equal(dtype.ListOf(dtype.Of(dtype.Int)).WithNullable(true)))
}
