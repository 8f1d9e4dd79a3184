package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Shape(t *testing.T) {
	out, err := Encode([]Record{
		{ID: "a", Name: "Tom & Jerry <case>", Price: 1500, Image: "img/a.png", Qty: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a","name":"Tom & Jerry <case>","price":1500,"image":"img/a.png","qty":2}]`, out)
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestEncode_NFCNormalizes(t *testing.T) {
	// "e" + combining acute accent -> precomposed "é"
	out, err := Encode([]Record{{ID: "x", Name: "Cafe\u0301", Price: 1, Qty: 1}})
	require.NoError(t, err)
	assert.Contains(t, out, "Caf\u00e9")
}

func TestRoundTrip(t *testing.T) {
	in := []Record{
		{ID: "b", Name: "Charger", Price: 750, Image: "", Qty: 1},
		{ID: "a", Name: "Case", Price: 1500, Image: "img/a.png", Qty: 2},
	}
	text, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecode_AcceptsIntegralFloatsAndExtraFields(t *testing.T) {
	out, err := Decode(`[{"id":"a","name":"Case","price":1500.0,"image":"","qty":2,"note":"gift"}]`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1500), out[0].Price)
	assert.Equal(t, 2, out[0].Qty)
}

func TestDecode_EmptyArray(t *testing.T) {
	out, err := Decode("[]")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not json", "{oops"},
		{"null", "null"},
		{"object", `{"id":"a"}`},
		{"array of numbers", "[1,2]"},
		{"null entry", "[null]"},
		{"missing id", `[{"name":"x","price":1,"qty":1}]`},
		{"empty id", `[{"id":"","price":1,"qty":1}]`},
		{"numeric id", `[{"id":5,"price":1,"qty":1}]`},
		{"missing price", `[{"id":"a","qty":1}]`},
		{"negative price", `[{"id":"a","price":-1,"qty":1}]`},
		{"fractional price", `[{"id":"a","price":12.5,"qty":1}]`},
		{"string price", `[{"id":"a","price":"12","qty":1}]`},
		{"missing qty", `[{"id":"a","price":1}]`},
		{"zero qty", `[{"id":"a","price":1,"qty":0}]`},
		{"fractional qty", `[{"id":"a","price":1,"qty":1.5}]`},
		{"duplicate id", `[{"id":"a","price":1,"qty":1},{"id":"a","price":2,"qty":1}]`},
		{"duplicate id after NFC", `[{"id":"caf\u00e9","price":1,"qty":1},{"id":"cafe\u0301","price":2,"qty":1}]`},
		{"qty above max", `[{"id":"a","price":1,"qty":2147483648}]`},
		{"trailing data", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "error should wrap ErrMalformed: %v", err)
		})
	}
}

func TestDecode_NormalizesStrings(t *testing.T) {
	out, err := Decode(`[{"id":"cafe\u0301","name":"Cafe\u0301","price":1,"image":"","qty":1}]`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "caf\u00e9", out[0].ID)
	assert.Equal(t, "Caf\u00e9", out[0].Name)
}

func TestDecode_MaxQtyAccepted(t *testing.T) {
	text, err := Encode([]Record{{ID: "a", Price: 1, Qty: MaxQty}})
	require.NoError(t, err)

	out, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, MaxQty, out[0].Qty)
}
