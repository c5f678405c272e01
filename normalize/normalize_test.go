package normalize_test

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/electiongw/normalize"
)

type candidateTuple struct {
	Addr      common.Address
	VoteCount *big.Int `json:"voteCount"`
	Name      string
	Secret    string `json:"-"`
	hidden    int
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestWideIntegers(t *testing.T) {
	above := new(big.Int).Add(big.NewInt(normalize.MaxSafeInteger), big.NewInt(1))
	huge, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"small big", big.NewInt(42), int64(42)},
		{"max safe", big.NewInt(normalize.MaxSafeInteger), normalize.MaxSafeInteger},
		{"above max safe", above, "9007199254740992"},
		{"below min safe", new(big.Int).Neg(above), "-9007199254740992"},
		{"uint256 max", huge, huge.String()},
		{"big value", *big.NewInt(7), int64(7)},
		{"nil big", (*big.Int)(nil), nil},
		{"uint64 overflow", uint64(1 << 60), "1152921504606846976"},
		{"int64 in range", int64(-5), int64(-5)},
		{"uint8", uint8(3), int64(3)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, normalize.Value(c.in))
		})
	}
}

func TestScalarsPassThrough(t *testing.T) {
	addr := common.HexToAddress("0x9642b23Ed1E01Df1092B92641051881a322F5D4E")
	assert.Equal(t, "0x9642b23Ed1E01Df1092B92641051881a322F5D4E", normalize.Value(addr))
	assert.Equal(t, "alice", normalize.Value("alice"))
	assert.Equal(t, true, normalize.Value(true))
	assert.Equal(t, 1.5, normalize.Value(1.5))
	assert.Equal(t, "0x0102", normalize.Value([]byte{1, 2}))
	assert.Equal(t, "0x0a0b", normalize.Value([2]byte{10, 11}))
}

func TestRecordsKeepOrder(t *testing.T) {
	in := candidateTuple{
		Addr:      common.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97"),
		VoteCount: big.NewInt(12),
		Name:      "Alice",
		Secret:    "x",
		hidden:    1,
	}
	got := normalize.Value(in)
	assert.JSONEq(t,
		`{"addr":"0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97","voteCount":12,"name":"Alice"}`,
		mustJSON(t, got),
	)
	// key order, not just key set
	assert.Equal(t,
		`{"addr":"0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97","voteCount":12,"name":"Alice"}`,
		mustJSON(t, got),
	)

	m := map[string]any{"b": big.NewInt(2), "a": []any{big.NewInt(1)}}
	assert.Equal(t, `{"a":[1],"b":2}`, mustJSON(t, normalize.Value(m)))

	r := normalize.Fields("z", big.NewInt(1), "y", "two", "dangling")
	assert.Equal(t, `{"z":1,"y":"two"}`, mustJSON(t, r))
}

func TestMapKeysOfAnyType(t *testing.T) {
	wide := new(big.Int).Lsh(big.NewInt(1), 70)
	assert.Equal(t,
		`{"1":"1180591620717411303424","2":7}`,
		mustJSON(t, normalize.Value(map[int]*big.Int{2: big.NewInt(7), 1: wide})),
	)

	owner := common.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
	assert.Equal(t,
		`{"0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97":"1180591620717411303424"}`,
		mustJSON(t, normalize.Value(map[common.Address]*big.Int{owner: wide})),
	)

	mixed := map[any]any{uint64(1 << 60): true, "a": nil}
	assert.Equal(t, `{"1152921504606846976":true,"a":null}`, mustJSON(t, normalize.Value(mixed)))
}

func TestNonFiniteFloats(t *testing.T) {
	got := normalize.Value([]any{math.NaN(), math.Inf(1), float32(math.Inf(-1)), 1.5})
	assert.Equal(t, `["NaN","+Inf","-Inf",1.5]`, mustJSON(t, got))
	assert.Equal(t, mustJSON(t, got), mustJSON(t, normalize.Value(got)))
}

func TestIdempotentOnNestedValues(t *testing.T) {
	above := new(big.Int).Lsh(big.NewInt(1), 70)
	nested := []any{
		big.NewInt(1),
		above,
		[]*big.Int{big.NewInt(3), nil},
		map[string]any{
			"tuple": candidateTuple{VoteCount: above, Name: "Bob"},
			"list":  []candidateTuple{{VoteCount: big.NewInt(9), Name: "Carol"}},
		},
		normalize.Fields("winner", normalize.Fields("voteCount", above)),
		"plain",
		false,
		nil,
		uint64(1 << 63),
	}

	once := normalize.Value(nested)
	twice := normalize.Value(once)
	assert.Equal(t, mustJSON(t, once), mustJSON(t, twice))
	assert.Equal(t,
		`[1,"1180591620717411303424",[3,null],{"list":[{"addr":"0x0000000000000000000000000000000000000000","voteCount":9,"name":"Carol"}],"tuple":{"addr":"0x0000000000000000000000000000000000000000","voteCount":"1180591620717411303424","name":"Bob"}},{"winner":{"voteCount":"1180591620717411303424"}},"plain",false,null,"9223372036854775808"]`,
		mustJSON(t, once),
	)
}

func TestNeverPanics(t *testing.T) {
	var nilMap map[string]int
	var nilSlice []string
	var iface any = (*candidateTuple)(nil)
	inputs := []any{
		nilMap, nilSlice, iface, struct{}{}, map[int]string{1: "a"},
		make(chan int), func() {}, complex(1, 2), (*normalize.Record)(nil),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, err := json.Marshal(normalize.Value(in))
			assert.NoError(t, err, "%T", in)
		})
	}
	assert.Equal(t, []any{}, normalize.Value(nilSlice))
	assert.Nil(t, normalize.Value(iface))
}
