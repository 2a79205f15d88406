package ledger

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

const storeCodeRawLog = `[{"events":[{"type":"message","attributes":[{"key":"action","value":"store-code"}]},{"type":"store_code","attributes":[{"key":"code_id","value":"42"}]}]}]`

const instantiateEventsRawLog = `[{"events":[{"type":"instantiate","attributes":[{"key":"contract_address","value":"wasm1qyqszqgpqyqszqgpqyqszqgpqyqszqgp28hfx6"},{"key":"code_id","value":"3"}]}]}]`

func TestExtractCodeID(t *testing.T) {
	codeID, err := ExtractCodeID(storeCodeRawLog)
	require.NoError(t, err)
	require.Equal(t, uint64(42), codeID)
}

func TestExtractCodeID_NoMarker(t *testing.T) {
	_, err := ExtractCodeID(`[{"events":[{"attributes":[{"key":"action","value":"send"}]}]}]`)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "code id", malformed.What)
}

func TestExtractCodeID_NotJSON(t *testing.T) {
	_, err := ExtractCodeID("out of gas in location: wasm contract")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestExtractContractAddress(t *testing.T) {
	address, err := ExtractContractAddress(instantiateEventsRawLog)
	require.NoError(t, err)
	require.Equal(t, "wasm1qyqszqgpqyqszqgpqyqszqgpqyqszqgp28hfx6", address)
}

func TestExtractContractAddress_BadFormat(t *testing.T) {
	// Marker present but the value is not a well-formed address.
	_, err := ExtractContractAddress(`[{"attributes":[{"key":"contract_address","value":"NOT-AN-ADDRESS"}]}]`)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestFindFirstMatch_TraversalOrder(t *testing.T) {
	// Two matches: the list element comes first in traversal order.
	raw := `{"events":[{"attributes":[{"key":"code_id","value":"1"}]},{"attributes":[{"key":"code_id","value":"2"}]}]}`
	tree, err := parseTree([]byte(raw))
	require.NoError(t, err)

	node := findFirstMatch(tree, regexp.MustCompile(".*code_id.*"))
	require.NotNil(t, node)
	value, ok := node.field("value")
	require.True(t, ok)
	require.Equal(t, "1", value.Str)
}

func TestFindFirstMatch_NoMatch(t *testing.T) {
	tree, err := parseTree([]byte(`{"events":[{"attributes":[{"key":"k","value":"v"}]}]}`))
	require.NoError(t, err)
	require.Nil(t, findFirstMatch(tree, regexp.MustCompile(".*code_id.*")))
}

func TestFindFirstMatch_MatchesValueNotKey(t *testing.T) {
	// The pattern appears only as a key, never as a value: no match.
	tree, err := parseTree([]byte(`{"code_id":{"other":"field"}}`))
	require.NoError(t, err)
	require.Nil(t, findFirstMatch(tree, regexp.MustCompile(".*code_id.*")))
}

func TestParseTree_RejectsTrailingData(t *testing.T) {
	_, err := parseTree([]byte(`[]garbage`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "trailing data")

	_, err = parseTree([]byte(`{"a":"1"} {"b":"2"}`))
	require.Error(t, err)

	_, err = ExtractCodeID(storeCodeRawLog + `{"extra":true}`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseTree_PreservesKeyOrder(t *testing.T) {
	tree, err := parseTree([]byte(`{"b":"1","a":"2","c":"3"}`))
	require.NoError(t, err)
	require.Equal(t, MappingNode, tree.Kind)
	require.Len(t, tree.Fields, 3)
	require.Equal(t, "b", tree.Fields[0].Key)
	require.Equal(t, "a", tree.Fields[1].Key)
	require.Equal(t, "c", tree.Fields[2].Key)
}

func TestValidateAddressFormat(t *testing.T) {
	tests := []struct {
		name    string
		address string
		prefix  string
		want    bool
	}{
		{"valid with default prefix", "wasm1qyqszqgpqyqszqgpqyqszqgpqyqszqgp28hfx6", "", true},
		{"valid with explicit prefix", "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgp28hfx6", "cosmos", true},
		{"too short", "cosmos1abc", "", false},
		{"wrong prefix", "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgp28hfx6", "wasm", false},
		{"uppercase suffix", "cosmos1QYQSZQGPQYQSZQGPQYQSZQGPQYQSZQGP28HFX6", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidateAddressFormat(tt.address, tt.prefix))
		})
	}
}
