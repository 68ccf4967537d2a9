package pool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnswerJSONBijection(t *testing.T) {
	a := Answer{GiverAddress: "G", Boc: []byte{0x00, 0xFF, 0x10}}

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, `{"giver_address":"G","boc_data":"AP8Q"}`, string(raw))

	var decoded Answer
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, a, decoded)
}

func TestTaskExpiresAcceptsStringOrNumber(t *testing.T) {
	var fromString Task
	require.NoError(t, json.Unmarshal([]byte(`{
		"seed":"0x1","complexity":"0x2","giver_address":"g","pool_address":"p","expires":"1700000000"
	}`), &fromString))
	require.EqualValues(t, 1700000000, fromString.Expires)

	var fromNumber Task
	require.NoError(t, json.Unmarshal([]byte(`{
		"seed":"0x1","complexity":"0x2","giver_address":"g","pool_address":"p","expires":1700000000
	}`), &fromNumber))
	require.EqualValues(t, 1700000000, fromNumber.Expires)

	require.Equal(t, fromString, fromNumber)
}

func TestTaskMissingExpiresIsDecodeError(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"seed":"0x1","complexity":"0x2","giver_address":"g","pool_address":"p"}`), &task)
	require.Error(t, err)
}

func TestAnswerStatusLossyRoundTrip(t *testing.T) {
	var status AnswerStatus
	require.NoError(t, json.Unmarshal([]byte(`{"status":"SOMETHING_ELSE"}`), &status))
	require.False(t, status.Accepted)

	raw, err := json.Marshal(status)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"DECLINED"}`, string(raw))
}

func TestUserInfoJSONRoundTrip(t *testing.T) {
	info := UserInfo{PoolAddress: "p", UserAddress: "u", Shares: 42}
	raw, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded UserInfo
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, info, decoded)
}
