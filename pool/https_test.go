package pool

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPSClientRegisterSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/register", r.URL.Path)
		require.Equal(t, "tok", r.URL.Query().Get("auth_token"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(UserInfo{PoolAddress: "p", UserAddress: "u", Shares: 7})
	}))
	defer srv.Close()

	client := NewHTTPSClient(srv.URL, "tok")
	info, ok := client.Register()
	require.True(t, ok)
	require.Equal(t, UserInfo{PoolAddress: "p", UserAddress: "u", Shares: 7}, info)
}

func TestHTTPSClientGetTaskUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPSClient(srv.URL, "tok")
	_, ok := client.GetTask()
	require.False(t, ok)
}

func TestHTTPSClientSendAnswerAcceptedAndDeclined(t *testing.T) {
	for _, tc := range []struct {
		status int
		body   string
		want   bool
	}{
		{http.StatusOK, `{"status":"ACCEPTED"}`, true},
		{http.StatusAccepted, `{"status":"ACCEPTED"}`, true},
		{http.StatusBadRequest, `{"status":"DECLINED"}`, false},
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		client := NewHTTPSClient(srv.URL, "tok")
		status, ok := client.SendAnswer(Answer{GiverAddress: "g", Boc: []byte("x")})
		require.True(t, ok)
		require.Equal(t, tc.want, status.Accepted)

		srv.Close()
	}
}

func TestHTTPSClientSendAnswerTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPSClient(srv.URL, "tok")
	_, ok := client.SendAnswer(Answer{GiverAddress: "g"})
	require.False(t, ok)
}

func TestNewHTTPSClientAddsScheme(t *testing.T) {
	client := NewHTTPSClient("server.tonguys.com", "tok")
	require.True(t, strings.HasPrefix(client.baseURL, "https://"))
}
