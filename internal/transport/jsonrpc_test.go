package transport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/transport"
)

func TestParseRequest_Valid(t *testing.T) {
	req, err := transport.ParseRequest(strings.NewReader(`{"jsonrpc":"2.0","method":"world_create","params":{"name":"Aldervale"},"id":1}`))
	require.NoError(t, err)
	require.Equal(t, "world_create", req.Method)
	require.EqualValues(t, 1, req.ID)
}

func TestParseRequest_MissingMethod(t *testing.T) {
	_, err := transport.ParseRequest(strings.NewReader(`{"jsonrpc":"2.0","id":1}`))
	require.Error(t, err)
}

func TestParseRequest_MalformedJSON(t *testing.T) {
	_, err := transport.ParseRequest(strings.NewReader(`{not json`))
	require.Error(t, err)
}

func TestParseRequestBytes_Valid(t *testing.T) {
	req, err := transport.ParseRequestBytes([]byte(`{"jsonrpc":"2.0","method":"tools_list","id":"abc"}`))
	require.NoError(t, err)
	require.Equal(t, "tools_list", req.Method)
}

func TestNewError_ShapesResponse(t *testing.T) {
	resp := transport.NewError(5, transport.ErrMethodNotFound, "method not found", nil)
	require.Equal(t, "2.0", resp.JSONRPC)
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrMethodNotFound, resp.Error.Code)
	require.Nil(t, resp.Result)
}
