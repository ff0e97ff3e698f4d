package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/repository/mocks"
	"github.com/Solifugus/storysplicer/internal/session"
	"github.com/Solifugus/storysplicer/internal/transport"
	"github.com/Solifugus/storysplicer/internal/trigger"
	"github.com/Solifugus/storysplicer/internal/wcp"
)

func newTestHandler() *wcp.Handler {
	worlds := &mocks.WorldRepository{}
	areas := &mocks.AreaRepository{}
	characters := &mocks.CharacterRepository{}
	items := &mocks.ItemRepository{}
	sessions := session.NewStore(nil)
	worlds.On("Create", mock.Anything, mock.Anything).Return(nil)

	k := kernel.New(worlds, areas, characters, items, sessions, trigger.NewEngine(), nil)
	return wcp.NewHandler(k, sessions,
		world.NewService(worlds, nil),
		area.NewService(areas, nil),
		character.NewService(characters, nil),
		item.NewService(items, nil),
	)
}

func TestDispatch_Success(t *testing.T) {
	handler := newTestHandler()
	params, _ := json.Marshal(map[string]string{"name": "Aldervale"})
	req := transport.Request{JSONRPC: "2.0", Method: "world_create", Params: params, ID: 1}

	resp := transport.Dispatch(context.Background(), handler, "", req, false)
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
}

func TestDispatch_UnknownMethod(t *testing.T) {
	handler := newTestHandler()
	req := transport.Request{JSONRPC: "2.0", Method: "not_a_tool", ID: 1}

	resp := transport.Dispatch(context.Background(), handler, "", req, false)
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrMethodNotFound, resp.Error.Code)
}

func TestDispatch_UnauthorizedWhenAuthRequired(t *testing.T) {
	handler := newTestHandler()
	params, _ := json.Marshal(map[string]string{"character_id": "c1", "area_id": "a2"})
	req := transport.Request{JSONRPC: "2.0", Method: "character_move", Params: params, ID: 1}

	resp := transport.Dispatch(context.Background(), handler, "bogus", req, true)
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrInvalidReq, resp.Error.Code)
}

func TestRunStdio_LineDelimited(t *testing.T) {
	handler := newTestHandler()
	in := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"world_create","params":{"name":"Aldervale"},"id":1}` + "\n")
	var out bytes.Buffer

	err := transport.RunStdio(context.Background(), handler, in, &out, nil)
	require.NoError(t, err)

	var resp transport.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Nil(t, resp.Error)
}

func TestRunStdio_ParseError(t *testing.T) {
	handler := newTestHandler()
	in := bytes.NewBufferString("{not json}\n")
	var out bytes.Buffer

	err := transport.RunStdio(context.Background(), handler, in, &out, nil)
	require.NoError(t, err)

	var resp transport.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrParseCode, resp.Error.Code)
}
