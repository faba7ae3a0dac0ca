package pipeline

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Abdulbasit24075/omnifs/internal/wire"
)

type echoDispatcher struct{}

func (echoDispatcher) Dispatch(req wire.Request) wire.Response {
	return wire.Success(req.RequestID, map[string]any{"echo": req.Operation})
}

func TestPipelineServesOneRequestPerConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	p := New(ln, echoDispatcher{})
	p.Start()
	defer p.Stop()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(`{"operation":"ping","request_id":"r1"}`))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	var resp wire.Response
	require.NoError(t, json.Unmarshal(buf[:n], &resp))
	require.Equal(t, "r1", resp.RequestID)
	require.Equal(t, wire.StatusSuccess, resp.Status)
}

func TestPipelineRespondsWithErrorOnMalformedJSON(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	p := New(ln, echoDispatcher{})
	p.Start()
	defer p.Stop()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(`not json`))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	var resp wire.Response
	require.NoError(t, json.Unmarshal(buf[:n], &resp))
	require.Equal(t, wire.StatusError, resp.Status)
}
