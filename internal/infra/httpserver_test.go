package infra

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerServeAndShutdown(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	defer cancel()

	seenBase := make(chan bool, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		select {
		case <-r.Context().Done():
			seenBase <- true
		case <-time.After(time.Second):
			seenBase <- false
		}
		_, _ = io.WriteString(w, "ok")
	})

	srv := NewHTTPServer(base, &Config{Port: "0"}, handler, zerolog.Nop())
	assert.Equal(t, ":0", srv.Addr())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))
	assert.True(t, <-seenBase, "request context did not follow the base context")

	ctx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)
}
