package entrypoint

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-export/internal/config"
	http_controllers "github.com/mrlokans/highlights-export/internal/http"
	"github.com/mrlokans/highlights-export/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestServeListener_ServesUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{Version: "test", MaxUploadBytes: 1 << 20})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, ln, router, time.Second, logger.Nop())
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pong")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeListener_ReturnsServeError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = ServeListener(context.Background(), ln, http.NotFoundHandler(), time.Second, logger.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve")
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := int32(ln.Addr().(*net.TCPAddr).Port)
	cfg := &config.Config{HTTP: config.HTTP{Host: "127.0.0.1", Port: port}}

	err = Serve(context.Background(), http.NotFoundHandler(), cfg, logger.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
