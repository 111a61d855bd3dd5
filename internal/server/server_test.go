package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
)

func TestServerStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cfg := &config.Config{
		ServerHost:      "127.0.0.1",
		ServerPort:      "0",
		ShutdownTimeout: 2 * time.Second,
	}
	srv := New(cfg, router, zap.NewNop())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/api/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestServerStartFailsOnBusyPort(t *testing.T) {
	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: "0"}
	first := New(cfg, http.NotFoundHandler(), zap.NewNop())
	go func() { _ = first.Start() }()
	require.Eventually(t, func() bool { return first.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	host, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	second := New(&config.Config{ServerHost: host, ServerPort: port}, http.NotFoundHandler(), zap.NewNop())
	assert.Error(t, second.Start())
}
