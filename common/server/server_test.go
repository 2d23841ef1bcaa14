package server

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/blogify/blogify/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServer_StopsCleanlyOnSignal(t *testing.T) {
	log := logger.New("error", "json")
	port := freePort(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := New("blogify-test", port, handler, log)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Wait until the server accepts connections before signaling
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		assert.NoError(t, err, "a shutdown signal must not surface as a server error")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after SIGTERM")
	}
}

func TestServer_ListenFailureReturnsError(t *testing.T) {
	log := logger.New("error", "json")

	// Occupy the port so ListenAndServe fails immediately
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	srv := New("blogify-test", port, http.NewServeMux(), log)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a listen error")
	}
}
