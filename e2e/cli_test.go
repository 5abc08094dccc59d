package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwise/fdsaas/internal/api"
	"github.com/orbitwise/fdsaas/internal/factory"
)

const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath      string
	serverURL       string
	credentialsFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "fdsctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fdsctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	credentialsFile := filepath.Join(t.TempDir(), "session")

	return &cliRunner{
		binaryPath:      binaryPath,
		serverURL:       serverURL,
		credentialsFile: credentialsFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--credentials-file", r.credentialsFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GatewayService: app.GatewayService,
		Version:        "e2e",
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/fdsaas/api/status")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type registerResponse struct {
	UserID string `json:"user_id"`
}

type authResponse struct {
	UserID   string `json:"user_id"`
	JWTToken string `json:"jwt_token"`
}

type propagationResponse struct {
	Name      string `json:"name"`
	Ephemeris []struct {
		Time     string     `json:"time"`
		Position [3]float64 `json:"position"`
		Velocity [3]float64 `json:"velocity"`
	} `json:"ephemeris"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func TestCLIStatusAndVersion(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("status")
	require.NoError(t, err, output)

	var status statusResponse
	require.NoError(t, json.Unmarshal([]byte(output), &status))
	assert.Equal(t, "Running", status.Status)

	output, err = cli.run("version")
	require.NoError(t, err, output)
	assert.Contains(t, output, "e2e")
}

func TestCLIFullSessionFlow(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	// Register
	output, err := cli.run("user", "register", "--user", "alice", "--pass", "s3cret")
	require.NoError(t, err, output)

	var registered registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registered))
	assert.NotEmpty(t, registered.UserID)

	// Login stores the session for subsequent commands
	output, err = cli.run("user", "login", "--user", "alice", "--pass", "s3cret")
	require.NoError(t, err, output)

	var session authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, registered.UserID, session.UserID)
	assert.NotEmpty(t, session.JWTToken)

	// Propagate using the stored session
	output, err = cli.run("propagate",
		"--line1", issLine1,
		"--line2", issLine2,
		"--start", "2008-09-20T13:00:00Z",
		"--stop", "2008-09-20T13:03:00Z")
	require.NoError(t, err, output)

	var propagated propagationResponse
	require.NoError(t, json.Unmarshal([]byte(output), &propagated))
	assert.Len(t, propagated.Ephemeris, 4)

	// Logout revokes the session
	output, err = cli.run("user", "logout")
	require.NoError(t, err, output)

	// Propagation now fails without a session
	output, err = cli.run("propagate",
		"--line1", issLine1,
		"--line2", issLine2,
		"--at", "2008-09-20T13:00:00Z")
	require.Error(t, err, output)
}

func TestCLIDeregister(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("user", "register", "--user", "bob", "--pass", "hunter2")
	require.NoError(t, err, output)

	output, err = cli.run("user", "login", "--user", "bob", "--pass", "hunter2")
	require.NoError(t, err, output)

	output, err = cli.run("user", "deregister")
	require.NoError(t, err, output)

	// Login no longer possible
	output, err = cli.run("user", "login", "--user", "bob", "--pass", "hunter2")
	require.Error(t, err, output)
}
