package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := httptest.NewServer(fakeBackend(t))
	t.Cleanup(server.Close)

	configPath := filepath.Join(home, "subs.toml")
	require.NoError(t, writeConfig(configPath, server.URL+"/api", filepath.Join(home, "secrets")))

	stdout, stderr, err := runSubs(t, binaryPath, home, "", "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, strings.TrimSpace(stdout))

	stdout, stderr, err = runSubs(t, binaryPath, home, "secret\n",
		"--config", configPath, "login", "--email", "ana@example.com")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Signed in as ana@example.com")

	stdout, stderr, err = runSubs(t, binaryPath, home, "", "--config", configPath, "dashboard")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Total mensal: R$ 39,90")
	assert.Contains(t, stdout, "#1 Netflix [Vence em breve]")

	stdout, stderr, err = runSubs(t, binaryPath, home, "", "--config", configPath, "logout")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Signed out")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "subs-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/subs")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build subs binary: %s", string(output))
	return binaryPath
}

func runSubs(t *testing.T, binaryPath, home, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfig(path, baseURL, secretsDir string) error {
	config := fmt.Sprintf(`[api]
base_url = %q
timeout = "5s"

[secrets]
backend = "file"
dir = %q

[log]
level = "error"
`, baseURL, secretsDir)

	return os.WriteFile(path, []byte(config), 0o600)
}

func fakeBackend(t *testing.T) http.Handler {
	t.Helper()

	renewal := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"access_token": "e2e-token"})
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"message": "ok"})
	})
	mux.HandleFunc("GET /api/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer e2e-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"data": []map[string]any{{
			"id":                   1,
			"price":                "39.90",
			"renewal_date":         renewal,
			"renewal_period_value": 1,
			"renewal_period_unit":  "month",
			"notify_before_value":  7,
			"notify_before_unit":   "day",
			"service":              map[string]any{"id": 1, "name": "Netflix"},
		}}})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
