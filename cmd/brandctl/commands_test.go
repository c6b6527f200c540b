package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRequiredFlags(t *testing.T) {
	for _, args := range [][]string{
		{"names"},
		{"logo"},
		{"slogan", "--name", "  "},
		{"brandbook"},
	} {
		_, err := runCLI(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "is required", args)
	}
}

func TestSloganCommandPrintsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/networks/") {
			_, _ = w.Write([]byte(`{"request_id":"s-1"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","result":["«Кофе с душой»"]}`))
	}))
	defer srv.Close()

	t.Setenv("GEN_API_KEY", "k")
	t.Setenv("GEN_API_BASE_URL", srv.URL)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PUBLIC_DIR", t.TempDir())
	t.Setenv("TEXT_POLL_INTERVAL_MS", "1")

	out, err := runCLI(t, "slogan", "--name", "Зерно")
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "Кофе с душой", body["slogan"])
}

func TestAPIKeySetNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := runCLI(t, "apikey", "set", "--key", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
