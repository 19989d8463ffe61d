package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/engine"
	"github.com/roach88/morsezoo/internal/extract"
	"github.com/roach88/morsezoo/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testDB   = "2D_Example"
	testPerm = "2D_Example_perm1"
)

type fixture struct {
	router  *gin.Engine
	scratch string
	runner  *testutil.FakeRunner
}

func setup(t *testing.T, runner *testutil.FakeRunner) fixture {
	t.Helper()
	if runner == nil {
		runner = &testutil.FakeRunner{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := testutil.NewArchive(t, testDB, testutil.TwoGraphDataset())
	scratch := filepath.Join(t.TempDir(), "scratch")

	eng := engine.New(root,
		engine.WithRunner(runner),
		engine.WithLogger(logger),
		engine.WithScratchDir(scratch))
	return fixture{router: NewRouter(eng, logger), scratch: scratch, runner: runner}
}

func (f fixture) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := setup(t, nil)

	w := f.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, Version, resp.Version)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestDatabases(t *testing.T) {
	f := setup(t, nil)

	w := f.do(t, http.MethodGet, "/v1/databases", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{testDB: testDB}, decode[map[string]string](t, w))

	w = f.do(t, http.MethodGet, "/v1/databases/tree", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestQuery(t *testing.T) {
	f := setup(t, nil)

	w := f.do(t, http.MethodPost, "/v1/databases/"+testDB+"/query",
		`{"radio": ["Y:p1", "bad"]}`, requestIDHeader, "req-42")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))

	res := decode[engine.QueryResult](t, w)
	assert.Equal(t, "req-42", res.Token)
	assert.Equal(t, []int64{1}, res.IDs)
	assert.Equal(t, []string{"bad"}, res.Skipped)
}

func TestQuery_Errors(t *testing.T) {
	f := setup(t, nil)

	testCases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name:   "unknown database",
			path:   "/v1/databases/2D_Missing/query",
			body:   `{}`,
			status: http.StatusNotFound,
			code:   string(engine.ErrCodeDatabaseNotFound),
		},
		{
			name:   "name outside pattern",
			path:   "/v1/databases/example/query",
			body:   `{}`,
			status: http.StatusBadRequest,
			code:   string(engine.ErrCodeInvalidArgument),
		},
		{
			name:   "undecodable body",
			path:   "/v1/databases/" + testDB + "/query",
			body:   `{"radio": "Y:p1"}`,
			status: http.StatusBadRequest,
			code:   codeInvalidRequest,
		},
		{
			name:   "bad permutation",
			path:   "/v1/databases/" + testDB + "/summary",
			body:   `{"permutation": "../up"}`,
			status: http.StatusBadRequest,
			code:   string(engine.ErrCodeInvalidArgument),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode[ErrorResponse](t, w).Code)
		})
	}
}

func TestSummary(t *testing.T) {
	f := setup(t, nil)

	w := f.do(t, http.MethodPost, "/v1/databases/"+testDB+"/summary", `{"radio": ["N:p1"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	res := decode[engine.SummaryResult](t, w)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Permutations, 1)
	assert.Equal(t, 75.0, res.Permutations[0].SumPercentage)
}

func TestParameterGraph(t *testing.T) {
	f := setup(t, &testutil.FakeRunner{Files: map[string]string{
		extract.GraphFile:        "digraph { 0 }",
		extract.InequalitiesFile: `{"data": [{"0": "a<=b"}]}`,
	}})

	w := f.do(t, http.MethodPost,
		"/v1/databases/"+testDB+"/permutations/"+testPerm+"/parameter-graph", `{"mgcc": 2}`)

	require.Equal(t, http.StatusOK, w.Code)
	pg := decode[engine.ParameterGraph](t, w)
	assert.Equal(t, "digraph { 0 }", pg.Network)
	assert.Equal(t, map[string]string{"0": `<span class="shared">a&lt;=b</span><br><br>`}, pg.Info)
}

func TestParameterGraph_ExtractionFailed(t *testing.T) {
	f := setup(t, &testutil.FakeRunner{Err: errors.New("exit status 2")})

	w := f.do(t, http.MethodPost,
		"/v1/databases/"+testDB+"/permutations/"+testPerm+"/parameter-graph", `{}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, string(engine.ErrCodeExtractionFailed), decode[ErrorResponse](t, w).Code)
}

func TestExport_StreamsAndRemovesArtifact(t *testing.T) {
	name := testPerm + "_MGCC_0.tgz"
	f := setup(t, &testutil.FakeRunner{Files: map[string]string{name: "payload"}})

	w := f.do(t, http.MethodPost,
		"/v1/databases/"+testDB+"/permutations/"+testPerm+"/export", `{"kind": "morse-graph"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "payload", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), name)

	entries, err := os.ReadDir(f.scratch)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport_Errors(t *testing.T) {
	f := setup(t, nil)
	path := "/v1/databases/" + testDB + "/permutations/" + testPerm + "/export"

	w := f.do(t, http.MethodPost, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidRequest, decode[ErrorResponse](t, w).Code)

	w = f.do(t, http.MethodPost, path, `{"kind": "parameter-graph-view"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, path, `{"kind": "morse-set", "mgcc": 1, "incc": 1}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMetrics(t *testing.T) {
	f := setup(t, nil)
	f.do(t, http.MethodGet, "/v1/databases", "")

	w := f.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "morsezoo_http_requests_total")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(engine.ErrCodeInvalidArgument))
	assert.Equal(t, http.StatusNotFound, StatusFor(engine.ErrCodeDatabaseNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(engine.ErrCodeStoreUnavailable))
	assert.Equal(t, http.StatusBadGateway, StatusFor(engine.ErrCodeCertificateInvalid))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(engine.ErrCodeScratchCreateFailed))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(engine.New(root, engine.WithLogger(logger)), logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
