package loader

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/printsim/internal/simlog"
)

const sampleLog = `{
	"init": {"machines": [{"n": 0, "v": [0, 0, 0], "r": 0}]},
	"frames": [
		{"machines": [{"n": 0, "v": [10, 20, 30], "r": 1.5}], "printeds": [[[0, 0, 0], [10, 0, 0]]]}
	]
}`

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func checkSample(t *testing.T, doc *simlog.Document) {
	t.Helper()
	require.NotNil(t, doc)
	require.NotNil(t, doc.Init)
	assert.Len(t, doc.Init.Machines, 1)
	require.Len(t, doc.Frames, 1)
	assert.Equal(t, []float64{10, 20, 30}, doc.Frames[0].Machines[0].V)
	assert.Len(t, doc.Frames[0].Printeds, 1)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simulation.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	doc, err := New(0).Fetch(context.Background(), path)
	require.NoError(t, err)
	checkSample(t, doc)

	doc, err = New(0).Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	checkSample(t, doc)
}

func TestFetchGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simulation.json.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t, sampleLog), 0o644))

	doc, err := New(time.Second).Fetch(context.Background(), path)
	require.NoError(t, err)
	checkSample(t, doc)
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sim.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleLog))
		case "/sim.json.gz":
			_, _ = w.Write(gzipped(t, sampleLog))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(5 * time.Second).WithClient(srv.Client())

	doc, err := l.Fetch(context.Background(), srv.URL+"/sim.json")
	require.NoError(t, err)
	checkSample(t, doc)

	doc, err = l.Fetch(context.Background(), srv.URL+"/sim.json.gz")
	require.NoError(t, err)
	checkSample(t, doc)

	_, err = l.Fetch(context.Background(), srv.URL+"/missing.json")
	assert.ErrorIs(t, err, ErrHTTPStatus)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(50*time.Millisecond).WithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchErrors(t *testing.T) {
	l := New(0)
	ctx := context.Background()

	_, err := l.Fetch(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyURL)

	_, err = l.Fetch(ctx, "ftp://example.com/sim.json")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = l.Fetch(ctx, filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = l.Fetch(ctx, bad)
	assert.ErrorIs(t, err, simlog.ErrInvalidDocument)
}

func TestFetchNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "null.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	doc, err := New(0).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, doc)
}
