package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"threatfeed/config"
	"threatfeed/logger"
	"threatfeed/parser"
)

const (
	filterList = `! Title: test filter
||tracker.example.com^
||ads.example.com^$important
@@||allowed.example.com^
##.banner
||ads.example.com^
`
	hostsList = `# test hosts
127.0.0.1 localhost
0.0.0.0 b.example.org
0.0.0.0 a.example.org
`
)

func newListServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.txt":
			_, _ = w.Write([]byte(filterList))
		case "/hosts.txt":
			_, _ = w.Write([]byte(hostsList))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srv *httptest.Server, dir string) *config.Config {
	return &config.Config{
		OutputDir: dir,
		Sources: []config.Source{
			{Name: "Test Filter", URL: srv.URL + "/filter.txt", Format: parser.FormatAdGuard},
			{Name: "Gone List", URL: srv.URL + "/gone.txt", Format: parser.FormatAdGuard},
			{Name: "Test Hosts", URL: srv.URL + "/hosts.txt", Format: parser.FormatHosts},
		},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun(t *testing.T) {
	srv := newListServer(t)
	dir := t.TempDir()

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	results, err := NewUpdater(testConfig(srv, dir), parser.NewLoader(time.Second)).Run(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Equal(t, "ads.example.com\ntracker.example.com\n", readFile(t, filepath.Join(dir, "test_filter.txt")))
	require.Equal(t, "", readFile(t, filepath.Join(dir, "gone_list.txt")))
	require.Equal(t, "a.example.org\nb.example.org\n", readFile(t, filepath.Join(dir, "test_hosts.txt")))

	require.NoError(t, results[0].FetchErr)
	require.Equal(t, 2, results[0].Domains)
	require.Error(t, results[1].FetchErr)
	require.Equal(t, 0, results[1].Domains)
	require.NoError(t, results[2].FetchErr)
	require.Equal(t, 2, results[2].Domains)

	failures := logs.FilterMessage("error fetching source").All()
	require.Len(t, failures, 1)
	require.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	require.Equal(t, "Gone List", failures[0].ContextMap()["source"])
}

func TestRunIdempotent(t *testing.T) {
	srv := newListServer(t)
	dir := t.TempDir()
	u := NewUpdater(testConfig(srv, dir), parser.NewLoader(time.Second))

	_, err := u.Run(context.Background())
	require.NoError(t, err)
	first := map[string]string{}
	for _, name := range []string{"test_filter.txt", "gone_list.txt", "test_hosts.txt"} {
		first[name] = readFile(t, filepath.Join(dir, name))
	}

	_, err = u.Run(context.Background())
	require.NoError(t, err)
	for name, want := range first {
		require.Equal(t, want, readFile(t, filepath.Join(dir, name)), name)
	}
}

type fakeFetcher struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return "", errors.New("connection refused")
	}
	return body, nil
}

func TestRunWriteFailureAborts(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{"a": "||a.com^", "b": "||b.com^"}}
	cfg := &config.Config{
		OutputDir: filepath.Join(t.TempDir(), "missing"),
		Sources: []config.Source{
			{Name: "A", URL: "a", Format: parser.FormatAdGuard},
			{Name: "B", URL: "b", Format: parser.FormatAdGuard},
		},
	}

	results, err := NewUpdater(cfg, fetcher).Run(context.Background())
	require.Error(t, err)
	require.Empty(t, results)
	require.Equal(t, []string{"a"}, fetcher.calls)
}

func TestRunKeepsOrder(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{"one": "0.0.0.0 one.com", "three": "||three.com^"}}
	cfg := &config.Config{
		OutputDir: t.TempDir(),
		Sources: []config.Source{
			{Name: "One", URL: "one", Format: parser.FormatHosts},
			{Name: "Two", URL: "two", Format: parser.FormatHosts},
			{Name: "Three", URL: "three", Format: parser.FormatAdGuard},
		},
	}

	results, err := NewUpdater(cfg, fetcher).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, fetcher.calls)
	require.Len(t, results, 3)
	require.Equal(t, "three.com\n", readFile(t, results[2].File))
}
