package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const characterEnvelope = `{
	"code": 200,
	"status": "Ok",
	"data": {
		"results": [{
			"id": 1011334,
			"name": "3-D Man",
			"description": "",
			"modified": "2014-04-29T14:18:17-0400",
			"resourceURI": "http://upstream/v1/public/characters/1011334",
			"thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/c/e0/535fecbbb9784", "extension": "jpg"}
		}]
	}
}`

type fakeMarvel struct {
	server       *httptest.Server
	imageFetches atomic.Int32
}

func newFakeMarvel(t *testing.T) *fakeMarvel {
	t.Helper()
	f := &fakeMarvel{}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/public/characters", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hash") == "" || r.URL.Query().Get("apikey") != "pub" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, characterEnvelope)
	})
	mux.HandleFunc("/v1/public/comics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":200,"data":{"results":[]}}`)
	})
	mux.HandleFunc("/v1/public/comics/1/characters", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/img/portrait.jpg", func(w http.ResponseWriter, r *http.Request) {
		f.imageFetches.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	})
	mux.HandleFunc("/", http.NotFound)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func testConfig(t *testing.T, upstreamURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "info",
			RequestTimeout: 5 * time.Second,
		},
		Upstream: config.UpstreamConfig{
			BaseURL:    upstreamURL + "/v1/public",
			PublicKey:  "pub",
			PrivateKey: "priv",
			Timeout:    2 * time.Second,
		},
		Database: config.DatabaseConfig{Driver: "memory"},
		Images:   config.ImagesConfig{Driver: "local", Dir: filepath.Join(t.TempDir(), "images")},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), cfg, l, nil)
	require.NoError(t, err)
	return app.setupRouter()
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	fake := newFakeMarvel(t)
	router := newTestRouter(t, testConfig(t, fake.server.URL))

	rec := serve(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListCharactersThroughUpstream(t *testing.T) {
	fake := newFakeMarvel(t)
	router := newTestRouter(t, testConfig(t, fake.server.URL))

	rec := serve(t, router, http.MethodGet, "/characters?name=3-D%20Man", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []domain.Character
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1011334", got[0].ID)
	assert.Equal(t, "3-D Man", got[0].Name)
	assert.Equal(t, time.Date(2014, 4, 29, 18, 18, 17, 0, time.UTC), got[0].Modified)
	require.NotNil(t, got[0].Thumbnail)
	assert.Equal(t, "http://i.annihil.us/u/prod/marvel/i/mg/c/e0/535fecbbb9784.jpg", *got[0].Thumbnail)
}

func TestListStatusFromUpstream(t *testing.T) {
	fake := newFakeMarvel(t)
	router := newTestRouter(t, testConfig(t, fake.server.URL))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "empty results", target: "/comics", want: http.StatusNotFound},
		{name: "upstream error", target: "/comics/1/characters", want: http.StatusBadRequest},
		{name: "unknown route", target: "/series", want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateCharacterCachesThumbnail(t *testing.T) {
	fake := newFakeMarvel(t)
	cfg := testConfig(t, fake.server.URL)
	router := newTestRouter(t, cfg)

	body := `{"id":"42","name":"Cached","thumbnail":"` + fake.server.URL + `/img/portrait.jpg"}`
	rec := serve(t, router, http.MethodPost, "/characters", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got domain.Character
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Thumbnail)
	assert.Equal(t, filepath.ToSlash(filepath.Join(cfg.Images.Dir, "portrait.jpg")), *got.Thumbnail)

	data, err := os.ReadFile(filepath.Join(cfg.Images.Dir, "portrait.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

	body = `{"id":"43","name":"Again","thumbnail":"` + fake.server.URL + `/img/portrait.jpg"}`
	rec = serve(t, router, http.MethodPost, "/characters", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int32(1), fake.imageFetches.Load(), "an image already on disk is not downloaded again")

	rec = serve(t, router, http.MethodDelete, "/characters/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}

func TestNewApplicationRejectsBadWiring(t *testing.T) {
	fake := newFakeMarvel(t)
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "postgres without database", mutate: func(c *config.Config) {
			c.Database = config.DatabaseConfig{Driver: "postgres", URL: "postgres://localhost/marvel"}
		}},
		{name: "unknown database driver", mutate: func(c *config.Config) { c.Database.Driver = "sqlite" }},
		{name: "missing credentials", mutate: func(c *config.Config) { c.Upstream.PrivateKey = "" }},
		{name: "unknown image driver", mutate: func(c *config.Config) { c.Images.Driver = "ftp" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t, fake.server.URL)
			tc.mutate(cfg)

			_, err := newApplication(context.Background(), cfg, l, nil)
			assert.Error(t, err)
		})
	}
}

func TestMaskDatabaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "password", input: "postgres://marvel:s3cret@db:5432/marvel", want: "postgres://marvel:xxxxx@db:5432/marvel"},
		{name: "no password", input: "postgres://marvel@db/marvel", want: "postgres://marvel@db/marvel"},
		{name: "invalid", input: "postgres://%zz", want: "invalid-url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := maskDatabaseURL(tc.input)
			assert.NotContains(t, got, "s3cret")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMigrateCommandArgs(t *testing.T) {
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"up"}))
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"status"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"sideways"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, nil))

	assert.Error(t, checkMigratable(config.DatabaseConfig{Driver: "memory"}))
	assert.NoError(t, checkMigratable(config.DatabaseConfig{Driver: "postgres", URL: "postgres://db/marvel"}))
}

func TestSignCommandWithoutDatabase(t *testing.T) {
	t.Setenv("MARVEL_UPSTREAM_PUBLIC_KEY", "pub")
	t.Setenv("MARVEL_UPSTREAM_PRIVATE_KEY", "priv")
	t.Setenv("MARVEL_UPSTREAM_BASE_URL", "http://upstream/v1/public")
	t.Setenv("MARVEL_DATABASE_DRIVER", "postgres")
	t.Setenv("MARVEL_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"sign", "/comics"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "http://upstream/v1/public/comics?ts="), out.String())
}

func TestSignedURL(t *testing.T) {
	cfg := config.UpstreamConfig{BaseURL: "http://upstream/v1/public/", PublicKey: "pub", PrivateKey: "priv"}

	got, err := signedURL(cfg, "characters", []string{"name=Spider-Man", "limit=5"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "http://upstream/v1/public/characters?ts="), got)
	assert.Contains(t, got, "&apikey=pub&hash=")
	assert.True(t, strings.HasSuffix(got, "&limit=5&name=Spider-Man"), got)

	_, err = signedURL(cfg, "/characters", []string{"novalue"})
	assert.Error(t, err)

	_, err = signedURL(config.UpstreamConfig{BaseURL: "http://upstream"}, "/comics", nil)
	assert.Error(t, err)
}
