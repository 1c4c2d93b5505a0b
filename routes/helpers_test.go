package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"
	"video-aggregator-api/config"
	"video-aggregator-api/db"
	"video-aggregator-api/models"
	"video-aggregator-api/pkg"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "secreto123"

func newTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	api.Get("/status", GetStatus)
	api.Get("/videos", GetVideos)
	api.Post("/upload", UploadVideo)
	api.Post("/upload/manual", ManualUpload)
	api.Post("/manual-update", ManualUpdate)
	api.Get("/test-apis", TestHosts)
	return app
}

type hostUpdate struct {
	slug  string
	host  string
	entry models.HostEntry
}

// fakeStore sustituye al almacén de MongoDB en los tests de handlers
type fakeStore struct {
	saved   []*models.VideoRecord
	updates []hostUpdate
	saveErr error
}

func (f *fakeStore) SaveVideo(_ context.Context, video *models.VideoRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, video)
	return nil
}

func (f *fakeStore) GetVideoBySlug(_ context.Context, slug string) (*models.VideoRecord, error) {
	for _, video := range f.saved {
		if video.Slug == slug {
			return video, nil
		}
	}
	return nil, db.ErrVideoNotFound
}

func (f *fakeStore) GetAllVideos(_ context.Context, page, limit int) (*models.VideoList, error) {
	videos := make([]models.VideoRecord, 0, len(f.saved))
	for _, video := range f.saved {
		videos = append(videos, *video)
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})

	total := int64(len(videos))
	start := (page - 1) * limit
	if start > len(videos) {
		start = len(videos)
	}
	end := start + limit
	if end > len(videos) {
		end = len(videos)
	}

	return &models.VideoList{
		Videos:      videos[start:end],
		TotalPages:  db.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func (f *fakeStore) UpdateVideoHost(_ context.Context, slug, host string, entry models.HostEntry) error {
	f.updates = append(f.updates, hostUpdate{slug: slug, host: host, entry: entry})
	for _, video := range f.saved {
		if video.Slug == slug {
			if video.Hosts == nil {
				video.Hosts = map[string]models.HostEntry{}
			}
			video.Hosts[host] = entry
			video.Status = models.Completed
		}
	}
	return nil
}

func withFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", testAdminPassword)

	prev := db.Videos
	fake := &fakeStore{}
	db.Videos = fake
	t.Cleanup(func() { db.Videos = prev })
	return fake
}

// withHostServers levanta un servidor falso por host y redirige los clientes hacia ellos
func withHostServers(t *testing.T, handlers map[string]http.HandlerFunc) {
	t.Helper()

	clients := []*pkg.HostClient{}
	for _, name := range pkg.HostNames() {
		handler, ok := handlers[name]
		require.True(t, ok, "falta el handler del host %s", name)

		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)

		clients = append(clients, pkg.NewHostClient(pkg.HostConfig{
			Name:          name,
			BaseURL:       server.URL,
			UploadPath:    "/upload/url",
			PlayerBaseURL: "https://" + name + ".com/e",
			Timeout:       2 * time.Second,
		}, "clave-test"))
	}

	prev := newHostClients
	newHostClients = func(config.Config) []*pkg.HostClient { return clients }
	t.Cleanup(func() { newHostClients = prev })
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}
