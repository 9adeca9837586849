package wehttp

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goccy/go-json"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-blink-go/blink"
)

type test = func(t *testing.T)

func testAssets() fstest.MapFS {
	assets := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html><img src=\"/angel-changing.png\"></html>")},
	}
	for i := 0; i < blink.Variants; i++ {
		assets[fmt.Sprintf("images/angel-%d.png", i)] = &fstest.MapFile{Data: []byte(fmt.Sprintf("\x89PNG angel %d", i))}
	}

	return assets
}

func newTestServer(t *testing.T, options ...HandlerOption) *httptest.Server {
	handler := NewHandler(blink.NewService(nil), testAssets(), options...)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func noRedirects() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()

	response, err := client.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	return response, string(body)
}

func servesIndex(server *httptest.Server) test {
	return func(t *testing.T) {
		response, body := get(t, server.Client(), server.URL+"/")

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", response.Header.Get("Content-Type"))
		assert.Contains(t, body, "/angel-changing.png")
	}
}

func readsBlinkNumber(server *httptest.Server, expected string) test {
	return func(t *testing.T) {
		response, body := get(t, server.Client(), server.URL+"/blink-number")

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", response.Header.Get("Content-Type"))
		assert.Contains(t, response.Header.Get("Cache-Control"), "no-cache")
		assert.Equal(t, expected, body)
	}
}

func blinks(server *httptest.Server, count int, from int) test {
	return func(t *testing.T) {
		for i := 1; i <= count; i++ {
			response, body := get(t, server.Client(), server.URL+"/blinked")

			assert.Equal(t, http.StatusOK, response.StatusCode)
			assert.Equal(t, fmt.Sprint(from+i), body)
		}
	}
}

func redirectsToAngel(server *httptest.Server, expected string) test {
	return func(t *testing.T) {
		response, _ := get(t, noRedirects(), server.URL+"/angel-changing.png")

		assert.Equal(t, http.StatusFound, response.StatusCode)
		assert.Equal(t, expected, response.Header.Get("Location"))
	}
}

func TestBlinkScenario(t *testing.T) {
	server := newTestServer(t)

	t.Run("serves index", servesIndex(server))
	t.Run("starts at zero", readsBlinkNumber(server, "0"))
	t.Run("reads are idempotent", readsBlinkNumber(server, "0"))
	t.Run("redirects to first angel", redirectsToAngel(server, "/images/angel-0.png"))
	t.Run("blinks six times", blinks(server, 6, 0))
	t.Run("reads six", readsBlinkNumber(server, "6"))
	t.Run("wraps around to first angel", redirectsToAngel(server, "/images/angel-0.png"))
	t.Run("blinks once more", blinks(server, 1, 6))
	t.Run("moves to second angel", redirectsToAngel(server, "/images/angel-1.png"))
}

func TestRedirectTargetFollowsCounter(t *testing.T) {
	server := newTestServer(t)

	for value := 1; value <= 3*blink.Variants; value++ {
		_, body := get(t, server.Client(), server.URL+"/blinked")
		require.Equal(t, fmt.Sprint(value), body)

		response, _ := get(t, noRedirects(), server.URL+"/angel-changing.png")
		assert.Equal(t, fmt.Sprintf("/images/angel-%d.png", value%blink.Variants), response.Header.Get("Location"))
	}
}

func TestRedirectResolvesToImage(t *testing.T) {
	server := newTestServer(t)
	get(t, server.Client(), server.URL+"/blinked")
	get(t, server.Client(), server.URL+"/blinked")

	response, body := get(t, server.Client(), server.URL+"/angel-changing.png")

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "\x89PNG angel 2", body)
}

func TestConcurrentBlinks(t *testing.T) {
	server := newTestServer(t)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response, err := server.Client().Get(server.URL + "/blinked")
			if assert.NoError(t, err) {
				response.Body.Close()
			}
		}()
	}
	wg.Wait()

	_, body := get(t, server.Client(), server.URL+"/blink-number")
	assert.Equal(t, fmt.Sprint(n), body)
}

func TestStaticFiles(t *testing.T) {
	server := newTestServer(t)

	t.Run("serves images", func(t *testing.T) {
		response, body := get(t, server.Client(), server.URL+"/images/angel-4.png")

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "\x89PNG angel 4", body)
	})

	t.Run("missing asset is not found", func(t *testing.T) {
		response, _ := get(t, server.Client(), server.URL+"/images/angel-6.png")
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
	})

	t.Run("directories are not listed", func(t *testing.T) {
		response, _ := get(t, server.Client(), server.URL+"/images/")
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
	})
}

func TestMissingIndexIsNotFound(t *testing.T) {
	server := httptest.NewServer(NewHandler(blink.NewService(nil), fstest.MapFS{}))
	defer server.Close()

	response, _ := get(t, server.Client(), server.URL+"/")
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestCounterResource(t *testing.T) {
	server := newTestServer(t)

	for i := 0; i < 8; i++ {
		get(t, server.Client(), server.URL+"/blinked")
	}

	response, body := get(t, server.Client(), server.URL+"/counter")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/json", response.Header.Get("Content-Type"))

	var resource struct {
		Current  int64  `json:"current"`
		Index    int64  `json:"index"`
		Image    string `json:"image"`
		Type     string `json:"$type"`
		Revision string `json:"$revision"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resource))

	assert.Equal(t, int64(8), resource.Current)
	assert.Equal(t, int64(2), resource.Index)
	assert.Equal(t, "/images/angel-2.png", resource.Image)
	assert.Equal(t, "blink:counter", resource.Type)
	assert.Len(t, resource.Revision, 26)
}

func TestAccessLog(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	server := newTestServer(t, AccessLog(logger))
	get(t, server.Client(), server.URL+"/blinked")

	entry := hook.LastEntry()
	require.NotNil(t, entry)

	assert.Equal(t, "/blinked", entry.Data["uri"])
	assert.Equal(t, "GET", entry.Data["method"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestHeadRequests(t *testing.T) {
	server := newTestServer(t)
	client := noRedirects()

	head := func(path string) *http.Response {
		response, err := client.Head(server.URL + path)
		require.NoError(t, err)
		response.Body.Close()

		return response
	}

	response := head("/")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", response.Header.Get("Content-Type"))

	response = head("/blink-number")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", response.Header.Get("Content-Type"))

	response = head("/angel-changing.png")
	assert.Equal(t, http.StatusFound, response.StatusCode)
	assert.Equal(t, "/images/angel-0.png", response.Header.Get("Location"))

	assert.Equal(t, http.StatusOK, head("/images/angel-0.png").StatusCode)
	assert.Equal(t, http.StatusNotFound, head("/images/angel-9.png").StatusCode)

	_, body := get(t, client, server.URL+"/blink-number")
	assert.Equal(t, "0", body)
}
