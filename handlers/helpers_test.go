package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/blogly/database/dbtest"
	handler "github.com/krishkalaria12/blogly/handlers"
	"github.com/krishkalaria12/blogly/repository"
	"github.com/krishkalaria12/blogly/router"
	"github.com/stretchr/testify/require"
)

// client drives the app like a browser: it keeps cookies between requests
// and can follow redirects.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

type testEnv struct {
	*client
	users *repository.UserRepository
	posts *repository.PostRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)

	app := router.NewApp(handler.New(users, posts, nil), router.Options{})

	return &testEnv{
		client: newClient(t, app),
		users:  users,
		posts:  posts,
	}
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

// do sends a single request without following redirects.
func (c *client) do(method, path string, form url.Values) *http.Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)

	for _, cookie := range resp.Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return resp
}

// follow sends the request and then GETs every redirect target, returning
// the final response and its body.
func (c *client) follow(method, path string, form url.Values) (*http.Response, string) {
	c.t.Helper()

	resp := c.do(method, path, form)
	for hops := 0; isRedirect(resp.StatusCode); hops++ {
		require.Less(c.t, hops, 10, "too many redirects")
		location := resp.Header.Get("Location")
		require.NotEmpty(c.t, location)
		resp.Body.Close()

		resp = c.do(http.MethodGet, location, nil)
	}

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	resp.Body.Close()

	return resp, string(data)
}

func (c *client) get(path string) (*http.Response, string) {
	return c.follow(http.MethodGet, path, nil)
}

func isRedirect(code int) bool {
	return code >= 300 && code < 400
}
