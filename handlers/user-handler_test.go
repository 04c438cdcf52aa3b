package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/krishkalaria12/blogly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	*testEnv
	userID uint
}

func setupUsers(t *testing.T) *userFixture {
	t.Helper()

	env := newTestEnv(t)
	ctx := context.Background()

	user := &models.User{FirstName: "test1_first", LastName: "test1_last"}
	user2 := &models.User{FirstName: "test2_first", LastName: "test2_last"}
	require.NoError(t, env.users.Create(ctx, user))
	require.NoError(t, env.users.Create(ctx, user2))

	return &userFixture{testEnv: env, userID: user.ID}
}

func TestListUsers(t *testing.T) {
	f := setupUsers(t)

	resp, html := f.get("/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "test1_first")
	assert.Contains(t, html, "test1_last")
	assert.Contains(t, html, "test2_first")
}

func TestAddNewUser(t *testing.T) {
	f := setupUsers(t)

	resp := f.do(http.MethodPost, "/users/new", url.Values{
		"first_name": {"newuser_first"},
		"last_name":  {"newuser_last"},
		"image_url":  {"https://new.com"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users", resp.Header.Get("Location"))

	resp, html := f.get("/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "newuser")
	assert.Contains(t, html, "User newuser_first newuser_last added.")
	assert.Contains(t, html, "https://new.com")

	// the flash is shown once
	_, html = f.get("/users")
	assert.NotContains(t, html, "User newuser_first newuser_last added.")
}

func TestAddNewUserNoImage(t *testing.T) {
	f := setupUsers(t)

	resp, _ := f.follow(http.MethodPost, "/users/new", url.Values{
		"first_name": {"no_image_first"},
		"last_name":  {"no_image_last"},
		"image_url":  {""},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	users, err := f.users.List(context.Background())
	require.NoError(t, err)

	var found bool
	for _, u := range users {
		if u.FirstName == "no_image_first" {
			found = true
			assert.Equal(t, models.DefaultImageURL, u.ImageURL)
		}
	}
	assert.True(t, found)
}

func TestAddNewUserRequiresNames(t *testing.T) {
	f := setupUsers(t)

	resp := f.do(http.MethodPost, "/users/new", url.Values{
		"first_name": {"  "},
		"last_name":  {"only_last"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/new", resp.Header.Get("Location"))

	_, html := f.get("/users/new")
	assert.Contains(t, html, "First name is required.")

	count, err := f.users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestShowUser(t *testing.T) {
	f := setupUsers(t)

	resp, html := f.get(fmt.Sprintf("/users/%d", f.userID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "test1_first")
	assert.Contains(t, html, "test1_last")
	assert.Contains(t, html, models.DefaultImageURL)
}

func TestShowUserNotFound(t *testing.T) {
	f := setupUsers(t)

	for _, path := range []string{"/users/9999", "/users/abc", "/users/9999/edit", "/users/9999/posts/new"} {
		resp, html := f.get(path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, html, "Page not found.", path)
	}
}

func TestShowEditForm(t *testing.T) {
	f := setupUsers(t)

	resp, html := f.get(fmt.Sprintf("/users/%d/edit", f.userID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "test1_first")
	assert.Contains(t, html, "test1_last")
	assert.Contains(t, html, models.DefaultImageURL)
}

func TestUpdateUser(t *testing.T) {
	f := setupUsers(t)

	path := fmt.Sprintf("/users/%d/edit", f.userID)
	resp := f.do(http.MethodPost, path, url.Values{
		"first_name": {"updated_first"},
		"last_name":  {"updated_last"},
		"image_url":  {"https://test.com/"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", f.userID), resp.Header.Get("Location"))

	resp, html := f.get(resp.Header.Get("Location"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "updated_first")
	assert.Contains(t, html, "updated_last")
	assert.Contains(t, html, "https://test.com/")
}

func TestUpdateUserNotFound(t *testing.T) {
	f := setupUsers(t)

	resp, _ := f.follow(http.MethodPost, "/users/9999/edit", url.Values{
		"first_name": {"x"},
		"last_name":  {"y"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	f := setupUsers(t)
	ctx := context.Background()

	post := &models.Post{Title: "test_message_delete", Content: "test_content_delete", UserID: f.userID}
	require.NoError(t, f.posts.Create(ctx, post))

	resp, html := f.follow(http.MethodPost, fmt.Sprintf("/users/%d/delete", f.userID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "User test1_first test1_last deleted.")
	assert.NotContains(t, html, fmt.Sprintf("/users/%d\"", f.userID))

	resp, _ = f.get(fmt.Sprintf("/posts/%d", post.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUserNotFound(t *testing.T) {
	f := setupUsers(t)

	resp, _ := f.follow(http.MethodPost, "/users/9999/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
