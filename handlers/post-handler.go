package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/blogly/models"
)

func (h *Handler) Home(c *fiber.Ctx) error {
	posts, err := h.posts.Recent(c.UserContext(), RecentPostsLimit)
	if err != nil {
		return err
	}

	return h.render(c, "home", fiber.Map{
		"PageTitle": "Recent posts",
		"Posts":     posts,
	})
}

func (h *Handler) NewPostForm(c *fiber.Ctx) error {
	userID, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return httpError(err)
	}

	return h.render(c, "posts/new", fiber.Map{
		"PageTitle": "Add post",
		"User":      user,
	})
}

func (h *Handler) CreatePost(c *fiber.Ctx) error {
	userID, err := paramID(c)
	if err != nil {
		return err
	}

	var form PostForm
	problem, err := h.parseForm(c, &form)
	if err != nil {
		return err
	}
	if problem != "" {
		return h.redirect(c, fmt.Sprintf("/users/%d/posts/new", userID), "danger", problem)
	}

	post := &models.Post{
		Title:   form.Title,
		Content: form.Content,
		UserID:  userID,
	}
	if err := h.posts.Create(c.UserContext(), post); err != nil {
		return httpError(err)
	}

	h.log.Info("post created", "post_id", post.ID, "user_id", userID)
	return h.redirect(c, fmt.Sprintf("/users/%d", userID), "success", fmt.Sprintf("Post %s added.", post.Title))
}

func (h *Handler) ShowPost(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	return h.render(c, "posts/show", fiber.Map{
		"PageTitle": post.Title,
		"Post":      post,
	})
}

func (h *Handler) EditPostForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	return h.render(c, "posts/edit", fiber.Map{
		"PageTitle": "Edit " + post.Title,
		"Post":      post,
	})
}

func (h *Handler) UpdatePost(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var form PostForm
	problem, err := h.parseForm(c, &form)
	if err != nil {
		return err
	}
	if problem != "" {
		return h.redirect(c, fmt.Sprintf("/posts/%d/edit", id), "danger", problem)
	}

	post := &models.Post{ID: id, Title: form.Title, Content: form.Content}
	if err := h.posts.Update(c.UserContext(), post); err != nil {
		return httpError(err)
	}

	return h.redirect(c, fmt.Sprintf("/posts/%d", id), "success", fmt.Sprintf("Post %s edited.", post.Title))
}

func (h *Handler) DeletePost(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Delete(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	h.log.Info("post deleted", "post_id", id, "user_id", post.UserID)
	return h.redirect(c, fmt.Sprintf("/users/%d", post.UserID), "success", fmt.Sprintf("Post %s deleted.", post.Title))
}
