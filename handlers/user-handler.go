package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/blogly/models"
)

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	return h.render(c, "users/list", fiber.Map{
		"PageTitle": "Users",
		"Users":     users,
	})
}

func (h *Handler) NewUserForm(c *fiber.Ctx) error {
	return h.render(c, "users/new", fiber.Map{
		"PageTitle": "Create a user",
	})
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var form UserForm
	problem, err := h.parseForm(c, &form)
	if err != nil {
		return err
	}
	if problem != "" {
		return h.redirect(c, "/users/new", "danger", problem)
	}

	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURL,
	}
	if err := h.users.Create(c.UserContext(), user); err != nil {
		return err
	}

	h.log.Info("user created", "user_id", user.ID)
	return h.redirect(c, "/users", "success", fmt.Sprintf("User %s added.", user.FullName()))
}

func (h *Handler) ShowUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetWithPosts(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	return h.render(c, "users/show", fiber.Map{
		"PageTitle": user.FullName(),
		"User":      user,
	})
}

func (h *Handler) EditUserForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	return h.render(c, "users/edit", fiber.Map{
		"PageTitle": "Edit " + user.FullName(),
		"User":      user,
	})
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var form UserForm
	problem, err := h.parseForm(c, &form)
	if err != nil {
		return err
	}
	if problem != "" {
		return h.redirect(c, fmt.Sprintf("/users/%d/edit", id), "danger", problem)
	}

	user := &models.User{
		ID:        id,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURL,
	}
	if err := h.users.Update(c.UserContext(), user); err != nil {
		return httpError(err)
	}

	return h.redirect(c, fmt.Sprintf("/users/%d", id), "success", fmt.Sprintf("User %s edited.", user.FullName()))
}

// DeleteUser removes the user together with all of their posts.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := h.users.DeleteCascade(c.UserContext(), id)
	if err != nil {
		return httpError(err)
	}

	h.log.Info("user deleted", "user_id", id)
	return h.redirect(c, "/users", "success", fmt.Sprintf("User %s deleted.", user.FullName()))
}
