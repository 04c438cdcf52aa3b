package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserForm struct {
	FirstName string `form:"first_name" label:"First name" validate:"required,max=50"`
	LastName  string `form:"last_name" label:"Last name" validate:"required,max=50"`
	ImageURL  string `form:"image_url" label:"Image URL" validate:"max=2048"`
}

func (f *UserForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

type PostForm struct {
	Title   string `form:"title" label:"Title" validate:"required,max=100"`
	Content string `form:"content" label:"Content" validate:"required"`
}

func (f *PostForm) trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

type trimmer interface {
	trim()
}

// parseForm binds the request body into form, trims it and validates it.
// A validation failure comes back as a user-facing message.
func (h *Handler) parseForm(c *fiber.Ctx, form trimmer) (string, error) {
	if err := c.BodyParser(form); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid form data")
	}
	form.trim()

	err := h.validate.Struct(form)
	if err == nil {
		return "", nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", err
	}
	return validationMessage(verrs), nil
}

func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required.", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}
	return strings.Join(msgs, " ")
}
