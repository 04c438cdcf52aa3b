package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/blogly/middleware"
	"github.com/krishkalaria12/blogly/models"
	"github.com/krishkalaria12/blogly/repository"
)

// RecentPostsLimit is how many posts the home page shows.
const RecentPostsLimit = 5

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	GetWithPosts(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	DeleteCascade(ctx context.Context, id uint) (*models.User, error)
}

type PostStore interface {
	Get(ctx context.Context, id uint) (*models.Post, error)
	Recent(ctx context.Context, limit int) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

type Handler struct {
	users    UserStore
	posts    PostStore
	validate *validator.Validate
	log      *slog.Logger
}

func New(users UserStore, posts PostStore, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		users:    users,
		posts:    posts,
		validate: newValidator(),
		log:      log,
	}
}

// render adds the pending flash message to the view data.
func (h *Handler) render(c *fiber.Ctx, view string, data fiber.Map) error {
	data["Flash"] = middleware.PopFlash(c)
	return c.Render(view, data)
}

// redirect answers a write with a flash message and a 302 to a page.
func (h *Handler) redirect(c *fiber.Ctx, location, category, message string) error {
	middleware.AddFlash(c, category, message)
	return c.Redirect(location, fiber.StatusFound)
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

// httpError maps repository errors onto HTTP errors.
func httpError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}
