package router

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	handler "github.com/krishkalaria12/blogly/handlers"
	"github.com/krishkalaria12/blogly/middleware"
	"github.com/krishkalaria12/blogly/views"
)

type Options struct {
	Logger *slog.Logger
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
	// Sessions defaults to an in-memory store.
	Sessions *session.Store
}

// NewApp builds the Fiber app with views, middleware and every route wired.
func NewApp(h *handler.Handler, opts Options) *fiber.App {
	if opts.Sessions == nil {
		opts.Sessions = session.New()
	}

	app := fiber.New(fiber.Config{
		AppName:      "blogly",
		Views:        views.Engine(),
		ViewsLayout:  views.Layout,
		ErrorHandler: middleware.ErrorHandler(opts.Logger),
	})

	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}
	app.Use(middleware.Sessions(opts.Sessions))

	SetupRoutes(app, h)
	return app
}

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/", h.Home)

	// User
	users := app.Group("/users")
	users.Get("/", h.ListUsers)
	users.Get("/new", h.NewUserForm)
	users.Post("/new", h.CreateUser)
	users.Get("/:id<int>", h.ShowUser)
	users.Get("/:id<int>/edit", h.EditUserForm)
	users.Post("/:id<int>/edit", h.UpdateUser)
	users.Post("/:id<int>/delete", h.DeleteUser)
	users.Get("/:id<int>/posts/new", h.NewPostForm)
	users.Post("/:id<int>/posts/new", h.CreatePost)

	// Post
	posts := app.Group("/posts")
	posts.Get("/:id<int>", h.ShowPost)
	posts.Get("/:id<int>/edit", h.EditPostForm)
	posts.Post("/:id<int>/edit", h.UpdatePost)
	posts.Post("/:id<int>/delete", h.DeletePost)
}
