package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krishkalaria12/blogly/database"
	handler "github.com/krishkalaria12/blogly/handlers"
	"github.com/krishkalaria12/blogly/repository"
	"github.com/krishkalaria12/blogly/router"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := open()
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.Error("failed to close database", "error", err)
				}
			}()

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			h := handler.New(repository.NewUserRepository(db), repository.NewPostRepository(db), log)
			app := router.NewApp(h, router.Options{Logger: log, AccessLog: os.Stdout})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					log.Error("shutdown failed", "error", err)
				}
			}()

			info(cmd.OutOrStdout(), "Server is listening at port %s", cfg.Port)
			return app.Listen(":" + cfg.Port)
		},
	}
}
