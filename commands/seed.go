package commands

import (
	"context"
	"fmt"

	"github.com/krishkalaria12/blogly/database"
	"github.com/krishkalaria12/blogly/models"
	"github.com/krishkalaria12/blogly/repository"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type seedUser struct {
	user  models.User
	posts []models.Post
}

var sampleData = []seedUser{
	{
		user: models.User{FirstName: "Alan", LastName: "Alda"},
		posts: []models.Post{
			{Title: "First Post!", Content: "Oh, hai."},
			{Title: "Yet Another Post", Content: "Nothing to see here."},
		},
	},
	{
		user: models.User{FirstName: "Joel", LastName: "Burton", ImageURL: "https://www.example.com/joel.jpg"},
		posts: []models.Post{
			{Title: "Flamingos are cool", Content: "They stand on one leg."},
		},
	},
	{
		user: models.User{FirstName: "Jane", LastName: "Smith"},
	},
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample users and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetBool("keep")

			_, _, db, err := open()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if keep {
				err = database.Migrate(db)
			} else {
				err = database.Reset(db)
			}
			if err != nil {
				return fmt.Errorf("failed to prepare schema: %w", err)
			}

			users, posts, err := seed(cmd.Context(), db)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Seeded %d users and %d posts", users, posts)
			return nil
		},
	}

	cmd.Flags().Bool("keep", false, "Keep existing rows instead of recreating the tables")

	return cmd
}

// seed inserts the sample users and their posts in a single transaction.
func seed(ctx context.Context, db *gorm.DB) (int, int, error) {
	var userCount, postCount int

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		posts := repository.NewPostRepository(tx)

		for _, s := range sampleData {
			user := s.user
			if err := users.Create(ctx, &user); err != nil {
				return err
			}
			userCount++

			for _, p := range s.posts {
				post := p
				post.UserID = user.ID
				if err := posts.Create(ctx, &post); err != nil {
					return err
				}
				postCount++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to seed database: %w", err)
	}

	return userCount, postCount, nil
}
