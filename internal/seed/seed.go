// Package seed populates a development database with realistic fake data.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"plume/internal/middleware"
	"plume/internal/repository"
	"plume/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Password is the shared password for every seeded account, so any of them
// can be used to log in during development.
const Password = "plume-dev-pass"

// Run seeds users, posts, and follow edges through the service layer so
// seeded data obeys the same rules as real traffic.
func Run(ctx context.Context, db *gorm.DB, userCount, postsPerUser int) error {
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)

	userService := service.NewUserService(users, posts, follows)
	postService := service.NewPostService(posts, users)
	followService := service.NewFollowService(follows, users)

	usernames := make([]string, 0, userCount)
	for i := 0; i < userCount; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.LetterN(8), i)
		user, err := userService.Register(ctx, service.RegisterInput{
			Username: username,
			Email:    gofakeit.Email(),
			Password: Password,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", username, err)
		}

		for j := 0; j < postsPerUser; j++ {
			_, err := postService.CreatePost(ctx, user.ID, service.PostInput{
				Title: gofakeit.Sentence(4),
				Body:  gofakeit.Paragraph(2, 4, 12, " "),
			})
			if err != nil {
				return fmt.Errorf("failed to seed post for %q: %w", username, err)
			}
		}

		usernames = append(usernames, user.Username)
	}

	// Each user follows a handful of earlier accounts.
	for i, username := range usernames {
		follower, err := users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		perm := rand.Perm(i)
		if len(perm) > 3 {
			perm = perm[:3]
		}
		for _, j := range perm {
			if err := followService.Follow(ctx, follower.ID, usernames[j]); err != nil {
				return fmt.Errorf("failed to seed follow edge: %w", err)
			}
		}
	}

	middleware.Logger.Info("Seed complete",
		"users", userCount, "posts_per_user", postsPerUser)
	return nil
}
