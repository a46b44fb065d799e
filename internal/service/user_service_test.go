package service

import (
	"context"
	"errors"
	"testing"

	"plume/internal/models"
	"plume/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestUserServiceRegisterAccumulatesViolations(t *testing.T) {
	users := noopUserRepo()
	created := false
	users.createFn = func(context.Context, *models.User) error {
		created = true
		return nil
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "x!",
		Email:    "not-an-email",
		Password: "short",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErrs *models.ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected validation errors, got %#v", err)
	}

	want := []string{
		validation.ErrUsernameCharset,
		validation.ErrUsernameTooShort,
		validation.ErrEmailInvalid,
		validation.ErrPasswordTooShort,
	}
	if len(validationErrs.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), validationErrs.Violations)
	}
	for i, v := range want {
		if validationErrs.Violations[i] != v {
			t.Fatalf("violation %d: expected %q, got %q", i, v, validationErrs.Violations[i])
		}
	}
	if created {
		t.Fatal("invalid registration must not reach the store")
	}
}

func TestUserServiceRegisterUsernameTaken(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 1, Username: username}, nil
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "taken",
		Email:    "new@example.com",
		Password: "longenough",
	})

	var validationErrs *models.ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected validation errors, got %#v", err)
	}
	if len(validationErrs.Violations) != 1 || validationErrs.Violations[0] != validation.ErrUsernameTaken {
		t.Fatalf("expected taken-username violation, got %v", validationErrs.Violations)
	}
}

func TestUserServiceRegisterNormalizesAndHashes(t *testing.T) {
	users := noopUserRepo()
	var stored *models.User
	users.createFn = func(_ context.Context, user *models.User) error {
		stored = user
		return nil
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "  Alice3 ",
		Email:    " Alice@Example.COM ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if stored.Username != "alice3" {
		t.Fatalf("expected normalized username, got %q", stored.Username)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
	if stored.Password == "correct horse" {
		t.Fatal("password must not be stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")) != nil {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestUserServiceRegisterLostRaceReadsAsDuplicate(t *testing.T) {
	users := noopUserRepo()
	lookups := 0
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		lookups++
		if lookups == 1 {
			// Pre-check saw no conflict
			return nil, nil
		}
		return &models.User{ID: 2, Username: username}, nil
	}
	users.createFn = func(context.Context, *models.User) error {
		return models.NewInternalError(gorm.ErrDuplicatedKey)
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "racer",
		Email:    "racer@example.com",
		Password: "longenough",
	})

	var validationErrs *models.ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected validation errors, got %#v", err)
	}
	if len(validationErrs.Violations) != 1 || validationErrs.Violations[0] != validation.ErrUsernameTaken {
		t.Fatalf("expected taken-username violation, got %v", validationErrs.Violations)
	}
}

func TestUserServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}

	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "known" {
			return &models.User{ID: 1, Username: "known", Password: string(hash)}, nil
		}
		return nil, nil
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())

	_, errUnknown := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	_, errWrongPass := svc.Login(context.Background(), LoginInput{Username: "known", Password: "wrongpassword"})

	for _, err := range []error{errUnknown, errWrongPass} {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
			t.Fatalf("expected unauthorized error, got %#v", err)
		}
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", errUnknown, errWrongPass)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Username: "Known", Password: "rightpassword"}); err != nil {
		t.Fatalf("expected login to succeed with normalized username, got %v", err)
	}
}

func TestUserServiceGetProfile(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "carol" {
			return &models.User{ID: 7, Username: "carol", Email: "carol@example.com"}, nil
		}
		return nil, nil
	}

	posts := noopPostRepo()
	posts.countByAuthorFn = func(context.Context, uint) (int64, error) { return 3, nil }

	follows := noopFollowRepo()
	follows.countFollowersFn = func(context.Context, uint) (int64, error) { return 2, nil }
	follows.countFollowingFn = func(context.Context, uint) (int64, error) { return 1, nil }
	follows.existsFn = func(_ context.Context, followerID, followedID uint) (bool, error) {
		return followerID == 9 && followedID == 7, nil
	}

	svc := NewUserService(users, posts, follows)

	profile, err := svc.GetProfile(context.Background(), "Carol", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != 7 || profile.Username != "carol" {
		t.Fatalf("unexpected identity fields: %+v", profile)
	}
	if profile.PostCount != 3 || profile.FollowerCount != 2 || profile.FollowingCount != 1 {
		t.Fatalf("unexpected counts: %+v", profile)
	}
	if !profile.IsFollowing || profile.IsOwner {
		t.Fatalf("expected following non-owner viewer, got %+v", profile)
	}

	owner, err := svc.GetProfile(context.Background(), "carol", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !owner.IsOwner || owner.IsFollowing {
		t.Fatalf("expected owner view, got %+v", owner)
	}

	_, err = svc.GetProfile(context.Background(), "nobody", 0)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestUserServiceExistsChecksSkipStoreForInvalidInput(t *testing.T) {
	users := noopUserRepo()
	queried := false
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		queried = true
		return nil, nil
	}
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		queried = true
		return nil, nil
	}

	svc := NewUserService(users, noopPostRepo(), noopFollowRepo())

	if svc.UsernameExists(context.Background(), "no spaces allowed") {
		t.Fatal("invalid username cannot be taken")
	}
	if svc.EmailExists(context.Background(), "not-an-email") {
		t.Fatal("invalid email cannot be taken")
	}
	if queried {
		t.Fatal("invalid input must not reach the store")
	}
}
