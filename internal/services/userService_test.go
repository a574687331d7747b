package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"spendly/internal/models"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	f.users = append(f.users, *user)
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == userID {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) Update(ctx context.Context, userID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	for i := range f.users {
		if f.users[i].ID == userID {
			if v, ok := updateFields["username"].(string); ok {
				f.users[i].Username = v
			}
			if v, ok := updateFields["email"].(string); ok {
				f.users[i].Email = v
			}
			if v, ok := updateFields["password"].(string); ok {
				f.users[i].Password = v
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID primitive.ObjectID) (*mongo.DeleteResult, error) {
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) EnsureIndexes() error { return nil }

func newUserFixture() (*fakeUserRepo, *fakeLimitRepo, UserService) {
	userRepo := &fakeUserRepo{}
	limitRepo := newFakeLimitRepo()
	return userRepo, limitRepo, NewUserService(userRepo, NewLimitService(limitRepo))
}

func TestRegisterUser(t *testing.T) {
	userRepo, limitRepo, svc := newUserFixture()

	created, err := svc.RegisterUser(context.Background(), &models.User{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})

	assert.NoError(t, err)
	assert.Empty(t, created.Password, "password must not be echoed back")
	assert.False(t, created.ID.IsZero())

	// Stored password is hashed.
	stored := userRepo.users[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")))

	// Fresh accounts get the default weekly limit seeded.
	assert.Equal(t, 500.0, limitRepo.limits[created.ID])
}

func TestRegisterUserRequiredFields(t *testing.T) {
	_, _, svc := newUserFixture()

	for _, u := range []models.User{
		{Email: "a@b.c", Password: "pw"},
		{Username: "sam", Password: "pw"},
		{Username: "sam", Email: "a@b.c"},
	} {
		_, err := svc.RegisterUser(context.Background(), &u)
		assert.Error(t, err)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	_, _, svc := newUserFixture()

	u := models.User{Username: "sam", Email: "sam@example.com", Password: "pw"}
	_, err := svc.RegisterUser(context.Background(), &u)
	assert.NoError(t, err)

	dup := models.User{Username: "sam2", Email: "sam@example.com", Password: "pw"}
	_, err = svc.RegisterUser(context.Background(), &dup)
	assert.EqualError(t, err, "email already exists")
}

func TestLoginUser(t *testing.T) {
	_, _, svc := newUserFixture()

	_, err := svc.RegisterUser(context.Background(), &models.User{
		Username: "sam", Email: "sam@example.com", Password: "hunter22",
	})
	assert.NoError(t, err)

	token, err := svc.LoginUser(context.Background(), &models.Login{Email: "sam@example.com", Password: "hunter22"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.LoginUser(context.Background(), &models.Login{Email: "sam@example.com", Password: "wrong"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.LoginUser(context.Background(), &models.Login{Email: "nobody@example.com", Password: "pw"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestResetPassword(t *testing.T) {
	_, _, svc := newUserFixture()

	_, err := svc.RegisterUser(context.Background(), &models.User{
		Username: "sam", Email: "sam@example.com", Password: "oldpw",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.ResetPassword(context.Background(), "sam@example.com", "newpw"))

	_, err = svc.LoginUser(context.Background(), &models.Login{Email: "sam@example.com", Password: "newpw"})
	assert.NoError(t, err)
	_, err = svc.LoginUser(context.Background(), &models.Login{Email: "sam@example.com", Password: "oldpw"})
	assert.Error(t, err)

	assert.Error(t, svc.ResetPassword(context.Background(), "sam@example.com", ""))
	assert.Error(t, svc.ResetPassword(context.Background(), "nobody@example.com", "pw"))
}
