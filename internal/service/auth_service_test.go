package service

import (
	"context"
	"os"
	"testing"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	factory := newTestFactory(t)
	svc := NewAuthService(factory, nopLogger{})

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)
	require.NotEmpty(t, res.Token)

	// The token must carry the identity claims the websocket handshake reads.
	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, "Alice", claims["name"])
	assert.Equal(t, "alice@example.com", claims["email"])

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Name:     "Impostor",
			Email:    "alice@example.com",
			Password: "other",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestAuthServiceRefusesToSignWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	factory := newTestFactory(t)
	svc := NewAuthService(factory, nopLogger{})

	// The same key resolution backs signing and verification; with no
	// secret configured no token may ever be issued.
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestAuthServiceLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	factory := newTestFactory(t)
	svc := NewAuthService(factory, nopLogger{})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "bob@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "Bob", res.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "bob@example.com",
			Password: "wrong",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}

func TestAuthServiceGetProfile(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewAuthService(factory, nopLogger{})

	user := seedUser(t, factory, "Carol", "carol@example.com")

	res, err := svc.GetProfile(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Carol", res.Name)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
