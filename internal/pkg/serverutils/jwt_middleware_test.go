package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		id, err := CurrentUserID(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(fiber.Map{"user_id": id.String()})
	})
	return app
}

func makeToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJwtMiddlewareAcceptsConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token := makeToken(t, []byte("test-secret"), jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, fiber.StatusOK, doRequest(t, app, token))
}

func TestJwtMiddlewareRejectsEmptySecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	app := newProtectedApp()

	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	// Neither a token signed with the empty key nor one signed with some
	// other guessable key may verify when no secret is configured.
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, makeToken(t, []byte(""), claims)))
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, makeToken(t, []byte("default_secret"), claims)))
}

func TestJwtMiddlewareRejectsNonStringUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token := makeToken(t, []byte("test-secret"), jwt.MapClaims{
		"user_id": 12345,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, token))
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, ""))
}

func TestJwtSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	secret, err := JwtSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("test-secret"), secret)

	t.Setenv("JWT_SECRET", "")
	_, err = JwtSecret()
	assert.Error(t, err)
}

func TestCurrentUserID(t *testing.T) {
	app := fiber.New()
	want := uuid.New()

	app.Get("/ok", func(ctx *fiber.Ctx) error {
		ctx.Locals("user_id", want.String())
		id, err := CurrentUserID(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, id)
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		_, err := CurrentUserID(ctx)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Get("/garbled", func(ctx *fiber.Ctx) error {
		ctx.Locals("user_id", "not-a-uuid")
		_, err := CurrentUserID(ctx)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		return ctx.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/ok", "/missing", "/garbled"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
