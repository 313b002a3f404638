package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locallytrip-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const testSecret = "testsecret"

func buildUserIDTestApp(t *testing.T) *iris.Application {
	t.Helper()
	app := iris.New()

	verifier := jwt.NewVerifier(jwt.HS256, []byte(testSecret))
	verifierMiddleware := verifier.Verify(func() interface{} { return new(AccessToken) })

	app.Get("/user/{id}/stories/saved", verifierMiddleware, UserIDMiddleware, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func signUserToken(t *testing.T, id uint) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, []byte(testSecret), time.Hour)
	token, err := signer.Sign(AccessToken{ID: id, Role: models.RoleTraveler})
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return string(token)
}

// The {id} path parameter must match the token's subject; anyone else's id
// gets a 403 before the handler runs.
func TestUserIDMiddleware(t *testing.T) {
	app := buildUserIDTestApp(t)
	token := signUserToken(t, 7)

	req := httptest.NewRequest(http.MethodGet, "/user/7/stories/saved", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("own id: expected 200, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/user/8/stories/saved", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("foreign id: expected 403, got %d", resp2.Code)
	}
}
