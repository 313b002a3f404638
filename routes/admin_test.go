package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with the admin routes and JWT
// verifier. The router must be built before ServeHTTP can be used directly.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(mockAccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, mockAdminOnlyMiddleware)
	{
		admin.Get("/users", AdminListUsers)
		admin.Patch("/stories/{id:uint}/approve", AdminApproveStory)
	}
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

type mockAccessToken struct {
	ID   uint
	Role string
}

// mockAdminOnlyMiddleware mirrors utils.AdminOnlyMiddleware for mockAccessToken
func mockAdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*mockAccessToken)
	switch claims.Role {
	case "super_admin", "admin", "moderator":
	default:
		ctx.StatusCode(iris.StatusForbidden)
		return
	}
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(mockAccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAdminRoutesRBAC(t *testing.T) {
	app := buildTestApp(t)

	// No token -> rejected by the verifier before any handler runs
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Non-moderation roles -> 403
	for _, role := range []string{"traveler", "host", "finance", "marketing"} {
		req2 := httptest.NewRequest(http.MethodPatch, "/api/admin/stories/1/approve", nil)
		req2.Header.Set("Authorization", "Bearer "+signTestToken(role))
		resp2 := httptest.NewRecorder()
		app.ServeHTTP(resp2, req2)
		if resp2.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s role, got %d", role, resp2.Code)
		}
	}
}
