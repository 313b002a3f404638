package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

func buildUploadTestApp(t *testing.T, userID uint) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Delete("/api/upload/{name}", func(ctx iris.Context) {
		ctx.Values().Set("userID", userID)
		ctx.Next()
	}, DeleteImage)
	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func TestDeleteImageOwnership(t *testing.T) {
	app := buildUploadTestApp(t, 1)

	cases := []struct {
		desc string
		name string
		code int
	}{
		{"own file is removed", "u1-abc.png", http.StatusOK},
		{"foreign file is forbidden", "u2-abc.png", http.StatusForbidden},
		{"name without owner prefix is forbidden", "abc.png", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodDelete, "/api/upload/"+tc.name, nil)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		if rec.Code != tc.code {
			t.Errorf("%s: expected status %d, got %d", tc.desc, tc.code, rec.Code)
		}
	}
}
