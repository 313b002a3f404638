package routes

import (
	"net/http"
	"strings"

	"locallytrip-server/models"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/users
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	role := ctx.URLParamDefault("role", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))

	q := storage.DB.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(email) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ?", like, like, like)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not list users")
		return
	}
	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /admin/users/:id
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}
	ctx.JSON(iris.Map{"data": user, "meta": iris.Map{}, "links": iris.Map{}})
}

var assignableRoles = map[string]bool{
	models.RoleAdmin:     true,
	models.RoleModerator: true,
	models.RoleFinance:   true,
	models.RoleMarketing: true,
	models.RoleHost:      true,
	models.RoleTraveler:  true,
}

// PATCH /admin/users/:id/role {role} — super_admin only, gated in routing.
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := ctx.ReadJSON(&body); err != nil || !assignableRoles[body.Role] {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "valid role required")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not update user")
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"data": user})
}

// PATCH /admin/users/:id/trusted {isTrusted} — toggles auto-publish.
func AdminSetUserTrusted(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		IsTrusted *bool `json:"isTrusted"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.IsTrusted == nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "isTrusted required")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	before := user
	user.IsTrusted = *body.IsTrusted
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not update user")
		return
	}

	utils.Audit(ctx, "user.trusted_update", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"data": user})
}
