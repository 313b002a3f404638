package routes

import (
	"net/http"

	"locallytrip-server/models"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
)

// ListFeaturedHosts is the public landing-page strip: active entries ordered
// by their display slot.
func ListFeaturedHosts(ctx iris.Context) {
	var featured []models.FeaturedHost
	if err := storage.DB.Where("is_active = ?", true).
		Preload("Host").
		Order("display_order ASC, created_at ASC").
		Find(&featured).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "featuredHosts": featured})
}

// GET /admin/featured-hosts
func AdminListFeaturedHosts(ctx iris.Context) {
	var featured []models.FeaturedHost
	if err := storage.DB.Preload("Host").
		Order("display_order ASC, created_at ASC").
		Find(&featured).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not list featured hosts")
		return
	}
	utils.JSONPage(ctx, featured, 1, len(featured), int64(len(featured)))
}

// POST /admin/featured-hosts
func AdminCreateFeaturedHost(ctx iris.Context) {
	var input struct {
		HostID       uint   `json:"hostID" validate:"required"`
		Title        string `json:"title"`
		Badge        string `json:"badge"`
		DisplayOrder int    `json:"displayOrder"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "hostID required")
		return
	}

	var host models.User
	if err := storage.DB.First(&host, input.HostID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "host not found")
		return
	}

	featured := models.FeaturedHost{
		HostID:       input.HostID,
		Title:        input.Title,
		Badge:        input.Badge,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if err := storage.DB.Create(&featured).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not create featured host")
		return
	}

	utils.Audit(ctx, "featured_host.create", "featured_host", featured.ID, nil, featured)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": featured})
}

// PATCH /admin/featured-hosts/:id
func AdminUpdateFeaturedHost(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var input struct {
		Title        *string `json:"title"`
		Badge        *string `json:"badge"`
		DisplayOrder *int    `json:"displayOrder"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "invalid payload")
		return
	}

	var featured models.FeaturedHost
	if err := storage.DB.First(&featured, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "featured host not found")
		return
	}

	before := featured
	if input.Title != nil {
		featured.Title = *input.Title
	}
	if input.Badge != nil {
		featured.Badge = *input.Badge
	}
	if input.DisplayOrder != nil {
		featured.DisplayOrder = *input.DisplayOrder
	}
	if err := storage.DB.Save(&featured).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not update featured host")
		return
	}

	utils.Audit(ctx, "featured_host.update", "featured_host", featured.ID, before, featured)
	ctx.JSON(iris.Map{"data": featured})
}

// POST /admin/featured-hosts/:id/toggle
func AdminToggleFeaturedHost(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var featured models.FeaturedHost
	if err := storage.DB.First(&featured, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "featured host not found")
		return
	}

	before := featured
	featured.IsActive = !featured.IsActive
	if err := storage.DB.Save(&featured).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not toggle featured host")
		return
	}

	utils.Audit(ctx, "featured_host.toggle", "featured_host", featured.ID, before, featured)
	ctx.JSON(iris.Map{"data": featured})
}

// DELETE /admin/featured-hosts/:id
func AdminDeleteFeaturedHost(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var featured models.FeaturedHost
	if err := storage.DB.First(&featured, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "featured host not found")
		return
	}

	if err := storage.DB.Delete(&featured).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete featured host")
		return
	}

	utils.Audit(ctx, "featured_host.delete", "featured_host", featured.ID, featured, nil)
	ctx.JSON(iris.Map{"data": iris.Map{"deleted": true}})
}
