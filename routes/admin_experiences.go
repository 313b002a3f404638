package routes

import (
	"net/http"
	"strings"
	"time"

	"locallytrip-server/models"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/experiences
func AdminListExperiences(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	category := ctx.URLParamDefault("category", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	hostID := ctx.URLParamDefault("host_id", "")
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Experience{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if hostID != "" {
		q = q.Where("host_id = ?", hostID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like)
	}
	if createdFrom != "" {
		if t, err := time.Parse(time.RFC3339, createdFrom); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if createdTo != "" {
		if t, err := time.Parse(time.RFC3339, createdTo); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Experience
	if err := q.Preload("Host").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not list experiences")
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /admin/experiences/:id
func AdminGetExperience(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var exp models.Experience
	if err := storage.DB.Preload("Host").Preload("Bookings").First(&exp, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
		return
	}
	ctx.JSON(iris.Map{"data": exp, "meta": iris.Map{}, "links": iris.Map{}})
}

// PATCH /admin/experiences/:id/approve
func AdminApproveExperience(ctx iris.Context) {
	adminModerateExperience(ctx, services.ActionApprove)
}

// PATCH /admin/experiences/:id/reject {reason}
func AdminRejectExperience(ctx iris.Context) {
	adminModerateExperience(ctx, services.ActionReject)
}

// PATCH /admin/experiences/:id/suspend
func AdminSuspendExperience(ctx iris.Context) {
	adminModerateExperience(ctx, services.ActionSuspend)
}

// PATCH /admin/experiences/:id/reactivate
func AdminReactivateExperience(ctx iris.Context) {
	adminModerateExperience(ctx, services.ActionReactivate)
}

func adminModerateExperience(ctx iris.Context, action services.Action) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	ctx.ReadJSON(&body)

	var exp models.Experience
	if err := storage.DB.First(&exp, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
		return
	}

	role := ctx.Values().GetString("role")
	before := exp
	actor := services.Actor{Role: role}
	if err := services.TransitionExperience(&exp, action, actor, strings.TrimSpace(body.Reason)); err != nil {
		respondAdminWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&exp).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not update experience")
		return
	}

	utils.Audit(ctx, "experience."+string(action), "experience", exp.ID, before, exp)
	services.Notifier().NotifyModerationResult(exp.HostID, "experience", exp.Title, action, exp.RejectionReason)

	ctx.JSON(iris.Map{"data": exp})
}
