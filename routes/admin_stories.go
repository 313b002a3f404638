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

// GET /admin/stories
func AdminListStories(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	authorID := ctx.URLParamDefault("author_id", "")
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Story{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(excerpt) LIKE ? OR lower(content) LIKE ?", like, like, like)
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

	var items []models.Story
	if err := q.Preload("Author").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not list stories")
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /admin/stories/:id
func AdminGetStory(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var story models.Story
	if err := storage.DB.Preload("Author").Preload("City").First(&story, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "story not found")
		return
	}
	ctx.JSON(iris.Map{"data": story, "meta": iris.Map{}, "links": iris.Map{}})
}

// PATCH /admin/stories/:id/approve
func AdminApproveStory(ctx iris.Context) {
	adminModerateStory(ctx, services.ActionApprove)
}

// PATCH /admin/stories/:id/reject {reason}
func AdminRejectStory(ctx iris.Context) {
	adminModerateStory(ctx, services.ActionReject)
}

// PATCH /admin/stories/:id/suspend
func AdminSuspendStory(ctx iris.Context) {
	adminModerateStory(ctx, services.ActionSuspend)
}

// PATCH /admin/stories/:id/reactivate
func AdminReactivateStory(ctx iris.Context) {
	adminModerateStory(ctx, services.ActionReactivate)
}

func adminModerateStory(ctx iris.Context, action services.Action) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// Reason body is optional for everything but reject.
	ctx.ReadJSON(&body)

	var story models.Story
	if err := storage.DB.First(&story, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "story not found")
		return
	}

	role := ctx.Values().GetString("role")
	before := story
	actor := services.Actor{Role: role}
	if err := services.TransitionStory(&story, action, actor, strings.TrimSpace(body.Reason)); err != nil {
		respondAdminWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&story).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not update story")
		return
	}

	utils.Audit(ctx, "story."+string(action), "story", story.ID, before, story)
	services.Notifier().NotifyModerationResult(story.AuthorID, "story", story.Title, action, story.RejectionReason)

	ctx.JSON(iris.Map{"data": story})
}

func respondAdminWorkflowError(ctx iris.Context, err error) {
	switch err {
	case services.ErrActorNotAllowed:
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "action not allowed for this role")
	case services.ErrInvalidTransition:
		utils.JSONError(ctx, http.StatusConflict, "invalid_transition", "action not allowed from the current status")
	case services.ErrReasonRequired:
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "reason required")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not apply action")
	}
}
