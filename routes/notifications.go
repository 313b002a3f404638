package routes

import (
	"locallytrip-server/models"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// ListNotifications pages through the caller's in-app feed.
func ListNotifications(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := storage.DB.Model(&models.Notification{}).Where("user_id = ?", claims.ID)

	var total int64
	q.Count(&total)

	var notifications []models.Notification
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	utils.JSONList(ctx, notifications, utils.NewPagination(page, limit, total, len(notifications)))
}

// MarkNotificationRead flips one entry.
func MarkNotificationRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	result := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, claims.ID).
		Update("is_read", true)
	if result.Error != nil {
		utils.LogInternalError(ctx, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
