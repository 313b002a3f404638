package routes

import (
	"errors"

	"locallytrip-server/models"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyLikeToggle decides the next like state and counter value when the
// story row is held under lock. The floor covers rows whose counter drifted
// to zero while a stale like row survived.
func applyLikeToggle(hasLike bool, count int) (liked bool, next int) {
	if hasLike {
		next = count - 1
		if next < 0 {
			next = 0
		}
		return false, next
	}
	return true, count + 1
}

// ToggleStoryLike flips the caller's like on a story. The whole
// check-create-or-delete-then-count sequence runs inside one transaction with
// the story row locked, so concurrent toggles cannot double-create rows or
// drive the counter negative.
func ToggleStoryLike(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid story id.", ctx)
		return
	}

	var liked bool
	var likeCount int
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		var story models.Story
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", id, true).
			First(&story).Error; err != nil {
			return err
		}

		var like models.StoryLike
		findErr := tx.Where("story_id = ? AND user_id = ?", id, userID).First(&like).Error
		hasLike := findErr == nil
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		liked, likeCount = applyLikeToggle(hasLike, story.LikeCount)
		if hasLike {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.StoryLike{StoryID: id, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Story{}).Where("id = ?", id).
			UpdateColumn("like_count", likeCount).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.LogInternalError(ctx, txErr)
		return
	}

	ctx.JSON(iris.Map{"success": true, "liked": liked, "likeCount": likeCount})
}

// GetStoryLikeStatus reports whether the caller has liked the story.
func GetStoryLikeStatus(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var count int64
	storage.DB.Model(&models.StoryLike{}).
		Where("story_id = ? AND user_id = ?", id, claims.ID).
		Count(&count)

	ctx.JSON(iris.Map{"success": true, "liked": count > 0})
}

// ListStoryComments pages through a story's comments, newest first.
func ListStoryComments(ctx iris.Context) {
	id := ctx.Params().Get("id")
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := storage.DB.Model(&models.StoryComment{}).Where("story_id = ?", id)

	var total int64
	q.Count(&total)

	var comments []models.StoryComment
	if err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	utils.JSONList(ctx, comments, utils.NewPagination(page, limit, total, len(comments)))
}

// CreateStoryComment appends a comment and bumps the story counter.
func CreateStoryComment(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid story id.", ctx)
		return
	}

	var input struct {
		Body string `json:"body" validate:"required,max=2000"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var story models.Story
	if err := storage.DB.Where("id = ? AND is_active = ?", id, true).First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	comment := models.StoryComment{StoryID: id, UserID: claims.ID, Body: input.Body}
	if err := storage.DB.Create(&comment).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}
	storage.DB.Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))

	storage.DB.Preload("User").First(&comment, comment.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "comment": comment})
}
