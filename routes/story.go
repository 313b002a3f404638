package routes

import (
	"encoding/json"
	"strings"
	"time"

	"locallytrip-server/models"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// GetStories lists published, active stories with filters and pagination.
func GetStories(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	search := strings.TrimSpace(ctx.URLParam("search"))
	cityID := ctx.URLParam("cityId")
	authorID := ctx.URLParam("authorId")

	q := storage.DB.Model(&models.Story{}).
		Where("status = ? AND is_active = ?", string(services.StatusPublished), true)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(excerpt) LIKE ? OR lower(content) LIKE ?", like, like, like)
	}
	if cityID != "" {
		q = q.Where("city_id = ?", cityID)
	}
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}

	var total int64
	q.Count(&total)

	var stories []models.Story
	if err := q.Preload("Author").Preload("City").
		Order("published_at DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&stories).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	utils.JSONList(ctx, stories, utils.NewPagination(page, limit, total, len(stories)))
}

// CreateStory creates a story for the authenticated author. A requested
// "published" status only sticks for trusted hosts; everyone else lands in
// the review queue.
func CreateStory(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	var input struct {
		Title      string   `json:"title" validate:"required"`
		Excerpt    string   `json:"excerpt"`
		Content    string   `json:"content" validate:"required"`
		CoverImage string   `json:"coverImage"`
		CityID     *uint    `json:"cityID"`
		Tags       []string `json:"tags"`
		Status     string   `json:"status"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	status := services.NormalizeCreateStatus(services.Status(input.Status), user.IsTrusted)

	story := models.Story{
		UUID:       uuid.NewString(),
		AuthorID:   userID,
		Title:      input.Title,
		Slug:       utils.UniqueSlug(input.Title, storySlugExists),
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		CoverImage: input.CoverImage,
		CityID:     input.CityID,
		Status:     string(status),
		IsActive:   true,
	}
	if status == services.StatusPublished {
		// trusted author publishing directly
		now := time.Now()
		story.PublishedAt = &now
	}
	if input.Tags != nil {
		if raw, err := json.Marshal(input.Tags); err == nil {
			story.Tags = raw
		}
	}

	if err := storage.DB.Create(&story).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	if status == services.StatusPendingReview {
		services.Notifier().NotifySubmittedForReview("story", story.Title, story.ID)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "story": story})
}

// GetStory returns a single published story and bumps its view counter.
func GetStory(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var story models.Story
	if err := storage.DB.Preload("Author").Preload("City").
		Where("id = ? AND status = ? AND is_active = ?", id, string(services.StatusPublished), true).
		First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Model(&models.Story{}).Where("id = ?", story.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))

	ctx.JSON(iris.Map{"success": true, "story": story})
}

// GetStoryBySlug is the public permalink fetch.
func GetStoryBySlug(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var story models.Story
	if err := storage.DB.Preload("Author").Preload("City").
		Where("slug = ? AND status = ? AND is_active = ?", slug, string(services.StatusPublished), true).
		First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Model(&models.Story{}).Where("id = ?", story.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))

	ctx.JSON(iris.Map{"success": true, "story": story})
}

// GetMyStories lists every active story the author owns, any status.
func GetMyStories(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var stories []models.Story
	if err := storage.DB.Where("author_id = ? AND is_active = ?", claims.ID, true).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "stories": stories})
}

func GetMyStory(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var story models.Story
	if err := storage.DB.Where("id = ? AND author_id = ? AND is_active = ?", id, claims.ID, true).
		First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "story": story})
}

// UpdateStory edits an owned story. The slug stays stable once minted.
func UpdateStory(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input struct {
		Title      string   `json:"title"`
		Excerpt    string   `json:"excerpt"`
		Content    string   `json:"content"`
		CoverImage string   `json:"coverImage"`
		CityID     *uint    `json:"cityID"`
		Tags       []string `json:"tags"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var story models.Story
	if err := storage.DB.Where("id = ? AND author_id = ? AND is_active = ?", id, claims.ID, true).
		First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.Title != "" {
		story.Title = input.Title
	}
	if input.Excerpt != "" {
		story.Excerpt = input.Excerpt
	}
	if input.Content != "" {
		story.Content = input.Content
	}
	if input.CoverImage != "" {
		story.CoverImage = input.CoverImage
	}
	if input.CityID != nil {
		story.CityID = input.CityID
	}
	if input.Tags != nil {
		if raw, err := json.Marshal(input.Tags); err == nil {
			story.Tags = raw
		}
	}

	if err := storage.DB.Save(&story).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "story": story})
}

// SubmitStoryForReview moves a draft into the moderation queue.
func SubmitStoryForReview(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var story models.Story
	if err := storage.DB.Where("id = ? AND author_id = ? AND is_active = ?", id, claims.ID, true).
		First(&story).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if story.Title == "" || story.Content == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Please complete all required fields before submitting.", ctx)
		return
	}

	actor := services.Actor{Role: claims.Role, IsOwner: true}
	if err := services.TransitionStory(&story, services.ActionSubmit, actor, ""); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&story).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	services.Notifier().NotifySubmittedForReview("story", story.Title, story.ID)

	ctx.JSON(iris.Map{"success": true, "story": story})
}

// DeleteStory soft deletes: the record stays in storage with IsActive false.
func DeleteStory(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var story models.Story
	if err := storage.DB.First(&story, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := services.Actor{Role: claims.Role, IsOwner: story.AuthorID == claims.ID}
	if err := services.TransitionStory(&story, services.ActionDelete, actor, ""); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&story).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func storySlugExists(slug string) bool {
	var count int64
	storage.DB.Model(&models.Story{}).Where("slug = ?", slug).Count(&count)
	return count > 0
}

// respondWorkflowError maps workflow failures onto HTTP statuses.
func respondWorkflowError(ctx iris.Context, err error) {
	switch err {
	case services.ErrActorNotAllowed:
		utils.CreateForbidden(ctx)
	case services.ErrInvalidTransition:
		utils.CreateError(iris.StatusConflict, "Conflict", "Action not allowed from the current status.", ctx)
	case services.ErrReasonRequired:
		utils.CreateError(iris.StatusBadRequest, "Validation error", "A rejection reason is required.", ctx)
	default:
		utils.LogInternalError(ctx, err)
	}
}
