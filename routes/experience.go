package routes

import (
	"encoding/json"
	"strings"

	"locallytrip-server/models"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// CreateExperience creates a draft listing for the authenticated host.
func CreateExperience(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	var input struct {
		Title              string   `json:"title" validate:"required"`
		Category           string   `json:"category" validate:"required"`
		Description        string   `json:"description"`
		CityID             *uint    `json:"cityID"`
		Duration           int      `json:"duration"`
		GroupSize          int      `json:"groupSize"`
		StartTime          string   `json:"startTime"`
		EndTime            string   `json:"endTime"`
		BasePrice          float64  `json:"basePrice" validate:"required,gt=0"`
		Services           []string `json:"services"`
		CancellationPolicy string   `json:"cancellationPolicy"`
		Photos             []string `json:"photos"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	experience := models.Experience{
		UUID:               uuid.NewString(),
		HostID:             userID,
		Title:              input.Title,
		Slug:               utils.UniqueSlug(input.Title, experienceSlugExists),
		Category:           input.Category,
		Description:        input.Description,
		CityID:             input.CityID,
		Duration:           input.Duration,
		GroupSize:          input.GroupSize,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		BasePrice:          input.BasePrice,
		Currency:           "IDR",
		CancellationPolicy: input.CancellationPolicy,
		Status:             string(services.StatusDraft),
		IsActive:           true,
	}
	if input.Services != nil {
		if raw, err := json.Marshal(input.Services); err == nil {
			experience.Services = raw
		}
	}
	if input.Photos != nil {
		if raw, err := json.Marshal(input.Photos); err == nil {
			experience.Photos = raw
		}
	}

	if err := storage.DB.Create(&experience).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

// GetPublicExperiences lists published, active listings for discovery.
func GetPublicExperiences(ctx iris.Context) {
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
	category := ctx.URLParam("category")
	cityID := ctx.URLParam("cityId")
	hostID := ctx.URLParam("hostId")
	maxPrice := ctx.URLParamFloat64Default("maxPrice", 0)

	q := storage.DB.Model(&models.Experience{}).
		Where("status = ? AND is_active = ?", string(services.StatusPublished), true)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if cityID != "" {
		q = q.Where("city_id = ?", cityID)
	}
	if hostID != "" {
		q = q.Where("host_id = ?", hostID)
	}
	if maxPrice > 0 {
		q = q.Where("base_price <= ?", maxPrice)
	}

	var total int64
	q.Count(&total)

	var experiences []models.Experience
	if err := q.Preload("Host").Preload("City").
		Order("published_at DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&experiences).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	utils.JSONList(ctx, experiences, utils.NewPagination(page, limit, total, len(experiences)))
}

// GetExperienceDetails serves the public detail page and bumps views.
func GetExperienceDetails(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var experience models.Experience
	if err := storage.DB.Preload("Host").Preload("City").
		Where("id = ? AND status = ? AND is_active = ?", id, string(services.StatusPublished), true).
		First(&experience).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Model(&models.Experience{}).Where("id = ?", experience.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))

	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

// GetMyExperiences lists the host's own listings, any status.
func GetMyExperiences(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var experiences []models.Experience
	if err := storage.DB.Where("host_id = ? AND is_active = ?", claims.ID, true).
		Order("created_at DESC").
		Find(&experiences).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experiences": experiences})
}

// UpdateExperience edits an owned listing.
func UpdateExperience(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input struct {
		Title              string   `json:"title"`
		Category           string   `json:"category"`
		Description        string   `json:"description"`
		CityID             *uint    `json:"cityID"`
		Duration           int      `json:"duration"`
		GroupSize          int      `json:"groupSize"`
		StartTime          string   `json:"startTime"`
		EndTime            string   `json:"endTime"`
		BasePrice          float64  `json:"basePrice"`
		Services           []string `json:"services"`
		CancellationPolicy string   `json:"cancellationPolicy"`
		Photos             []string `json:"photos"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var experience models.Experience
	if err := storage.DB.Where("id = ? AND host_id = ? AND is_active = ?", id, claims.ID, true).
		First(&experience).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.Title != "" {
		experience.Title = input.Title
	}
	if input.Category != "" {
		experience.Category = input.Category
	}
	if input.Description != "" {
		experience.Description = input.Description
	}
	if input.CityID != nil {
		experience.CityID = input.CityID
	}
	if input.Duration > 0 {
		experience.Duration = input.Duration
	}
	if input.GroupSize > 0 {
		experience.GroupSize = input.GroupSize
	}
	if input.StartTime != "" {
		experience.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		experience.EndTime = input.EndTime
	}
	if input.BasePrice > 0 {
		experience.BasePrice = input.BasePrice
	}
	if input.CancellationPolicy != "" {
		experience.CancellationPolicy = input.CancellationPolicy
	}
	if input.Services != nil {
		if raw, err := json.Marshal(input.Services); err == nil {
			experience.Services = raw
		}
	}
	if input.Photos != nil {
		if raw, err := json.Marshal(input.Photos); err == nil {
			experience.Photos = raw
		}
	}

	if err := storage.DB.Save(&experience).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

// SubmitExperienceForReview queues a draft listing for moderation.
func SubmitExperienceForReview(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var experience models.Experience
	if err := storage.DB.Where("id = ? AND host_id = ? AND is_active = ?", id, claims.ID, true).
		First(&experience).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if experience.Title == "" || experience.Category == "" || experience.Description == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Please complete all required fields before submitting.", ctx)
		return
	}

	actor := services.Actor{Role: claims.Role, IsOwner: true}
	if err := services.TransitionExperience(&experience, services.ActionSubmit, actor, ""); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&experience).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	services.Notifier().NotifySubmittedForReview("experience", experience.Title, experience.ID)

	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

// PauseExperience is the host's own temporary deactivation, distinct from an
// admin suspension.
func PauseExperience(ctx iris.Context) {
	applyHostExperienceAction(ctx, services.ActionPause)
}

// ResumeExperience brings a paused listing back live.
func ResumeExperience(ctx iris.Context) {
	applyHostExperienceAction(ctx, services.ActionResume)
}

func applyHostExperienceAction(ctx iris.Context, action services.Action) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var experience models.Experience
	if err := storage.DB.Where("id = ? AND host_id = ? AND is_active = ?", id, claims.ID, true).
		First(&experience).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := services.Actor{Role: claims.Role, IsOwner: true}
	if err := services.TransitionExperience(&experience, action, actor, ""); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&experience).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

// DeleteExperience soft deletes an owned (or admin-targeted) listing.
func DeleteExperience(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var experience models.Experience
	if err := storage.DB.First(&experience, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := services.Actor{Role: claims.Role, IsOwner: experience.HostID == claims.ID}
	if err := services.TransitionExperience(&experience, services.ActionDelete, actor, ""); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := storage.DB.Save(&experience).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func experienceSlugExists(slug string) bool {
	var count int64
	storage.DB.Model(&models.Experience{}).Where("slug = ?", slug).Count(&count)
	return count > 0
}
