package routes

import (
	"encoding/json"
	"time"

	"locallytrip-server/models"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

type BookingRequest struct {
	ExperienceID     uint     `json:"experienceId" validate:"required"`
	BookingDate      string   `json:"bookingDate" validate:"required"`
	ParticipantCount int      `json:"participantCount" validate:"required,min=1"`
	PackageTier      string   `json:"packageTier"`
	SelectedServices []string `json:"selectedServices"`
	Notes            string   `json:"notes"`
	// ClientTotal is informational only; the server recomputes the price.
	ClientTotal float64 `json:"clientTotal"`
}

// CreateBooking books a published experience. The total is always computed
// server-side from the category formula; a mismatching client total is
// reported back but never stored.
func CreateBooking(ctx iris.Context) {
	userIDValue := ctx.Values().Get("userID")
	if userIDValue == nil {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "User not authenticated"})
		return
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "Invalid user ID"})
		return
	}

	var request BookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var experience models.Experience
	if err := storage.DB.Where("id = ? AND status = ? AND is_active = ?",
		request.ExperienceID, string(services.StatusPublished), true).
		First(&experience).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if experience.GroupSize > 0 && request.ParticipantCount > experience.GroupSize {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"message":         "Participant count exceeds experience capacity",
			"maxParticipants": experience.GroupSize,
		})
		return
	}

	bookingDate, err := time.Parse("2006-01-02", request.BookingDate)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid date format"})
		return
	}
	if bookingDate.Before(time.Now().Truncate(24 * time.Hour)) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Booking date cannot be in the past"})
		return
	}

	total := services.CalculateTotal(experience.Category, experience.BasePrice, services.BookingSelections{
		ParticipantCount: request.ParticipantCount,
		PackageTier:      request.PackageTier,
		Services:         request.SelectedServices,
	})

	booking := models.Booking{
		UUID:             uuid.NewString(),
		ExperienceID:     experience.ID,
		UserID:           userID,
		HostID:           experience.HostID,
		BookingDate:      bookingDate,
		ParticipantCount: request.ParticipantCount,
		PackageTier:      request.PackageTier,
		Notes:            request.Notes,
		TotalPrice:       total,
		Currency:         experience.Currency,
		Status:           models.BookingStatusConfirmed,
	}
	if request.SelectedServices != nil {
		if raw, err := json.Marshal(request.SelectedServices); err == nil {
			booking.SelectedServices = raw
		}
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	services.Notifier().NotifyBookingCreated(experience.HostID, experience.Title, total)

	storage.DB.Preload("Experience").Preload("User").First(&booking, booking.ID)

	// Surface a drift between what the client displayed and what we charge.
	priceAdjusted := request.ClientTotal > 0 && request.ClientTotal != total

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success":        true,
		"booking":        booking,
		"totalFormatted": services.FormatIDR(total),
		"priceAdjusted":  priceAdjusted,
	})
}

// GetMyBookings lists the traveler's bookings, newest first.
func GetMyBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("user_id = ?", userID).
		Preload("Experience").Preload("Experience.Host").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "bookings": bookings})
}

// GetHostBookings lists bookings against the host's listings.
func GetHostBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("host_id = ?", userID).
		Preload("Experience").Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "bookings": bookings})
}

// MarkBookingAsRead flips the host dashboard flag.
func MarkBookingAsRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	result := storage.DB.Model(&models.Booking{}).
		Where("id = ? AND host_id = ?", id, userID).
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

// CancelBooking lets the traveler withdraw; the booking row survives as
// cancelled for the host's records.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var booking models.Booking
	if err := storage.DB.Preload("Experience").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.Status == models.BookingStatusCancelled {
		ctx.JSON(iris.Map{"success": true, "booking": booking})
		return
	}

	booking.Status = models.BookingStatusCancelled
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	services.Notifier().NotifyBookingCancelled(booking.HostID, booking.Experience.Title)

	ctx.JSON(iris.Map{"success": true, "booking": booking})
}
