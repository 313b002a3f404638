package routes

import (
	"locallytrip-server/models"
	"locallytrip-server/storage"

	"github.com/kataras/iris/v12"
)

// GET /admin/stats — dashboard counters.
func AdminStats(ctx iris.Context) {
	countByColumn := func(model interface{}, column string) map[string]int64 {
		type row struct {
			Key   string
			Count int64
		}
		var rows []row
		storage.DB.Model(model).
			Select(column + " AS key, COUNT(*) AS count").
			Group(column).
			Scan(&rows)
		out := make(map[string]int64, len(rows))
		for _, r := range rows {
			out[r.Key] = r.Count
		}
		return out
	}

	var totalUsers, totalStories, totalExperiences, totalBookings, pendingReview int64
	storage.DB.Model(&models.User{}).Count(&totalUsers)
	storage.DB.Model(&models.Story{}).Count(&totalStories)
	storage.DB.Model(&models.Experience{}).Count(&totalExperiences)
	storage.DB.Model(&models.Booking{}).Count(&totalBookings)
	storage.DB.Model(&models.Story{}).Where("status = ?", "pending_review").Count(&pendingReview)
	var pendingExperiences int64
	storage.DB.Model(&models.Experience{}).Where("status = ?", "pending_review").Count(&pendingExperiences)
	pendingReview += pendingExperiences

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"users":               totalUsers,
			"usersByRole":         countByColumn(&models.User{}, "role"),
			"stories":             totalStories,
			"storiesByStatus":     countByColumn(&models.Story{}, "status"),
			"experiences":         totalExperiences,
			"experiencesByStatus": countByColumn(&models.Experience{}, "status"),
			"bookings":            totalBookings,
			"bookingsByStatus":    countByColumn(&models.Booking{}, "status"),
			"pendingReview":       pendingReview,
		},
	})
}
