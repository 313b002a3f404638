package routes

import (
	"locallytrip-server/models"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
)

// ListCountries returns the reference country list.
func ListCountries(ctx iris.Context) {
	var countries []models.Country
	if err := storage.DB.Order("name ASC").Find(&countries).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "countries": countries})
}

// ListCities returns cities, optionally filtered by country.
func ListCities(ctx iris.Context) {
	countryID := ctx.URLParam("countryId")

	q := storage.DB.Model(&models.City{}).Preload("Country")
	if countryID != "" {
		q = q.Where("country_id = ?", countryID)
	}

	var cities []models.City
	if err := q.Order("name ASC").Find(&cities).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "cities": cities})
}
