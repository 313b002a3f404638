package main

import (
	"fmt"

	"locallytrip-server/models"
	"locallytrip-server/storage"

	"github.com/rs/zerolog/log"
)

var seedCountries = map[string][]string{
	"Indonesia":   {"Jakarta", "Bali", "Yogyakarta", "Bandung", "Surabaya", "Lombok"},
	"Thailand":    {"Bangkok", "Chiang Mai", "Phuket"},
	"Vietnam":     {"Hanoi", "Ho Chi Minh City", "Da Nang"},
	"Malaysia":    {"Kuala Lumpur", "Penang"},
	"Singapore":   {"Singapore"},
	"Philippines": {"Manila", "Cebu"},
}

var countryCodes = map[string]string{
	"Indonesia":   "ID",
	"Thailand":    "TH",
	"Vietnam":     "VN",
	"Malaysia":    "MY",
	"Singapore":   "SG",
	"Philippines": "PH",
}

func main() {
	storage.InitializeDB()

	for name, cities := range seedCountries {
		country := models.Country{Name: name, Code: countryCodes[name]}
		if err := storage.DB.Where("name = ?", name).FirstOrCreate(&country).Error; err != nil {
			log.Fatal().Err(err).Str("country", name).Msg("could not seed country")
		}
		for _, cityName := range cities {
			city := models.City{Name: cityName, CountryID: country.ID}
			if err := storage.DB.Where("name = ? AND country_id = ?", cityName, country.ID).
				FirstOrCreate(&city).Error; err != nil {
				log.Fatal().Err(err).Str("city", cityName).Msg("could not seed city")
			}
		}
	}

	fmt.Println("Location seeding completed successfully!")
}
