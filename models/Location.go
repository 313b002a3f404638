package models

type Country struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null;uniqueIndex"`
	Code   string `json:"code" gorm:"type:varchar(2);uniqueIndex"`
	Cities []City `json:"cities,omitempty" gorm:"foreignKey:CountryID"`
}

type City struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null;index"`
	CountryID uint    `json:"countryID" gorm:"not null;index"`
	Country   Country `json:"country" gorm:"foreignKey:CountryID"`
}
