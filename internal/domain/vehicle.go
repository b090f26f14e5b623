package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusUnavailable VehicleStatus = "UNAVAILABLE"
)

type Vehicle struct {
	ID               int32         `json:"id"`
	Make             string        `json:"make"`
	Model            string        `json:"model"`
	Year             int32         `json:"year"`
	LicensePlate     string        `json:"license_plate"`
	PricePerDayCents int32         `json:"price_per_day_cents"`
	Status           VehicleStatus `json:"status"`
	Location         string        `json:"location"`
	ImageURL         string        `json:"image_url"`
	CreatedOn        time.Time     `json:"created_on"`
}
