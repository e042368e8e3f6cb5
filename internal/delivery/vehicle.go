package delivery

import (
	"fmt"
	"strings"
)

// VehicleProfile is one truck class offered for delivery.
type VehicleProfile struct {
	Title        string  `json:"title" validate:"required"`
	CapacityTons float64 `json:"capacity_tons" validate:"gt=0"`
	BasePrice    float64 `json:"base_price" validate:"gte=0"`
}

// DefaultFleet is the vehicle list of the delivery page.
func DefaultFleet() []VehicleProfile {
	return []VehicleProfile{
		{Title: "Gazelle", CapacityTons: 1.5, BasePrice: 2500},
		{Title: "Valdai", CapacityTons: 3, BasePrice: 3500},
		{Title: "ZIL", CapacityTons: 5, BasePrice: 4500},
		{Title: "KamAZ", CapacityTons: 10, BasePrice: 6000},
		{Title: "Long-bed truck", CapacityTons: 20, BasePrice: 9000},
	}
}

// FindVehicle looks a vehicle up by title, case-insensitively, or by its
// 1-based position in the fleet.
func FindVehicle(fleet []VehicleProfile, key string) (VehicleProfile, error) {
	key = strings.TrimSpace(key)
	for i, v := range fleet {
		if strings.EqualFold(v.Title, key) || fmt.Sprint(i+1) == key {
			return v, nil
		}
	}
	return VehicleProfile{}, fmt.Errorf("unknown vehicle %q", key)
}
