package utils

import "strings"

type VehicleOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

const DefaultVehicle = "Tesla Model 3"

// VehicleOptions lists the vehicles a reservation can be made for. The choice does not affect pricing.
func VehicleOptions() []VehicleOption {
	return []VehicleOption{
		{Label: "Tesla Model 3", Value: "Tesla Model 3"},
		{Label: "Tesla Model Y", Value: "Tesla Model Y"},
		{Label: "Nissan Leaf", Value: "Nissan Leaf"},
	}
}

// NormalizeVehicle maps an unknown or empty selection to the default vehicle.
func NormalizeVehicle(v string) string {
	for _, opt := range VehicleOptions() {
		if strings.EqualFold(opt.Value, strings.TrimSpace(v)) {
			return opt.Value
		}
	}
	return DefaultVehicle
}
