package service

import (
	"github.com/shopspring/decimal"
	"zkpark/internal/entities"
	"zkpark/internal/utils"
)

const feeUnset = "--"

var (
	hourlyRate = decimal.NewFromInt(2)
	serviceFee = decimal.RequireFromString("0.25")
)

// CalculateFee prices a reservation at a flat hourly rate plus the service fee.
// Hours are the absolute difference of the start and end hours modulo 24;
// minutes are ignored and there is no overnight handling.
func CalculateFee(startTime, endTime string) entities.QuoteResponse {
	resp := entities.QuoteResponse{
		ParkingFee: feeUnset,
		ServiceFee: serviceFee.StringFixed(2),
		TotalFee:   feeUnset,
	}
	if startTime == "" || endTime == "" {
		return resp
	}
	start, err := utils.HourOf(startTime)
	if err != nil {
		return resp
	}
	end, err := utils.HourOf(endTime)
	if err != nil {
		return resp
	}

	hours := (end - start) % 24
	if hours < 0 {
		hours = -hours
	}
	parking := hourlyRate.Mul(decimal.NewFromInt(int64(hours)))
	resp.ParkingFee = parking.StringFixed(2)
	resp.TotalFee = parking.Add(serviceFee).StringFixed(2)
	return resp
}
