package pricing

import (
	"errors"
	"math"
)

// ErrInvalidTrip is returned for non-positive or non-finite trip inputs or
// fewer than two passengers.
var ErrInvalidTrip = errors.New("please enter valid values in all fields")

// Commute savings defaults.
const (
	DefaultDailyDistance  = 20
	DefaultVehicleMileage = 12
	DefaultFuelRate       = 280
	DefaultWorkingDays    = 22
	commuteSharers        = 4
)

// CommuteSavingsInput describes a solo commute. Zero values take the
// defaults.
type CommuteSavingsInput struct {
	DailyDistance  float64
	VehicleMileage float64
	FuelRate       float64
	WorkingDays    float64
}

// CommuteSavings compares driving alone with sharing among four people.
type CommuteSavings struct {
	MonthlyCost int64
	SharedCost  int64
	Savings     int64
	Percent     int
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func orDefault(v, def float64) float64 {
	if !finite(v) || v <= 0 {
		return def
	}
	return v
}

// Commute computes monthly commute savings.
func Commute(in CommuteSavingsInput) CommuteSavings {
	distance := orDefault(in.DailyDistance, DefaultDailyDistance)
	mileage := orDefault(in.VehicleMileage, DefaultVehicleMileage)
	rate := orDefault(in.FuelRate, DefaultFuelRate)
	days := orDefault(in.WorkingDays, DefaultWorkingDays)

	monthly := distance / mileage * rate * days
	shared := monthly / commuteSharers
	savings := monthly - shared
	return CommuteSavings{
		MonthlyCost: int64(math.Round(monthly)),
		SharedCost:  int64(math.Round(shared)),
		Savings:     int64(math.Round(savings)),
		Percent:     int(math.Round(savings / monthly * 100)),
	}
}

// TripShareInput describes one carpool trip. Passengers include the
// driver.
type TripShareInput struct {
	Distance       float64
	FuelEfficiency float64
	FuelPrice      float64
	Passengers     int
}

// TripShare splits a trip's cost between passengers.
type TripShare struct {
	FuelCost         int64
	ExtraCost        int64
	TotalCost        int64
	PerPerson        int64
	SavingsPerPerson int64
	GroupSavings     int64
}

const extraCostRate = 0.3

// Trip computes the per-person share of a carpool trip.
func Trip(in TripShareInput) (TripShare, error) {
	for _, v := range []float64{in.Distance, in.FuelEfficiency, in.FuelPrice} {
		if !finite(v) || v <= 0 {
			return TripShare{}, ErrInvalidTrip
		}
	}
	if in.Passengers < 2 {
		return TripShare{}, ErrInvalidTrip
	}
	fuel := in.Distance / in.FuelEfficiency * in.FuelPrice
	extra := fuel * extraCostRate
	total := fuel + extra
	per := total / float64(in.Passengers)
	saved := total - per
	return TripShare{
		FuelCost:         int64(math.Round(fuel)),
		ExtraCost:        int64(math.Round(extra)),
		TotalCost:        int64(math.Round(total)),
		PerPerson:        int64(math.Round(per)),
		SavingsPerPerson: int64(math.Round(saved)),
		GroupSavings:     int64(math.Round(saved * float64(in.Passengers))),
	}, nil
}
