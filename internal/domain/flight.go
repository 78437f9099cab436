package domain

import (
	"fmt"
	"time"
)

type Flight struct {
	ID                 int64
	Number             string
	FromAirport        string
	ToAirport          string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	TotalSeats         int
	EconomyPriceCents  int64
	BusinessPriceCents int64
	FirstPriceCents    int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PriceFor returns the flight's current price for a travel class.
func (f *Flight) PriceFor(class TravelClass) (int64, error) {
	switch class {
	case TravelClassEconomy:
		return f.EconomyPriceCents, nil
	case TravelClassBusiness:
		return f.BusinessPriceCents, nil
	case TravelClassFirst:
		return f.FirstPriceCents, nil
	}
	return 0, fmt.Errorf("unknown travel class %q", class)
}
