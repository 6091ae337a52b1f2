package domain

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the wall-clock format every flight timestamp uses. Timestamps
// are naive: no timezone or DST correction is applied anywhere.
const TimeLayout = "2006-01-02 15:04"

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp parses a "YYYY-MM-DD HH:MM" string into a naive instant.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

type Flight struct {
	Number      string  `json:"number"`
	Airline     string  `json:"airline"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	Cost        float64 `json:"cost"`
	Capacity    int     `json:"capacity"`
	Booked      int     `json:"booked"`
}

// TravelTime returns arrival minus departure in fractional hours.
func (f *Flight) TravelTime() (float64, error) {
	dep, err := ParseTimestamp(f.Departure)
	if err != nil {
		return 0, err
	}
	arr, err := ParseTimestamp(f.Arrival)
	if err != nil {
		return 0, err
	}
	return hoursBetween(dep, arr), nil
}

// LayoverTo returns the gap in fractional hours between this flight's arrival
// and the next flight's departure.
func (f *Flight) LayoverTo(next *Flight) (float64, error) {
	arr, err := ParseTimestamp(f.Arrival)
	if err != nil {
		return 0, err
	}
	dep, err := ParseTimestamp(next.Departure)
	if err != nil {
		return 0, err
	}
	return hoursBetween(arr, dep), nil
}

// DepartureDate returns the date portion of the departure timestamp.
func (f *Flight) DepartureDate() string {
	if len(f.Departure) < len("2006-01-02") {
		return f.Departure
	}
	return f.Departure[:len("2006-01-02")]
}

func (f *Flight) IsFull() bool {
	return f.Booked >= f.Capacity
}

func (f *Flight) SeatsLeft() int {
	return f.Capacity - f.Booked
}

func hoursBetween(from, to time.Time) float64 {
	return float64(to.Sub(from).Milliseconds()) / float64(60*60*1000)
}
