package model

type Stats struct {
	Cafes    int64 `json:"cafes"`
	Slots    int64 `json:"slots"`
	Bookings int64 `json:"bookings"`
}
