package domain

import (
	"strconv"
	"strings"

	"soapstone/errors"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the coordinate as the "lat,lon" token accepted by ParseLocation.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ParseLocation reads a "lat,lon" path token. It splits on the first comma and both
// halves must be plain decimals, so NaN, Inf, exponents and hex floats are rejected.
// Ranges are NOT checked here: this entry point only feeds radius searches, where an
// out of range center simply matches nothing.
func ParseLocation(token string) (Coordinate, error) {
	rawLat, rawLon, found := strings.Cut(token, ",")
	if !found {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	lat, err := parseDecimal(rawLat)
	if err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	lon, err := parseDecimal(rawLon)
	if err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

type locationPayload struct {
	Latitude  *float64 `validate:"required,gte=-90,lte=90"`
	Longitude *float64 `validate:"required,gte=-180,lte=180"`
}

// ValidateLocation checks a structured body payload: both fields present, numeric,
// and inside [-90, 90] / [-180, 180] inclusive. Zero is a valid degree value.
// Field names match exactly. Every failure is ErrInvalidLocation.
func ValidateLocation(payload any) (Coordinate, error) {
	members, err := decodeObject(payload)
	if err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	var p locationPayload
	if _, err = member(members, "latitude", &p.Latitude); err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	if _, err = member(members, "longitude", &p.Longitude); err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	if err = validate.Struct(p); err != nil {
		return Coordinate{}, errors.ErrInvalidLocation
	}
	return Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}, nil
}

func parseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if err := validate.Var(raw, "required,numeric"); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}
