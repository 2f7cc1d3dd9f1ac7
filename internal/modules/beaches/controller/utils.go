package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

func parseBeachID(r *http.Request) (int, error) {
	s := r.PathValue("id")
	if s == "" {
		return 0, errors.New("missing beach id")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid beach id (expected positive integer)")
	}
	return id, nil
}

// parseLocation reads lat/lng from the form. Any missing, malformed or out of
// range value means the position could not be determined.
func parseLocation(r *http.Request) (lat, lng float64, err error) {
	if err := r.ParseForm(); err != nil {
		return 0, 0, errors.New("invalid form")
	}
	lat, err = parseCoord(r.Form.Get("lat"), 90)
	if err != nil {
		return 0, 0, errors.New("invalid 'lat'")
	}
	lng, err = parseCoord(r.Form.Get("lng"), 180)
	if err != nil {
		return 0, 0, errors.New("invalid 'lng'")
	}
	return lat, lng, nil
}

func parseCoord(s string, limit float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, errors.New("out of range")
	}
	return v, nil
}
