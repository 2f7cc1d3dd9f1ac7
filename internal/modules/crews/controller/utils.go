package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"shoresquad-server/internal/modules/crews/service"
)

var errIncompleteForm = errors.New("incomplete crew form")

func parseCrewID(r *http.Request) (int, error) {
	s := r.PathValue("id")
	if s == "" {
		return 0, errors.New("missing crew id")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid crew id (expected positive integer)")
	}
	return id, nil
}

// parseCrewForm reads name, location and size. A size that is not a number
// counts as missing.
func parseCrewForm(r *http.Request) (service.NewCrew, error) {
	if err := r.ParseForm(); err != nil {
		return service.NewCrew{}, errIncompleteForm
	}
	n := service.NewCrew{
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Location: strings.TrimSpace(r.PostForm.Get("location")),
	}
	size, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("size")))
	if err != nil {
		return service.NewCrew{}, errIncompleteForm
	}
	n.Size = size
	if n.Name == "" || n.Location == "" || n.Size <= 0 {
		return service.NewCrew{}, errIncompleteForm
	}
	return n, nil
}
