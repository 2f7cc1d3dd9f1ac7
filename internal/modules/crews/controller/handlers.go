package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"shoresquad-server/internal/modules/crews/service"
	"shoresquad-server/internal/utils"
	"shoresquad-server/internal/views"
)

const (
	eventCrewsChanged = "crews-changed"
	eventCrewCreated  = "crew-created"

	msgFillAllFields = "Please fill in all fields"
)

func (c *crewControllerImpl) handleCrewsPartial(w http.ResponseWriter, r *http.Request) {
	crews, err := c.service.List(r.Context())
	if err != nil {
		c.logger.Error("crews partial: list failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load crews")
		return
	}
	err = utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderCrews(out, views.CrewsData{Crews: crews})
	})
	if err != nil {
		c.logger.Error("crews partial render failed", "error", err)
	}
}

func (c *crewControllerImpl) handleCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := c.service.List(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, crews)
}

func (c *crewControllerImpl) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseCrewForm(r)
	if err != nil {
		views.NotifyError(w, r, http.StatusBadRequest, msgFillAllFields)
		return
	}

	crew, err := c.service.Create(r.Context(), form)
	switch {
	case errors.Is(err, service.ErrInvalidCrew):
		views.NotifyError(w, r, http.StatusBadRequest, msgFillAllFields)
		return
	case err != nil:
		c.logger.Error("create crew failed", "error", err)
		views.NotifyError(w, r, http.StatusInternalServerError, "Could not create the crew. Please try again.")
		return
	}

	utils.SetTrigger(w, eventCrewsChanged, eventCrewCreated)
	views.Notify(w, r, http.StatusCreated, views.ToastData{
		Kind:    views.ToastSuccess,
		Message: "🎉 Crew \"" + crew.Name + "\" created successfully!",
	}, crew)
}

func (c *crewControllerImpl) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := parseCrewID(r)
	if err != nil {
		views.NotifyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	crew, err := c.service.Join(r.Context(), id)
	if err != nil {
		c.notifyLookupError(w, r, id, err)
		return
	}

	utils.SetTrigger(w, eventCrewsChanged)
	views.Notify(w, r, http.StatusOK, views.ToastData{
		Kind:    views.ToastSuccess,
		Message: "✅ You joined " + crew.Name + "!",
	}, crew)
}

func (c *crewControllerImpl) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := parseCrewID(r)
	if err != nil {
		views.NotifyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	crew, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.notifyLookupError(w, r, id, err)
		return
	}

	views.Notify(w, r, http.StatusOK, views.ToastData{
		Kind:    views.ToastInfo,
		Message: fmt.Sprintf("👥 %s has %d members. Next cleanup: %s", crew.Name, crew.Members, crew.NextCleanup),
	}, crew)
}

func (c *crewControllerImpl) notifyLookupError(w http.ResponseWriter, r *http.Request, id int, err error) {
	if errors.Is(err, service.ErrCrewNotFound) {
		views.NotifyError(w, r, http.StatusNotFound, "Crew not found")
		return
	}
	c.logger.Error("crew lookup failed", "crew_id", id, "error", err)
	views.NotifyError(w, r, http.StatusInternalServerError, "Could not load that crew. Please try again.")
}
