package controller

import (
	"errors"
	"io"
	"net/http"

	"shoresquad-server/internal/modules/beaches/mapview"
	"shoresquad-server/internal/modules/beaches/service"
	"shoresquad-server/internal/utils"
	"shoresquad-server/internal/views"
)

const (
	msgLocationFound  = "📍 Location detected! Showing nearby beaches."
	msgLocationFailed = "Unable to access location. Please enable location permissions."
	eventOpenCrewForm = "open-crew-modal"
)

func (c *beachControllerImpl) handleBeachesPartial(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	beaches, err := c.service.List(r.Context(), query)
	if err != nil {
		c.logger.Error("beaches partial: list failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load beaches")
		return
	}
	err = utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderBeaches(out, views.BeachesData{Query: query, Beaches: beaches})
	})
	if err != nil {
		c.logger.Error("beaches partial render failed", "error", err)
	}
}

func (c *beachControllerImpl) handleBeaches(w http.ResponseWriter, r *http.Request) {
	beaches, err := c.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, beaches)
}

func (c *beachControllerImpl) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := parseBeachID(r)
	if err != nil {
		views.NotifyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	beach, err := c.service.Get(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrBeachNotFound):
		views.NotifyError(w, r, http.StatusNotFound, "Beach not found")
		return
	case err != nil:
		c.logger.Error("select beach failed", "beach_id", id, "error", err)
		views.NotifyError(w, r, http.StatusInternalServerError, "Could not load that beach. Please try again.")
		return
	}

	c.logger.Info("beach selected", "beach_id", beach.ID)
	utils.SetTrigger(w, eventOpenCrewForm)
	toast := views.ToastData{
		Kind:    views.ToastSuccess,
		Message: "🌊 Selected " + beach.Name + "! Now join or create a crew.",
	}
	views.Notify(w, r, http.StatusOK, toast, map[string]any{"beach": beach, "message": toast.Message})
}

// handleMarkers serves the marker set for the map widget. A page without a map
// container gets an empty set rather than an error.
func (c *beachControllerImpl) handleMarkers(w http.ResponseWriter, r *http.Request) {
	beaches, err := c.service.List(r.Context(), "")
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, ok := c.maps.Build(beaches)
	if !ok {
		data = mapview.Empty()
	}
	utils.WriteJSON(w, http.StatusOK, data)
}

// handleLocation only toggles the status notice; the position is not used to
// filter beaches.
func (c *beachControllerImpl) handleLocation(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLocation(r)
	if err != nil {
		c.logger.Info("location unavailable", "reason", err.Error())
		views.NotifyError(w, r, http.StatusUnprocessableEntity, msgLocationFailed)
		return
	}
	c.logger.Debug("location detected", "lat", lat, "lng", lng)
	views.Notify(w, r, http.StatusOK, views.ToastData{Kind: views.ToastSuccess, Message: msgLocationFound}, nil)
}
