package controller

import (
	"context"
	"io"
	"net/http"

	"shoresquad-server/internal/modules/weather/types"
	"shoresquad-server/internal/utils"
	"shoresquad-server/internal/views"
)

type weatherResponse struct {
	Loaded bool `json:"loaded"`
	types.Panel
}

func (c *weatherControllerImpl) handleWeatherPartial(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.service.Panel()
	c.writePanel(w, views.WeatherData{Loaded: ok, Panel: panel})
}

func (c *weatherControllerImpl) handleWeather(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.service.Panel()
	utils.WriteJSON(w, http.StatusOK, weatherResponse{Loaded: ok, Panel: panel})
}

// handleRefresh runs a cycle immediately. The cycle outlives the request: a
// client that hangs up does not cancel it.
func (c *weatherControllerImpl) handleRefresh(w http.ResponseWriter, r *http.Request) {
	panel := c.service.Refresh(context.WithoutCancel(r.Context()))
	if utils.WantsJSON(r) {
		utils.WriteJSON(w, http.StatusOK, weatherResponse{Loaded: true, Panel: panel})
		return
	}
	c.writePanel(w, views.WeatherData{Loaded: true, Panel: panel})
}

func (c *weatherControllerImpl) writePanel(w http.ResponseWriter, data views.WeatherData) {
	err := utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderWeather(out, data)
	})
	if err != nil {
		c.logger.Error("weather partial render failed", "error", err)
	}
}
