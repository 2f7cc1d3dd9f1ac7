package views

import (
	"io"
	"log/slog"
	"net/http"

	"shoresquad-server/internal/utils"
)

// Notify answers an action with a user-visible notice. JSON clients get
// payload (or the toast itself when payload is nil); everyone else gets the
// toast partial, which htmx swaps into the page.
func Notify(w http.ResponseWriter, r *http.Request, status int, toast ToastData, payload any) {
	if utils.WantsJSON(r) {
		if payload == nil {
			payload = toast
		}
		utils.WriteJSON(w, status, payload)
		return
	}
	err := utils.WriteHTML(w, status, func(out io.Writer) error {
		return RenderToast(out, toast)
	})
	if err != nil {
		slog.Error("toast render failed", "error", err)
	}
}

// NotifyError is Notify for failures. JSON clients get the usual error body.
func NotifyError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if utils.WantsJSON(r) {
		utils.WriteError(w, status, message)
		return
	}
	Notify(w, r, status, ToastData{Kind: ToastError, Message: "❌ " + message}, nil)
}
