package app

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/platform/httpx"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/app/static"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/domain"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/routepath"
)

// handlers serves the activities JSON API.
type handlers struct {
	service *domain.Service
}

// activityView is the wire shape of one activity. The activity name is the
// key of the enclosing map, not a field.
type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func (h handlers) handleActivityList(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	payload := make(map[string]activityView, len(activities))
	for _, activity := range activities {
		payload[activity.Name] = activityView{
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			Participants:    activity.Participants,
		}
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email, ok := emailParam(r)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.service.SignUp(r.Context(), activityName, email); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

func (h handlers) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email, ok := emailParam(r)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.service.Unregister(r.Context(), activityName, email); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.StaticIndex, http.StatusTemporaryRedirect)
}

// handleStaticIndex serves the entry page directly. FileServer redirects
// paths ending in /index.html to ./, so the redirect target from handleRoot
// needs its own route.
func (h handlers) handleStaticIndex(w http.ResponseWriter, r *http.Request) {
	page, err := static.FS.ReadFile("index.html")
	if err != nil {
		log.Printf("read entry page: %v", err)
		h.writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(page))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	h.writeDetail(w, http.StatusNotFound, "Not Found")
}

// methodNotAllowed rejects requests whose method has no handler on the
// matched path.
func (h handlers) methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		h.writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// emailParam reports the email query parameter and whether it was supplied
// at all. An empty value is still a supplied value.
func emailParam(r *http.Request) (string, bool) {
	values, ok := r.URL.Query()["email"]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		h.writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		h.writeDetail(w, http.StatusNotFound, "Participant not found")
	default:
		log.Printf("handle %s %s: %v", r.Method, r.URL.Path, err)
		h.writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h handlers) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, detailResponse{Detail: detail})
}

func (h handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpx.WriteJSON(w, status, payload); err != nil {
		log.Printf("write json response: %v", err)
	}
}
