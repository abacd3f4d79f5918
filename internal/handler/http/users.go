package http

import (
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "error getting profile")
		return
	}

	writeJSON(w, r, user.Sanitized(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var update models.UserUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	update.UserID = userID
	update.PasswordHash = nil

	user, err := h.services.UserService.UpdateProfile(r.Context(), update)
	if err != nil {
		writeServiceError(w, r, err, "error updating profile")
		return
	}

	writeJSON(w, r, user.Sanitized(), http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, "error listing users")
		return
	}

	for i := range users.Users {
		users.Users[i] = users.Users[i].Sanitized()
	}
	writeJSON(w, r, users, http.StatusOK)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req models.RoleUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.services.UserService.SetRole(r.Context(), actorID, userID, req.Role); err != nil {
		writeServiceError(w, r, err, "error changing role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), actorID, userID); err != nil {
		writeServiceError(w, r, err, "error deleting user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
