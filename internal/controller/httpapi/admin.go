package httpapi

import (
	"net/http"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q, err := boardQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.board.AdminDashboard(r.Context(), currentProfile(r).ID, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) listCouriers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.couriers.ListCouriers(r.Context(), currentProfile(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) renameCourier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req renameRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.couriers.Rename(r.Context(), currentProfile(r).ID, id, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) confirmReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.reserves.Confirm(r.Context(), id, currentProfile(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
