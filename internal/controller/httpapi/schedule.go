package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/schedule"
	"github.com/Freeeeeet/courier_scheduler/internal/service"
)

// boardQuery разбирает ?month=YYYY-MM&date=YYYY-MM-DD&tab=shifts|reserve.
// Без month берётся месяц выбранной даты; дата из другого месяца отклоняется.
func boardQuery(r *http.Request) (service.BoardQuery, error) {
	var q service.BoardQuery
	values := r.URL.Query()

	if date := values.Get("date"); date != "" {
		if !calendar.IsISODate(date) {
			return q, service.ErrInvalidInput
		}
		q.Selected = date
		t, _ := calendar.ParseISODate(date)
		q.Year, q.Month = t.Year(), int(t.Month())
	}

	if month := values.Get("month"); month != "" {
		year, m, err := calendar.ParseMonth(month)
		if err != nil {
			return q, service.ErrInvalidInput
		}
		if q.Selected != "" && (q.Year != year || q.Month != m) {
			return q, service.ErrInvalidInput
		}
		q.Year, q.Month = year, m
	}

	switch tab := schedule.Tab(values.Get("tab")); tab {
	case "", schedule.TabShifts, schedule.TabReserve:
		q.Tab = tab
	default:
		return q, service.ErrInvalidInput
	}

	return q, nil
}

func (h *Handler) mySchedule(w http.ResponseWriter, r *http.Request) {
	q, err := boardQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.board.CourierSchedule(r.Context(), currentProfile(r).ID, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) workplaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Workplaces())
}

func (h *Handler) createShift(w http.ResponseWriter, r *http.Request) {
	var in service.ShiftInput
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	shifts, err := h.shifts.CreateShift(r.Context(), currentProfile(r).ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, shifts)
}

func (h *Handler) updateShift(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in service.ShiftInput
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	shift, err := h.shifts.UpdateShift(r.Context(), currentProfile(r).ID, id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shift)
}

func (h *Handler) deleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.shifts.DeleteShift(r.Context(), currentProfile(r).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createReserve(w http.ResponseWriter, r *http.Request) {
	var in service.ReserveInput
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	reserves, err := h.reserves.CreateReserve(r.Context(), currentProfile(r).ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reserves)
}

func (h *Handler) updateReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in service.ReserveInput
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	reserve, err := h.reserves.UpdateReserve(r.Context(), currentProfile(r).ID, id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reserve)
}

func (h *Handler) deleteReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.reserves.DeleteReserve(r.Context(), currentProfile(r).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
