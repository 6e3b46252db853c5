package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yonah-prog/datedrop-app/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// requestUserID pulls the authenticated user id off the request context.
func requestUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	return userID, ok
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

func (h *Handler) GetMatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatchHistory(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch match history")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

func (h *Handler) RespondToMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var dto RespondMatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.RespondToMatch(r.Context(), matchID, userID, dto.Action); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrAlreadyResponded), errors.Is(err, ErrInvalidAction):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to respond to match")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Match " + dto.Action + "ed successfully",
	})
}

func (h *Handler) GetDropStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status, err := h.service.GetDropStatus(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch drop status")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, status)
}

func (h *Handler) SetOptIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto OptInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.service.SetOptIn(r.Context(), userID, *dto.OptIn)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update opt-in status")
		return
	}

	message := "Opted out of weekly drop"
	if *dto.OptIn {
		message = "Opted in to weekly drop"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":    message,
		"opted_in":   *dto.OptIn,
		"drop_event": event,
	})
}

// RunDrop triggers a matching run on demand. Admin-only route.
func (h *Handler) RunDrop(w http.ResponseWriter, r *http.Request) {
	var dto RunDropDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := utils.ValidateStruct(&dto); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var summary *DropSummary
	var err error
	if dto.EventDate != "" {
		eventDate, parseErr := time.Parse(time.RFC3339, dto.EventDate)
		if parseErr != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid event_date")
			return
		}
		summary, err = h.service.RunDrop(r.Context(), eventDate)
	} else {
		summary, err = h.service.RunDueDrop(r.Context())
	}
	if err != nil {
		// The drop event stays pending; the caller can retry.
		utils.RespondWithError(w, http.StatusInternalServerError, "Matching run did not complete")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}
