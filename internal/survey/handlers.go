package survey

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.service.GetCatalog(r.Context()))
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch progress")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *Handler) GetAllResponses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	responses, err := h.service.GetAllResponses(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch responses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, responses)
}

func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	section, err := strconv.Atoi(mux.Vars(r)["section"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid section")
		return
	}

	responses, err := h.service.GetSection(r.Context(), userID, section)
	if err != nil {
		if errors.Is(err, ErrInvalidSection) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch section")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, responses)
}

func (h *Handler) SaveSection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	section, err := strconv.Atoi(mux.Vars(r)["section"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid section")
		return
	}

	var payload struct {
		Responses map[int]RawAnswer `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Responses == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid responses format")
		return
	}

	if err := h.service.SaveSection(r.Context(), userID, section, payload.Responses); err != nil {
		if errors.Is(err, ErrInvalidSection) || errors.Is(err, ErrInvalidAnswer) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save responses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Section saved successfully",
	})
}
