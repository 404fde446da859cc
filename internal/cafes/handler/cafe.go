package handler

import (
	"net/http"

	"cafebook/internal/cafes/service"
	httputil "cafebook/pkg/http"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CafeHandler struct {
	service service.CafeService
	log     *logger.Logger
}

func NewCafeHandler(service service.CafeService, log *logger.Logger) *CafeHandler {
	return &CafeHandler{
		service: service,
		log:     log,
	}
}

func (h *CafeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cafe model.Cafe
	if err := httputil.DecodeJSON(r, &cafe); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &cafe); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.CreatedResponse{ID: cafe.ID}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CafeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cafe, err := h.service.GetByID(r.Context(), ps.ByName("cafe_id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, cafe); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CafeHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cafes, err := h.service.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, cafes); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CafeHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CafeHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/cafes", h.List)
	router.POST("/api/cafes", h.Create)
	router.GET("/api/cafes/:cafe_id", h.GetByID)
}
