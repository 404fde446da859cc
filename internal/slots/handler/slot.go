package handler

import (
	"net/http"

	"cafebook/internal/slots/service"
	httputil "cafebook/pkg/http"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SlotHandler struct {
	service service.SlotService
	log     *logger.Logger
}

func NewSlotHandler(service service.SlotService, log *logger.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log,
	}
}

func (h *SlotHandler) CreateBulk(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BulkSlotsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "CreateBulk", err)
		return
	}

	created, err := h.service.CreateBulk(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CreateBulk", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.BulkSlotsResponse{Created: created}); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateBulk", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SlotHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slot, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, slot); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SlotHandler) ListByCafe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.ListByCafe(r.Context(), ps.ByName("cafe_id"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, "ListByCafe", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByCafe", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SlotHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/slots/bulk", h.CreateBulk)
	router.GET("/api/slots/id/:id", h.GetByID)
	router.GET("/api/cafes/:cafe_id/slots", h.ListByCafe)
}
