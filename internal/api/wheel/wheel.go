package wheel

import (
	"errors"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/req"
	"fortune_wheel/pkg/resp"
	"fortune_wheel/pkg/wheel"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.WheelService
	Log  *zap.Logger
}

type Handler struct {
	serv service.WheelService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// ListWheels Все колеса
func (h *Handler) ListWheels(w http.ResponseWriter, r *http.Request) {
	defs, err := h.serv.ListWheels(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, lo.Map(defs, func(d model.WheelDefinition, _ int) dto.Wheel {
		return converter.ToWheelDTO(d)
	}))
}

// CreateWheel Новое колесо из списка призов
func (h *Handler) CreateWheel(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.Wheel](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	def, err := converter.ToWheelDefinition(payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, err := h.serv.CreateWheel(r.Context(), def)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CreateWheelResponse{ID: id})
}

// Layout Разметка колеса для отрисовки
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := h.wheelID(w, r)
	if !ok {
		return
	}

	layout, err := h.serv.Layout(r.Context(), wheelID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLayoutResponse(*layout))
}

// Bounce Отклонение язычка для угла из query параметра angle
func (h *Handler) Bounce(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := h.wheelID(w, r)
	if !ok {
		return
	}

	angle, err := strconv.ParseFloat(r.URL.Query().Get("angle"), 64)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid angle")
		return
	}

	deflection, err := h.serv.Bounce(r.Context(), wheelID, angle)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BounceResponse{Angle: angle, Deflection: deflection})
}

// Spin Запуск спина: возвращает победителя и угол, до которого крутить
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := h.wheelID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := converter.ToSpinStart(wheelID, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	plan, err := h.serv.StartSpin(r.Context(), start)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToSpinResponse(*plan))
}

// Tick Текущий угол от аниматора
func (h *Handler) Tick(w http.ResponseWriter, r *http.Request) {
	wheelID, angle, ok := h.angle(w, r)
	if !ok {
		return
	}

	knob, err := h.serv.Tick(r.Context(), model.SpinTick{WheelID: wheelID, Angle: angle})
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToKnobResponse(*knob))
}

// Complete Аниматор остановился, угол итоговый
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	wheelID, angle, ok := h.angle(w, r)
	if !ok {
		return
	}

	out, err := h.serv.CompleteSpin(r.Context(), model.SpinComplete{WheelID: wheelID, Angle: angle})
	if err != nil {
		if out != nil && errors.Is(err, wheel.ErrTargetMismatch) {
			resp.WriteJSONResponse(w, http.StatusUnprocessableEntity, converter.ToOutcomeResponse(*out))
			return
		}
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOutcomeResponse(*out))
}

// Simulate Спин целиком на сервере, без аниматора
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := h.wheelID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := converter.ToSpinStart(wheelID, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.serv.Simulate(r.Context(), start)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOutcomeResponse(*out))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) wheelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		resp.WriteError(w, http.StatusBadRequest, "invalid wheel id")
		return 0, false
	}
	return id, true
}

func (h *Handler) angle(w http.ResponseWriter, r *http.Request) (int64, float64, bool) {
	wheelID, ok := h.wheelID(w, r)
	if !ok {
		return 0, 0, false
	}

	payload, err := req.Decode[dto.AngleRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	if payload.Angle == nil {
		resp.WriteError(w, http.StatusBadRequest, "angle is required")
		return 0, 0, false
	}

	return wheelID, *payload.Angle, true
}

// writeError Ошибки движка и хранилища в HTTP статусы
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wheel.ErrInvalidConfiguration),
		errors.Is(err, wheel.ErrOutOfRange),
		errors.Is(err, wheel.ErrInvalidDuration):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrWheelNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wheel.ErrSpinInProgress),
		errors.Is(err, wheel.ErrNotSpinning):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoPlayer):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Error("request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
