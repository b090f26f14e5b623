package http

import (
	"encoding/json"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	if err := h.vehicleSvc.AddVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}
	vehicle.ID = id

	if err := h.vehicleSvc.UpdateVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

type vehicleListResponse struct {
	Vehicles   []domain.Vehicle `json:"vehicles"`
	TotalCount int32            `json:"total_count"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	vehicles, count, err := h.vehicleSvc.ListVehicles(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{Vehicles: vehicles, TotalCount: count})
}
