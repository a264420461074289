package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/martinsuchenak/labelinv/internal/inventory"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/martinsuchenak/labelinv/internal/storage"
)

// ipv4Pattern is the dotted-quad form accepted for device addresses
var ipv4Pattern = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// Inventory is the store contract the handlers call into
type Inventory interface {
	Snapshot() inventory.Snapshot
	Device(id string) (model.Device, bool)
	GlobalLabel(id string) (model.GlobalLabel, bool)
	AddDevice(in model.DeviceInput) model.Device
	UpdateDevice(id string, in model.DeviceInput) error
	DeleteDevice(id string) error
	AddGlobalLabel(rawKey string) (model.GlobalLabel, error)
	UpdateGlobalLabel(id, newRawKey string) error
	DeleteGlobalLabel(id string) error
}

// JournalReader lists recorded changes
type JournalReader interface {
	List(limit int) ([]storage.Entry, error)
}

// Handler handles HTTP requests
type Handler struct {
	inventory Inventory
	journal   JournalReader
}

// NewHandler creates a new API handler. journal may be nil.
func NewHandler(inv Inventory, journal JournalReader) *Handler {
	return &Handler{inventory: inv, journal: journal}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Device CRUD
	mux.HandleFunc("GET /api/devices", h.listDevices)
	mux.HandleFunc("POST /api/devices", h.createDevice)
	mux.HandleFunc("GET /api/devices/{id}", h.getDevice)
	mux.HandleFunc("PUT /api/devices/{id}", h.updateDevice)
	mux.HandleFunc("DELETE /api/devices/{id}", h.deleteDevice)

	// Global labels
	mux.HandleFunc("GET /api/labels", h.listLabels)
	mux.HandleFunc("POST /api/labels", h.createLabel)
	mux.HandleFunc("PUT /api/labels/{id}", h.updateLabel)
	mux.HandleFunc("DELETE /api/labels/{id}", h.deleteLabel)
	mux.HandleFunc("GET /api/labels/{key}/values", h.labelValues)

	mux.HandleFunc("GET /api/stats", h.stats)
	mux.HandleFunc("GET /api/journal", h.listJournal)
}

// listDevices handles GET /api/devices?q=&label=key:value&status=
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.DeviceFilter{
		Search: query.Get("q"),
		Status: model.Status(query.Get("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		h.writeError(w, http.StatusBadRequest, "status must be up or down")
		return
	}
	for _, pair := range query["label"] {
		key, value, ok := strings.Cut(pair, ":")
		if !ok || key == "" {
			log.Warn("Invalid label filter", "label", pair)
			h.writeError(w, http.StatusBadRequest, "label filter must be key:value")
			return
		}
		if filter.Labels == nil {
			filter.Labels = make(map[string]string)
		}
		filter.Labels[key] = value
	}

	log.Debug("Listing devices", "query", filter.Search, "labels", filter.Labels, "status", filter.Status)
	devices := inventory.FilterDevices(h.inventory.Snapshot().Devices, filter)

	log.Info("Listed devices", "count", len(devices))
	h.writeJSON(w, http.StatusOK, devices)
}

// getDevice handles GET /api/devices/{id}
func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	device, ok := h.inventory.Device(id)
	if !ok {
		log.Warn("Device not found", "id", id)
		h.writeError(w, http.StatusNotFound, "device not found")
		return
	}
	h.writeJSON(w, http.StatusOK, device)
}

// createDevice handles POST /api/devices
func (h *Handler) createDevice(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeDeviceInput(w, r)
	if !ok {
		return
	}

	device := h.inventory.AddDevice(in)

	log.Info("Device created successfully", "id", device.ID, "name", device.Name)
	h.writeJSON(w, http.StatusCreated, device)
}

// updateDevice handles PUT /api/devices/{id}
func (h *Handler) updateDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, ok := h.decodeDeviceInput(w, r)
	if !ok {
		return
	}

	if err := h.inventory.UpdateDevice(id, in); err != nil {
		log.Warn("Device update rejected", "id", id, "error", err)
		h.writeRejection(w, err)
		return
	}

	device, _ := h.inventory.Device(id)
	log.Info("Device updated successfully", "id", id, "name", device.Name)
	h.writeJSON(w, http.StatusOK, device)
}

// deleteDevice handles DELETE /api/devices/{id}
func (h *Handler) deleteDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.inventory.DeleteDevice(id); err != nil {
		log.Warn("Device deletion rejected", "id", id, "error", err)
		h.writeRejection(w, err)
		return
	}

	log.Info("Device deleted successfully", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeDeviceInput reads and validates a device body, writing the error
// response itself when the body is unusable.
func (h *Handler) decodeDeviceInput(w http.ResponseWriter, r *http.Request) (model.DeviceInput, bool) {
	var in model.DeviceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Warn("Invalid device request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return in, false
	}

	in.Name = strings.TrimSpace(in.Name)
	in.IP = strings.TrimSpace(in.IP)
	if in.Name == "" {
		log.Warn("Device request missing required name")
		h.writeError(w, http.StatusBadRequest, "name is required")
		return in, false
	}
	if !ipv4Pattern.MatchString(in.IP) {
		log.Warn("Device request has invalid IP", "ip", in.IP)
		h.writeError(w, http.StatusBadRequest, "invalid IP address: "+in.IP)
		return in, false
	}
	return in, true
}

type labelRequest struct {
	Key string `json:"key"`
}

// listLabels handles GET /api/labels
func (h *Handler) listLabels(w http.ResponseWriter, r *http.Request) {
	usages := inventory.LabelUsages(h.inventory.Snapshot())
	log.Info("Listed labels", "count", len(usages))
	h.writeJSON(w, http.StatusOK, usages)
}

// createLabel handles POST /api/labels
func (h *Handler) createLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid label creation request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	label, err := h.inventory.AddGlobalLabel(req.Key)
	if err != nil {
		log.Warn("Label creation rejected", "key", req.Key, "error", err)
		h.writeRejection(w, err)
		return
	}

	log.Info("Label created successfully", "id", label.ID, "key", label.Key)
	h.writeJSON(w, http.StatusCreated, label)
}

// updateLabel handles PUT /api/labels/{id}
func (h *Handler) updateLabel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid label update request body", "error", err, "id", id)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.inventory.UpdateGlobalLabel(id, req.Key); err != nil {
		log.Warn("Label rename rejected", "id", id, "key", req.Key, "error", err)
		h.writeRejection(w, err)
		return
	}

	label, _ := h.inventory.GlobalLabel(id)
	log.Info("Label renamed successfully", "id", id, "key", label.Key)
	h.writeJSON(w, http.StatusOK, label)
}

// deleteLabel handles DELETE /api/labels/{id}
func (h *Handler) deleteLabel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.inventory.DeleteGlobalLabel(id); err != nil {
		log.Warn("Label deletion rejected", "id", id, "error", err)
		h.writeRejection(w, err)
		return
	}

	log.Info("Label deleted successfully", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// labelValues handles GET /api/labels/{key}/values
func (h *Handler) labelValues(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	h.writeJSON(w, http.StatusOK, inventory.LabelValues(h.inventory.Snapshot().Devices, key))
}

// stats handles GET /api/stats
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, inventory.CountStatus(h.inventory.Snapshot().Devices))
}

// listJournal handles GET /api/journal?limit=
func (h *Handler) listJournal(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		h.writeError(w, http.StatusNotFound, "journal not enabled")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.journal.List(limit)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeRejection maps a store rejection onto an HTTP status
func (h *Handler) writeRejection(w http.ResponseWriter, err error) {
	var status int
	var message string
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, inventory.ErrDuplicateKey):
		status, message = http.StatusConflict, "label key already exists"
	case errors.Is(err, inventory.ErrEmptyKey):
		status, message = http.StatusBadRequest, "label key is required"
	default:
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, status, map[string]string{
		"error":  message,
		"reason": string(inventory.ReasonOf(err)),
	})
}

// internalError logs the error and writes a generic 500 response
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Error("Internal server error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
