package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"milk-delivery-service/internal/api/dto"
	"milk-delivery-service/internal/platform/obs"
	"milk-delivery-service/internal/ports"
	"milk-delivery-service/internal/services"
	"net/http"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// DeliveryHandler dispatches /deliveries requests by HTTP method onto the
// record store. Every request re-reads the store.
type DeliveryHandler struct {
	Store ports.RecordStore
}

func (h *DeliveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut, http.MethodPatch:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", allowedMethods)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *DeliveryHandler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := services.ListDeliveries(r.Context(), h.Store)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res := make([]dto.DeliveryResponse, 0, len(recs))
	for _, rec := range recs {
		res = append(res, dto.NewDeliveryResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DeliveryHandler) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDeliveryRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := services.CreateDelivery(r.Context(), h.Store, req.Record()); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CreateDeliveryResponse{Success: true, Message: "Row added"})
}

func (h *DeliveryHandler) update(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDeliveryRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := services.UpdateDelivery(r.Context(), h.Store, services.UpdateDeliveryRequest{
		RowSelector: services.RowSelector{User: req.UserName(), TargetDate: req.Target()},
		Patch:       req.Patch(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UpdateDeliveryResponse{
		Success:    true,
		Message:    "Row updated successfully",
		UpdatedRow: dto.NewDeliveryResponse(updated),
		Status:     http.StatusOK,
	})
}

func (h *DeliveryHandler) delete(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDeliveryRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	deleted, err := services.DeleteDelivery(r.Context(), h.Store, services.RowSelector{
		User:       req.UserName(),
		TargetDate: req.Target(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteDeliveryResponse{
		Success:    true,
		Message:    "Row deleted successfully",
		DeletedRow: dto.NewDeliveryResponse(deleted),
		Status:     http.StatusOK,
	})
}

// fail maps not-found to 404 and everything else to 500 with the raw message.
func (h *DeliveryHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		writeNotFound(w, r, nf)
		return
	}

	log.Printf("req_id=%s deliveries %s failed: %v", obs.RequestID(r.Context()), r.Method, err)
	writeError(w, r, http.StatusInternalServerError, err.Error())
}

// An empty body decodes as an empty request.
func decodeDeliveryRequest(r *http.Request) (dto.DeliveryRequest, error) {
	var req dto.DeliveryRequest

	if r.Body == nil {
		return req, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("invalid json body: %w", err)
	}

	return req, nil
}
