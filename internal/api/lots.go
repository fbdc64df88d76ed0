package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"freshstock/internal/fefo"
	"freshstock/internal/store"
)

// LotsHandler handles stock endpoints: adding lots, the aggregate quantity
// query, and selling.
type LotsHandler struct {
	DB *sql.DB
}

type addLotRequest struct {
	Quantity json.RawMessage `json:"quantity"`
	Expiry   json.RawMessage `json:"expiry"`
}

type sellRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// quantityResponse reports the sellable total and the earliest expiry among
// the lots that make it up, as epoch milliseconds. ValidTill is null when
// nothing is available.
type quantityResponse struct {
	Quantity  int    `json:"quantity"`
	ValidTill *int64 `json:"validTill"`
}

// AddLot handles POST /items/{id}/add. Expiry is epoch milliseconds and must
// be strictly in the future.
func (h *LotsHandler) AddLot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusBadRequest, invalidIDMessage)
		return
	}

	var req addLotRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	errs := map[string]string{}
	quantity, msg := validateQuantity(req.Quantity)
	if msg != "" {
		errs["quantity"] = msg
	}
	validTill, msg := validateExpiry(req.Expiry, now)
	if msg != "" {
		errs["expiry"] = msg
	}
	if len(errs) > 0 {
		jsonFieldErrors(w, errs)
		return
	}

	lot, err := store.AddLot(r.Context(), h.DB, id, quantity, validTill, now)
	if err != nil {
		h.writeStockError(w, err, "adding lot")
		return
	}

	slog.Info("lot added", "item", id, "lot", lot.ID, "quantity", lot.Quantity, "valid_till", lot.ValidTill)
	jsonResponse(w, http.StatusCreated, lot)
}

// Quantity handles GET /items/{id}/quantity.
func (h *LotsHandler) Quantity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusBadRequest, invalidIDMessage)
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("getting item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if item == nil {
		jsonError(w, http.StatusBadRequest, unknownItemMessage)
		return
	}

	total, earliest, err := store.AvailableQuantity(r.Context(), h.DB, id, time.Now())
	if err != nil {
		slog.Error("aggregating quantity", "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	resp := quantityResponse{Quantity: total}
	if earliest != nil {
		ms := earliest.UnixMilli()
		resp.ValidTill = &ms
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Sell handles POST /items/{id}/sell, depleting stock soonest-expiring
// first.
func (h *LotsHandler) Sell(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusBadRequest, invalidIDMessage)
		return
	}

	var req sellRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity, msg := validateQuantity(req.Quantity)
	if msg != "" {
		jsonFieldErrors(w, map[string]string{"quantity": msg})
		return
	}

	plan, err := store.Sell(r.Context(), h.DB, id, quantity, time.Now())
	if err != nil {
		h.writeStockError(w, err, "selling")
		return
	}

	slog.Info("stock sold", "item", id, "quantity", quantity, "lots", len(plan))
	jsonResponse(w, http.StatusOK, map[string]any{})
}

// writeStockError maps ledger errors to boundary responses. Validation and
// referential errors come back as 400s with terse messages; anything
// unclassified gets the generic fallback.
func (h *LotsHandler) writeStockError(w http.ResponseWriter, err error, op string) {
	var insufficient *fefo.InsufficientStockError

	switch {
	case errors.Is(err, store.ErrItemNotFound):
		jsonError(w, http.StatusBadRequest, unknownItemMessage)
	case errors.As(err, &insufficient):
		jsonError(w, http.StatusBadRequest,
			fmt.Sprintf("Not enough items available for sale. Only %d item(s) left", insufficient.Available))
	case errors.Is(err, store.ErrInvalidQuantity):
		jsonFieldErrors(w, map[string]string{"quantity": "Quantity must be a positive whole number"})
	case errors.Is(err, store.ErrPastExpiry):
		jsonFieldErrors(w, map[string]string{"expiry": "Expiry must be a future time in milliseconds since epoch"})
	case errors.Is(err, store.ErrLotNotFound):
		jsonError(w, http.StatusNotFound, "The requested stock is no longer available")
	default:
		slog.Error(op, "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
