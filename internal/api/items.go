package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"freshstock/internal/model"
	"freshstock/internal/store"
)

// invalidIDMessage is returned when a path id is not a UUID.
const invalidIDMessage = "The ID parameter must be a valid UUID."

// unknownItemMessage is returned when a valid id matches no item.
const unknownItemMessage = "No inventory item with the given ID found"

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name        json.RawMessage `json:"name"`
	Description string          `json:"description"`
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, msg := validateName(req.Name)
	if msg != "" {
		jsonFieldErrors(w, map[string]string{"name": msg})
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, name, req.Description)
	if err != nil {
		slog.Error("creating item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	slog.Info("item created", "item", item.ID, "name", item.Name)
	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("listing items", "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /items/{id}, returning the item with all of its lots,
// including expired and emptied ones that the purge sweep has not removed.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	lots, err := store.ListLots(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("listing lots", "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if lots == nil {
		lots = []model.Lot{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item": item,
		"lots": lots,
	})
}
