// Package handlers provides HTTP handlers for the pantry API endpoints
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/despensa/v1/internal/infrastructure/monitoring"
	"github.com/despensa/v1/internal/ports/inbound"
	apperrors "github.com/despensa/v1/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PantryAPIHandlers handles pantry API requests
type PantryAPIHandlers struct {
	service  inbound.PantryService
	metrics  *monitoring.MetricsCollector
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPantryAPIHandlers creates a new pantry API handlers instance
func NewPantryAPIHandlers(
	service inbound.PantryService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *PantryAPIHandlers {
	return &PantryAPIHandlers{
		service:  service,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
	}
}

// IncomingItemRequest is one incoming item in an add or reconcile request
type IncomingItemRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Quantity  float64    `json:"quantity" validate:"gte=0"`
	Unit      string     `json:"unit" validate:"max=50"`
	Category  string     `json:"category" validate:"max=50"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AddItemRequest represents a manual pantry add
type AddItemRequest struct {
	UserID        uuid.UUID           `json:"user_id" validate:"required"`
	Item          IncomingItemRequest `json:"item" validate:"required"`
	DefaultExpiry bool                `json:"default_expiry"`
}

// ReconcileRequest represents a scan or trip-completed batch
type ReconcileRequest struct {
	UserID uuid.UUID             `json:"user_id" validate:"required"`
	Items  []IncomingItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UsageRecordRequest is one cooked-ingredient usage line
type UsageRecordRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"max=50"`
}

// ConsumeRequest represents a mark-recipe-cooked depletion
type ConsumeRequest struct {
	UserID uuid.UUID            `json:"user_id" validate:"required"`
	Usage  []UsageRecordRequest `json:"usage" validate:"required,min=1,dive"`
}

// DemandRequest is one planned-recipe ingredient requirement
type DemandRequest struct {
	Recipe          string  `json:"recipe" validate:"required,max=200"`
	Ingredient      string  `json:"ingredient" validate:"required,max=200"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	Unit            string  `json:"unit" validate:"max=50"`
	Category        string  `json:"category" validate:"max=50"`
	RecipeServings  int     `json:"recipe_servings" validate:"gte=0"`
	PlannedServings int     `json:"planned_servings" validate:"gte=0"`
}

// ShoppingNeedsRequest asks what remains to buy for a meal plan
type ShoppingNeedsRequest struct {
	UserID  uuid.UUID       `json:"user_id" validate:"required"`
	Demands []DemandRequest `json:"demands" validate:"required,dive"`
}

// AddItem handles POST /api/v1/pantry/items
func (h *PantryAPIHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AddItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.AddItem(r.Context(), inbound.AddItemCommand{
		UserID:        req.UserID,
		Item:          toItemCommand(req.Item),
		DefaultExpiry: req.DefaultExpiry,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.metrics.RecordReconcile("manual_add", 1, result.Created, result.Merged, result.ProteinAdded != "")
	h.metrics.RecordHTTPRequest(r.Method, "/api/v1/pantry/items", http.StatusOK, time.Since(start))
	h.writeJSON(w, http.StatusOK, result)
}

// Reconcile handles POST /api/v1/pantry/reconcile
func (h *PantryAPIHandlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ReconcileRequest
	if !h.decode(w, r, &req) {
		return
	}

	items := make([]inbound.IncomingItemCommand, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, toItemCommand(it))
	}

	result, err := h.service.ReconcileBatch(r.Context(), inbound.ReconcileBatchCommand{
		UserID: req.UserID,
		Items:  items,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.metrics.RecordReconcile("batch", len(items), result.Created, result.Merged, result.ProteinAdded != "")
	h.metrics.RecordHTTPRequest(r.Method, "/api/v1/pantry/reconcile", http.StatusOK, time.Since(start))
	h.writeJSON(w, http.StatusOK, result)
}

// Consume handles POST /api/v1/pantry/consume
func (h *PantryAPIHandlers) Consume(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ConsumeRequest
	if !h.decode(w, r, &req) {
		return
	}

	usage := make([]inbound.UsageRecordCommand, 0, len(req.Usage))
	for _, u := range req.Usage {
		usage = append(usage, inbound.UsageRecordCommand{
			Name:     u.Name,
			Quantity: u.Quantity,
			Unit:     u.Unit,
		})
	}

	result, err := h.service.ApplyConsumption(r.Context(), inbound.ConsumeCommand{
		UserID: req.UserID,
		Usage:  usage,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.metrics.RecordConsumption(result.Removed, result.Skipped, result.Incompatible)
	h.metrics.RecordHTTPRequest(r.Method, "/api/v1/pantry/consume", http.StatusOK, time.Since(start))
	h.writeJSON(w, http.StatusOK, result)
}

// ListStock handles GET /api/v1/pantry
func (h *PantryAPIHandlers) ListStock(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("user_id query parameter must be a UUID"))
		return
	}

	stock, err := h.service.ListStock(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"stock": stock})
}

// RemoveItem handles DELETE /api/v1/pantry/items/{id}
func (h *PantryAPIHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("item id must be a UUID"))
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("user_id query parameter must be a UUID"))
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, itemID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ShoppingNeeds handles POST /api/v1/planner/shopping-needs
func (h *PantryAPIHandlers) ShoppingNeeds(w http.ResponseWriter, r *http.Request) {
	var req ShoppingNeedsRequest
	if !h.decode(w, r, &req) {
		return
	}

	demands := make([]inbound.DemandCommand, 0, len(req.Demands))
	for _, d := range req.Demands {
		demands = append(demands, inbound.DemandCommand{
			Recipe:          d.Recipe,
			Ingredient:      d.Ingredient,
			Quantity:        d.Quantity,
			Unit:            d.Unit,
			Category:        d.Category,
			RecipeServings:  d.RecipeServings,
			PlannedServings: d.PlannedServings,
		})
	}

	needs, err := h.service.ShoppingNeeds(r.Context(), inbound.ShoppingNeedsCommand{
		UserID:  req.UserID,
		Demands: demands,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"needs": needs})
}

func toItemCommand(req IncomingItemRequest) inbound.IncomingItemCommand {
	return inbound.IncomingItemCommand{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Category:  req.Category,
		ExpiresAt: req.ExpiresAt,
	}
}

func (h *PantryAPIHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, apperrors.NewBadRequestError("Invalid JSON payload"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (h *PantryAPIHandlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *PantryAPIHandlers) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	}
	h.writeJSON(w, appErr.StatusCode(), map[string]interface{}{
		"error":   appErr.Message,
		"code":    appErr.Code,
		"details": appErr.Details,
	})
}
