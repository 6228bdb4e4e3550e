package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/services"
)

type APIHandlers struct {
	persistence persistence.Persistence
	candidates  *services.Candidates
	requests    *services.Requests
	publishings *services.Publishings
	shifts      *services.Shifts
	validator   *validator.Validate
}

func NewAPIHandlers(
	persistence persistence.Persistence,
	candidates *services.Candidates,
	requests *services.Requests,
	publishings *services.Publishings,
	shifts *services.Shifts,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		persistence: persistence,
		candidates:  candidates,
		requests:    requests,
		publishings: publishings,
		shifts:      shifts,
		validator:   validator,
	}
}

func (h *APIHandlers) GetStores(c fiber.Ctx) error {
	stores, err := h.persistence.Stores(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(stores)
}

func (h *APIHandlers) GetWorkers(c fiber.Ctx) error {
	workers, err := h.persistence.Workers(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(workers)
}

func (h *APIHandlers) GetShifts(c fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return badRequest(c, "date query parameter is required")
	}

	shifts, err := h.persistence.ShiftsForDate(c.Context(), date)
	if err != nil {
		return internalError(c, err)
	}

	if storeID := c.Query("store_id"); storeID != "" {
		filtered := make([]*models.Shift, 0, len(shifts))

		for _, shift := range shifts {
			if shift.StoreID == storeID {
				filtered = append(filtered, shift)
			}
		}

		shifts = filtered
	}

	return c.JSON(shifts)
}

func (h *APIHandlers) UpdateShift(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Shift ID is required")
	}

	var body UpdateShiftBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	shift, err := h.persistence.UpdateShift(c.Context(), id, body.Patch())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(shift)
}

func (h *APIHandlers) GetCandidates(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Shift ID is required")
	}

	direction, err := services.ParseDirection(c.Query("direction"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	shift, err := h.persistence.ShiftByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	candidates, err := h.candidates.Find(c.Context(), shift, direction)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(candidates)
}

func (h *APIHandlers) GetPublishings(c fiber.Ctx) error {
	publishing, err := h.publishings.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(publishing)
}

func (h *APIHandlers) PublishRecruiting(c fiber.Ctx) error {
	var body PublishRecruitingBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	recruiting, err := h.publishings.PublishRecruiting(c.Context(), body.ShiftID, body.Message)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recruiting)
}

func (h *APIHandlers) PublishAvailable(c fiber.Ctx) error {
	var body PublishAvailableBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	available, err := h.publishings.PublishAvailable(c.Context(), body.ShiftID, body.WorkerID, body.Message)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(available)
}

func (h *APIHandlers) ApprovePublishing(c fiber.Ctx) error {
	kind := models.PublishingKind(c.Params("kind"))
	id := c.Params("id")

	if id == "" {
		return badRequest(c, "Publishing ID is required")
	}

	var body ApprovePublishingBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.publishings.Approve(c.Context(), kind, id, body.StoreID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ClosePublishing(c fiber.Ctx) error {
	kind := models.PublishingKind(c.Params("kind"))
	id := c.Params("id")

	if id == "" {
		return badRequest(c, "Publishing ID is required")
	}

	if err := h.publishings.Close(c.Context(), kind, id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetRequests(c fiber.Ctx) error {
	filter := services.ListFilter{
		StoreID:   c.Query("store_id"),
		Direction: c.Query("direction"),
		Status:    models.RequestStatus(c.Query("status")),
	}

	requests, err := h.requests.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(requests)
}

func (h *APIHandlers) CreateRequest(c fiber.Ctx) error {
	var body CreateRequestBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	request, err := h.requests.Create(c.Context(), services.CreateRequestParams{
		From:          body.From,
		To:            body.To,
		Type:          models.RequestType(body.Type),
		TargetIDs:     body.TargetIDs,
		ShiftID:       body.ShiftID,
		TargetShiftID: body.TargetShiftID,
		Message:       body.Message,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *APIHandlers) ApproveRequest(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Request ID is required")
	}

	request, err := h.requests.Approve(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(request)
}

func (h *APIHandlers) RejectRequest(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Request ID is required")
	}

	request, err := h.requests.Reject(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(request)
}

func (h *APIHandlers) GetSummary(c fiber.Ctx) error {
	storeID := c.Query("store_id")
	date := c.Query("date")

	if storeID == "" || date == "" {
		return badRequest(c, "store_id and date query parameters are required")
	}

	summary, err := h.shifts.Summary(c.Context(), storeID, date)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(summary)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "ShiftMash API is healthy"
	httpStatus := http.StatusOK

	err := h.persistence.HealthCheck(c.Context())
	if err != nil {
		status = "unhealthy"
		message = "ShiftMash API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}
