// Package http provides the inbound HTTP adapter. Handlers translate JSON
// requests into commands and queries and map domain errors onto status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerDriverHandler    commands.RegisterDriverCommandHandler
	setDriverStatusHandler   commands.SetDriverStatusCommandHandler
	createDeliveryHandler    commands.CreateDeliveryCommandHandler
	assignDriverHandler      commands.AssignDriverCommandHandler
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler
	setDeliveryStatusHandler commands.SetDeliveryStatusCommandHandler
	recordAuditAccessHandler commands.RecordAuditAccessCommandHandler

	// Query handlers
	getAllDriversHandler       queries.GetAllDriversQueryHandler
	getAllDeliveriesHandler    queries.GetAllDeliveriesQueryHandler
	getDriverDeliveriesHandler queries.GetDriverDeliveriesQueryHandler
	getAuditLogHandler         queries.GetAuditLogQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerDriverHandler commands.RegisterDriverCommandHandler,
	setDriverStatusHandler commands.SetDriverStatusCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	setDeliveryStatusHandler commands.SetDeliveryStatusCommandHandler,
	recordAuditAccessHandler commands.RecordAuditAccessCommandHandler,
	getAllDriversHandler queries.GetAllDriversQueryHandler,
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler,
	getDriverDeliveriesHandler queries.GetDriverDeliveriesQueryHandler,
	getAuditLogHandler queries.GetAuditLogQueryHandler,
) *Server {
	return &Server{
		registerDriverHandler:      registerDriverHandler,
		setDriverStatusHandler:     setDriverStatusHandler,
		createDeliveryHandler:      createDeliveryHandler,
		assignDriverHandler:        assignDriverHandler,
		completeDeliveryHandler:    completeDeliveryHandler,
		setDeliveryStatusHandler:   setDeliveryStatusHandler,
		recordAuditAccessHandler:   recordAuditAccessHandler,
		getAllDriversHandler:       getAllDriversHandler,
		getAllDeliveriesHandler:    getAllDeliveriesHandler,
		getDriverDeliveriesHandler: getDriverDeliveriesHandler,
		getAuditLogHandler:         getAuditLogHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/drivers", s.RegisterDriver)
	api.GET("/drivers", s.GetDrivers)
	api.PUT("/drivers/:id/status", s.SetDriverStatus)
	api.GET("/drivers/:id/deliveries", s.GetDriverDeliveries)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries", s.GetDeliveries)
	api.POST("/deliveries/:id/assign", s.AssignDriver)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.PUT("/deliveries/:id/status", s.SetDeliveryStatus)

	api.GET("/audit", s.GetAuditLog)
}

// ErrorResponse is the JSON body returned on any failure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VehicleRequest carries vehicle details for driver registration.
type VehicleRequest struct {
	Model    string  `json:"model"`
	Plate    string  `json:"plate"`
	Capacity float64 `json:"capacity"`
}

// RegisterDriverRequest is the body for POST /api/v1/drivers.
type RegisterDriverRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Vehicle VehicleRequest `json:"vehicle"`
}

// DriverResponse represents one driver in the roster read model.
type DriverResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Status         string  `json:"status"`
	Rating         float64 `json:"rating"`
	EarningsCents  int64   `json:"earningsCents"`
	VehicleDetails string  `json:"vehicleDetails"`
	ActiveJobs     int     `json:"activeJobs"`
}

// SetDriverStatusRequest is the body for PUT /api/v1/drivers/:id/status.
type SetDriverStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// CreateDeliveryRequest is the body for POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	Description     string `json:"description"`
	Pickup          string `json:"pickup"`
	Dropoff         string `json:"dropoff"`
	FeeCents        int64  `json:"feeCents"`
	CustomerContact string `json:"customerContact"`
}

// DeliveryResponse represents one delivery on the dispatch board.
type DeliveryResponse struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	Pickup         string     `json:"pickup"`
	Dropoff        string     `json:"dropoff"`
	Status         string     `json:"status"`
	DriverID       *string    `json:"driverId,omitempty"`
	FeeCents       int64      `json:"feeCents"`
	Priority       *string    `json:"priority,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	OverdueFlagged bool       `json:"overdueFlagged"`
}

// AssignDriverRequest is the body for POST /api/v1/deliveries/:id/assign.
type AssignDriverRequest struct {
	DriverID      string `json:"driverId"`
	Priority      string `json:"priority"`
	DeadlineHours int    `json:"deadlineHours"`
	AllowOverload bool   `json:"allowOverload"`
}

// SetDeliveryStatusRequest is the body for PUT /api/v1/deliveries/:id/status.
type SetDeliveryStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// CreatedResponse returns the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// AuditEntryResponse represents one audit entry in the log read model.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Details    string    `json:"details"`
	RecordedAt time.Time `json:"recordedAt"`
}

// RegisterDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var request RegisterDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicle, err := driver.NewVehicle(request.Vehicle.Model, request.Vehicle.Plate, request.Vehicle.Capacity)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle data: "+err.Error())
	}

	cmd, err := commands.NewRegisterDriverCommand(request.Name, request.Email, request.Phone, vehicle)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if handleErr := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.DriverID().String()})
}

// GetDrivers handles GET /api/v1/drivers - retrieves the driver roster.
func (s *Server) GetDrivers(ctx echo.Context) error {
	query := queries.NewGetAllDriversQuery()

	drivers, err := s.getAllDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve drivers")
	}

	response := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		response[i] = DriverResponse{
			ID:             d.ID.String(),
			Name:           d.Name,
			Email:          d.Email,
			Status:         d.Status.String(),
			Rating:         d.Rating,
			EarningsCents:  d.Earnings.Cents(),
			VehicleDetails: d.VehicleDetails,
			ActiveJobs:     d.ActiveJobs,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetDriverStatus handles PUT /api/v1/drivers/:id/status - changes a driver's
// lifecycle status. A deactivation blocked by active jobs returns 409; the
// rejection is still recorded in the audit log.
func (s *Server) SetDriverStatus(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver ID")
	}

	var request SetDriverStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := driver.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewSetDriverStatusCommand(driverID, status, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.setDriverStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverDeliveries handles GET /api/v1/drivers/:id/deliveries - retrieves
// one driver's deliveries, including completed and cancelled ones.
func (s *Server) GetDriverDeliveries(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver ID")
	}

	query, err := queries.NewGetDriverDeliveriesQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	deliveries, err := s.getDriverDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}

// CreateDelivery handles POST /api/v1/deliveries - creates a new delivery.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	fee, err := kernel.NewMoney(request.FeeCents)
	if err != nil {
		return badRequest(ctx, "Invalid fee: "+err.Error())
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		request.Description, request.Pickup, request.Dropoff,
		fee,
		request.CustomerContact,
	)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if handleErr := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.DeliveryID().String()})
}

// GetDeliveries handles GET /api/v1/deliveries - retrieves the dispatch board.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	query := queries.NewGetAllDeliveriesQuery()

	deliveries, err := s.getAllDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}

// AssignDriver handles POST /api/v1/deliveries/:id/assign - assigns a driver
// to a pending delivery. A delivery that has already left Pending, an
// inactive driver, or a driver at the active-job limit returns 409.
func (s *Server) AssignDriver(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID")
	}

	var request AssignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver ID")
	}

	priority, err := delivery.PriorityFromString(request.Priority)
	if err != nil {
		return badRequest(ctx, "Invalid priority: "+err.Error())
	}

	cmd, err := commands.NewAssignDriverCommand(
		deliveryID, driverID,
		priority,
		request.DeadlineHours,
		request.AllowOverload,
	)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.AssignmentID().String()})
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete - completes a
// delivery and credits its fee to the assigned driver. Completing an already
// completed delivery is a no-op and returns 204 like the first completion.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid completion: "+err.Error())
	}

	if handleErr := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDeliveryStatus handles PUT /api/v1/deliveries/:id/status - changes a
// delivery's lifecycle status. Cancellation requires a justification note.
func (s *Server) SetDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID")
	}

	var request SetDeliveryStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := delivery.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewSetDeliveryStatusCommand(deliveryID, status, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.setDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAuditLog handles GET /api/v1/audit - retrieves recent audit entries.
// The read itself is recorded as a SECURITY entry before the page is served;
// the actor comes from the X-Actor header and defaults to "anonymous".
func (s *Server) GetAuditLog(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetAuditLogQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	actor := ctx.Request().Header.Get("X-Actor")
	if actor == "" {
		actor = "anonymous"
	}

	cmd, err := commands.NewRecordAuditAccessCommand(actor)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	if handleErr := s.recordAuditAccessHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return internalError(ctx, "Failed to record audit access")
	}

	entries, err := s.getAuditLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve audit log")
	}

	response := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntryResponse{
			ID:         entry.ID.String(),
			Category:   entry.Category.String(),
			Details:    entry.Details,
			RecordedAt: entry.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// toDeliveryResponses maps the delivery read model to the wire format.
func toDeliveryResponses(deliveries []queries.GetAllDeliveriesQueryResponse) []DeliveryResponse {
	response := make([]DeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		item := DeliveryResponse{
			ID:             d.ID.String(),
			Description:    d.Description,
			Pickup:         d.Pickup,
			Dropoff:        d.Dropoff,
			Status:         d.Status.String(),
			FeeCents:       d.Fee.Cents(),
			Deadline:       d.Deadline,
			OverdueFlagged: d.OverdueFlagged,
		}

		if d.DriverID != nil {
			id := d.DriverID.String()
			item.DriverID = &id
		}
		if d.Priority != nil {
			priority := d.Priority.String()
			item.Priority = &priority
		}

		response[i] = item
	}

	return response
}

// mapDomainError translates use case failures onto HTTP status codes.
func mapDomainError(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFoundErr):
		return respond(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, delivery.ErrDeliveryNotPending),
		errors.Is(err, delivery.ErrDeliveryHasNoDriver),
		errors.Is(err, driver.ErrDriverHasActiveJobs),
		errors.Is(err, commands.ErrDriverNotActive),
		errors.Is(err, commands.ErrDriverAtCapacity):
		return respond(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err.Error())
	default:
		return respond(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return respond(ctx, http.StatusBadRequest, message)
}

func internalError(ctx echo.Context, message string) error {
	return respond(ctx, http.StatusInternalServerError, message)
}

func respond(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
