// Package http exposes the application's commands and queries over a thin
// echo server. Handlers translate between JSON and commands; all business
// rules live in the application core.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    commands.CreateOrderCommandHandler
	payOrderHandler       commands.PayOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	autoAssignHandler     commands.AutoAssignCourierCommandHandler
	assignCourierHandler  commands.AssignCourierCommandHandler
	courierPickupHandler  commands.CourierPickupCommandHandler
	courierAdvanceHandler commands.CourierAdvanceCommandHandler
	adminSetStatusHandler commands.AdminSetStatusCommandHandler
	createCourierHandler  commands.CreateCourierCommandHandler
	updateLocationHandler commands.UpdateCourierLocationCommandHandler
	getHallOrdersHandler  queries.GetHallOrdersQueryHandler
	getAllCouriersHandler queries.GetAllCouriersQueryHandler
	estimateRouteHandler  queries.EstimateRouteQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	autoAssignHandler commands.AutoAssignCourierCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	courierPickupHandler commands.CourierPickupCommandHandler,
	courierAdvanceHandler commands.CourierAdvanceCommandHandler,
	adminSetStatusHandler commands.AdminSetStatusCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	getHallOrdersHandler queries.GetHallOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	estimateRouteHandler queries.EstimateRouteQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		payOrderHandler:       payOrderHandler,
		cancelOrderHandler:    cancelOrderHandler,
		autoAssignHandler:     autoAssignHandler,
		assignCourierHandler:  assignCourierHandler,
		courierPickupHandler:  courierPickupHandler,
		courierAdvanceHandler: courierAdvanceHandler,
		adminSetStatusHandler: adminSetStatusHandler,
		createCourierHandler:  createCourierHandler,
		updateLocationHandler: updateLocationHandler,
		getHallOrdersHandler:  getHallOrdersHandler,
		getAllCouriersHandler: getAllCouriersHandler,
		estimateRouteHandler:  estimateRouteHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/payment", s.PayOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/auto-assign", s.AutoAssign)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/pickup", s.CourierPickup)
	api.POST("/orders/:id/advance", s.CourierAdvance)
	api.PUT("/orders/:id/status", s.AdminSetStatus)
	api.GET("/orders/hall", s.GetHallOrders)
	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/location", s.UpdateCourierLocation)
	api.GET("/couriers", s.GetCouriers)
	api.GET("/routes/estimate", s.EstimateRoute)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func optionalUUID(s string) (*kernel.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type destinationBody struct {
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Address      string   `json:"address"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
}

type createOrderBody struct {
	CustomerID   string          `json:"customer_id"`
	RestaurantID string          `json:"restaurant_id"`
	TotalCents   int64           `json:"total_cents"`
	Destination  destinationBody `json:"destination"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body createOrderBody
	if err := ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	restaurantID, err := kernel.UUIDFromString(body.RestaurantID)
	if err != nil {
		return writeError(ctx, err)
	}
	total, err := kernel.NewMoney(body.TotalCents)
	if err != nil {
		return writeError(ctx, err)
	}

	var coords *kernel.GeoPoint
	if body.Destination.Lat != nil && body.Destination.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*body.Destination.Lat, *body.Destination.Lng)
		if pointErr != nil {
			return writeError(ctx, pointErr)
		}
		coords = &point
	}

	destination, err := order.NewDestination(coords, body.Destination.Address,
		body.Destination.ContactName, body.Destination.ContactPhone)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, restaurantID, total, destination)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

type payOrderBody struct {
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
	ActorID       string `json:"actor_id"`
}

// PayOrder handles POST /api/v1/orders/:id/payment.
func (s *Server) PayOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body payOrderBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	actorID, err := optionalUUID(body.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPayOrderCommand(orderID, body.Method, body.TransactionID,
		commands.ActorRoleCustomer, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.payOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type cancelOrderBody struct {
	Reason    string `json:"reason"`
	ActorRole string `json:"actor_role"`
	ActorID   string `json:"actor_id"`
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body cancelOrderBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if body.ActorRole == "" {
		body.ActorRole = commands.ActorRoleAdmin
	}

	actorID, err := optionalUUID(body.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, body.ActorRole, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AutoAssign handles POST /api/v1/orders/:id/auto-assign.
func (s *Server) AutoAssign(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAutoAssignCourierCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.autoAssignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type courierRefBody struct {
	CourierID string `json:"courier_id"`
}

// AssignCourier handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body courierRefBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CourierPickup handles POST /api/v1/orders/:id/pickup.
func (s *Server) CourierPickup(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body courierRefBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCourierPickupCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.courierPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type courierAdvanceBody struct {
	CourierID string `json:"courier_id"`
	Status    string `json:"status"`
}

// CourierAdvance handles POST /api/v1/orders/:id/advance.
func (s *Server) CourierAdvance(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body courierAdvanceBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	next, err := order.StatusFromString(body.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCourierAdvanceCommand(orderID, courierID, next)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.courierAdvanceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type adminSetStatusBody struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
}

// AdminSetStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) AdminSetStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body adminSetStatusBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusFromString(body.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := optionalUUID(body.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdminSetStatusCommand(orderID, next, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.adminSetStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type createCourierBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body createCourierBody
	if err := ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, body.Name, body.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": courierID.String()})
}

type locationBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body locationBody
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type hallOrderResponse struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	PayCents  int64  `json:"pay_cents"`
	CreatedAt string `json:"created_at"`
}

// GetHallOrders handles GET /api/v1/orders/hall.
func (s *Server) GetHallOrders(ctx echo.Context) error {
	hall, err := s.getHallOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetHallOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]hallOrderResponse, len(hall))
	for i, item := range hall {
		response[i] = hallOrderResponse{
			ID:        item.ID.String(),
			Address:   item.Address,
			PayCents:  item.PayAmount.Cents(),
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type courierResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	CurrentLoad int      `json:"current_load"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]courierResponse, len(couriers))
	for i, item := range couriers {
		response[i] = courierResponse{
			ID:          item.ID.String(),
			Name:        item.Name,
			Status:      item.Status,
			CurrentLoad: item.CurrentLoad,
		}
		if item.Location != nil {
			lat, lng := item.Location.Lat(), item.Location.Lng()
			response[i].Lat, response[i].Lng = &lat, &lng
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type routeLegResponse struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	Source      string  `json:"source"`
}

type estimateRouteResponse struct {
	RiderToRestaurant    routeLegResponse `json:"rider_to_restaurant"`
	RestaurantToCustomer routeLegResponse `json:"restaurant_to_customer"`
	RiderToCustomer      routeLegResponse `json:"rider_to_customer"`
}

// EstimateRoute handles GET /api/v1/routes/estimate.
func (s *Server) EstimateRoute(ctx echo.Context) error {
	points := make([]float64, 0, 6)
	for _, name := range []string{
		"rider_lat", "rider_lng",
		"restaurant_lat", "restaurant_lng",
		"customer_lat", "customer_lng",
	} {
		value, err := strconv.ParseFloat(ctx.QueryParam(name), 64)
		if err != nil {
			return writeBadRequest(ctx, "Invalid or missing coordinate: "+name)
		}
		points = append(points, value)
	}

	rider, err := kernel.NewGeoPoint(points[0], points[1])
	if err != nil {
		return writeError(ctx, err)
	}
	restaurant, err := kernel.NewGeoPoint(points[2], points[3])
	if err != nil {
		return writeError(ctx, err)
	}
	customer, err := kernel.NewGeoPoint(points[4], points[5])
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewEstimateRouteQuery(rider, restaurant, customer)
	if err != nil {
		return writeError(ctx, err)
	}

	estimate, err := s.estimateRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	toLeg := func(leg ports.RouteLeg) routeLegResponse {
		return routeLegResponse{
			DistanceKm:  leg.DistanceKm,
			DurationMin: leg.DurationMin,
			Source:      leg.Source,
		}
	}

	return ctx.JSON(http.StatusOK, estimateRouteResponse{
		RiderToRestaurant:    toLeg(estimate.RiderToRestaurant),
		RestaurantToCustomer: toLeg(estimate.RestaurantToCustomer),
		RiderToCustomer:      toLeg(estimate.RiderToCustomer),
	})
}
