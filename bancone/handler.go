package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"github.com/taldoflemis/veggie-delight/preorder"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("bancone")

type MainHandler struct {
	store     OrderStore
	loyalty   LoyaltyStore
	publisher OrderPublisher
	menu      []preorder.MenuItem
	validate  *validator.Validate
	health    *healthgo.Health
}

func NewMainHandler(
	e *echo.Echo,
	settings *Settings,
	store OrderStore,
	loyalty LoyaltyStore,
	publisher OrderPublisher,
	health *healthgo.Health,
) *MainHandler {
	logger := slog.Default()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: settings.HTTP.CORS.Origins,
		AllowMethods: settings.HTTP.CORS.Methods,
		AllowHeaders: settings.HTTP.CORS.Headers,
	}))
	e.Use(otelecho.Middleware("bancone",
		otelecho.WithMetricAttributeFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("client.ip", r.RemoteAddr),
				attribute.String("user.agent", r.UserAgent()),
			}
		}),
		otelecho.WithEchoMetricAttributeFn(func(c echo.Context) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("handler.path", c.Path()),
				attribute.String("handler.method", c.Request().Method),
			}
		}),
	))

	handler := &MainHandler{
		store:     store,
		loyalty:   loyalty,
		publisher: publisher,
		menu:      MenuItems(),
		validate:  newRequestValidator(),
		health:    health,
	}

	e.GET("/healthz", handler.HealthCheck)
	api := e.Group(settings.HTTP.Prefix)

	api.GET("/menu", handler.GetMenu)
	api.POST("/orders", handler.CreateOrder)
	api.GET("/orders/live", handler.GetLiveOrdersSSE)
	api.GET("/orders/:orderNumber", handler.GetOrderByNumber)
	api.GET("/loyalty/:email", handler.GetLoyaltyBalance)

	return handler
}

// GetMenu godoc
//
// @Summary List the orderable menu
// @Tags menu
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/menu [get]
func (h *MainHandler) GetMenu(c echo.Context) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    h.menu,
	})
}

// CreateOrder godoc
//
// @Summary Create a new pre-order
// @Tags order
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "New Order Request"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/orders [post]
func (h *MainHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		slog.ErrorContext(ctx, "failed to bind request", slog.Any("err", err))
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid order data",
			Errors:  map[string]string{"body": "malformed JSON body"},
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		slog.InfoContext(ctx, "order rejected by validation", slog.Any("err", err))
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid order data",
			Errors:  fieldErrorMessages(err),
		})
	}

	order, err := h.store.CreateOrder(ctx, req.toDraft())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create order", slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Error creating order",
		})
	}

	// One point per whole currency unit spent.
	if _, err := h.loyalty.AddPoints(ctx, order.Email, order.Total/100); err != nil {
		slog.ErrorContext(ctx, "failed to award loyalty points",
			slog.String("order_number", order.OrderNumber), slog.Any("err", err))
	}

	if err := h.publisher.PubOrder(ctx, *order); err != nil {
		slog.ErrorContext(ctx, "failed to publish created order",
			slog.String("order_number", order.OrderNumber), slog.Any("err", err))
	}

	slog.InfoContext(ctx, "order created",
		slog.String("order_number", order.OrderNumber),
		slog.Int64("total", order.Total),
	)

	return c.JSON(http.StatusCreated, APIResponse{
		Success:     true,
		OrderNumber: order.OrderNumber,
		Message:     "Order created successfully",
		Data:        order,
	})
}

// GetOrderByNumber godoc
//
// @Summary Look an order up by its order number
// @Tags order
// @Produce json
// @Param orderNumber path string true "Order number (VEG-XXXXXX)"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/orders/{orderNumber} [get]
func (h *MainHandler) GetOrderByNumber(c echo.Context) error {
	ctx := c.Request().Context()
	orderNumber := c.Param("orderNumber")

	order, found, err := h.store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch order",
			slog.String("order_number", orderNumber), slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Error fetching order",
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: "Order not found",
		})
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    order,
	})
}

// GetLoyaltyBalance godoc
//
// @Summary Read the loyalty point balance for an email
// @Tags loyalty
// @Produce json
// @Param email path string true "Customer email"
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/loyalty/{email} [get]
func (h *MainHandler) GetLoyaltyBalance(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.Param("email")

	points, err := h.loyalty.GetPoints(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read loyalty balance",
			slog.String("email", email), slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Error fetching loyalty balance",
		})
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    LoyaltyBalance{Email: email, Points: points},
	})
}

// GetLiveOrdersSSE godoc
//
// @Summary Stream created orders via Server-Sent Events (SSE)
// @Tags order
// @Produce text/event-stream
// @Success 200 {object} preorder.SubmittedOrder
// @Router /api/orders/live [get]
func (h *MainHandler) GetLiveOrdersSSE(c echo.Context) error {
	ctx := c.Request().Context()
	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		slog.ErrorContext(ctx, "streaming unsupported by response writer")
		return echo.NewHTTPError(http.StatusInternalServerError, "Streaming unsupported")
	}

	ch, err := h.publisher.SubLiveOrders(ctx, flusher)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to live orders", slog.Any("err", err))
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")

	notify := c.Request().Context().Done()
	for {
		select {
		case <-notify:
			slog.InfoContext(ctx, "client closed connection")
			return h.publisher.UnsubLiveOrders(ctx, flusher)
		case order := <-ch:
			data, err := json.Marshal(order)
			if err != nil {
				slog.ErrorContext(ctx, "marshal order for SSE", slog.Any("err", err))
				continue
			}
			_, err = c.Response().Writer.Write([]byte("data: " + string(data) + "\n\n"))
			if err != nil {
				slog.ErrorContext(ctx, "write SSE", slog.Any("err", err))
				h.publisher.UnsubLiveOrders(ctx, flusher)
				return err
			}
			flusher.Flush()
		}
	}
}

// HealthCheck godoc
//
// @Summary Check the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} healthgo.Check
// @Failure 503 {object} healthgo.Check
// @Router /healthz [get]
func (h *MainHandler) HealthCheck(c echo.Context) error {
	check := h.health.Measure(c.Request().Context())

	statusCode := http.StatusOK
	if check.Status != healthgo.StatusOK {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, check)
}
