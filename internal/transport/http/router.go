package rest

import (
	"net/http"

	"github.com/Gunvolt24/orders_api/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — сборка маршрутов и middleware.
// otelServiceName непустой — включается otelgin-трейсинг запросов.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()

	// Паника в обработчике превращается в JSON 500, а не в обрыв соединения.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.log.Errorf(c.Request.Context(), "panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}

	r.GET("/", h.serviceInfo)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Литеральный /order/list регистрируется раньше /order/:orderId,
	// иначе "list" читался бы как идентификатор заказа.
	r.POST("/order", h.createOrder)
	r.GET("/order/list", h.listOrders)
	r.GET("/order/:orderId", h.getOrder)
	r.PUT("/order/:orderId", h.updateOrder)
	r.DELETE("/order/:orderId", h.deleteOrder)

	// Любой несопоставленный маршрут — JSON 404.
	r.NoRoute(h.noRoute)

	return r
}
