package http

import "github.com/gin-gonic/gin"

// RegisterBrokerRoutes monta la API del roster y el stream de cambios.
// El grupo /api queda como punto de extensión: si algún día hace falta
// autorización, el middleware se cuelga aquí.
func RegisterBrokerRoutes(r *gin.Engine, handler *BrokerHandler, stream *StreamHandler) {
	api := r.Group("/api")
	{
		api.GET("/brokers", handler.ListBrokers)
		api.POST("/brokers", handler.CreateBroker)
		api.GET("/brokers/:id", handler.GetBroker)
		api.PATCH("/brokers/:id", handler.UpdateBroker)
		api.PATCH("/brokers/:id/status", handler.UpdateBrokerStatus)
		api.DELETE("/brokers/:id", handler.DeleteBroker)

		api.GET("/events", stream.Stream)
	}
}
