package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/brokerlive/internal/broker/application"
	"github.com/davicafu/brokerlive/internal/broker/domain"
	"github.com/davicafu/brokerlive/pkg/utils"
)

// BrokerHandler encapsula los endpoints HTTP del roster. La validación del
// input vive aquí, en la frontera: al servicio solo llega input ya válido.
type BrokerHandler struct {
	service *application.BrokerService
}

// NewBrokerHandler crea un nuevo BrokerHandler
func NewBrokerHandler(service *application.BrokerService) *BrokerHandler {
	return &BrokerHandler{service: service}
}

// brokerRequest es el shape editable que aceptan create y update.
// region es opcional: vacía resuelve a la región por defecto.
type brokerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	PhotoURL string `json:"photoUrl"`
	Region   string `json:"region"`
}

func (r brokerRequest) toInput() (domain.BrokerInput, error) {
	region, err := domain.ParseRegion(r.Region)
	if err != nil {
		return domain.BrokerInput{}, err
	}
	return domain.BrokerInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		PhotoURL: r.PhotoURL,
		Region:   region,
	}, nil
}

// ---------------- Handlers ----------------

// ListBrokers endpoint GET /api/brokers
func (h *BrokerHandler) ListBrokers(c *gin.Context) {
	brokers, err := h.service.ListBrokers(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "failed to fetch brokers")
		return
	}

	c.JSON(http.StatusOK, brokers)
}

// GetBroker endpoint GET /api/brokers/:id
func (h *BrokerHandler) GetBroker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid broker id")
		return
	}

	broker, err := h.service.GetBroker(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBrokerNotFound) {
			utils.SendNotFound(c, "broker not found")
			return
		}
		utils.SendInternalServerError(c, "failed to fetch broker")
		return
	}

	c.JSON(http.StatusOK, broker)
}

// CreateBroker endpoint POST /api/brokers
func (h *BrokerHandler) CreateBroker(c *gin.Context) {
	var req brokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	broker, err := h.service.CreateBroker(c.Request.Context(), in)
	if err != nil {
		utils.SendInternalServerError(c, "failed to create broker")
		return
	}

	c.JSON(http.StatusCreated, broker)
}

// UpdateBroker endpoint PATCH /api/brokers/:id
// Reemplaza todos los campos editables; IsOnline no se toca por aquí.
func (h *BrokerHandler) UpdateBroker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid broker id")
		return
	}

	var req brokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	broker, err := h.service.UpdateBroker(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrBrokerNotFound) {
			utils.SendNotFound(c, "broker not found")
			return
		}
		utils.SendInternalServerError(c, "failed to update broker")
		return
	}

	c.JSON(http.StatusOK, broker)
}

// UpdateBrokerStatus endpoint PATCH /api/brokers/:id/status
func (h *BrokerHandler) UpdateBrokerStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid broker id")
		return
	}

	// puntero para distinguir "false" de "ausente"
	var req struct {
		IsOnline *bool `json:"isOnline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "isOnline must be a boolean")
		return
	}

	broker, err := h.service.UpdateBrokerStatus(c.Request.Context(), id, *req.IsOnline)
	if err != nil {
		if errors.Is(err, domain.ErrBrokerNotFound) {
			utils.SendNotFound(c, "broker not found")
			return
		}
		utils.SendInternalServerError(c, "failed to update broker status")
		return
	}

	c.JSON(http.StatusOK, broker)
}

// DeleteBroker endpoint DELETE /api/brokers/:id
func (h *BrokerHandler) DeleteBroker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid broker id")
		return
	}

	if err := h.service.DeleteBroker(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrBrokerNotFound) {
			utils.SendNotFound(c, "broker not found")
			return
		}
		utils.SendInternalServerError(c, "failed to delete broker")
		return
	}

	c.Status(http.StatusNoContent)
}
