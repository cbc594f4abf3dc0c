// internal/interfaces/http/handlers/survey_handler.go
//
// Read and recompute endpoints over the survey application service.

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// SurveyService is the subset of the application service the handlers call.
type SurveyService interface {
	ListUpcoming(ctx context.Context, companyID string, day time.Time) (*domain.ScanResult, error)
	RecalculateCertificate(ctx context.Context, certID string) (*domain.NextSurveyResult, error)
	RecalculateShip(ctx context.Context, shipID string) (*domain.ShipComputation, error)
	EquipmentValidity(ctx context.Context, shipID, equipmentName string, issued time.Time) (*domain.EquipmentValidity, error)
}

// SurveyHandler handles survey scheduling requests.
type SurveyHandler struct {
	svc    SurveyService
	logger logging.Logger
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(svc SurveyService, logger logging.Logger) *SurveyHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SurveyHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the survey endpoints on an /api/v1 group.
func (h *SurveyHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/companies/:companyID/upcoming-surveys", h.ListUpcoming)
	api.POST("/certificates/:certID/recalculate", h.RecalculateCertificate)
	api.POST("/ships/:shipID/recalculate", h.RecalculateShip)
	api.GET("/ships/:shipID/equipment-validity", h.EquipmentValidity)
}

// ListUpcoming handles GET /api/v1/companies/:companyID/upcoming-surveys?date=
func (h *SurveyHandler) ListUpcoming(c *gin.Context) {
	day, err := parseDateParam(c, "date")
	if err != nil {
		writeAppError(c, err)
		return
	}

	companyID := c.Param("companyID")
	res, err := h.svc.ListUpcoming(c.Request.Context(), companyID, day)
	if err != nil {
		h.logFailure("list upcoming surveys failed", err, logging.String("company_id", companyID))
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, toUpcomingResponse(res))
}

// RecalculateCertificate handles POST /api/v1/certificates/:certID/recalculate
func (h *SurveyHandler) RecalculateCertificate(c *gin.Context) {
	certID := c.Param("certID")
	res, err := h.svc.RecalculateCertificate(c.Request.Context(), certID)
	if err != nil {
		h.logFailure("certificate recalculation failed", err, logging.String("certificate_id", certID))
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, toNextSurveyDTO(certID, *res))
}

// RecalculateShip handles POST /api/v1/ships/:shipID/recalculate
func (h *SurveyHandler) RecalculateShip(c *gin.Context) {
	shipID := c.Param("shipID")
	comp, err := h.svc.RecalculateShip(c.Request.Context(), shipID)
	if err != nil {
		h.logFailure("ship recalculation failed", err, logging.String("ship_id", shipID))
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, toShipResponse(comp))
}

// EquipmentValidity handles GET /api/v1/ships/:shipID/equipment-validity?name=&issued=
func (h *SurveyHandler) EquipmentValidity(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		writeAppError(c, errors.InvalidParam("name is required"))
		return
	}
	issued, err := parseDateParam(c, "issued")
	if err != nil {
		writeAppError(c, err)
		return
	}
	if issued.IsZero() {
		writeAppError(c, errors.InvalidParam("issued is required"))
		return
	}

	shipID := c.Param("shipID")
	v, err := h.svc.EquipmentValidity(c.Request.Context(), shipID, name, issued)
	if err != nil {
		h.logFailure("equipment validity failed", err, logging.String("ship_id", shipID))
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, toEquipmentResponse(v))
}

// logFailure logs server-side failures; client errors are only logged by
// the request middleware.
func (h *SurveyHandler) logFailure(msg string, err error, fields ...logging.Field) {
	if errors.HTTPStatusForCode(errors.GetCode(err)) < http.StatusInternalServerError {
		return
	}
	h.logger.Error(msg, append(fields, logging.Err(err))...)
}

//Personal.AI order the ending
