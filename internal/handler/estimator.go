package handler

import (
	"net/http"

	"github.com/cleberrangel/edge-relay-api/internal/estimator"
	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/metrics"
	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/gin-gonic/gin"
)

// EstimatorHandler manipula requisições do estimador
type EstimatorHandler struct {
	service *estimator.Service
}

// NewEstimatorHandler cria um novo handler do estimador
func NewEstimatorHandler(service *estimator.Service) *EstimatorHandler {
	return &EstimatorHandler{service: service}
}

// Tonight estima se a tarefa cabe no tempo restante
// @Summary      Estimador "dá para terminar hoje?"
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        request body model.EstimatorRequest true "Descrição da tarefa"
// @Success      200 {object} model.EstimatorResponse
// @Failure      400 {object} model.ErrorResponse
// @Router       /v1/estimator/tonight [post]
func (h *EstimatorHandler) Tonight(c *gin.Context) {
	req, err := estimator.DecodeRequest(c.Request.Body)
	if err != nil {
		respondEstimatorError(c, err)
		return
	}

	resp := h.service.Evaluate(*req)

	metrics.IncVerdict(string(resp.Verdict))
	logger.AuditEstimate(c.Request.Context(), string(resp.Verdict), resp.EstimatedMinutes, resp.AvailableMinutes)

	c.JSON(http.StatusOK, resp)
}

func respondEstimatorError(c *gin.Context, err error) {
	apiErr, ok := model.AsAPIError(err)
	if !ok {
		apiErr = model.NewClientInput(estimator.MsgInvalidJSON)
	}

	logger.FromGin(c).Warn().
		Str("kind", string(apiErr.Kind)).
		Str("error", apiErr.Message).
		Msg("Requisição do estimador rejeitada")

	c.JSON(apiErr.Status, model.ErrorResponse{
		Error:  apiErr.Message,
		Issues: apiErr.Issues,
	})
}
