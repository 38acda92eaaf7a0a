package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/cleberrangel/edge-relay-api/internal/service"
	"github.com/gin-gonic/gin"
)

// MsgInvalidJSONPayload é devolvido quando o corpo do contato não é JSON
const MsgInvalidJSONPayload = "Invalid JSON payload"

var errTrailingData = errors.New("dados após o valor JSON")

// HeaderConnectingIP é o IP real do cliente repassado pela Cloudflare
const HeaderConnectingIP = "CF-Connecting-IP"

// Relayer repassa uma mensagem de contato já validada
type Relayer interface {
	Relay(ctx context.Context, payload model.ContactPayload, remoteIP string) (*service.RelayResult, error)
}

// ContactHandler manipula o formulário de contato
type ContactHandler struct {
	relayer Relayer
	dev     bool
}

// NewContactHandler cria um novo handler de contato; em dev os detalhes de erro vão na resposta
func NewContactHandler(relayer Relayer, dev bool) *ContactHandler {
	return &ContactHandler{relayer: relayer, dev: dev}
}

// Send valida o formulário, verifica o token e envia o e-mail
// @Summary      Envia mensagem de contato
// @Tags         contact
// @Accept       json
// @Produce      json
// @Success      200 {object} model.ContactResponse
// @Failure      400 {object} model.ContactResponse
// @Failure      403 {object} model.ContactResponse
// @Failure      500 {object} model.ContactResponse
// @Router       /v1/contact/send [post]
func (h *ContactHandler) Send(c *gin.Context) {
	body, err := decodeSingleJSON(c.Request.Body)
	if err != nil {
		h.respondError(c, model.NewClientInput(MsgInvalidJSONPayload))
		return
	}

	payload, err := service.ValidateContactPayload(body)
	if err != nil {
		logger.AuditContact(c.Request.Context(), logger.AuditActionContactRejected, "", c.ClientIP(), false, err.Error())
		h.respondError(c, err)
		return
	}

	result, err := h.relayer.Relay(c.Request.Context(), payload, remoteIP(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ContactResponse{
		OK:      true,
		Message: service.MsgRelaySucceeded,
		RelayID: result.RelayID,
	})
}

// respondError traduz qualquer erro para o envelope {ok:false, error, debug?}
func (h *ContactHandler) respondError(c *gin.Context, err error) {
	apiErr, ok := model.AsAPIError(err)
	if !ok {
		logger.FromGin(c).Error().Err(err).Msg("Erro inesperado no relay")
		apiErr = model.NewUpstreamCall(service.MsgSendFailed, nil, err)
	}

	resp := model.ContactResponse{OK: false, Error: apiErr.Message}
	if h.dev && len(apiErr.Debug) > 0 {
		resp.Debug = apiErr.Debug
	}
	c.JSON(apiErr.Status, resp)
}

// decodeSingleJSON lê exatamente um valor JSON; bytes extras são erro
func decodeSingleJSON(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

func remoteIP(c *gin.Context) string {
	if ip := c.GetHeader(HeaderConnectingIP); ip != "" {
		return ip
	}
	return c.ClientIP()
}
