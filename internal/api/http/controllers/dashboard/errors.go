package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"macroDash/internal/domain"
)

// writeError переводит ошибку юзкейса в HTTP-ответ.
func (c *Controller) writeError(ctx *gin.Context, op string, err error) {
	var unavailable *domain.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		c.log.Warn(op+" unavailable", "section", unavailable.Section, "dataset", unavailable.Dataset, "error", err)
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "dataset_unavailable",
			Message: unavailable.Message(),
			Section: unavailable.Section,
			Dataset: unavailable.Dataset,
		})
	case errors.Is(err, domain.ErrUnknownSection):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown_section", Message: "Seção desconhecida."})
	case errors.Is(err, domain.ErrUnknownDataset):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown_dataset", Message: "Conjunto de dados desconhecido."})
	case errors.Is(err, domain.ErrHistoryDisabled):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "history_disabled", Message: "Histórico de atualizações desativado."})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.log.Warn(op+" aborted", "error", err)
		ctx.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "timeout", Message: "Tempo de resposta esgotado."})
	default:
		c.log.Error(op+" failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "Erro interno."})
	}
}
