package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

// ErrorResponse é o corpo devolvido em qualquer resposta de erro
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message []string `json:"message"`
}

// RespondError escreve o erro com o status correspondente ao seu tipo.
// Erros de infraestrutura são logados e respondidos com uma mensagem genérica.
func RespondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	messages := apperr.Messages(err)

	if status == http.StatusInternalServerError {
		log.Error("❌ request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		messages = []string{"internal server error"}
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: messages,
	})
}

// BindJSON decodifica o corpo da requisição. Corpo malformado vira erro de validação.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("invalid request body: " + err.Error())
	}
	return nil
}

// ParseID lê o parâmetro de rota informado como um id inteiro positivo
func ParseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid ID")
	}
	return uint(id), nil
}
