package apierrors

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"housetasks/pkg/translator"
)

// JsonErr is the body of every error response.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError builds an error body with msgKey translated into lang.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// GetTransErrorMsg returns the translated message, or msgKey itself when no
// translation exists.
func GetTransErrorMsg(msgKey string, lang string) string {
	msg, err := translator.Localize(lang, msgKey)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}

// Write renders the translated error as the response and stops the handler
// chain.
func Write(c *gin.Context, code int, msgKey string, lang string) {
	c.AbortWithStatusJSON(code, CreateError(code, msgKey, lang))
}
