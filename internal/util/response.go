package util

import (
	"errors"
	"net/http"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"github.com/gin-gonic/gin"
)

// 通用返回结构里的 data 使用 map
type Response map[string]interface{}

// 业务错误码，可以先简单这样定义
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeTimeout      = 40801
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Success 统一成功返回
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// FromError 把核心层的分类错误映射成统一返回。
func FromError(c *gin.Context, err error) {
	var (
		ve *search.ValidationError
		ce *search.ConflictError
		ne *search.NotFoundError
		te *search.TimeoutError
		se *search.StorageError
	)
	switch {
	case errors.As(err, &ve):
		Error(c, http.StatusBadRequest, CodeInvalidParam, ve.Error())
	case errors.As(err, &ce):
		Error(c, http.StatusConflict, CodeConflict, ce.Error())
	case errors.As(err, &ne):
		Error(c, http.StatusNotFound, CodeNotFound, ne.Error())
	case errors.As(err, &te):
		Error(c, http.StatusGatewayTimeout, CodeTimeout, te.Error())
	case errors.As(err, &se):
		Error(c, http.StatusInternalServerError, CodeServerErr, "存储异常，请重试")
	default:
		Error(c, http.StatusInternalServerError, CodeServerErr, "服务器异常")
	}
}
