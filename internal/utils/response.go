package utils

import (
	"github.com/gin-gonic/gin"
)

// Message 统一的消息响应体，成功确认和错误都用它
type Message struct {
	Message string `json:"message"`
}

// OK 返回200确认消息
func OK(c *gin.Context, message string) {
	c.JSON(200, Message{Message: message})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Message{Message: message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, 404, message)
}

// InternalServerError 返回500错误，细节只记日志不下发
func InternalServerError(c *gin.Context) {
	Error(c, 500, "Server Error")
}
