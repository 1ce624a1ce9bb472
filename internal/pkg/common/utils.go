package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// AbortWithError 依錯誤類型寫入錯誤響應並中止後續處理
func AbortWithError(c *gin.Context, err error, debug bool) {
	ce := AsCustomError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}
