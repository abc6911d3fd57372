package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common/helper"
	"github.com/brandboost-ai/brandboost/common/logger"
)

func RequestId() func(c *gin.Context) {
	return func(c *gin.Context) {
		// A client supplied id wins, otherwise generate one.
		id := c.GetHeader(logger.RequestIdKey)
		if id == "" {
			id = helper.GenRequestID()
		}
		c.Set(logger.RequestIdKey, id)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, id)
		c.Request = c.Request.WithContext(ctx)
		// Mirror into the request header so downstream GetHeader also sees it.
		c.Request.Header.Set(logger.RequestIdKey, id)
		c.Header(logger.RequestIdKey, id)
		c.Next()
	}
}
