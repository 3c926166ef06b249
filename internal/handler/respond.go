package handler

import (
	"errors"
	"net/http"
	"strconv"

	"softdesk/internal/middleware"
	"softdesk/internal/pkg"

	"github.com/gin-gonic/gin"
)

// respondErr 按错误分类映射状态码，未知错误一律 500
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkg.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func currentUser(c *gin.Context) (uint64, int) {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	roleAny, _ := c.Get(middleware.ContextRoleKey)
	userID, _ := userIDAny.(uint64)
	role, _ := roleAny.(int)
	return userID, role
}

// pathID 路径参数必须是正整数
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("size"))
	return page, size
}
