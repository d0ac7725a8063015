package controllers

import (
	"net/http"

	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// GetUserList 获取用户名录
// 仅管理员可用，供分配下拉框展示销售列表
func GetUserList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	utils.LogInfo(map[string]interface{}{"user": user.Email}, "获取用户名录")

	users := repository.Users.All()
	for i := range users {
		users[i].Password = ""
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
		"total": len(users),
	}, "")
}
