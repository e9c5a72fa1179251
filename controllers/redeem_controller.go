package controllers

import (
	"net/http"
	"strconv"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RedeemController struct{}

// RedeemCode 兑换能量码
func (rc *RedeemController) RedeemCode(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 开启事务
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 查找未使用的兑换码
	var code models.RedeemCode
	if err := tx.Where("code = ? AND used_at IS NULL", req.Code).First(&code).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "兑换码无效或已被使用"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "兑换失败"})
		}
		return
	}

	// 标记已使用
	now := time.Now()
	userID := uid.(string)
	code.UsedAt = &now
	code.UserID = &userID
	if err := tx.Save(&code).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "兑换失败"})
		return
	}

	// 增加能量值
	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}
	if err := tx.Model(&user).Update("energy", user.Energy+code.Energy).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "兑换失败"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "兑换失败"})
		return
	}

	config.Logger.Infow("兑换码使用成功",
		"uid", userID,
		"code", code.Code,
		"energy", code.Energy,
	)

	c.JSON(http.StatusOK, gin.H{
		"message":   "兑换成功",
		"energy":    code.Energy,
		"newEnergy": user.Energy + code.Energy,
	})
}

// CreateRedeemCode 内部接口：批量生成兑换码
func (rc *RedeemController) CreateRedeemCode(c *gin.Context) {
	countStr := c.DefaultQuery("count", "1")
	energyStr := c.DefaultQuery("energy", "20")

	count, err := strconv.Atoi(countStr)
	if err != nil || count <= 0 || count > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的数量"})
		return
	}
	energy, err := strconv.Atoi(energyStr)
	if err != nil || energy <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的能量值"})
		return
	}

	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code := models.RedeemCode{
			ID:        utils.GenerateID(),
			Code:      models.GenerateRedeemCode(),
			Energy:    energy,
			CreatedAt: time.Now(),
		}
		if err := config.DB.Create(&code).Error; err != nil {
			// 撞码时重试一次
			code.Code = models.GenerateRedeemCode()
			if err := config.DB.Create(&code).Error; err != nil {
				config.Logger.Errorw("生成兑换码失败", "error", err)
				continue
			}
		}
		codes = append(codes, code.Code)
	}

	c.JSON(http.StatusOK, gin.H{
		"codes":  codes,
		"energy": energy,
	})
}
