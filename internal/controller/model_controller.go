package controller

import (
	"critical_thinking_backend/internal/model"
	"critical_thinking_backend/internal/scoring"
	"critical_thinking_backend/internal/service"
	"critical_thinking_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ModelController struct {
	ModelService *service.ModelService
}

func NewModelController(modelService *service.ModelService) *ModelController {
	return &ModelController{ModelService: modelService}
}

type RetrainStrengthRequest struct {
	Samples []model.RetrainSample `json:"samples" binding:"required,min=1,dive"`
}

// RetrainStrength godoc
// @Summary 重训评级模型
// @Description 管理员提交已标注的 (得分, 用时, 评级) 样本，整体替换分类模型
// @Tags 模型管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RetrainStrengthRequest true "标注样本"
// @Success 200 {object} util.Response "重训完成"
// @Failure 400 {object} util.Response "样本不合法"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/models/strength/retrain [post]
func (c *ModelController) RetrainStrength(ctx *gin.Context) {
	var req RetrainStrengthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModelService.RetrainStrength(req.Samples); err != nil {
		if errors.Is(err, scoring.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"samples": len(req.Samples)})
}

type RetrainScoreRequest struct {
	Features [][]float64 `json:"features" binding:"required,min=1"`
	Targets  []float64   `json:"targets" binding:"required,min=1"`
}

// RetrainScore godoc
// @Summary 重训得分模型
// @Description 管理员提交题目特征行与目标分，整体替换回归模型
// @Tags 模型管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RetrainScoreRequest true "训练数据"
// @Success 200 {object} util.Response "重训完成"
// @Failure 400 {object} util.Response "训练数据不合法"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/models/score/retrain [post]
func (c *ModelController) RetrainScore(ctx *gin.Context) {
	var req RetrainScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModelService.RetrainScore(req.Features, req.Targets); err != nil {
		if errors.Is(err, scoring.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"samples": len(req.Targets)})
}

// Status godoc
// @Summary 模型状态
// @Description 返回各模型 bundle 的持久化状态
// @Tags 模型管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/models/status [get]
func (c *ModelController) Status(ctx *gin.Context) {
	util.Success(ctx, c.ModelService.Status())
}
