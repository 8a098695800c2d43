package controller

import (
	"critical_thinking_backend/internal/scoring"
	"critical_thinking_backend/internal/service"
	"critical_thinking_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GenerateTest godoc
// @Summary 生成批判性思维测试
// @Description 调用 AI 生成一套批判性思维选择题并创建测试记录
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.GenerateTestResponse} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Failure 502 {object} util.Response "出题服务异常"
// @Router /api/assessment/tests [post]
func (c *AssessmentController) GenerateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AssessmentService.GenerateTest(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrMalformedQuestions) {
			util.BadGateway(ctx, "出题服务返回的内容无法解析")
		} else {
			util.BadGateway(ctx, "出题服务暂不可用")
		}
		return
	}

	util.Success(ctx, resp)
}

// GetQuestions godoc
// @Summary 获取测试题目
// @Description 返回指定测试的题目（不含答案），优先走缓存
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测试ID"
// @Success 200 {object} util.Response{data=[]service.StudentQuestion} "成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/assessment/tests/{id}/questions [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测试ID")
		return
	}

	questions, err := c.AssessmentService.GetStudentQuestions(ctx.Request.Context(), claims.UserID, uint(testID))
	if err != nil {
		c.handleTestError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// EvaluateTest godoc
// @Summary 提交并评估测试
// @Description 提交答案和作答时长，返回规则得分、ML 得分、两套评级和评语
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.EvaluateTestRequest true "作答数据"
// @Success 200 {object} util.Response{data=service.EvaluateTestResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测试不存在"
// @Failure 409 {object} util.Response "测试已评估"
// @Failure 503 {object} util.Response "模型不可用"
// @Router /api/assessment/evaluate [post]
func (c *AssessmentController) EvaluateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.EvaluateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AssessmentService.EvaluateTest(claims.UserID, req)
	if err != nil {
		c.handleTestError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// GetResult godoc
// @Summary 获取测试结果
// @Description 返回一次已评估测试的完整结果
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测试ID"
// @Success 200 {object} util.Response{data=model.Test} "成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/assessment/tests/{id}/result [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测试ID")
		return
	}

	test, err := c.AssessmentService.GetTestResult(claims.UserID, uint(testID))
	if err != nil {
		c.handleTestError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// ListMyTests godoc
// @Summary 我的测试列表
// @Description 分页返回当前用户的测试记录
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/assessment/tests [get]
func (c *AssessmentController) ListMyTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	tests, total, err := c.AssessmentService.ListMyTests(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// ListEvaluated godoc
// @Summary 已评估测试列表
// @Description 教师/管理员分页查看全部已评估的测试
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/assessment/evaluated [get]
func (c *AssessmentController) ListEvaluated(ctx *gin.Context) {
	page, limit := pagination(ctx)
	tests, total, err := c.AssessmentService.ListEvaluated(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// DeleteTest godoc
// @Summary 删除测试
// @Description 管理员删除一条测试记录
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测试ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/assessment/tests/{id} [delete]
func (c *AssessmentController) DeleteTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测试ID")
		return
	}

	if err := c.AssessmentService.DeleteTest(uint(testID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

func (c *AssessmentController) handleTestError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTestNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrTestAlreadyEvaluated):
		util.Error(ctx, 409, "该测试已评估，不能重复提交")
	case errors.Is(err, util.ErrMalformedQuestions):
		util.LogInternalError(ctx, err)
	case isScoringInputError(err):
		util.BadRequest(ctx, err.Error())
	case isModelUnavailable(err):
		util.ServiceUnavailable(ctx, "评分模型暂不可用")
	default:
		util.LogInternalError(ctx, err)
	}
}

func isScoringInputError(err error) bool {
	return errors.Is(err, scoring.ErrInvalidInput)
}

func isModelUnavailable(err error) bool {
	return errors.Is(err, scoring.ErrModelUnavailable) || errors.Is(err, scoring.ErrPrediction)
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
