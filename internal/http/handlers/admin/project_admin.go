package admin

import (
	"strconv"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectRequest 创建/更新项目请求
type ProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListProjects 项目列表
func (h *Handler) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProjectListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	projects, total, err := h.ProjectService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list projects failed", err)
		return
	}
	response.SuccessWithPage(c, projects, buildPagination(page, pageSize, total))
}

// GetProject 项目详情
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	project, err := h.ProjectService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// CreateProject 创建项目
func (h *Handler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	project, err := h.ProjectService.Create(service.ProjectInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// UpdateProject 更新项目
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	project, err := h.ProjectService.Update(id, service.ProjectInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// DeleteProject 删除项目及其常驻奖励配置
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.ProjectService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "project deleted", nil)
}
