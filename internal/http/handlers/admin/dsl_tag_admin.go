package admin

import (
	"strconv"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// DslTagRequest 创建/更新标签请求
type DslTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListDslTags 标签列表，附带使用统计
func (h *Handler) ListDslTags(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.DslTagListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	tags, total, err := h.DslTagService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list dsl tags failed", err)
		return
	}
	response.SuccessWithPage(c, tags, buildPagination(page, pageSize, total))
}

// GetDslTag 标签详情
func (h *Handler) GetDslTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	tag, err := h.DslTagService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tag)
}

// CreateDslTag 创建标签
func (h *Handler) CreateDslTag(c *gin.Context) {
	var req DslTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	tag, err := h.DslTagService.Create(service.DslTagInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tag)
}

// UpdateDslTag 更新标签
func (h *Handler) UpdateDslTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req DslTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	tag, err := h.DslTagService.Update(id, service.DslTagInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tag)
}

// DeleteDslTag 删除标签并解除奖金上的引用
func (h *Handler) DeleteDslTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.DslTagService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "dsl tag deleted", nil)
}
