package admin

import (
	"strconv"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/repository"

	"github.com/gin-gonic/gin"
)

// PermanentBonusRequest 绑定常驻奖励请求
type PermanentBonusRequest struct {
	Project string `json:"project" binding:"required"`
	BonusID uint   `json:"bonus_id" binding:"required"`
}

// ListPermanentBonuses 常驻奖励列表
func (h *Handler) ListPermanentBonuses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	bonusID, _ := strconv.ParseUint(c.Query("bonus_id"), 10, 64)
	filter := repository.PermanentBonusListFilter{
		Page:     page,
		PageSize: pageSize,
		Project:  c.Query("project"),
		BonusID:  uint(bonusID),
	}
	slots, total, err := h.PermanentBonusService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list permanent bonuses failed", err)
		return
	}
	response.SuccessWithPage(c, slots, buildPagination(page, pageSize, total))
}

// AddPermanentBonus 为项目绑定常驻奖励
func (h *Handler) AddPermanentBonus(c *gin.Context) {
	var req PermanentBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	slot, err := h.PermanentBonusService.Add(req.Project, req.BonusID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("permanent_bonus_added", "project", req.Project, "bonus_id", req.BonusID)
	response.Success(c, slot)
}

// RemovePermanentBonus 解除常驻奖励绑定
func (h *Handler) RemovePermanentBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.PermanentBonusService.Remove(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "permanent bonus removed", nil)
}

// ActivePermanentBonus 返回项目当前生效的常驻奖励，可按 dsl_tag 限定
func (h *Handler) ActivePermanentBonus(c *gin.Context) {
	project := c.Query("project")
	if project == "" {
		respondError(c, response.CodeBadRequest, "project is required", nil)
		return
	}
	bonus, err := h.PermanentBonusService.FindForProject(project, c.Query("dsl_tag"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// PermanentBonusPreviews 返回项目常驻奖励预览，结果带缓存
func (h *Handler) PermanentBonusPreviews(c *gin.Context) {
	project := c.Query("project")
	if project == "" {
		respondError(c, response.CodeBadRequest, "project is required", nil)
		return
	}
	previews, err := h.PermanentBonusService.PreviewsForProject(c.Request.Context(), project)
	if err != nil {
		respondError(c, response.CodeInternal, "load previews failed", err)
		return
	}
	response.Success(c, previews)
}
