package admin

import (
	"strconv"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// BonusTemplateRequest 创建/更新模板请求
type BonusTemplateRequest struct {
	DslTag                  string                 `json:"dsl_tag" binding:"required"`
	Project                 string                 `json:"project"`
	Name                    string                 `json:"name" binding:"required"`
	Event                   string                 `json:"event"`
	Currencies              []string               `json:"currencies"`
	Groups                  []string               `json:"groups"`
	CurrencyMinimumDeposits map[string]interface{} `json:"currency_minimum_deposits"`
	Wager                   *float64               `json:"wager"`
	MaximumWinnings         *float64               `json:"maximum_winnings"`
	NoMore                  string                 `json:"no_more"`
	TotallyNoMore           *int                   `json:"totally_no_more"`
	Description             string                 `json:"description"`
}

func (r BonusTemplateRequest) toInput() service.BonusTemplateInput {
	return service.BonusTemplateInput{
		DslTag:                  r.DslTag,
		Project:                 r.Project,
		Name:                    r.Name,
		Event:                   r.Event,
		Currencies:              r.Currencies,
		Groups:                  r.Groups,
		CurrencyMinimumDeposits: r.CurrencyMinimumDeposits,
		Wager:                   r.Wager,
		MaximumWinnings:         r.MaximumWinnings,
		NoMore:                  r.NoMore,
		TotallyNoMore:           r.TotallyNoMore,
		Description:             r.Description,
	}
}

// ListBonusTemplates 模板列表
func (h *Handler) ListBonusTemplates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.BonusTemplateListFilter{
		Page:     page,
		PageSize: pageSize,
		DslTag:   c.Query("dsl_tag"),
		Project:  c.Query("project"),
		Event:    c.Query("event"),
		Search:   c.Query("search"),
	}
	templates, total, err := h.BonusTemplateService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list templates failed", err)
		return
	}
	response.SuccessWithPage(c, templates, buildPagination(page, pageSize, total))
}

// GetBonusTemplate 模板详情
func (h *Handler) GetBonusTemplate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	template, err := h.BonusTemplateService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, template)
}

// CreateBonusTemplate 创建模板
func (h *Handler) CreateBonusTemplate(c *gin.Context) {
	var req BonusTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	template, err := h.BonusTemplateService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, template)
}

// UpdateBonusTemplate 更新模板
func (h *Handler) UpdateBonusTemplate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req BonusTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	template, err := h.BonusTemplateService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, template)
}

// DeleteBonusTemplate 删除模板
func (h *Handler) DeleteBonusTemplate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.BonusTemplateService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "template deleted", nil)
}

// ResolveBonusTemplate 按标签/项目/名称解析模板，项目未命中时回退到 All
func (h *Handler) ResolveBonusTemplate(c *gin.Context) {
	dslTag := c.Query("dsl_tag")
	name := c.Query("name")
	if dslTag == "" || name == "" {
		respondError(c, response.CodeBadRequest, "dsl_tag and name are required", nil)
		return
	}
	result, err := h.BonusTemplateService.Resolve(dslTag, c.Query("project"), name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyTemplateRequest 应用模板到奖金请求
type ApplyTemplateRequest struct {
	TemplateID uint `json:"template_id" binding:"required"`
}

// ApplyTemplateToBonus 将模板字段覆盖到已有奖金
func (h *Handler) ApplyTemplateToBonus(c *gin.Context) {
	bonusID, ok := paramID(c)
	if !ok {
		return
	}
	var req ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	bonus, err := h.BonusTemplateService.Apply(req.TemplateID, bonusID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("template_applied", "template_id", req.TemplateID, "bonus_id", bonusID)
	response.Success(c, bonus)
}

// BonusFromTemplateRequest 基于模板创建奖金请求
type BonusFromTemplateRequest struct {
	DslTag  string       `json:"dsl_tag" binding:"required"`
	Project string       `json:"project"`
	Name    string       `json:"name" binding:"required"`
	Bonus   BonusRequest `json:"bonus" binding:"required"`
}

// CreateBonusFromTemplate 解析模板并以其字段创建新奖金
func (h *Handler) CreateBonusFromTemplate(c *gin.Context) {
	var req BonusFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.Bonus.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date format", err)
		return
	}
	bonus, err := h.BonusTemplateService.CreateBonusFromTemplate(req.DslTag, req.Project, req.Name, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}
