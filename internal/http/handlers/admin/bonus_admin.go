package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/queue"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// BonusRequest 创建/更新奖金请求
type BonusRequest struct {
	Name                    string                 `json:"name" binding:"required"`
	Code                    string                 `json:"code"`
	Event                   string                 `json:"event" binding:"required"`
	Status                  string                 `json:"status"`
	AvailabilityStartDate   string                 `json:"availability_start_date" binding:"required"`
	AvailabilityEndDate     string                 `json:"availability_end_date" binding:"required"`
	Description             string                 `json:"description"`
	Currencies              []string               `json:"currencies"`
	Country                 string                 `json:"country"`
	Groups                  []string               `json:"groups"`
	DslTagID                *uint                  `json:"dsl_tag_id"`
	Project                 string                 `json:"project"`
	MinimumDeposit          *float64               `json:"minimum_deposit"`
	Wager                   *float64               `json:"wager"`
	MaximumWinnings         *float64               `json:"maximum_winnings"`
	CurrencyMinimumDeposits map[string]interface{} `json:"currency_minimum_deposits"`
	NoMore                  string                 `json:"no_more"`
	TotallyNoMore           *int                   `json:"totally_no_more"`
	Tags                    []string               `json:"tags"`
	WageringStrategy        string                 `json:"wagering_strategy"`
}

func (r BonusRequest) toInput() (service.BonusInput, error) {
	startDate, err := parseTime(r.AvailabilityStartDate)
	if err != nil {
		return service.BonusInput{}, err
	}
	endDate, err := parseTime(r.AvailabilityEndDate)
	if err != nil {
		return service.BonusInput{}, err
	}
	return service.BonusInput{
		Name:                    r.Name,
		Code:                    r.Code,
		Event:                   r.Event,
		Status:                  r.Status,
		AvailabilityStartDate:   startDate,
		AvailabilityEndDate:     endDate,
		Description:             r.Description,
		Currencies:              r.Currencies,
		Country:                 r.Country,
		Groups:                  r.Groups,
		DslTagID:                r.DslTagID,
		Project:                 r.Project,
		MinimumDeposit:          r.MinimumDeposit,
		Wager:                   r.Wager,
		MaximumWinnings:         r.MaximumWinnings,
		CurrencyMinimumDeposits: r.CurrencyMinimumDeposits,
		NoMore:                  r.NoMore,
		TotallyNoMore:           r.TotallyNoMore,
		Tags:                    r.Tags,
		WageringStrategy:        r.WageringStrategy,
	}, nil
}

// ListBonuses 奖金列表
func (h *Handler) ListBonuses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.BonusListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Event:    c.Query("event"),
		Currency: c.Query("currency"),
		Country:  c.Query("country"),
		Project:  c.Query("project"),
		DslTag:   c.Query("dsl_tag"),
		Search:   c.Query("search"),
	}
	bonuses, total, err := h.BonusService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list bonuses failed", err)
		return
	}
	response.SuccessWithPage(c, bonuses, buildPagination(page, pageSize, total))
}

// GetBonus 奖金详情
func (h *Handler) GetBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	bonus, err := h.BonusService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// CreateBonus 创建奖金
func (h *Handler) CreateBonus(c *gin.Context) {
	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date format", err)
		return
	}
	bonus, err := h.BonusService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// UpdateBonus 更新奖金
func (h *Handler) UpdateBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date format", err)
		return
	}
	bonus, err := h.BonusService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// DeleteBonus 删除奖金
func (h *Handler) DeleteBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.BonusService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "bonus deleted", nil)
}

// ActivateBonus 激活奖金
func (h *Handler) ActivateBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	bonus, err := h.BonusService.Activate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// DeactivateBonus 停用奖金
func (h *Handler) DeactivateBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	bonus, err := h.BonusService.Deactivate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// ExpireBonus 手动置为过期
func (h *Handler) ExpireBonus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	bonus, err := h.BonusService.MarkAsExpired(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// BulkBonusRequest 批量操作请求
type BulkBonusRequest struct {
	Action string `json:"action" binding:"required"`
	IDs    []uint `json:"ids"`
}

// BulkBonusAction 批量操作奖金
func (h *Handler) BulkBonusAction(c *gin.Context) {
	var req BulkBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	affected, err := h.BonusService.BulkAction(req.Action, req.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("bonus_bulk_action", "action", req.Action, "ids", req.IDs, "affected", affected)
	response.Success(c, gin.H{"affected": affected})
}

// ExpireSweep 触发过期清扫。队列可用时投递异步任务，否则同步执行。
func (h *Handler) ExpireSweep(c *gin.Context) {
	if h.QueueClient.Enabled() {
		payload := queue.BonusExpireSweepPayload{
			RequestedAt: time.Now(),
			Reason:      "manual",
		}
		if err := h.QueueClient.EnqueueBonusExpireSweep(payload); err != nil {
			respondError(c, response.CodeInternal, "enqueue expire sweep failed", err)
			return
		}
		response.SuccessWithMsg(c, "expire sweep enqueued", nil)
		return
	}

	count, err := h.BonusService.ExpireSweep()
	if err != nil {
		respondError(c, response.CodeInternal, "expire sweep failed", err)
		return
	}
	response.Success(c, gin.H{"expired_count": count})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return 0, false
	}
	return uint(id), true
}

// parseTime 解析日期输入，支持 RFC3339 与 YYYY-MM-DD 两种格式
func parseTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", trimmed)
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
