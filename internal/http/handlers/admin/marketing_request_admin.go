package admin

import (
	"strconv"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// MarketingRequestRequest 创建/更新营销合作申请请求
type MarketingRequestRequest struct {
	Manager      string `json:"manager" binding:"required"`
	Platform     string `json:"platform"`
	PartnerEmail string `json:"partner_email" binding:"required"`
	PromoCode    string `json:"promo_code"`
	Stag         string `json:"stag"`
	Status       string `json:"status"`
	RequestType  string `json:"request_type"`
}

func (r MarketingRequestRequest) toInput() service.MarketingRequestInput {
	return service.MarketingRequestInput{
		Manager:      r.Manager,
		Platform:     r.Platform,
		PartnerEmail: r.PartnerEmail,
		PromoCode:    r.PromoCode,
		Stag:         r.Stag,
		Status:       r.Status,
		RequestType:  r.RequestType,
	}
}

// ListMarketingRequests 申请列表
func (h *Handler) ListMarketingRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.MarketingRequestListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		RequestType: c.Query("request_type"),
		Platform:    c.Query("platform"),
		Search:      c.Query("search"),
	}
	requests, total, err := h.MarketingRequestService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list marketing requests failed", err)
		return
	}
	response.SuccessWithPage(c, requests, buildPagination(page, pageSize, total))
}

// GetMarketingRequest 申请详情
func (h *Handler) GetMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	request, err := h.MarketingRequestService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// CreateMarketingRequest 创建申请
func (h *Handler) CreateMarketingRequest(c *gin.Context) {
	var req MarketingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	request, err := h.MarketingRequestService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// UpdateMarketingRequest 更新申请。内容变更会重置状态为待处理。
func (h *Handler) UpdateMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req MarketingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	request, err := h.MarketingRequestService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// DeleteMarketingRequest 删除申请
func (h *Handler) DeleteMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.MarketingRequestService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "marketing request deleted", nil)
}

// ActivateMarketingRequest 通过申请
func (h *Handler) ActivateMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	request, err := h.MarketingRequestService.Activate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("marketing_request_activated", "request_id", id)
	response.Success(c, request)
}

// RejectMarketingRequest 拒绝申请
func (h *Handler) RejectMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	request, err := h.MarketingRequestService.Reject(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("marketing_request_rejected", "request_id", id)
	response.Success(c, request)
}

// ResetMarketingRequest 重置申请为待处理
func (h *Handler) ResetMarketingRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	request, err := h.MarketingRequestService.ResetToPending(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}
