package admin

import (
	"strconv"

	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
)

// RewardRequest 创建/更新奖励请求。各类型只读取自己关心的字段，
// 通用配置放在 config 中。
type RewardRequest struct {
	Type         string                 `json:"type"`
	Amount       *float64               `json:"amount"`
	Percentage   *float64               `json:"percentage"`
	SpinsCount   int                    `json:"spins_count"`
	BuyAmount    *float64               `json:"buy_amount"`
	Multiplier   *float64               `json:"multiplier"`
	PointsAmount *int                   `json:"points_amount"`
	Code         string                 `json:"code"`
	CodeType     string                 `json:"code_type"`
	ChipValue    *float64               `json:"chip_value"`
	ChipsCount   int                    `json:"chips_count"`
	PrizeName    string                 `json:"prize_name"`
	PrizeValue   *float64               `json:"prize_value"`
	Config       map[string]interface{} `json:"config"`
}

func (r RewardRequest) toInput() service.RewardInput {
	return service.RewardInput{
		Type:         r.Type,
		Amount:       r.Amount,
		Percentage:   r.Percentage,
		SpinsCount:   r.SpinsCount,
		BuyAmount:    r.BuyAmount,
		Multiplier:   r.Multiplier,
		PointsAmount: r.PointsAmount,
		Code:         r.Code,
		CodeType:     r.CodeType,
		ChipValue:    r.ChipValue,
		ChipsCount:   r.ChipsCount,
		PrizeName:    r.PrizeName,
		PrizeValue:   r.PrizeValue,
		Config:       r.Config,
	}
}

// ListBonusRewards 奖金下的奖励列表
func (h *Handler) ListBonusRewards(c *gin.Context) {
	bonusID, ok := paramID(c)
	if !ok {
		return
	}
	rewards, err := h.RewardService.ListForBonus(bonusID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rewards)
}

// CreateBonusReward 为奖金创建奖励
func (h *Handler) CreateBonusReward(c *gin.Context) {
	bonusID, ok := paramID(c)
	if !ok {
		return
	}
	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	reward, err := h.RewardService.Create(bonusID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, reward)
}

// GetReward 按类型获取奖励详情
func (h *Handler) GetReward(c *gin.Context) {
	rewardType, id, ok := rewardParams(c)
	if !ok {
		return
	}
	reward, err := h.RewardService.Get(rewardType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, reward)
}

// UpdateReward 更新奖励。类型不可变更。
func (h *Handler) UpdateReward(c *gin.Context) {
	rewardType, id, ok := rewardParams(c)
	if !ok {
		return
	}
	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	reward, err := h.RewardService.Update(rewardType, id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, reward)
}

// DeleteReward 删除奖励
func (h *Handler) DeleteReward(c *gin.Context) {
	rewardType, id, ok := rewardParams(c)
	if !ok {
		return
	}
	if err := h.RewardService.Delete(rewardType, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "reward deleted", nil)
}

func rewardParams(c *gin.Context) (string, uint, bool) {
	rewardType := c.Param("type")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if rewardType == "" || err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return "", 0, false
	}
	return rewardType, uint(id), true
}
