package service

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

// MarketingRequestService 营销合作申请业务服务
type MarketingRequestService struct {
	repo repository.MarketingRequestRepository
}

// NewMarketingRequestService 创建营销合作申请服务
func NewMarketingRequestService(repo repository.MarketingRequestRepository) *MarketingRequestService {
	return &MarketingRequestService{repo: repo}
}

// MarketingRequestInput 创建/更新申请输入
type MarketingRequestInput struct {
	Manager      string
	Platform     string
	PartnerEmail string
	PromoCode    string
	Stag         string
	Status       string
	RequestType  string
}

// List 申请列表
func (s *MarketingRequestService) List(filter repository.MarketingRequestListFilter) ([]models.MarketingRequest, int64, error) {
	return s.repo.List(filter)
}

// Get 获取申请详情
func (s *MarketingRequestService) Get(id uint) (*models.MarketingRequest, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrMarketingRequestNotFound
	}
	return request, nil
}

// Create 创建申请。先归一化再校验，stag 与推广码做全局唯一性检查。
func (s *MarketingRequestService) Create(input MarketingRequestInput) (*models.MarketingRequest, error) {
	request := models.MarketingRequest{
		Manager:      strings.TrimSpace(input.Manager),
		Platform:     strings.TrimSpace(input.Platform),
		PartnerEmail: strings.TrimSpace(input.PartnerEmail),
		PromoCode:    input.PromoCode,
		Stag:         input.Stag,
		Status:       strings.TrimSpace(input.Status),
		RequestType:  strings.TrimSpace(input.RequestType),
	}
	if request.Status == "" {
		request.Status = constants.MarketingRequestStatusPending
	}
	request.Normalize()

	if err := s.validate(&request, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(&request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Update 更新申请。
// 状态与激活时间之外的任何内容变更都会把申请强制重置为 pending 并清空
// 激活时间，即便本次请求同时携带了状态变更。
func (s *MarketingRequestService) Update(id uint, input MarketingRequestInput) (*models.MarketingRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	before := contentSnapshot(request)

	request.Manager = strings.TrimSpace(input.Manager)
	request.Platform = strings.TrimSpace(input.Platform)
	request.PartnerEmail = strings.TrimSpace(input.PartnerEmail)
	request.PromoCode = input.PromoCode
	request.Stag = input.Stag
	request.RequestType = strings.TrimSpace(input.RequestType)
	request.Normalize()

	if contentSnapshot(request) != before {
		request.ResetToPending()
	} else if status := strings.TrimSpace(input.Status); status != "" && status != request.Status {
		s.applyStatus(request, status)
	}

	if err := s.validate(request, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(request); err != nil {
		return nil, err
	}
	return request, nil
}

// Delete 删除申请
func (s *MarketingRequestService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// Activate 激活申请并盖上激活时间
func (s *MarketingRequestService) Activate(id uint) (*models.MarketingRequest, error) {
	return s.transition(id, constants.MarketingRequestStatusActivated)
}

// Reject 拒绝申请
func (s *MarketingRequestService) Reject(id uint) (*models.MarketingRequest, error) {
	return s.transition(id, constants.MarketingRequestStatusRejected)
}

// ResetToPending 重置申请为待审核
func (s *MarketingRequestService) ResetToPending(id uint) (*models.MarketingRequest, error) {
	return s.transition(id, constants.MarketingRequestStatusPending)
}

func (s *MarketingRequestService) transition(id uint, status string) (*models.MarketingRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.applyStatus(request, status)
	if err := s.repo.Update(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *MarketingRequestService) applyStatus(request *models.MarketingRequest, status string) {
	switch status {
	case constants.MarketingRequestStatusActivated:
		request.Activate(time.Now())
	case constants.MarketingRequestStatusRejected:
		request.Reject()
	case constants.MarketingRequestStatusPending:
		request.ResetToPending()
	default:
		request.Status = status
	}
}

// validate 字段校验与全局唯一性检查，全部失败项聚合到一份字段错误里
func (s *MarketingRequestService) validate(request *models.MarketingRequest, excludeID uint) error {
	errs := request.Validate()

	if strings.TrimSpace(request.Stag) != "" {
		taken, err := s.repo.StagTaken(request.Stag, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("stag", "has already been taken")
		}
	}

	codes := request.PromoCodes()
	if len(codes) > 0 {
		others, err := s.repo.ListOthers(excludeID)
		if err != nil {
			return err
		}
		used := make(map[string]bool)
		for i := range others {
			for _, code := range others[i].PromoCodes() {
				used[code] = true
			}
		}
		for _, code := range codes {
			if used[code] {
				errs.Add("promo_code", code+" has already been taken")
			}
		}
	}

	return NewValidationError(errs)
}

// contentSnapshot 状态与激活时间之外的内容字段指纹
func contentSnapshot(request *models.MarketingRequest) string {
	return strings.Join([]string{
		request.Manager,
		request.Platform,
		request.PartnerEmail,
		request.PromoCode,
		request.Stag,
		request.RequestType,
	}, "\x00")
}
