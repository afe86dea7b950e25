package service

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

// RewardService 奖励业务服务。七类奖励走统一入口，按类型路由。
type RewardService struct {
	bonusRepo  repository.BonusRepository
	rewardRepo repository.RewardRepository
}

// NewRewardService 创建奖励服务
func NewRewardService(bonusRepo repository.BonusRepository, rewardRepo repository.RewardRepository) *RewardService {
	return &RewardService{
		bonusRepo:  bonusRepo,
		rewardRepo: rewardRepo,
	}
}

// RewardInput 创建/更新奖励输入。各类型只读取自己关心的字段。
type RewardInput struct {
	Type         string
	Amount       *float64
	Percentage   *float64
	SpinsCount   int
	BuyAmount    *float64
	Multiplier   *float64
	PointsAmount *int
	Code         string
	CodeType     string
	ChipValue    *float64
	ChipsCount   int
	PrizeName    string
	PrizeValue   *float64
	Config       map[string]interface{}
}

// ListForBonus 获取奖金下的全部奖励
func (s *RewardService) ListForBonus(bonusID uint) ([]models.Reward, error) {
	bonus, err := s.bonusRepo.GetByID(bonusID)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}
	return s.rewardRepo.ListForBonus(bonusID)
}

// Get 按类型和 ID 获取奖励
func (s *RewardService) Get(rewardType string, id uint) (models.Reward, error) {
	reward, err := s.rewardRepo.Get(rewardType, id)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownRewardType) {
			return nil, ErrUnknownRewardType
		}
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	return reward, nil
}

// Create 为奖金挂载奖励
func (s *RewardService) Create(bonusID uint, input RewardInput) (models.Reward, error) {
	bonus, err := s.bonusRepo.GetByID(bonusID)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}

	reward, errs := buildReward(bonusID, input)
	if reward == nil {
		return nil, ErrUnknownRewardType
	}
	if err := NewValidationError(errs); err != nil {
		return nil, err
	}
	if err := s.rewardRepo.Create(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// Update 更新奖励。类型不可变，输入类型必须与现存记录一致。
func (s *RewardService) Update(rewardType string, id uint, input RewardInput) (models.Reward, error) {
	existing, err := s.Get(rewardType, id)
	if err != nil {
		return nil, err
	}
	if input.Type != "" && input.Type != rewardType {
		return nil, ErrUnknownRewardType
	}

	input.Type = rewardType
	reward, errs := buildReward(existing.OwnerBonusID(), input)
	if reward == nil {
		return nil, ErrUnknownRewardType
	}
	if err := NewValidationError(errs); err != nil {
		return nil, err
	}
	setRewardID(reward, id)
	if err := s.rewardRepo.Update(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// Delete 按类型和 ID 删除奖励
func (s *RewardService) Delete(rewardType string, id uint) error {
	if _, err := s.Get(rewardType, id); err != nil {
		return err
	}
	return s.rewardRepo.Delete(rewardType, id)
}

// buildReward 按类型构造奖励模型并执行字段校验
func buildReward(bonusID uint, input RewardInput) (models.Reward, models.ValidationErrors) {
	ownership := models.BonusOwnership{BonusID: bonusID}

	switch input.Type {
	case constants.RewardTypeBonus:
		reward := &models.BonusReward{
			BonusOwnership: ownership,
			Amount:         optionalMoney(input.Amount),
			Percentage:     input.Percentage,
		}
		applyConfig(&reward.RewardConfig, input.Config)
		return reward, reward.Validate()
	case constants.RewardTypeFreespin:
		reward := &models.FreespinReward{
			BonusOwnership: ownership,
			SpinsCount:     input.SpinsCount,
		}
		applyConfig(&reward.RewardConfig, input.Config)
		return reward, reward.Validate()
	case constants.RewardTypeBonusBuy:
		reward := &models.BonusBuyReward{
			BonusOwnership: ownership,
			Multiplier:     input.Multiplier,
		}
		if input.BuyAmount != nil {
			reward.BuyAmount = models.NewMoneyFromFloat(*input.BuyAmount)
		}
		applyConfig(&reward.RewardConfig, input.Config)
		return reward, reward.Validate()
	case constants.RewardTypeCompPoint:
		reward := &models.CompPointReward{
			BonusOwnership: ownership,
			Multiplier:     input.Multiplier,
		}
		if input.PointsAmount != nil {
			reward.PointsAmount = *input.PointsAmount
		}
		applyConfig(&reward.RewardConfig, input.Config)
		return reward, reward.Validate()
	case constants.RewardTypeBonusCode:
		reward := &models.BonusCodeReward{
			BonusOwnership: ownership,
			Code:           strings.TrimSpace(input.Code),
			CodeType:       strings.TrimSpace(input.CodeType),
		}
		applyConfig(&reward.RewardConfig, input.Config)
		return reward, reward.Validate()
	case constants.RewardTypeFreechip:
		reward := &models.FreechipReward{
			BonusOwnership: ownership,
			ChipsCount:     input.ChipsCount,
		}
		if input.ChipValue != nil {
			reward.ChipValue = models.NewMoneyFromFloat(*input.ChipValue)
		}
		return reward, reward.Validate()
	case constants.RewardTypeMaterialPrize:
		reward := &models.MaterialPrizeReward{
			BonusOwnership: ownership,
			PrizeName:      strings.TrimSpace(input.PrizeName),
			PrizeValue:     optionalMoney(input.PrizeValue),
		}
		return reward, reward.Validate()
	default:
		return nil, nil
	}
}

// applyConfig 把宽松配置写入类型化访问层。
// games/max_win/bet_levels 等已知键走专属设置器，高级参数逐键过白名单，
// 其余键原样保留。
func applyConfig(config *models.RewardConfig, raw map[string]interface{}) {
	if len(raw) == 0 {
		return
	}
	for key, value := range raw {
		switch key {
		case "games":
			switch v := value.(type) {
			case string:
				config.SetGames(v)
			case []interface{}:
				items := make([]string, 0, len(v))
				for _, item := range v {
					items = append(items, models.CoerceString(item))
				}
				config.SetGamesList(items)
			case []string:
				config.SetGamesList(v)
			}
		case "bet_level":
			config.SetBetLevel(models.CoerceFloat(value))
		case "bet_levels":
			if overrides, ok := value.(map[string]interface{}); ok {
				for currency, level := range overrides {
					config.SetBetLevelForCurrency(currency, models.CoerceFloat(level))
				}
			}
		case "max_win":
			config.SetMaxWin(models.CoerceString(value))
		case "available":
			config.SetAvailable(models.CoerceInt(value))
		case "code":
			config.SetConfigCode(models.CoerceString(value))
		case "currency":
			config.SetConfigCurrency(models.CoerceString(value))
		case "advanced_params":
			if params, ok := value.(map[string]interface{}); ok {
				for paramKey, paramValue := range params {
					config.SetAdvancedParam(paramKey, paramValue)
				}
			}
		default:
			if config.Config == nil {
				config.Config = models.JSON{}
			}
			config.Config[key] = value
		}
	}
}

// setRewardID 回填主键，更新路径复用构造逻辑
func setRewardID(reward models.Reward, id uint) {
	switch r := reward.(type) {
	case *models.BonusReward:
		r.ID = id
	case *models.FreespinReward:
		r.ID = id
	case *models.BonusBuyReward:
		r.ID = id
	case *models.CompPointReward:
		r.ID = id
	case *models.BonusCodeReward:
		r.ID = id
	case *models.FreechipReward:
		r.ID = id
	case *models.MaterialPrizeReward:
		r.ID = id
	}
}

func optionalMoney(value *float64) *models.Money {
	if value == nil {
		return nil
	}
	amount := models.NewMoneyFromFloat(*value)
	return &amount
}
