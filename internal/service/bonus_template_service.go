package service

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

// MatchedRuleAllProjects "All" 回落命中时的规则说明
const MatchedRuleAllProjects = "All projects"

// BonusTemplateService 奖金模板业务服务
type BonusTemplateService struct {
	templateRepo repository.BonusTemplateRepository
	bonusRepo    repository.BonusRepository
	tagRepo      repository.DslTagRepository
}

// NewBonusTemplateService 创建奖金模板服务
func NewBonusTemplateService(
	templateRepo repository.BonusTemplateRepository,
	bonusRepo repository.BonusRepository,
	tagRepo repository.DslTagRepository,
) *BonusTemplateService {
	return &BonusTemplateService{
		templateRepo: templateRepo,
		bonusRepo:    bonusRepo,
		tagRepo:      tagRepo,
	}
}

// BonusTemplateInput 创建/更新模板输入
type BonusTemplateInput struct {
	DslTag                  string
	Project                 string
	Name                    string
	Event                   string
	Currencies              []string
	Groups                  []string
	CurrencyMinimumDeposits map[string]interface{}
	Wager                   *float64
	MaximumWinnings         *float64
	NoMore                  string
	TotallyNoMore           *int
	Description             string
}

// ResolveResult 模板解析结果
type ResolveResult struct {
	Template    *models.BonusTemplate `json:"template"`
	MatchedRule string                `json:"matched_rule"`
}

// List 模板列表
func (s *BonusTemplateService) List(filter repository.BonusTemplateListFilter) ([]models.BonusTemplate, int64, error) {
	return s.templateRepo.List(filter)
}

// Get 获取模板详情
func (s *BonusTemplateService) Get(id uint) (*models.BonusTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// Create 创建模板
func (s *BonusTemplateService) Create(input BonusTemplateInput) (*models.BonusTemplate, error) {
	template := models.BonusTemplate{}
	applyTemplateInput(&template, input)
	if strings.TrimSpace(template.Project) == "" {
		template.Project = constants.ProjectAll
	}
	if err := NewValidationError(template.Validate()); err != nil {
		return nil, err
	}

	count, err := s.templateRepo.CountByKey(template.DslTag, template.Project, template.Name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTemplateKeyExists
	}
	if err := s.templateRepo.Create(&template); err != nil {
		return nil, err
	}
	return &template, nil
}

// Update 更新模板
func (s *BonusTemplateService) Update(id uint, input BonusTemplateInput) (*models.BonusTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	applyTemplateInput(template, input)
	if strings.TrimSpace(template.Project) == "" {
		template.Project = constants.ProjectAll
	}
	if err := NewValidationError(template.Validate()); err != nil {
		return nil, err
	}

	count, err := s.templateRepo.CountByKey(template.DslTag, template.Project, template.Name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTemplateKeyExists
	}
	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete 删除模板
func (s *BonusTemplateService) Delete(id uint) error {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}
	return s.templateRepo.Delete(id)
}

// Resolve 两步模板解析：项目专属模板优先，未命中回落 "All" 模板。
// 返回命中模板与匹配规则说明。
func (s *BonusTemplateService) Resolve(dslTag, project, name string) (*ResolveResult, error) {
	template, err := s.templateRepo.Resolve(
		strings.TrimSpace(dslTag),
		strings.TrimSpace(project),
		strings.TrimSpace(name),
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	matchedRule := MatchedRuleAllProjects
	if template.ProjectSpecific() {
		matchedRule = "Project: " + template.Project
	}
	return &ResolveResult{Template: template, MatchedRule: matchedRule}, nil
}

// Apply 把模板盖写到现有奖金上并落库
func (s *BonusTemplateService) Apply(templateID, bonusID uint) (*models.Bonus, error) {
	template, err := s.Get(templateID)
	if err != nil {
		return nil, err
	}
	bonus, err := s.bonusRepo.GetByID(bonusID)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}

	template.ApplyToBonus(bonus)
	if err := NewValidationError(bonus.Validate()); err != nil {
		return nil, err
	}
	if err := s.bonusRepo.Update(bonus); err != nil {
		return nil, err
	}
	return bonus, nil
}

// CreateBonusFromTemplate 按解析出的模板创建新奖金。
// 基础字段来自输入，模板字段随后盖写，最终整体校验后落库。
func (s *BonusTemplateService) CreateBonusFromTemplate(dslTag, project, name string, input BonusInput) (*models.Bonus, error) {
	result, err := s.Resolve(dslTag, project, name)
	if err != nil {
		return nil, err
	}

	bonus := models.Bonus{}
	applyBonusInput(&bonus, input)
	if bonus.Status == "" {
		bonus.Status = constants.BonusStatusDraft
	}
	if strings.TrimSpace(bonus.Project) == "" {
		bonus.Project = constants.ProjectAll
	}
	result.Template.ApplyToBonus(&bonus)

	if tag, err := s.tagRepo.GetByName(bonus.DslTag); err != nil {
		return nil, err
	} else if tag != nil {
		bonus.DslTagID = &tag.ID
	}

	if bonus.AvailabilityStartDate.IsZero() {
		bonus.AvailabilityStartDate = time.Now()
	}
	if err := NewValidationError(bonus.Validate()); err != nil {
		return nil, err
	}
	if err := s.bonusRepo.Create(&bonus); err != nil {
		return nil, err
	}
	return &bonus, nil
}

// applyTemplateInput 把输入字段写入模板模型
func applyTemplateInput(template *models.BonusTemplate, input BonusTemplateInput) {
	template.DslTag = strings.TrimSpace(input.DslTag)
	template.Project = strings.TrimSpace(input.Project)
	template.Name = strings.TrimSpace(input.Name)
	template.Event = strings.TrimSpace(input.Event)
	template.Currencies = models.NormalizeStringList(input.Currencies...)
	template.Groups = models.NormalizeStringList(input.Groups...)
	template.CurrencyMinimumDeposits = models.NormalizeMoneyMap(input.CurrencyMinimumDeposits)
	template.Wager = moneyFromFloat(input.Wager)
	template.MaximumWinnings = moneyFromFloat(input.MaximumWinnings)
	template.NoMore = strings.TrimSpace(input.NoMore)
	template.TotallyNoMore = input.TotallyNoMore
	template.Description = input.Description
}
