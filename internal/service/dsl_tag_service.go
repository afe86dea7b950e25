package service

import (
	"strings"

	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

// DslTagService DSL 标签业务服务
type DslTagService struct {
	repo repository.DslTagRepository
}

// NewDslTagService 创建 DSL 标签服务
func NewDslTagService(repo repository.DslTagRepository) *DslTagService {
	return &DslTagService{repo: repo}
}

// DslTagInput 创建/更新标签输入
type DslTagInput struct {
	Name        string
	Description string
}

// DslTagView 标签详情视图，附带实时使用统计
type DslTagView struct {
	models.DslTag
	repository.DslTagUsage
}

// List 标签列表（附带使用统计）
func (s *DslTagService) List(filter repository.DslTagListFilter) ([]DslTagView, int64, error) {
	tags, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]DslTagView, 0, len(tags))
	for i := range tags {
		usage, err := s.repo.Usage(tags[i].ID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, DslTagView{DslTag: tags[i], DslTagUsage: usage})
	}
	return views, total, nil
}

// Get 获取标签详情
func (s *DslTagService) Get(id uint) (*DslTagView, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrDslTagNotFound
	}
	usage, err := s.repo.Usage(id)
	if err != nil {
		return nil, err
	}
	return &DslTagView{DslTag: *tag, DslTagUsage: usage}, nil
}

// Create 创建标签
func (s *DslTagService) Create(input DslTagInput) (*models.DslTag, error) {
	tag := models.DslTag{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := NewValidationError(tag.Validate()); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(tag.Name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDslTagNameExists
	}
	if err := s.repo.Create(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update 更新标签
func (s *DslTagService) Update(id uint, input DslTagInput) (*models.DslTag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrDslTagNotFound
	}

	tag.Name = strings.TrimSpace(input.Name)
	tag.Description = input.Description
	if err := NewValidationError(tag.Validate()); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(tag.Name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDslTagNameExists
	}
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签。引用该标签的奖金外键被置空，奖金本身不受影响。
func (s *DslTagService) Delete(id uint) error {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrDslTagNotFound
	}
	return s.repo.Delete(id)
}
