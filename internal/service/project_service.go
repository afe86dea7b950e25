package service

import (
	"strings"

	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

// ProjectService 项目业务服务
type ProjectService struct {
	repo repository.ProjectRepository
}

// NewProjectService 创建项目服务
func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// ProjectInput 创建/更新项目输入
type ProjectInput struct {
	Name string
}

// List 项目列表
func (s *ProjectService) List(filter repository.ProjectListFilter) ([]models.Project, int64, error) {
	return s.repo.List(filter)
}

// Get 获取项目详情
func (s *ProjectService) Get(id uint) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Create 创建项目
func (s *ProjectService) Create(input ProjectInput) (*models.Project, error) {
	project := models.Project{Name: strings.TrimSpace(input.Name)}
	if err := NewValidationError(project.Validate()); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(project.Name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProjectNameExists
	}
	if err := s.repo.Create(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update 更新项目
func (s *ProjectService) Update(id uint, input ProjectInput) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	project.Name = strings.TrimSpace(input.Name)
	if err := NewValidationError(project.Validate()); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(project.Name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProjectNameExists
	}
	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 删除项目及其常驻奖金槽位
func (s *ProjectService) Delete(id uint) error {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.repo.Delete(id)
}
