package implementation

import (
	"context"
	"errors"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/mapper"
	"facility-services-be/internal/model"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanyMapper
}

func NewCompanyRepository(db *gorm.DB) contract.CompanyRepository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanyMapper(),
	}
}

func (r *CompanyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *entity.Company) error {
	m := r.mapper.ToModel(company)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *entity.Company) error {
	m := r.mapper.ToModel(company)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Company{}, id).Error
}

func (r *CompanyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
	var m model.Company
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CompanyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error) {
	var models []*model.Company
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CompanyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Company{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CompanyRepositoryImpl) CreateBranch(ctx context.Context, branch *entity.Branch) error {
	m := r.mapper.BranchToModel(branch)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*branch = *r.mapper.BranchToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) UpdateBranch(ctx context.Context, branch *entity.Branch) error {
	m := r.mapper.BranchToModel(branch)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*branch = *r.mapper.BranchToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) FindBranch(ctx context.Context, specs ...specification.Specification) (*entity.Branch, error) {
	var m model.Branch
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BranchToEntity(&m), nil
}

func (r *CompanyRepositoryImpl) FindBranches(ctx context.Context, specs ...specification.Specification) ([]*entity.Branch, error) {
	var models []*model.Branch
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.BranchesToEntities(models), nil
}

func (r *CompanyRepositoryImpl) CreateArea(ctx context.Context, area *entity.Area) error {
	m := &model.Area{Id: area.Id, Code: area.Code, Name: area.Name}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*area = *r.mapper.AreaToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) FindAreaByCode(ctx context.Context, code string) (*entity.Area, error) {
	var m model.Area
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AreaToEntity(&m), nil
}

func (r *CompanyRepositoryImpl) FindAreas(ctx context.Context) ([]*entity.Area, error) {
	var models []*model.Area
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.AreasToEntities(models), nil
}
