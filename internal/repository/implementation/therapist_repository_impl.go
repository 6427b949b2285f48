package implementation

import (
	"context"
	"errors"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/mapper"
	"teletherapy-be/internal/model"
	"teletherapy-be/internal/repository/contract"
	"teletherapy-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TherapistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TherapistMapper
}

func NewTherapistRepository(db *gorm.DB) contract.TherapistRepository {
	return &TherapistRepositoryImpl{
		db:     db,
		mapper: mapper.NewTherapistMapper(),
	}
}

func (r *TherapistRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TherapistRepositoryImpl) Create(ctx context.Context, therapist *entity.Therapist) error {
	modelTherapist := r.mapper.ToModel(therapist)
	if err := r.db.WithContext(ctx).Create(modelTherapist).Error; err != nil {
		return err
	}
	*therapist = *r.mapper.ToEntity(modelTherapist)
	return nil
}

func (r *TherapistRepositoryImpl) Update(ctx context.Context, therapist *entity.Therapist) error {
	modelTherapist := r.mapper.ToModel(therapist)
	if err := r.db.WithContext(ctx).Save(modelTherapist).Error; err != nil {
		return err
	}
	docs := therapist.Documents
	*therapist = *r.mapper.ToEntity(modelTherapist)
	therapist.Documents = docs
	return nil
}

func (r *TherapistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Therapist, error) {
	var modelTherapist model.Therapist
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Documents"), specs...)

	if err := query.First(&modelTherapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelTherapist), nil
}

func (r *TherapistRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Therapist, error) {
	var modelTherapists []*model.Therapist
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Documents"), specs...)

	if err := query.Find(&modelTherapists).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelTherapists), nil
}

func (r *TherapistRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Therapist{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compliance documents

func (r *TherapistRepositoryImpl) UpsertDocument(ctx context.Context, doc *entity.ComplianceDocument) error {
	modelDoc := r.mapper.DocumentToModel(doc)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "therapist_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"verified", "verified_at", "verified_by", "metadata", "updated_at",
		}),
	}).Create(modelDoc).Error
	if err != nil {
		return err
	}
	*doc = *r.mapper.DocumentToEntity(modelDoc)
	return nil
}

func (r *TherapistRepositoryImpl) FindDocuments(ctx context.Context, therapistId uuid.UUID) ([]*entity.ComplianceDocument, error) {
	var modelDocs []*model.ComplianceDocument
	err := r.db.WithContext(ctx).
		Where("therapist_id = ?", therapistId).
		Order("type ASC").
		Find(&modelDocs).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.DocumentToEntities(modelDocs), nil
}

// Clients

type ClientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TherapistMapper
}

func NewClientRepository(db *gorm.DB) contract.ClientRepository {
	return &ClientRepositoryImpl{
		db:     db,
		mapper: mapper.NewTherapistMapper(),
	}
}

func (r *ClientRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, client *entity.Client) error {
	modelClient := r.mapper.ClientToModel(client)
	if err := r.db.WithContext(ctx).Create(modelClient).Error; err != nil {
		return err
	}
	*client = *r.mapper.ClientToEntity(modelClient)
	return nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, client *entity.Client) error {
	modelClient := r.mapper.ClientToModel(client)
	if err := r.db.WithContext(ctx).Save(modelClient).Error; err != nil {
		return err
	}
	*client = *r.mapper.ClientToEntity(modelClient)
	return nil
}

func (r *ClientRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	var modelClient model.Client
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelClient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ClientToEntity(&modelClient), nil
}

func (r *ClientRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	var modelClients []*model.Client
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelClients).Error; err != nil {
		return nil, err
	}

	return r.mapper.ClientToEntities(modelClients), nil
}
