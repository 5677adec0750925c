package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rice-crc/daastapi/internal/domain"
	"github.com/rice-crc/daastapi/internal/infra/database/models"
)

type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// ListLinks scans the whole link table joined with documents and entity
// types in one query. This is the bulk read backing the annotation cache;
// nothing else should enumerate links per document.
func (r *EntityRepository) ListLinks(ctx context.Context) ([]domain.EntityLink, error) {
	ctx, span := tracer.Start(ctx, "Entity.Repository.ListLinks")
	defer span.End()

	var links []domain.EntityLink
	err := r.db.WithContext(ctx).
		Model(&models.EntityDocument{}).
		Select("documents.key AS document_key, " +
			"entity_types.name AS type_name, " +
			"entity_documents.entity_key AS entity_key").
		Joins("JOIN documents ON documents.id = entity_documents.document_id").
		Joins("JOIN entity_types ON entity_types.id = entity_documents.entity_type_id").
		Scan(&links).Error
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to scan entity links")
	}
	return links, nil
}

func (r *EntityRepository) ListTypes(ctx context.Context) ([]domain.EntityType, error) {
	var rows []models.EntityType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list entity types")
	}

	types := make([]domain.EntityType, 0, len(rows))
	for _, row := range rows {
		types = append(types, domain.EntityType{
			ID:        row.ID,
			Name:      row.Name,
			URLLabel:  row.URLLabel,
			URLFormat: row.URLFormat,
		})
	}
	return types, nil
}

// Link associates a document with an external entity. Existing links are
// left untouched so re-imports stay idempotent.
func (r *EntityRepository) Link(ctx context.Context, documentKey, typeName, entityKey string, notes *string) error {
	var doc models.Document
	err := r.db.WithContext(ctx).Where("key = ?", documentKey).Take(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "document"}
		}
		return errors.Wrap(err, "failed to load document")
	}

	var et models.EntityType
	err = r.db.WithContext(ctx).Where("name = ?", typeName).Take(&et).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "entity type"}
		}
		return errors.Wrap(err, "failed to load entity type")
	}

	link := models.EntityDocument{
		DocumentID:   doc.ID,
		EntityTypeID: et.ID,
		EntityKey:    entityKey,
		Notes:        notes,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "document_id"}, {Name: "entity_type_id"}, {Name: "entity_key"},
		},
		DoNothing: true,
	}).Create(&link).Error
	if err != nil {
		return errors.Wrap(err, "failed to create entity link")
	}
	return nil
}
