package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/rice-crc/daastapi/internal/domain"
	"github.com/rice-crc/daastapi/internal/infra/database/models"
)

var tracer = otel.Tracer("repository")

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) GetByKey(ctx context.Context, key string) (domain.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Take(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, domain.NotFoundError{Resource: "document"}
		}
		return domain.Document{}, errors.Wrap(err, "failed to load document")
	}
	return documentToDomain(doc), nil
}

func (r *DocumentRepository) GetRevision(ctx context.Context, documentID int64, revisionNumber int) (domain.DocumentRevision, error) {
	var rev models.DocumentRevision
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND revision_number = ?", documentID, revisionNumber).
		Take(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DocumentRevision{}, domain.NotFoundError{Resource: "revision"}
		}
		return domain.DocumentRevision{}, errors.Wrap(err, "failed to load revision")
	}
	return revisionToDomain(rev), nil
}

// Search runs the composed query twice: once for the total match count and
// once for the requested page. No shared snapshot is taken, so under
// concurrent writes the count and the page can drift. An offset past the
// end of the result set yields an empty page, not an error.
func (r *DocumentRepository) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchRow, int64, error) {
	ctx, span := tracer.Start(ctx, "Document.Repository.Search")
	defer span.End()

	var total int64
	if err := r.searchQuery(ctx, q).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, 0, errors.Wrap(err, "failed to count search matches")
	}

	var rows []domain.SearchRow
	err := r.searchQuery(ctx, q).
		Select("document_revisions.label AS label, " +
			"document_revisions.revision_number AS revision_number, " +
			"documents.key AS key, " +
			"COALESCE(documents.thumbnail, '') AS thumb").
		Order("documents.key ASC").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Scan(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, 0, errors.Wrap(err, "failed to fetch search page")
	}

	return rows, total, nil
}

// searchQuery builds the filtered base set: every revision whose status is
// PUBLISHED and whose revision number is the owning document's current_rev,
// narrowed by the optional label and entity predicates.
func (r *DocumentRepository) searchQuery(ctx context.Context, q domain.SearchQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).
		Model(&models.DocumentRevision{}).
		Joins("JOIN documents ON documents.id = document_revisions.document_id").
		Where("document_revisions.status = ?", int(domain.StatusPublished)).
		Where("document_revisions.revision_number = documents.current_rev")

	if q.Label != "" {
		tx = tx.Where("document_revisions.label ILIKE ?", "%"+escapeLike(q.Label)+"%")
	}

	if len(q.Entities) > 0 {
		tx = tx.Where("document_revisions.document_id IN (?)", r.entityFilter(q.Entities))
	}

	return tx
}

// entityFilter selects the ids of documents having at least one link
// matching any of the supplied (type, keys) groups. Groups are OR'd
// together; within a group the match is key membership. An empty group
// list never reaches here: no filter is applied at all in that case.
func (r *DocumentRepository) entityFilter(groups []domain.SearchOnEntity) *gorm.DB {
	var cond *gorm.DB
	for _, g := range groups {
		matched := r.db.Where(
			"entity_types.name = ? AND entity_documents.entity_key IN ?",
			g.TypeName, g.Keys)
		if cond == nil {
			cond = matched
		} else {
			cond = cond.Or(matched)
		}
	}

	return r.db.Model(&models.EntityDocument{}).
		Select("entity_documents.document_id").
		Joins("JOIN entity_types ON entity_types.id = entity_documents.entity_type_id").
		Where(cond)
}

// escapeLike neutralizes LIKE metacharacters so the label filter is a
// literal substring match.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CreateImportedRevision appends an IMPORTED revision to the document with
// the given key, creating the document first if it does not exist yet. The
// new revision gets the next free revision number, which is returned.
func (r *DocumentRepository) CreateImportedRevision(ctx context.Context, key, label, content string, thumbnail, bib *string) (int, error) {
	ctx, span := tracer.Start(ctx, "Document.Repository.CreateImportedRevision")
	defer span.End()

	var revisionNumber int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		err := tx.Where("key = ?", key).Take(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc = models.Document{Key: key, Thumbnail: thumbnail, Bib: bib}
			err = tx.Create(&doc).Error
		}
		if err != nil {
			return err
		}

		var maxRev sql.NullInt64
		err = tx.Model(&models.DocumentRevision{}).
			Where("document_id = ?", doc.ID).
			Select("MAX(revision_number)").
			Scan(&maxRev).Error
		if err != nil {
			return err
		}
		revisionNumber = 1
		if maxRev.Valid {
			revisionNumber = int(maxRev.Int64) + 1
		}

		rev := models.DocumentRevision{
			DocumentID:     doc.ID,
			Label:          label,
			Status:         int(domain.StatusImported),
			RevisionNumber: &revisionNumber,
			Timestamp:      time.Now().UTC(),
			Content:        content,
		}
		return tx.Create(&rev).Error
	})
	if err != nil {
		span.RecordError(err)
		return 0, errors.Wrap(err, "failed to create imported revision")
	}

	return revisionNumber, nil
}

func documentToDomain(m models.Document) domain.Document {
	doc := domain.Document{
		ID:         m.ID,
		Key:        m.Key,
		CurrentRev: m.CurrentRev,
	}
	if m.Thumbnail != nil {
		doc.Thumbnail = *m.Thumbnail
	}
	if m.Bib != nil {
		doc.Bib = *m.Bib
	}
	return doc
}

func revisionToDomain(m models.DocumentRevision) domain.DocumentRevision {
	return domain.DocumentRevision{
		ID:             m.ID,
		DocumentID:     m.DocumentID,
		Label:          m.Label,
		Status:         domain.RevisionStatus(m.Status),
		RevisionNumber: m.RevisionNumber,
		Timestamp:      m.Timestamp,
		Content:        m.Content,
	}
}
