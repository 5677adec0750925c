package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/rice-crc/daastapi/internal/config"
	"github.com/rice-crc/daastapi/internal/domain"
	"github.com/rice-crc/daastapi/internal/infra/gateway"
	"github.com/rice-crc/daastapi/internal/infra/repository"
)

var tracer = otel.Tracer("service")

// Importer consolidates external bibliographic and record-keeping feeds
// into local documents with IMPORTED revisions. It is a pure producer of
// rows; editorial review drives everything after that.
type Importer struct {
	conf    config.Importer
	zotero  *gateway.ZoteroClient
	voyages *gateway.VoyagesClient
	docs    *repository.DocumentRepository
	signal  *SignalService
}

func NewImporter(
	conf config.Importer,
	zotero *gateway.ZoteroClient,
	voyages *gateway.VoyagesClient,
	docs *repository.DocumentRepository,
	signal *SignalService,
) *Importer {
	return &Importer{
		conf:    conf,
		zotero:  zotero,
		voyages: voyages,
		docs:    docs,
		signal:  signal,
	}
}

func (s *Importer) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Importer.Service.Run")
	defer span.End()

	groupID, err := s.zotero.ResolveGroupID(ctx, s.conf.ZoteroGroupName)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to resolve zotero group")
	}
	slog.InfoContext(ctx, "Resolved Zotero group",
		slog.String("group", s.conf.ZoteroGroupName),
		slog.Int64("id", groupID),
		slog.String("module", "importer"),
	)

	zoteroItems, err := s.zotero.FetchItems(ctx, groupID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	voyagesDocs, err := s.voyages.FetchDocs(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	imported := 0
	for _, doc := range voyagesDocs {
		key := doc.Key
		if key == "" {
			key = fmt.Sprintf("voyages-%d", doc.ID)
		}
		label := doc.Label
		if label == "" {
			label = key
		}

		var bib *string
		if dc, ok := zoteroItems[key]; ok {
			if cite, ok := dc["Bibliographic Citation"]; ok {
				bib = &cite
			} else if title, ok := dc["Title"]; ok {
				bib = &title
			}
		}

		var thumbnail *string
		if doc.Thumbnail != "" {
			thumbnail = &doc.Thumbnail
		}

		content := string(doc.Raw)
		if content == "" {
			content = "{}"
		}

		revisionNumber, err := s.docs.CreateImportedRevision(ctx, key, label, content, thumbnail, bib)
		if err != nil {
			span.RecordError(err)
			return err
		}
		imported++

		if s.signal != nil {
			err = s.signal.Publish(ctx, domain.Event{
				Type:        domain.EventDocumentImported,
				DocumentKey: key,
				Revision:    &revisionNumber,
				Timestamp:   time.Now().UTC(),
			})
			if err != nil {
				slog.WarnContext(ctx, "Failed to publish import event",
					slog.String("key", key),
					slog.String("error", err.Error()),
					slog.String("module", "importer"),
				)
			}
		}
	}

	slog.InfoContext(ctx, "Import finished",
		slog.Int("zoteroItems", len(zoteroItems)),
		slog.Int("voyagesDocs", len(voyagesDocs)),
		slog.Int("imported", imported),
		slog.String("module", "importer"),
	)
	return nil
}
