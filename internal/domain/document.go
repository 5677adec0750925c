package domain

import "time"

// RevisionStatus is the publication status of a document revision.
// The values are ordered: editorial review only ever moves a revision
// towards publication, except for REJECTED which is terminal.
type RevisionStatus int

const (
	// StatusDraft means the revision is still being worked on.
	StatusDraft RevisionStatus = 0
	// StatusImported marks revisions created by the external import command.
	StatusImported RevisionStatus = 10
	// StatusContribution is waiting for an editorial decision.
	StatusContribution RevisionStatus = 15
	// StatusRejected revisions must never be published.
	StatusRejected RevisionStatus = 99
	// StatusApproved revisions are cleared for manifest generation.
	StatusApproved RevisionStatus = 100
	// StatusPublished means a manifest was generated for this revision.
	StatusPublished RevisionStatus = 200
	// StatusNoImages means a manifest cannot be generated for lack of
	// source images.
	StatusNoImages RevisionStatus = 500
)

// Document is a record indexed by the catalog, identified by its key.
// CurrentRev designates the revision number currently published, if any.
type Document struct {
	ID         int64  `json:"id"`
	Key        string `json:"key"`
	CurrentRev *int   `json:"currentRev,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Bib        string `json:"bib,omitempty"`
}

// DocumentRevision is one revision of a Document. Content carries the
// page/image metadata used to build a IIIF manifest, opaque to the catalog.
type DocumentRevision struct {
	ID             int64          `json:"id"`
	DocumentID     int64          `json:"documentID"`
	Label          string         `json:"label"`
	Status         RevisionStatus `json:"status"`
	RevisionNumber *int           `json:"revisionNumber,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Content        string         `json:"content,omitempty"`
}

// Transcription is the text of one page of a document revision. It is
// editorial material and is not consumed by search or manifest resolution.
type Transcription struct {
	ID            int64  `json:"id"`
	RevisionID    int64  `json:"revisionID"`
	PageNumber    int    `json:"pageNumber"`
	LanguageCode  string `json:"languageCode"` // BCP-47
	Text          string `json:"text"`
	IsTranslation bool   `json:"isTranslation"`
}

// EntityType is a category of external entity that can be linked to a
// document. URLLabel and URLFormat are templates with a {key} placeholder
// used by viewers to build hyperlinks.
type EntityType struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	URLLabel  string `json:"urlLabel"`
	URLFormat string `json:"urlFormat"`
}

// EntityLink is a flattened document-to-entity association as scanned from
// the link table, keyed by the human-readable identifiers the annotation
// cache groups on.
type EntityLink struct {
	DocumentKey string `json:"documentKey"`
	TypeName    string `json:"typeName"`
	EntityKey   string `json:"entityKey"`
}
