package models

import (
	"time"
)

// Document is a catalog entry identified by a unique key. CurrentRev holds
// the revision number currently published, or null when nothing is live.
type Document struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Key        string  `json:"key" gorm:"type:varchar(128);not null;uniqueIndex"`
	CurrentRev *int    `json:"currentRev"`
	Thumbnail  *string `json:"thumbnail" gorm:"type:text"`
	Bib        *string `json:"bib" gorm:"type:text"`

	Revisions []DocumentRevision `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

// DocumentRevision is one revision of a Document. RevisionNumber is unique
// per document. Content is the JSON page/image metadata a manifest is
// generated from.
type DocumentRevision struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DocumentID     int64     `json:"documentID" gorm:"not null;uniqueIndex:unique_doc_rev_number"`
	Document       Document  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Label          string    `json:"label" gorm:"type:varchar(255);not null;index"`
	Status         int       `json:"status" gorm:"not null;index"`
	RevisionNumber *int      `json:"revisionNumber" gorm:"uniqueIndex:unique_doc_rev_number"`
	Timestamp      time.Time `json:"timestamp" gorm:"type:date;not null;index"`
	Content        string    `json:"content" gorm:"type:jsonb;not null"`

	Transcriptions []Transcription `json:"-" gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE;"`
}

// Transcription is the text of a single page of a revision, tagged with a
// BCP-47 language code.
type Transcription struct {
	ID            int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	RevisionID    int64            `json:"revisionID" gorm:"not null;index"`
	Revision      DocumentRevision `json:"-" gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE;"`
	PageNumber    int              `json:"pageNumber" gorm:"not null"`
	LanguageCode  string           `json:"languageCode" gorm:"type:varchar(20);not null"`
	Text          string           `json:"text" gorm:"type:text;not null"`
	IsTranslation bool             `json:"isTranslation" gorm:"not null"`
}
