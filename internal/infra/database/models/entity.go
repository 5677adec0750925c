package models

// EntityType is a category of external entity (voyages, enslaved people,
// enslavers) documents can be linked to. URLLabel and URLFormat are
// templates with a {key} placeholder.
type EntityType struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(128);not null;uniqueIndex"`
	URLLabel  string `json:"urlLabel" gorm:"type:varchar(256)"`
	URLFormat string `json:"urlFormat" gorm:"type:varchar(256)"`
}

// EntityDocument links a Document to an external entity identified by
// (entity type, entity key). Deleting a Document or EntityType is
// restricted while links exist.
type EntityDocument struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	DocumentID   int64      `json:"documentID" gorm:"not null;uniqueIndex:unique_doc_entity_link"`
	Document     Document   `json:"-" gorm:"constraint:OnDelete:RESTRICT;"`
	EntityTypeID int64      `json:"entityTypeID" gorm:"not null;uniqueIndex:unique_doc_entity_link"`
	EntityType   EntityType `json:"-" gorm:"constraint:OnDelete:RESTRICT;"`
	EntityKey    string     `json:"entityKey" gorm:"type:varchar(255);not null;index;uniqueIndex:unique_doc_entity_link"`
	Notes        *string    `json:"notes" gorm:"type:varchar(255)"`
}
