package models

import "gorm.io/datatypes"

// Resume is a generated resume document. Content holds the structured
// resume JSON as returned by the model; SourceInput preserves what the
// user submitted so regeneration is reproducible.
type Resume struct {
	BaseModelWithDeleted
	UserID      string         `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Content     datatypes.JSON `gorm:"not null"`
	SourceInput datatypes.JSON
	Versions    []ResumeVersion `gorm:"foreignKey:ResumeID"`
}

// ResumeVersion is one historical snapshot. At most 5 versions per resume
// are retained; inserting a sixth evicts the oldest.
type ResumeVersion struct {
	BaseModel
	ResumeID string         `gorm:"type:uuid;not null;index"`
	Version  int            `gorm:"not null"`
	Content  datatypes.JSON `gorm:"not null"`
	Label    string         `gorm:"type:varchar(120)"`
}

// TailoredResume is a resume rewritten against one job description.
type TailoredResume struct {
	BaseModelWithDeleted
	UserID         string         `gorm:"type:uuid;not null;index"`
	BaseResumeID   string         `gorm:"type:uuid;not null;index"`
	JobDescription string         `gorm:"type:text;not null"`
	JobTitle       string         `gorm:"type:varchar(200)"`
	Company        string         `gorm:"type:varchar(200)"`
	Content        datatypes.JSON `gorm:"not null"`
	MatchNotes     datatypes.JSON
}

// Document is a standalone generated document (cover letter, SOP, etc.).
type Document struct {
	BaseModelWithDeleted
	UserID      string         `gorm:"type:uuid;not null;index"`
	Kind        DocumentKind   `gorm:"type:varchar(30);not null;index"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Content     datatypes.JSON `gorm:"not null"`
	SourceInput datatypes.JSON
}

// InterviewSession stores a generated interview preparation set.
type InterviewSession struct {
	BaseModelWithDeleted
	UserID     string         `gorm:"type:uuid;not null;index"`
	TargetRole string         `gorm:"type:varchar(200);not null"`
	Company    string         `gorm:"type:varchar(200)"`
	Questions  datatypes.JSON `gorm:"not null"`
}

// CommunicationReport stores one communication analysis result. The
// operation is metered, so every successful debit has this row as its
// artifact.
type CommunicationReport struct {
	BaseModelWithDeleted
	UserID     string         `gorm:"type:uuid;not null;index"`
	Context    string         `gorm:"type:varchar(200)"`
	SourceText string         `gorm:"type:text;not null"`
	Content    datatypes.JSON `gorm:"not null"`
}
