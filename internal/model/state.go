package model

import "time"

// RecordState is the lifecycle of a soft-deletable row.
type RecordState string

const (
	StateActive  RecordState = "ACTIVE"
	StateDeleted RecordState = "DELETED"
)

// SoftDelete replaces the is_active/is_deleted flag pair with a single state
// column. Rows are never removed; reads filter on StateActive.
type SoftDelete struct {
	State     RecordState `json:"state" gorm:"type:varchar(16);not null;index"`
	DeletedAt *time.Time  `json:"deletedAt,omitempty"`
	DeletedBy string      `json:"deletedBy,omitempty" gorm:"size:36"`
}

// IsActive reports whether the row is visible to active reads.
func (s SoftDelete) IsActive() bool {
	return s.State == StateActive
}

// IsDeleted is the complement of IsActive.
func (s SoftDelete) IsDeleted() bool {
	return s.State == StateDeleted
}

// MarkDeleted moves the row to StateDeleted. It is the only transition.
func (s *SoftDelete) MarkDeleted(by string, at time.Time) {
	if s.State == StateDeleted {
		return
	}
	s.State = StateDeleted
	s.DeletedAt = &at
	s.DeletedBy = by
}

func (s *SoftDelete) initState() {
	if s.State == "" {
		s.State = StateActive
	}
}
