package store

import (
	"time"

	"gorm.io/datatypes"
)

// Unit is one row per top-level design unit (entity, architecture,
// package, package body, or elaborated design — spec.md §4.1.4's GC roots)
// a session has simplified, mirroring the teacher's models.Stage: a
// persisted record of one piece of work done against one input.
type Unit struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	SessionID  string `gorm:"type:varchar(36);index"`
	Kind       string `gorm:"type:varchar(20);not null"`
	Name       string `gorm:"type:varchar(255);not null"`
	SourceFile string `gorm:"type:varchar(1024)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Runs []SimplifyRun `gorm:"foreignKey:UnitID"`
}

// SimplifyRun is one row per SimplifyLocal/SimplifyGlobal invocation
// against a Unit, carrying the resulting simp.Stats and accumulated
// diagnostics as JSON columns — the same "structured JSON payload next to
// relational bookkeeping columns" shape as the teacher's models.Stage
// TargetQuery/ConfidenceFactors/ScopeAST fields.
type SimplifyRun struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	UnitID string `gorm:"type:varchar(36);index;not null"`

	// Mode is "local" or "global" (spec.md §4.2.11).
	Mode string `gorm:"type:varchar(10);not null"`

	Stats       datatypes.JSON `gorm:"type:jsonb"`
	Diagnostics datatypes.JSON `gorm:"type:jsonb"`
	ErrorCount  int            `gorm:"default:0"`

	StartedAt  time.Time `gorm:"autoCreateTime"`
	FinishedAt time.Time
}

// Session tracks one CLI invocation across however many Units it simplified,
// mirroring the teacher's models.Session (ID/StartedAt/EndedAt plus running
// counters).
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	UnitsCount int `gorm:"default:0"`
	RunsCount  int `gorm:"default:0"`
	ErrorTotal int `gorm:"default:0"`
}

func (Unit) TableName() string        { return "units" }
func (SimplifyRun) TableName() string { return "simplify_runs" }
func (Session) TableName() string     { return "sessions" }
