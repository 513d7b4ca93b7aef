// Package store persists simplification sessions — which units were
// processed, with what Stats and diagnostics — the ambient bookkeeping
// layer spec.md never names but a complete front-end needs for `vhdlsimp
// sessions`-style auditing. Grounded on the teacher's db/sqlite.go: the
// same local-file-vs-libsql-URL dialector split, gorm.Open, foreign-key
// pragma, and AutoMigrate call.
package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/simp"
)

// Connect opens dsn — a local sqlite file path or a libsql/https URL — and
// runs migrations, exactly mirroring the teacher's db.Connect dispatch.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create database directory: %w", err)
			}
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		token := os.Getenv("VHDLSIMP_LIBSQL_AUTH_TOKEN")
		if token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("store: create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return db, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// Migrate creates/updates the schema backing Unit, SimplifyRun and Session.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Session{}, &Unit{}, &SimplifyRun{})
}

// Recorder writes one CLI session's Unit/SimplifyRun rows to the database,
// each as soon as RecordUnit is called, matching the narrow "give me an ID, hand me
// back a finished session summary" surface cmd/vhdlsimp needs without
// exposing gorm details to the command layer.
type Recorder struct {
	db        *gorm.DB
	sessionID string
}

// NewRecorder opens a Session row and returns a Recorder bound to it.
func NewRecorder(db *gorm.DB) (*Recorder, error) {
	s := &Session{ID: uuid.NewString()}
	if err := db.Create(s).Error; err != nil {
		return nil, fmt.Errorf("store: begin session: %w", err)
	}
	return &Recorder{db: db, sessionID: s.ID}, nil
}

// RecordUnit inserts a Unit row and one SimplifyRun row summarizing one
// SimplifyLocal/SimplifyGlobal call against it.
func (r *Recorder) RecordUnit(kind, name, sourceFile, mode string, stats simp.Stats, diags []*diag.Diag, errorCount int) error {
	u := &Unit{
		ID:         uuid.NewString(),
		SessionID:  r.sessionID,
		Kind:       kind,
		Name:       name,
		SourceFile: sourceFile,
	}
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("store: record unit: %w", err)
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		statsJSON = []byte("{}")
	}
	diagsJSON, err := marshalDiags(diags)
	if err != nil {
		diagsJSON = []byte("[]")
	}

	run := &SimplifyRun{
		ID:          uuid.NewString(),
		UnitID:      u.ID,
		Mode:        mode,
		Stats:       datatypes.JSON(statsJSON),
		Diagnostics: datatypes.JSON(diagsJSON),
		ErrorCount:  errorCount,
		FinishedAt:  time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("store: record simplify run: %w", err)
	}

	return r.db.Model(&Session{}).Where("id = ?", r.sessionID).
		Updates(map[string]any{
			"units_count": gorm.Expr("units_count + 1"),
			"runs_count":  gorm.Expr("runs_count + 1"),
			"error_total": gorm.Expr("error_total + ?", errorCount),
		}).Error
}

// Close stamps the session's EndedAt.
func (r *Recorder) Close() error {
	now := time.Now()
	return r.db.Model(&Session{}).Where("id = ?", r.sessionID).Update("ended_at", &now).Error
}

type diagRecord struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line,omitempty"`
}

func marshalDiags(diags []*diag.Diag) ([]byte, error) {
	recs := make([]diagRecord, 0, len(diags))
	for _, d := range diags {
		recs = append(recs, diagRecord{
			Level: d.Level.String(),
			Text:  d.Text,
			Line:  d.Loc.FirstLine(),
		})
	}
	return json.Marshal(recs)
}
