// Package records implements the per-table CRUD service and HTTP handlers
// shared by all five record types. One Service instance is bound to one
// table; every mutation is a full load → modify → save cycle serialized by a
// per-service mutex, so concurrent writers to the same table cannot lose
// updates to each other's full-file rewrites.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/store"
)

// TimeFormat is the second-precision layout of server-assigned timestamps.
const TimeFormat = "2006-01-02 15:04:05"

// ErrNotFound is returned by Update and Delete when no record carries the
// target id.
var ErrNotFound = errors.New("record not found")

// TableDef binds a Service to one table: its name, schema, timestamp column,
// and the per-entity creation defaults.
type TableDef struct {
	Name          string
	Label         string
	Schema        []string
	TimestampCol  string
	DefaultStatus string
}

// Definitions returns the table definitions for all five record types.
func Definitions() []TableDef {
	defs := make([]TableDef, 0, 5)
	labels := map[string]string{
		store.TablePatients:      "Patient",
		store.TableAppointments:  "Appointment",
		store.TableBilling:       "Billing record",
		store.TableReports:       "Report",
		store.TablePrescriptions: "Prescription",
	}
	defaults := map[string]string{
		store.TableAppointments: "Pending",
		store.TableBilling:      "Pending",
	}
	for _, table := range store.Tables() {
		defs = append(defs, TableDef{
			Name:          table,
			Label:         labels[table],
			Schema:        store.Schema(table),
			TimestampCol:  store.TimestampColumn(table),
			DefaultStatus: defaults[table],
		})
	}
	return defs
}

// Service provides List/Create/Update/Delete for one table.
type Service struct {
	def    TableDef
	tables store.TableStore
	logger zerolog.Logger
	now    func() time.Time

	// mu is held for the full load-modify-save span so two writers to the
	// same table cannot silently discard each other's full-file rewrites.
	mu sync.Mutex

	// lastID is the high-water mark of ids handed out by this service.
	// Deleting the highest-id record lowers max(existing)+1, so the mark
	// keeps ids strictly increasing for the life of the process.
	lastID int
}

// NewService creates a record service bound to def.
func NewService(def TableDef, tables store.TableStore, logger zerolog.Logger) *Service {
	return &Service{
		def:    def,
		tables: tables,
		logger: logger.With().Str("table", def.Name).Logger(),
		now:    time.Now,
	}
}

// Def returns the table definition the service is bound to.
func (s *Service) Def() TableDef { return s.def }

// load reads the current working set. An unreadable table degrades to an
// empty one: the failure is logged and the caller cannot distinguish the two.
func (s *Service) load() []store.Record {
	records, err := s.tables.Read(s.def.Name)
	if err != nil {
		s.logger.Error().Err(err).Msg("table read failed, treating as empty")
		return nil
	}
	return records
}

// List returns all records of the table in stored order.
func (s *Service) List(ctx context.Context) []store.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	if records == nil {
		records = []store.Record{}
	}
	return records
}

// Create stamps the next id, the creation timestamp, and any entity default
// onto the payload, appends it to the working set, and persists the whole
// table. The returned record describes the intended row even when the write
// fails; the error tells the caller the create did not durably succeed.
func (s *Service) Create(ctx context.Context, payload map[string]interface{}) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.load()
	next := store.NextID(existing)
	if next <= s.lastID {
		next = s.lastID + 1
	}
	s.lastID = next

	rec := coerce(payload)
	rec["id"] = strconv.Itoa(next)
	rec[s.def.TimestampCol] = s.now().Format(TimeFormat)
	if s.def.DefaultStatus != "" {
		if _, ok := rec["status"]; !ok {
			rec["status"] = s.def.DefaultStatus
		}
	}

	existing = append(existing, rec)
	if err := s.tables.Write(s.def.Name, existing, s.def.Schema); err != nil {
		return rec, fmt.Errorf("persist %s: %w", s.def.Name, err)
	}
	s.logger.Info().Str("id", rec["id"]).Msg("record created")
	return rec, nil
}

// Update merges the payload's fields into the first record whose id matches,
// in place, and persists the whole table. The id and the creation timestamp
// are server-assigned and are stripped from the payload before the merge.
func (s *Service) Update(ctx context.Context, id int, payload map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := coerce(payload)
	delete(fields, "id")
	delete(fields, s.def.TimestampCol)

	existing := s.load()
	found := false
	for _, rec := range existing {
		rid, ok := rec.ID()
		if !ok || rid != id {
			continue
		}
		for k, v := range fields {
			rec[k] = v
		}
		found = true
		break
	}
	if !found {
		return ErrNotFound
	}

	if err := s.tables.Write(s.def.Name, existing, s.def.Schema); err != nil {
		return fmt.Errorf("persist %s: %w", s.def.Name, err)
	}
	s.logger.Info().Int("id", id).Msg("record updated")
	return nil
}

// Delete removes every record whose id matches and persists the filtered
// table. Deleted ids are never reused.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.load()
	filtered := existing[:0:0]
	for _, rec := range existing {
		if rid, ok := rec.ID(); ok && rid == id {
			continue
		}
		filtered = append(filtered, rec)
	}
	if len(filtered) == len(existing) {
		return ErrNotFound
	}

	if err := s.tables.Write(s.def.Name, filtered, s.def.Schema); err != nil {
		return fmt.Errorf("persist %s: %w", s.def.Name, err)
	}
	s.logger.Info().Int("id", id).Msg("record deleted")
	return nil
}

// coerce flattens incoming JSON scalars to the store's string values.
func coerce(payload map[string]interface{}) store.Record {
	rec := make(store.Record, len(payload))
	for k, v := range payload {
		rec[k] = stringify(v)
	}
	return rec
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
