package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// TableStore defines load/save access to a whole table. Read reports
// failures explicitly; it is the caller's choice whether an unreadable table
// degrades to an empty one.
type TableStore interface {
	// Ensure idempotently creates the backing file with only the header row
	// when it does not exist. It never reconciles schema drift in an
	// existing file.
	Ensure(table string) error
	// Read loads all rows after the header. Row values are paired
	// positionally with the stored header, so a file edited out-of-band is
	// read as-is. Rows whose cells are all empty are skipped.
	Read(table string) ([]Record, error)
	// Write fully replaces the file: the header row from schema, then one
	// row per record in sequence order, empty cells for missing fields.
	Write(table string, records []Record, schema []string) error
}

// XLSXStore persists each table as one xlsx workbook under Dir. File access
// is serialized per table so a reader never observes a half-written
// workbook.
type XLSXStore struct {
	dir    string
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewXLSXStore returns a store rooted at dir. The directory is created on
// the first Ensure or Write.
func NewXLSXStore(dir string, logger zerolog.Logger) *XLSXStore {
	return &XLSXStore{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Path returns the backing file path for a table.
func (s *XLSXStore) Path(table string) string {
	return filepath.Join(s.dir, table+".xlsx")
}

func (s *XLSXStore) lock(table string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[table]
	if !ok {
		l = &sync.Mutex{}
		s.locks[table] = l
	}
	return l
}

// Ensure implements TableStore.
func (s *XLSXStore) Ensure(table string) error {
	schema := Schema(table)
	if schema == nil {
		return fmt.Errorf("unknown table %q", table)
	}

	l := s.lock(table)
	l.Lock()
	defer l.Unlock()

	path := s.Path(table)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.save(path, nil, schema); err != nil {
		return err
	}
	s.logger.Info().Str("table", table).Strs("headers", schema).Msg("created table file")
	return nil
}

// Read implements TableStore.
func (s *XLSXStore) Read(table string) ([]Record, error) {
	l := s.lock(table)
	l.Lock()
	defer l.Unlock()

	path := s.Path(table)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var records []Record
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, value := range row {
			if i < len(header) {
				rec[header[i]] = value
			}
		}
		if rec.IsBlank() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Write implements TableStore.
func (s *XLSXStore) Write(table string, records []Record, schema []string) error {
	l := s.lock(table)
	l.Lock()
	defer l.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.save(s.Path(table), records, schema); err != nil {
		return err
	}
	s.logger.Debug().Str("table", table).Int("rows", len(records)).Msg("table written")
	return nil
}

// save rebuilds the whole workbook and overwrites path. Callers hold the
// table lock.
func (s *XLSXStore) save(path string, records []Record, schema []string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(schema))
	for i, col := range schema {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, len(schema))
		for j, col := range schema {
			row[j] = rec[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
