package sqlite

import "fmt"

// requestLogColumns were added after the first schema; databases created
// earlier get them through migrate.
var requestLogColumns = []struct {
	name string
	decl string
}{
	{"endpoint", "TEXT NOT NULL DEFAULT ''"},
	{"finish_reason", "TEXT"},
	{"reasoning_tokens", "INTEGER DEFAULT 0"},
	{"cached_tokens", "INTEGER DEFAULT 0"},
	{"prompt_estimated", "INTEGER DEFAULT 0"},
}

// migrate adds missing request_logs columns.
// SQLite has no ADD COLUMN IF NOT EXISTS, so pragma_table_info is checked first.
func (s *Storage) migrate() error {
	for _, col := range requestLogColumns {
		if err := s.addColumnIfMissing("request_logs", col.name, col.decl); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) addColumnIfMissing(table, column, decl string) error {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&count)
	if err != nil {
		return err
	}

	// No migration needed if column exists
	if count > 0 {
		return nil
	}

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}
