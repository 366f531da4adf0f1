package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/database"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/sqlutil"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// DatabaseReader reads the catalog from a MySQL or SQLite table.
// Each Read opens and closes its own connection.
type DatabaseReader struct {
	cfg     config.DatabaseConfig
	columns []string
}

// NewDatabaseReader selects columns (id, name, owned) from the configured table.
func NewDatabaseReader(cfg config.DatabaseConfig, columns []string) *DatabaseReader {
	return &DatabaseReader{cfg: cfg, columns: columns}
}

// Describe returns driver and table, e.g. "mysql:pokedex".
func (d *DatabaseReader) Describe() string {
	return d.cfg.Driver + ":" + d.cfg.Table
}

// Read connects, runs the catalog query and disconnects.
func (d *DatabaseReader) Read(ctx context.Context) (*Table, error) {
	manager := database.NewManager(&d.cfg)
	if err := manager.Connect(ctx); err != nil {
		return nil, err
	}
	defer manager.Close()

	return ReadQuery(ctx, manager.DB, d.cfg.Table, d.cfg.Where, d.columns)
}

// ReadQuery selects columns from table and returns the result as a Table.
// Values keep their driver types so text and numbers stay distinguishable.
func ReadQuery(ctx context.Context, db *sql.DB, table, where string, columns []string) (*Table, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}

	query, err := sqlutil.BuildSelect(table, columns, where)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", sqlutil.QuoteIdentifier(table), err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &Table{Header: headerCells(names)}

	line := 0
	for rows.Next() {
		line++
		values := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", line, err)
		}
		result.Rows = append(result.Rows, types.Row{Line: line, Cells: values})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
