package store

import "context"

// Portable DDL: runs unchanged on Postgres and on the SQLite test double.
var schemaStatements = []struct {
	table string
	ddl   string
}{
	{"products", `
CREATE TABLE IF NOT EXISTS products (
    product_id BIGINT NOT NULL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    vendor VARCHAR(255),
    category VARCHAR(255)
)`},
	{"variants", `
CREATE TABLE IF NOT EXISTS variants (
    variant_id BIGINT NOT NULL PRIMARY KEY,
    variant_title VARCHAR(255) NOT NULL,
    product_id BIGINT NOT NULL REFERENCES products (product_id),
    option1 VARCHAR(255),
    option2 VARCHAR(255),
    option3 VARCHAR(255)
)`},
	{"log", `
CREATE TABLE IF NOT EXISTS log (
    variant_id BIGINT REFERENCES variants (variant_id),
    price DOUBLE PRECISION NOT NULL,
    available BOOLEAN,
    date_scraped TIMESTAMP NOT NULL
)`},
}

// EnsureSchema creates the three catalog tables idempotently. Run at
// startup before the first persist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt.ddl); err != nil {
			s.log.Errorw("table create failed", "table", stmt.table, "err", err)
			return err
		}
		s.log.Infow("table ready", "table", stmt.table)
	}
	return nil
}
