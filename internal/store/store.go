package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront-catalog-miner/internal/catalog"
)

// Outcome classifies one insert attempt. Duplicate keys are an expected,
// silent result of re-ingesting an unchanged catalog, not an error.
type Outcome int

const (
	Inserted Outcome = iota
	AlreadyExisted
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyExisted:
		return "already_existed"
	default:
		return "failed"
	}
}

// StepResults reports the three step outcomes of persisting one record.
// Steps are independent; a failed product insert does not stop the variant
// or observation steps.
type StepResults struct {
	Product     Outcome
	Variant     Outcome
	Observation Outcome
}

// Store writes observation records into the three-table catalog schema.
// It never raises to its caller: every outcome is a committed write or a
// logged, swallowed error.
type Store struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

type Params struct {
	fx.In

	DB  *sqlx.DB
	Log *zap.SugaredLogger `name:"store"`
}

func New(p Params) *Store {
	return &Store{db: p.DB, log: p.Log}
}

// Persist runs the product upsert-by-ignore, the variant upsert-by-ignore,
// and the observation append for one record, in that order. Each statement
// commits on its own; there is no wrapping transaction.
func (s *Store) Persist(ctx context.Context, rec catalog.Record) StepResults {
	return StepResults{
		Product:     s.insertProduct(ctx, rec),
		Variant:     s.insertVariant(ctx, rec),
		Observation: s.insertObservation(ctx, rec),
	}
}

func (s *Store) insertProduct(ctx context.Context, rec catalog.Record) Outcome {
	q := s.db.Rebind(`
INSERT INTO products (product_id, title, description, vendor, category)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (product_id) DO NOTHING`)

	res, err := s.db.ExecContext(ctx, q,
		rec.ProductID, rec.ProductTitle, rec.Description, rec.Vendor, rec.Category)
	if err != nil {
		s.log.Errorw("product insert failed",
			"title", rec.ProductTitle,
			"product_id", rec.ProductID,
			"err", err,
		)
		return Failed
	}

	out := outcomeOf(res)
	if out == Inserted {
		s.log.Infow("new product added",
			"title", rec.ProductTitle,
			"product_id", rec.ProductID,
		)
	}
	return out
}

func (s *Store) insertVariant(ctx context.Context, rec catalog.Record) Outcome {
	q := s.db.Rebind(`
INSERT INTO variants (variant_id, variant_title, product_id, option1, option2, option3)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (variant_id) DO NOTHING`)

	res, err := s.db.ExecContext(ctx, q,
		rec.VariantID, rec.VariantTitle, rec.ProductID, rec.Option1, rec.Option2, rec.Option3)
	if err != nil {
		s.log.Errorw("variant insert failed",
			"title", rec.VariantTitle,
			"variant_id", rec.VariantID,
			"err", err,
		)
		return Failed
	}

	out := outcomeOf(res)
	if out == Inserted {
		s.log.Infow("new variant added",
			"title", rec.VariantTitle,
			"variant_id", rec.VariantID,
		)
	}
	return out
}

func (s *Store) insertObservation(ctx context.Context, rec catalog.Record) Outcome {
	q := s.db.Rebind(`
INSERT INTO log (variant_id, price, available, date_scraped)
VALUES (?, ?, ?, ?)`)

	if _, err := s.db.ExecContext(ctx, q,
		rec.VariantID, priceArg(rec.Price), rec.Available, rec.ObservedAt); err != nil {
		s.log.Errorw("log insert failed",
			"title", rec.VariantTitle,
			"variant_id", rec.VariantID,
			"err", err,
		)
		return Failed
	}

	s.log.Infow("log entry added",
		"title", rec.VariantTitle,
		"variant_id", rec.VariantID,
	)
	return Inserted
}

func outcomeOf(res sql.Result) Outcome {
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return AlreadyExisted
	}
	return Inserted
}

// priceArg converts the verbatim feed price to the numeric column value.
// A missing price maps to NULL and an unparsable one is passed through raw;
// either way the NOT NULL / type constraint is the detection point.
func priceArg(p *catalog.Price) any {
	if p == nil {
		return nil
	}
	if f, err := p.Float64(); err == nil {
		return f
	}
	return string(*p)
}
