package catalog

import (
	"iter"
	"time"

	"go.uber.org/zap"
)

// PlaceholderTitle is what storefront feeds emit for a variant with no real
// distinguishing title. It also leaks into option fields on some stores.
const PlaceholderTitle = "Default Title"

type Normalizer struct {
	log *zap.SugaredLogger
	now func() time.Time
}

func NewNormalizer(log *zap.SugaredLogger) *Normalizer {
	return &Normalizer{log: log, now: time.Now}
}

// Records flattens the feed into per-variant observation records. The
// sequence is lazy and single-pass. A product without a body_html is a
// data-quality skip: none of its variants produce records, and the skip is
// logged on the scrape stream.
func (n *Normalizer) Records(feed Feed) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, p := range feed.Products {
			if p.BodyHTML == nil {
				n.log.Errorw("product has no body_html, skipping",
					"product_id", idField(p.ID),
				)
				continue
			}
			if len(p.Variants) == 0 {
				n.log.Debugw("product has no variants, no rows emitted",
					"product_id", idField(p.ID),
				)
				continue
			}

			description := StripHTML(*p.BodyHTML)
			productTitle := deref(p.Title)

			for _, v := range p.Variants {
				if !yield(n.record(p, v, productTitle, description)) {
					return
				}
			}
		}
	}
}

func (n *Normalizer) record(p Product, v Variant, productTitle, description string) Record {
	// An absent variant title counts as the placeholder, and the
	// placeholder resolves to the parent product's title.
	variantTitle := PlaceholderTitle
	if v.Title != nil {
		variantTitle = *v.Title
	}
	if variantTitle == PlaceholderTitle {
		variantTitle = productTitle
	}

	return Record{
		ProductTitle: productTitle,
		ProductID:    p.ID,
		Description:  description,
		Vendor:       p.Vendor,
		Category:     p.ProductType,

		VariantTitle: variantTitle,
		Option1:      resolveOption(v.Option1, variantTitle),
		Option2:      resolveOption(v.Option2, variantTitle),
		Option3:      resolveOption(v.Option3, variantTitle),
		Available:    v.Available,
		Price:        v.Price,
		VariantID:    v.ID,

		ObservedAt: n.now().UTC().Truncate(time.Second),
	}
}

// resolveOption substitutes the resolved variant title for option slots the
// feed filled with the placeholder. Runs after title resolution, so the
// substitution source is the final variant title.
func resolveOption(opt *string, variantTitle string) *string {
	if opt != nil && *opt == PlaceholderTitle {
		resolved := variantTitle
		return &resolved
	}
	return opt
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idField(id *int64) any {
	if id == nil {
		return "missing"
	}
	return *id
}
