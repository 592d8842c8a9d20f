package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustFeed(t *testing.T, doc string) Feed {
	t.Helper()
	var feed Feed
	require.NoError(t, json.Unmarshal([]byte(doc), &feed))
	return feed
}

func collect(n *Normalizer, feed Feed) []Record {
	var recs []Record
	for r := range n.Records(feed) {
		recs = append(recs, r)
	}
	return recs
}

func TestRecords_ResolvesPlaceholders(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Shirt","body_html":"<p>Cotton</p>","vendor":"Acme","product_type":"Apparel","variants":[{"id":10,"title":"Default Title","option1":"Default Title"}]}]}`)

	n := NewNormalizer(zap.NewNop().Sugar())
	recs := collect(n, feed)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Shirt", rec.ProductTitle)
	assert.Equal(t, "Cotton", rec.Description)
	assert.Equal(t, "Shirt", rec.VariantTitle)
	require.NotNil(t, rec.Option1)
	assert.Equal(t, "Shirt", *rec.Option1)
	assert.Nil(t, rec.Option2)
	require.NotNil(t, rec.ProductID)
	assert.Equal(t, int64(1), *rec.ProductID)
	require.NotNil(t, rec.VariantID)
	assert.Equal(t, int64(10), *rec.VariantID)
	require.NotNil(t, rec.Vendor)
	assert.Equal(t, "Acme", *rec.Vendor)
	require.NotNil(t, rec.Category)
	assert.Equal(t, "Apparel", *rec.Category)
}

func TestRecords_MissingVariantTitleFallsBackToProduct(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Mug","body_html":"<p>Ceramic</p>","variants":[{"id":11}]}]}`)

	recs := collect(newNop(t), feed)
	require.Len(t, recs, 1)
	assert.Equal(t, "Mug", recs[0].VariantTitle)
}

func TestRecords_SkipsProductWithoutBodyHTML(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Ghost","variants":[{"id":10}]},{"id":2,"title":"Kept","body_html":"<b>here</b>","variants":[{"id":20,"title":"Small"}]}]}`)

	recs := collect(newNop(t), feed)
	require.Len(t, recs, 1)
	assert.Equal(t, "Kept", recs[0].ProductTitle)
	assert.Equal(t, "Small", recs[0].VariantTitle)
}

func TestRecords_ProductWithoutVariantsEmitsNothing(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Empty","body_html":"text","variants":[]}]}`)

	assert.Empty(t, collect(newNop(t), feed))
}

func TestRecords_NoProductsKey(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{}`)

	assert.Empty(t, collect(newNop(t), feed))
}

func TestRecords_PreservesRealOptions(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Shoe","body_html":"x","variants":[{"id":10,"title":"EU 42","option1":"EU 42","option2":"Leather"}]}]}`)

	recs := collect(newNop(t), feed)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].Option1)
	assert.Equal(t, "EU 42", *recs[0].Option1)
	require.NotNil(t, recs[0].Option2)
	assert.Equal(t, "Leather", *recs[0].Option2)
}

func TestRecords_ObservedAtSecondPrecisionUTC(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.FixedZone("CET", 3600))
	norm := newNop(t)
	norm.now = func() time.Time { return fixed }

	feed := mustFeed(t, `{"products":[{"id":1,"title":"Clock","body_html":"x","variants":[{"id":10}]}]}`)

	recs := collect(norm, feed)
	require.Len(t, recs, 1)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 9, 26, 0, time.UTC), recs[0].ObservedAt)
	assert.Equal(t, time.UTC, recs[0].ObservedAt.Location())
}

func TestRecords_EarlyBreakStopsIteration(t *testing.T) {
	t.Parallel()

	feed := mustFeed(t, `{"products":[{"id":1,"title":"A","body_html":"x","variants":[{"id":10},{"id":11},{"id":12}]}]}`)

	var seen int
	for range newNop(t).Records(feed) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func newNop(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(zap.NewNop().Sugar())
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Soft cotton tee", StripHTML("<p>Soft   cotton\n<b>tee</b></p>"))
	assert.Equal(t, "plain text", StripHTML("plain   text"))
	assert.Equal(t, "", StripHTML(""))
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var fromString Price
	require.NoError(t, json.Unmarshal([]byte(`"19.99"`), &fromString))
	assert.Equal(t, Price("19.99"), fromString)

	var fromNumber Price
	require.NoError(t, json.Unmarshal([]byte(`19.99`), &fromNumber))
	f, err := fromNumber.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 19.99, f, 1e-9)

	var bad Price
	assert.Error(t, json.Unmarshal([]byte(`{"amount":1}`), &bad))
}
