package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msgdepot/msgdepot-go/internal/store"
)

func triple(key, locale, value string) store.TranslationTriple {
	return store.TranslationTriple{KeyPath: key, LanguageCode: locale, Value: value}
}

func TestMissingKeys(t *testing.T) {
	c := NewCalculator([]store.TranslationTriple{
		triple("common.loading", "en", "Loading..."),
		triple("common.loading", "es", "Cargando..."),
		triple("common.save", "en", "Save"),
	})

	assert.Equal(t, []string{"common.save"}, c.MissingKeys("es"))
	assert.Empty(t, c.MissingKeys("en"))
	assert.Equal(t, []string{"common.loading", "common.save"}, c.MissingKeys("fr"))
}

func TestMissingAndPresentPartitionAllKeys(t *testing.T) {
	c := NewCalculator([]store.TranslationTriple{
		triple("a", "en", "1"),
		triple("b", "en", "2"),
		triple("b", "de", "3"),
		triple("c", "de", "4"),
	})

	for _, locale := range []string{"en", "de", "fr"} {
		present := c.PresentKeys(locale)
		missing := c.MissingKeys(locale)

		assert.Len(t, append(present, missing...), len(c.AllKeys()),
			"present ∪ missing must equal all keys for %s", locale)

		seen := map[string]bool{}
		for _, k := range present {
			seen[k] = true
		}
		for _, k := range missing {
			assert.False(t, seen[k], "key %s in both present and missing for %s", k, locale)
		}
	}
}

func TestCompletenessRatio(t *testing.T) {
	c := NewCalculator([]store.TranslationTriple{
		triple("a", "en", "1"),
		triple("b", "en", "2"),
		triple("c", "en", "3"),
		triple("a", "es", "4"),
	})

	assert.Equal(t, "100.00%", c.CompletenessRatio("en"))
	assert.Equal(t, "33.33%", c.CompletenessRatio("es"))
	assert.Equal(t, "0.00%", c.CompletenessRatio("fr"))
}

func TestCompletenessRatio_EmptyInput(t *testing.T) {
	c := NewCalculator(nil)
	assert.Equal(t, "0.00%", c.CompletenessRatio("en"))
	assert.Empty(t, c.AllKeys())
}

func TestDuplicateTriplesDeduplicated(t *testing.T) {
	// Join fan-out can produce the same (key, locale) twice.
	c := NewCalculator([]store.TranslationTriple{
		triple("a", "en", "1"),
		triple("a", "en", "1"),
		triple("b", "en", "2"),
	})

	assert.Equal(t, "100.00%", c.CompletenessRatio("en"))
	coverage := c.PerKeyCoverage()
	assert.Len(t, coverage, 2)
	assert.Equal(t, 1, coverage[0].LocaleCount)
}

func TestPerKeyCoverage(t *testing.T) {
	c := NewCalculator([]store.TranslationTriple{
		triple("common.loading", "en", "Loading..."),
		triple("common.loading", "es", "Cargando..."),
		triple("common.save", "en", "Save"),
	})

	coverage := c.PerKeyCoverage()
	assert.Len(t, coverage, 2)

	assert.Equal(t, "common.loading", coverage[0].Key)
	assert.Equal(t, []string{"en", "es"}, coverage[0].Locales)
	assert.Equal(t, 2, coverage[0].LocaleCount)

	assert.Equal(t, "common.save", coverage[1].Key)
	assert.Equal(t, []string{"en"}, coverage[1].Locales)
	assert.Equal(t, 1, coverage[1].LocaleCount)
}

func TestBuildReport(t *testing.T) {
	c := NewCalculator([]store.TranslationTriple{
		triple("common.loading", "en", "Loading..."),
		triple("common.loading", "es", "Cargando..."),
	})

	report := c.BuildReport("fr")
	assert.Equal(t, "fr", report.Locale)
	assert.Equal(t, []string{"common.loading"}, report.MissingKeys)
	assert.Equal(t, 1, report.MissingCount)
	assert.Equal(t, 1, report.TotalKeys)
	assert.Equal(t, 0, report.CompleteKeys)
	assert.Equal(t, "0.00%", report.Completeness)
	assert.Equal(t, []string{"en", "es"}, report.AllLocales)
}
