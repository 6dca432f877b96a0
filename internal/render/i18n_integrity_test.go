package render_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-panchanga/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each locale file, and that the locales agree on their key sets.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyPreviewTitle,
		config.TKeyPlanetsTitle,
		config.TKeyRasiTitle,
		config.TKeyLblName,
		config.TKeyLblDate,
		config.TKeyLblTime,
		config.TKeyLblPlace,
		config.TKeyLblWeekday,
		config.TKeyLblLat,
		config.TKeyLblLong,
		config.TKeyLblYear,
		config.TKeyLblTithi,
		config.TKeyLblTithiEnd,
		config.TKeyLblNakshatra,
		config.TKeyLblNakEnd,
		config.TKeyLblKarana,
		config.TKeyLblKaranaEnd,
		config.TKeyLblYoga,
		config.TKeyLblYogaEnd,
		config.TKeyLblSunrise,
		config.TKeyLblSunset,
		config.TKeyLblRahuKaalam,
		config.TKeyColPlanet,
		config.TKeyColLongitude,
		config.TKeyColAbs,
		config.TKeyColSign,
		config.TKeyContinues,
		config.TKeyEvtEnds,
		config.TKeyEvtNext,
		config.TKeyCalName,
	}

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]string
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				v, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
				assert.NotEmpty(t, v, key)
			}
			for key := range jsonMap {
				assert.Truef(t, definedKeys[key], "Key '%s' in active.%s.json has no constant in config.go", key, lang)
			}
		})
	}
}
