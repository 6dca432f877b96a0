package engine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

func TestIndexOf_Ranges(t *testing.T) {
	counts := []int{engine.TithiCount, engine.NakshatraCount, engine.YogaCount, engine.KaranaCount, engine.PadaCount}

	for _, count := range counts {
		for a := -720.0; a < 720; a += 0.37 {
			idx := engine.IndexOf(a, count)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, count)
		}
	}
}

func TestIndexOf_Boundaries(t *testing.T) {
	tests := []struct {
		angle float64
		count int
		want  int
	}{
		{0, 30, 0},
		{11.999, 30, 0},
		{12, 30, 1},
		{359.9999, 30, 29},
		{360, 30, 0},
		{-0.5, 30, 29},
		{40, 27, 3},
		{13.3, 27, 0},
		{6, 60, 1},
		{40, 108, 12},
		{11 * 360.0 / 27, 27, 11},
		{22 * 360.0 / 27, 27, 22},
		{41 * 360.0 / 108, 108, 41},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.IndexOf(tt.angle, tt.count), "IndexOf(%v, %d)", tt.angle, tt.count)
	}
}

func TestNakshatraPada(t *testing.T) {
	tests := []struct {
		moon     float64
		wantIdx  int
		wantPada int
	}{
		{0, 0, 1},
		{3.4, 0, 2},
		{13.2, 0, 4},
		{13.34, 1, 1},
		{359.9, 26, 4},
		{40, 3, 1},
	}

	for _, tt := range tests {
		idx, pada := engine.NakshatraPada(tt.moon)
		assert.Equal(t, tt.wantIdx, idx, "moon=%v", tt.moon)
		assert.Equal(t, tt.wantPada, pada, "moon=%v", tt.moon)
	}

	assert.Equal(t, "Rohini (Pada 1)", engine.NakshatraPadaName(3, 1))
}

// -----------------------------------------------------------------------------
// Scenarios
// -----------------------------------------------------------------------------

func TestScenario_Sun10Moon40(t *testing.T) {
	sun, moon := 10.0, 40.0

	assert.Equal(t, 2, engine.TithiIndex(sun, moon))
	assert.Equal(t, "Tritiya", engine.TithiName(engine.TithiIndex(sun, moon)))

	assert.Equal(t, 3, engine.YogaIndex(sun, moon))
	assert.Equal(t, "Saubhagya", engine.YogaName(engine.YogaIndex(sun, moon)))

	slot := engine.KaranaIndex(sun, moon)
	assert.Equal(t, 5, slot)
	assert.Equal(t, "Garaja", engine.KaranaName(slot), "Slot 5 is the fifth movable karana")
}

func TestScenario_NewMoon(t *testing.T) {
	assert.Equal(t, "Pratipada", engine.TithiName(engine.TithiIndex(100, 100)))
	assert.Equal(t, "Kimstughna", engine.KaranaName(engine.KaranaIndex(100, 100)))
}

func TestKaranaName_FullCycle(t *testing.T) {
	got := make([]string, engine.KaranaCount)
	for slot := range got {
		got[slot] = engine.KaranaName(slot)
	}

	movable := []string{"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti"}
	want := []string{"Kimstughna"}
	for i := 0; i < 8; i++ {
		want = append(want, movable...)
	}
	want = append(want, "Shakuni", "Chatushpada", "Naga")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("karana table mismatch (-want +got):\n%s", diff)
	}
}

func TestSignAbbr_Periodic(t *testing.T) {
	for l := 0.0; l < 360; l += 0.73 {
		base := engine.SignAbbr(l)
		for k := -3; k <= 3; k++ {
			assert.Equal(t, base, engine.SignAbbr(l+360*float64(k)), "lon=%v k=%d", l, k)
		}
	}
	assert.Equal(t, "Ar", engine.SignAbbr(0))
	assert.Equal(t, "Pi", engine.SignAbbr(359.99))
	assert.Equal(t, "Le", engine.SignAbbr(125))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, engine.Normalize(360))
	assert.Equal(t, 350.0, engine.Normalize(-10))
	assert.Equal(t, 10.0, engine.Normalize(730))
	assert.Less(t, engine.Normalize(-1e-15), 360.0)
}

func TestYearName(t *testing.T) {
	assert.Equal(t, "Prabhava", engine.YearName(1987))
	assert.Equal(t, "Prabhava", engine.YearName(1927))
	assert.Equal(t, "Śārvari", engine.YearName(2020))

	for y := 1800; y < 2100; y++ {
		assert.Equal(t, engine.YearName(y), engine.YearName(y+60), "year %d", y)
	}
}
