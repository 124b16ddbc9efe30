package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/archimago/internal/models"
)

func TestParseTables_Spellbook(t *testing.T) {
	d := ParseTables([]string{"Spellbook x\n2bolt\n1flare"}, false)

	require.True(t, d.Has("Spellbook"))
	assert.Equal(t, []models.CardCount{
		{Name: "bolt", Count: 2},
		{Name: "flare", Count: 1},
	}, d.Categories["Spellbook"])
	assert.Equal(t, []string{"Spellbook"}, d.Order)
}

func TestParseTables_SkipsManaCostLines(t *testing.T) {
	d, stats := ParseTablesWithStats([]string{"Spell (12)\n3\n2Lightning Bolt\n5\n1Flare"}, false)

	assert.Equal(t, []models.CardCount{
		{Name: "Lightning Bolt", Count: 2},
		{Name: "Flare", Count: 1},
	}, d.Categories["Spell"])
	assert.Equal(t, 2, stats.ManaLines)
	assert.Equal(t, 2, stats.Cards)
	assert.Equal(t, 0, stats.Dropped)
}

func TestParseTables_Maybeboard(t *testing.T) {
	tables := []string{
		"Avatar 1\n1Sorcerer",
		"Maybeboard 2\n1Sly Fox\n1Dust Devil",
	}

	d := ParseTables(tables, false)
	assert.False(t, d.Has("Maybeboard"))
	assert.Equal(t, 1, d.Len())

	d = ParseTables(tables, true)
	require.True(t, d.Has("Maybeboard"))
	assert.Len(t, d.Categories["Maybeboard"], 2)
	assert.Equal(t, []string{"Avatar", "Maybeboard"}, d.Order)
}

func TestParseTables_MergesSameHeader(t *testing.T) {
	tables := []string{
		"Site 10\n4Spire",
		"Avatar 1\n1Geomancer",
		"Site 3\n3Arid Desert",
	}

	d := ParseTables(tables, false)
	assert.Equal(t, []models.CardCount{
		{Name: "Spire", Count: 4},
		{Name: "Arid Desert", Count: 3},
	}, d.Categories["Site"])
	assert.Equal(t, []string{"Site", "Avatar"}, d.Order)
}

func TestParseTables_KeepsDuplicates(t *testing.T) {
	d := ParseTables([]string{"Spell\n1bolt\n2bolt"}, false)
	assert.Len(t, d.Categories["Spell"], 2)
}

func TestParseTables_DropsMalformedLines(t *testing.T) {
	d, stats := ParseTablesWithStats([]string{"Spell\n\nxbolt\n0flare\n2 \n1ok\r"}, false)

	assert.Equal(t, []models.CardCount{{Name: "ok", Count: 1}}, d.Categories["Spell"])
	assert.Equal(t, 4, stats.Dropped)
}

func TestParseTables_EmptyHeaderSkipped(t *testing.T) {
	d, stats := ParseTablesWithStats([]string{"\n2bolt", "   "}, false)

	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 2, stats.SkippedTables)
}

func TestParseTables_NoTables(t *testing.T) {
	d := ParseTables(nil, false)
	assert.NotNil(t, d.Categories)
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.IsEmpty())
}
