package relationship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

var testDate = clock.GameDate{Day: 10, Month: 4, Year: 2024}

func seededGraph() *Graph {
	g := NewGraph()
	g.Initialize([]catalog.RelationshipSeed{
		{ID: "spouse", Name: "Maria", Type: "spouse", CitizenshipStatus: "citizen", Level: 80},
		{ID: "boss", Name: "Meridian", Type: "employer", Level: 40, IsSponsor: true},
		{ID: "mother", Name: "Chidinma", Type: "parent", CitizenshipStatus: "foreign", Level: 70},
	})
	return g
}

func TestModifyClampsAndAudits(t *testing.T) {
	g := seededGraph()

	g.Modify("spouse", 50, "Anniversary", testDate)
	r := g.Get("spouse")
	require.NotNil(t, r)
	assert.Equal(t, 100, r.Level, "level clamps at 100")

	g.Modify("boss", -300, "Layoffs", testDate)
	assert.Equal(t, -100, g.Get("boss").Level, "level clamps at -100")

	require.Len(t, g.Changes, 2, "one audit entry per mutation")
	assert.Equal(t, "spouse", g.Changes[0].NPCID)
	assert.Equal(t, 80, g.Changes[0].Previous)
	assert.Equal(t, 100, g.Changes[0].New)
	assert.Equal(t, "Anniversary", g.Changes[0].Reason)
}

func TestModifyUnknownIDIsNoOp(t *testing.T) {
	g := seededGraph()
	g.Modify("stranger", 10, "Met at a party", testDate)
	assert.Empty(t, g.Changes)
}

func TestSetLevelAudits(t *testing.T) {
	g := seededGraph()
	g.SetLevel("mother", -20, "Missed her birthday call", testDate)
	assert.Equal(t, -20, g.Get("mother").Level)
	require.Len(t, g.Changes, 1)
	assert.Equal(t, 70, g.Changes[0].Previous)
}

func TestLookups(t *testing.T) {
	g := seededGraph()

	spouse := g.Spouse()
	require.NotNil(t, spouse)
	assert.Equal(t, "Maria", spouse.Name)
	assert.True(t, g.HasCitizenSpouse())

	sponsor := g.Sponsor()
	require.NotNil(t, sponsor)
	assert.Equal(t, "boss", sponsor.ID)

	parents := g.ByType(TypeParent)
	require.Len(t, parents, 1)
	assert.Equal(t, "mother", parents[0].ID)
}

func TestAddRemove(t *testing.T) {
	g := seededGraph()
	g.Add(Data{ID: "attorney", Name: "Goldstein", Type: TypeAttorney, Level: 150})
	assert.Equal(t, 100, g.Get("attorney").Level, "seed levels clamp too")

	g.Remove("attorney")
	assert.Nil(t, g.Get("attorney"))
	g.Remove("attorney") // second removal is harmless
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "devoted", LevelLabel(95))
	assert.Equal(t, "close", LevelLabel(60))
	assert.Equal(t, "warm", LevelLabel(30))
	assert.Equal(t, "neutral", LevelLabel(0))
	assert.Equal(t, "strained", LevelLabel(-40))
	assert.Equal(t, "hostile", LevelLabel(-80))
}
