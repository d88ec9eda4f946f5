package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

func testProfile() *catalog.CharacterProfile {
	p := &catalog.CharacterProfile{
		ID:            "test",
		Name:          "Test",
		InitialStatus: "h1b-active",
		GameStartYear: 2024,
	}
	p.InitialStats.Health = 80
	p.InitialStats.Stress = 30
	p.InitialStats.EnglishProficiency = 70
	p.InitialStats.CommunityConnection = 40
	return p
}

func TestInitializeFromProfile(t *testing.T) {
	s := NewStore()
	s.Initialize(testProfile(), clock.GameDate{Day: 1, Month: 1, Year: 2024})

	require.NotNil(t, s.Status)
	assert.Equal(t, StatusH1BActive, s.Status.Type)
	assert.True(t, s.Status.WorkAuthorized)
	assert.Equal(t, 80, s.Stats.Health)
	assert.Empty(t, s.StatusHistory)
}

func TestStatClamping(t *testing.T) {
	s := NewStore()
	s.Initialize(testProfile(), clock.GameDate{Day: 1, Month: 1, Year: 2024})

	s.ModifyStat(StatStress, 500)
	v, ok := s.Stat(StatStress)
	require.True(t, ok)
	assert.Equal(t, 100, v, "stats clamp at the ceiling")

	s.ModifyStat(StatStress, -500)
	v, _ = s.Stat(StatStress)
	assert.Equal(t, 0, v, "stats clamp at the floor")

	s.SetStat(StatHealth, -10)
	v, _ = s.Stat(StatHealth)
	assert.Equal(t, 0, v)

	// Unknown stat names are ignored, not errors.
	s.ModifyStat("charisma", 10)
	_, ok = s.Stat("charisma")
	assert.False(t, ok)
}

func TestStatusChangeRecordsHistory(t *testing.T) {
	s := NewStore()
	start := clock.GameDate{Day: 1, Month: 1, Year: 2024}
	s.Initialize(testProfile(), start)

	when := clock.GameDate{Day: 15, Month: 6, Year: 2024}
	s.ChangeStatusTo(StatusI485Pending, "Adjustment filed", when, "ev-1")

	require.Len(t, s.StatusHistory, 1)
	change := s.StatusHistory[0]
	assert.Equal(t, StatusH1BActive, change.FromStatus)
	assert.Equal(t, StatusI485Pending, change.ToStatus)
	assert.Equal(t, when, change.Date)
	assert.Equal(t, "ev-1", change.EventID)
	assert.Equal(t, StatusI485Pending, s.Status.Type)
}

func TestInvalidTransitionStillApplies(t *testing.T) {
	s := NewStore()
	s.Initialize(testProfile(), clock.GameDate{Day: 1, Month: 1, Year: 2024})

	// Not in the valid transition set for H-1B, but events may force it.
	s.ChangeStatusTo(StatusDeported, "Removal executed", clock.GameDate{Day: 2, Month: 1, Year: 2024}, "")
	assert.Equal(t, StatusDeported, s.Status.Type)
	assert.Len(t, s.StatusHistory, 1)
}

func TestStatusTables(t *testing.T) {
	start := clock.GameDate{Day: 1, Month: 1, Year: 2024}

	undoc := NewStatus(StatusUndocumented, start)
	assert.True(t, undoc.AccruesUnlawfulPresence())
	assert.False(t, undoc.WorkAuthorized)
	assert.False(t, undoc.CanTravel)

	gc := NewStatus(StatusGreenCardPermanent, start)
	assert.False(t, gc.AccruesUnlawfulPresence())
	assert.True(t, gc.WorkAuthorized)
	assert.True(t, gc.AllowsTransition(StatusNaturalizedCitizen))
}

func TestUnlawfulPresenceAccrual(t *testing.T) {
	s := NewStore()
	p := testProfile()
	p.InitialStatus = "undocumented"
	s.Initialize(p, clock.GameDate{Day: 1, Month: 1, Year: 2024})

	for i := 0; i < 180; i++ {
		s.AddUnlawfulPresenceDays(1)
	}
	assert.Equal(t, 180, s.Status.UnlawfulPresenceDays)
}

func TestFlags(t *testing.T) {
	s := NewStore()
	s.Initialize(testProfile(), clock.GameDate{Day: 1, Month: 1, Year: 2024})

	s.SetFlag("warned", true)
	assert.True(t, s.BoolFlag("warned"))
	assert.False(t, s.BoolFlag("absent"))

	s.IncrementFlag("denials", 1)
	s.IncrementFlag("denials", 1)
	assert.Equal(t, 2.0, s.NumberFlag("denials"))

	_, ok := s.Flag("missing")
	assert.False(t, ok)
}

func TestDocuments(t *testing.T) {
	s := NewStore()
	s.Initialize(testProfile(), clock.GameDate{Day: 1, Month: 1, Year: 2024})

	s.AddDocument(Document{ID: "passport", Name: "Passport", IsValid: true})
	s.AddDocument(Document{ID: "ead", Name: "EAD Card", IsValid: true})
	require.Len(t, s.Documents, 2)

	s.InvalidateDocument("ead")
	assert.False(t, s.Documents[1].IsValid)

	s.RemoveDocument("passport")
	require.Len(t, s.Documents, 1)
	assert.Equal(t, "ead", s.Documents[0].ID)
}
