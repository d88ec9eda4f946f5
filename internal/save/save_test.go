package save

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/character"
	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/config"
	"github.com/talgya/pending/internal/engine"
	"github.com/talgya/pending/internal/finance"
	"github.com/talgya/pending/internal/relationship"
	"github.com/talgya/pending/internal/rng"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	src := rng.NewSeeded(1)
	cat := catalog.New(nil, nil)

	profile := &catalog.CharacterProfile{
		ID:            "tester",
		InitialStatus: "h1b-active",
		GameStartYear: 2024,
	}
	profile.InitialStats.Health = 80
	cat.Profiles = []catalog.CharacterProfile{*profile}
	cat.Reindex()

	clk := clock.New(1, 2024)
	ch := character.NewStore()
	ch.Initialize(&cat.Profiles[0], clk.Now())

	ledger := finance.NewLedger()
	ledger.Initialize(5000, 3000, nil, 0)

	rel := relationship.NewGraph()
	rel.Initialize([]catalog.RelationshipSeed{
		{ID: "spouse", Name: "Sam", Type: "spouse", Level: 60},
	})

	apps := application.NewTracker(src, nil)
	return engine.New(cat, clk, ch, ledger, rel, apps, config.Default(), src, nil)
}

// playForward mutates every store so a snapshot has something to prove.
func playForward(eng *engine.Engine) {
	for i := 0; i < 100; i++ {
		eng.Clock.AdvanceDay()
	}
	eng.Character.SetFlag("warned", true)
	eng.Character.ModifyStat("stress", 25)
	eng.Finances.AddExpense(1200, "Attorney retainer", "legal", eng.Clock.Now())
	eng.Relationships.Modify("spouse", -10, "Long hours", eng.Clock.Now())
	eng.Applications.File("I-485", eng.Clock.Now())
	eng.Events.Complete("some-event", "some-choice", eng.Clock.Now(), "done")
}

func TestSnapshotRoundTrip(t *testing.T) {
	eng := testEngine(t)
	playForward(eng)

	snap := Capture(eng, 100)
	data, err := Marshal(snap)
	require.NoError(t, err)

	restoredSnap, err := Unmarshal(data)
	require.NoError(t, err)

	fresh := testEngine(t)
	Restore(fresh, restoredSnap)

	assert.Equal(t, eng.Clock.Now(), fresh.Clock.Now())
	assert.Equal(t, eng.Clock.TotalDaysElapsed, fresh.Clock.TotalDaysElapsed)
	assert.Equal(t, eng.Finances.Balance, fresh.Finances.Balance)
	assert.Equal(t, eng.Character.Stats.Stress, fresh.Character.Stats.Stress)
	assert.True(t, fresh.Character.BoolFlag("warned"))
	assert.Equal(t, -10+60, fresh.Relationships.Get("spouse").Level)
	require.Len(t, fresh.Applications.Applications, 1)
	assert.True(t, fresh.Events.HasCompleted("some-event"))
	assert.True(t, fresh.Clock.Paused(), "a restored game always lands paused")
	require.NotNil(t, fresh.Character.Profile, "profile pointer reattached from catalog")
}

func TestUnmarshalRejectsTampering(t *testing.T) {
	eng := testEngine(t)
	playForward(eng)

	data, err := Marshal(Capture(eng, 100))
	require.NoError(t, err)

	tampered := strings.Replace(string(data), `"balance":`, `"balance":9`, 1)
	_, err = Unmarshal([]byte(tampered))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestUnmarshalRejectsMissingChecksum(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":3}`))
	require.Error(t, err)
}

func TestUnmarshalRejectsNewerVersion(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":99,"checksum":"x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestCaptureTrimsHistory(t *testing.T) {
	eng := testEngine(t)
	for i := 0; i < 250; i++ {
		eng.Finances.AddIncome(1, "penny", eng.Clock.Now())
	}
	snap := Capture(eng, 100)
	assert.Len(t, snap.Finances.History, 100)
}

func TestCaptureLeavesLiveHistoryIntact(t *testing.T) {
	eng := testEngine(t)
	for i := 0; i < 250; i++ {
		eng.Finances.AddIncome(1, "penny", eng.Clock.Now())
	}
	for i := 0; i < 150; i++ {
		eng.Relationships.Modify("spouse", 0, "routine", eng.Clock.Now())
		eng.Events.Complete(fmt.Sprintf("event-%d", i), "ok", eng.Clock.Now(), "")
	}

	snap := Capture(eng, 100)
	assert.Len(t, snap.Finances.History, 100)
	assert.Len(t, snap.Relationships.Changes, 100)
	assert.Len(t, snap.Events.History, 100)

	assert.Len(t, eng.Finances.History, 250, "the live ledger keeps its full history")
	assert.Len(t, eng.Relationships.Changes, 150)
	assert.Len(t, eng.Events.History, 150)

	// A sealed snapshot must not see mutations made after capture.
	eng.Finances.AddIncome(1, "penny", eng.Clock.Now())
	assert.Len(t, snap.Finances.History, 100)
}

func TestStatistics(t *testing.T) {
	eng := testEngine(t)
	playForward(eng)
	eng.Finances.SendRemittance(300, eng.Clock.Now())

	stats := Capture(eng, 100).Statistics
	assert.Equal(t, 100, stats.TotalDaysPlayed)
	assert.Equal(t, 1, stats.EventsExperienced)
	assert.Equal(t, 1, stats.ApplicationsFiled)
	assert.Equal(t, 0, stats.ApplicationsDecided)
	assert.Equal(t, 300, stats.RemittancesSent)
	assert.Equal(t, 5000, stats.PeakBalance)
}

func TestSlotStore(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer db.Close()

	eng := testEngine(t)
	playForward(eng)

	require.NoError(t, db.SaveSlot(1, Capture(eng, 100)))

	loaded, err := db.LoadSlot(1)
	require.NoError(t, err)
	assert.Equal(t, eng.Clock.TotalDaysElapsed, loaded.Clock.TotalDaysElapsed)

	slots, err := db.Slots()
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, slots[0].Slot)
	assert.Equal(t, "tester", slots[0].ProfileID)

	// Saving again replaces, never duplicates.
	require.NoError(t, db.SaveSlot(1, Capture(eng, 100)))
	slots, err = db.Slots()
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	require.NoError(t, db.DeleteSlot(1))
	_, err = db.LoadSlot(1)
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestExportImport(t *testing.T) {
	eng := testEngine(t)
	playForward(eng)

	encoded, err := Export(Capture(eng, 100))
	require.NoError(t, err)

	snap, err := Import(encoded)
	require.NoError(t, err)
	assert.Equal(t, eng.Clock.TotalDaysElapsed, snap.Clock.TotalDaysElapsed)

	_, err = Import("not base64!!!")
	assert.Error(t, err)
}
