package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/pending/internal/api"
	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/character"
	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/config"
	"github.com/talgya/pending/internal/engine"
	"github.com/talgya/pending/internal/finance"
	"github.com/talgya/pending/internal/relationship"
	"github.com/talgya/pending/internal/rng"
	"github.com/talgya/pending/internal/save"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a playthrough headless",
		Long: `Run advances the simulation day by day, resolving events with a
random available choice, until the game ends or the month limit is hit.
With --listen the state is also served over HTTP while the run goes on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			dbPath, _ := cmd.Flags().GetString("db")
			profileID, _ := cmd.Flags().GetString("profile")
			seed, _ := cmd.Flags().GetInt64("seed")
			months, _ := cmd.Flags().GetInt("months")
			listen, _ := cmd.Flags().GetString("listen")
			slot, _ := cmd.Flags().GetInt("save-slot")
			loadSlot, _ := cmd.Flags().GetInt("load-slot")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("db") && cfg.SavePath != "" {
				dbPath = cfg.SavePath
			}
			if listen == "" {
				listen = cfg.ListenAddr
			}

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			if errs := cat.Validate(); len(errs) > 0 {
				for _, e := range errs {
					slog.Warn("catalog issue", "error", e)
				}
			}

			var src rng.Source
			if seed != 0 {
				src = rng.NewSeeded(seed)
			} else {
				src = rng.NewCrypto()
			}

			sess, err := newSession(cat, cfg, profileID, src)
			if err != nil {
				return err
			}

			db, err := save.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if loadSlot > 0 {
				snap, err := db.LoadSlot(loadSlot)
				if err != nil {
					return fmt.Errorf("load slot %d: %w", loadSlot, err)
				}
				save.Restore(sess.engine, snap)
				slog.Info("save loaded", "slot", loadSlot, "date", sess.clock.Now().String())
			}

			if listen != "" {
				server := api.NewServer(sess.controller, listen, nil)
				go func() {
					if err := server.ListenAndServe(); err != nil {
						slog.Error("api server failed", "error", err)
					}
				}()
			}

			sess.runHeadless(months)

			if slot > 0 {
				snap := save.Capture(sess.engine, cfg.HistoryLimit)
				if err := db.SaveSlot(slot, snap); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("profile", "", "Character profile id (default: first in catalog)")
	cmd.Flags().Int64("seed", 0, "Random seed; 0 uses entropy")
	cmd.Flags().Int("months", 120, "Stop after this many in-world months")
	cmd.Flags().String("listen", "", "Serve the HTTP API on this address while running")
	cmd.Flags().Int("save-slot", 0, "Save into this slot when the run ends")
	cmd.Flags().Int("load-slot", 0, "Resume from this save slot")
	return cmd
}

// session bundles every store of one playthrough.
type session struct {
	clock      *clock.Clock
	engine     *engine.Engine
	controller *engine.Controller
	rand       rng.Source
}

func newSession(cat *catalog.Catalog, cfg config.Config, profileID string, src rng.Source) (*session, error) {
	var profile *catalog.CharacterProfile
	if profileID != "" {
		profile = cat.Profile(profileID)
		if profile == nil {
			return nil, fmt.Errorf("unknown profile %q", profileID)
		}
	} else if len(cat.Profiles) > 0 {
		profile = &cat.Profiles[0]
	} else {
		return nil, fmt.Errorf("catalog has no character profiles")
	}

	clk := clock.New(1, profile.GameStartYear)
	start := clk.Now()

	ch := character.NewStore()
	ch.Initialize(profile, start)

	ledger := finance.NewLedger()
	ledger.DebtInstallmentRate = cfg.DebtInstallmentRate
	ledger.DebtInstallmentFlat = cfg.DebtInstallmentFlat
	fin := profile.InitialFinances
	var recurring []finance.RecurringExpense
	if fin.MonthlyExpenses > 0 {
		recurring = append(recurring, finance.RecurringExpense{
			Name: "Living expenses", Amount: fin.MonthlyExpenses,
			Category: "housing", IsRequired: true,
		})
	}
	ledger.Initialize(fin.BankBalance, fin.MonthlyIncome, recurring, fin.Debt)

	rel := relationship.NewGraph()
	rel.Initialize(profile.InitialRelationships)

	apps := application.NewTracker(src, nil)

	eng := engine.New(cat, clk, ch, ledger, rel, apps, cfg, src, nil)
	eng.Bootstrap()

	ctrl := engine.NewController(eng, engine.TimerScheduler{}, engine.Callbacks{
		OnMonthEnd: func(date clock.GameDate) {
			slog.Debug("month ended", "date", date.String())
		},
		OnForeshadow: func(msg string) {
			slog.Info("foreshadow", "message", msg)
		},
	}, nil)

	slog.Info("playthrough started",
		"profile", profile.ID,
		"status", string(ch.Status.Type),
		"balance", ledger.Balance,
		"start", start.String())

	return &session{clock: clk, engine: eng, controller: ctrl, rand: src}, nil
}

// runHeadless drives the simulation by manual advances, resolving every
// event with a random available choice.
func (s *session) runHeadless(maxMonths int) {
	started := time.Now()
	for !s.engine.Ended && s.clock.TotalMonthsElapsed < maxMonths {
		if s.engine.Events.EventShowing() {
			s.resolveCurrentEvent()
			continue
		}
		if in := s.engine.Events.NextInterrupt(); in != nil {
			slog.Info("interrupt", "message", in.Message, "priority", in.Priority)
			s.engine.Events.RemoveInterrupt(in.ID)
			continue
		}
		if !s.controller.ManualAdvance() {
			break
		}
	}

	stats := save.Capture(s.engine, 100).Statistics
	slog.Info("run finished",
		"date", s.clock.Now().String(),
		"months", s.clock.TotalMonthsElapsed,
		"events", stats.EventsExperienced,
		"applications", stats.ApplicationsFiled,
		"balance", s.engine.Finances.Balance,
		"ended", s.engine.Ended,
		"ending", s.engine.EndingID,
		"elapsed", time.Since(started).Round(time.Millisecond))
}

func (s *session) resolveCurrentEvent() {
	eng := s.engine
	ev := eng.Catalog.Event(eng.Events.CurrentEventID)
	if ev == nil {
		eng.Events.CurrentEventID = ""
		return
	}
	var available []string
	for i := range ev.Choices {
		if eng.ChoiceAvailable(&ev.Choices[i]) {
			available = append(available, ev.Choices[i].ID)
		}
	}
	if len(available) == 0 {
		// Nothing affordable; drop the event rather than deadlock the run.
		slog.Warn("no available choices", "event", ev.ID)
		eng.Events.Complete(ev.ID, "", s.clock.Now(), "")
		eng.Events.CurrentEventID = ""
		return
	}
	choiceID := available[s.rand.Intn(len(available))]
	eng.SelectChoice(choiceID)
	slog.Info("event resolved", "event", ev.ID, "choice", choiceID)
	eng.DismissOutcome()
}
