package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/pending/internal/save"
)

func newSavesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}
	cmd.AddCommand(newSavesListCmd(), newSavesDeleteCmd(), newSavesExportCmd(), newSavesImportCmd())
	return cmd
}

func openSaveDB(cmd *cobra.Command) (*save.DB, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	return save.Open(dbPath)
}

func newSavesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List occupied save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openSaveDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			slots, err := db.Slots()
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Println("no saves")
				return nil
			}
			for _, s := range slots {
				fmt.Printf("slot %d: %s at %s (%d months), saved %s\n",
					s.Slot, s.ProfileID, s.GameDate, s.MonthsPlayed,
					s.SavedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newSavesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot %q", args[0])
			}
			db, err := openSaveDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.DeleteSlot(slot)
		},
	}
}

func newSavesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <slot>",
		Short: "Export a save slot as a portable string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot %q", args[0])
			}
			db, err := openSaveDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := db.LoadSlot(slot)
			if err != nil {
				return err
			}
			encoded, err := save.Export(snap)
			if err != nil {
				return err
			}
			fmt.Println(encoded)
			return nil
		},
	}
}

func newSavesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <slot> [file]",
		Short: "Import an exported save into a slot",
		Long:  "Import reads the exported string from the given file, or stdin when omitted.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot %q", args[0])
			}

			var data []byte
			if len(args) == 2 {
				data, err = os.ReadFile(args[1])
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}

			snap, err := save.Import(string(bytes.TrimSpace(data)))
			if err != nil {
				return err
			}

			db, err := openSaveDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.SaveSlot(slot, snap)
		},
	}
}
