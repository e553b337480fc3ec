package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shipshare.GO/config"
	allocationService "shipshare.GO/service/allocation"
)

var (
	importFile     string
	importOperator string
)

var importCmd = &cobra.Command{
	Use:   "allocations:import",
	Short: "Import allocation submissions from CSV (one row per merchant, grouped by order_number)",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := allocationService.ImportAllocations(db, f, allocationService.ImportOptions{
			Operator: importOperator,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:      %d
Imported:      %d
Skipped:       %d
Warnings:      %d
`, res.Rows, res.Imported, res.Skipped, len(res.Warnings))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "allocations.csv", "CSV file to import")
	importCmd.Flags().StringVarP(&importOperator, "operator", "o", "import", "Operator recorded in history rows")
	rootCmd.AddCommand(importCmd)
}
