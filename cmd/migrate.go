package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipshare.GO/config"
	allocationEntity "shipshare.GO/model/entity/allocation"
	costEntity "shipshare.GO/model/entity/cost"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Create or update the allocation tables",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		err = db.AutoMigrate(
			&allocationEntity.AllocationMain{},
			&allocationEntity.AllocationDetail{},
			&allocationEntity.AllocationHistory{},
			&costEntity.ShippingCost{},
		)
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		fmt.Println("Migration complete.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
