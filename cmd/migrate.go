package cmd

import (
	"log"

	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()
	},
}

// openDB opens the configured database and makes sure it's up to date.
func openDB() *gorm.DB {
	db, err := gorm.Open("sqlite3", viper.GetString("db"))
	if err != nil {
		log.Fatal(err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal(err)
	}
	return db
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
