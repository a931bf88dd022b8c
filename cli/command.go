package cli

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kvesta/pomvuln/config"
	"github.com/kvesta/pomvuln/pkg/vulnlib"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const versions = "pomvuln version 0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "pomvuln [OPTIONS]",
		Short: "Maven dependency CVE check",
		Long: `Pomvuln reads the dependencies declared in a Maven pom.xml and reports
the known CVEs of each one, for use as a step of a CI pipeline`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfgFile string
	dbFile  string
)

// newViper layers config file, environment and flags. Environment keys are
// POMVULN_<FLAG>, and the pom path is also read from INPUT_POM-PATH, the
// variable a GitHub Action receives its pom-path input in.
func newViper() *viper.Viper {
	v := viper.New()

	// a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("failed to read config %s, error: %v", cfgFile, err)
		}
	}

	v.SetEnvPrefix("POMVULN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("pom-path", "POMVULN_POM_PATH", "INPUT_POM-PATH")

	return v
}

func Execute() error {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(versions)
		},
	}

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local CVE database",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: `Import {"<gav>": ["CVE-..."]} entries into the local CVE database`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := importDB(dbFile, args[0]); err != nil {
				log.Printf("Importing CVE database failed, error: %v", err)
				os.Exit(1)
			}
		},
	}

	importCmd.Flags().StringVar(&dbFile, "db", "", "path of the sqlite database")
	_ = importCmd.MarkFlagRequired("db")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")

	dbCmd.AddCommand(importCmd)

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(versionCmd)
	return rootCmd.Execute()
}

func importDB(dbPath, jsonPath string) error {
	f, err := os.Open(jsonPath)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := vulnlib.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Import(config.Ctx, f)
	if err != nil {
		return err
	}

	log.Printf(config.Green("Imported %d dependencies into %s"), n, dbPath)
	return nil
}
