package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skintone-advisor",
	Short: "Classify skin tone from a face photo and recommend makeup",
	Long: `Skintone Advisor finds the face in a photo, samples the cheek area and
classifies the skin tone as light, medium or dark. The tone feeds a static
product catalog that recommends foundations or a full six-step makeup routine.

It runs as an HTTP service for the upload frontend (serve) or locally on
image files (classify, recommend).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
