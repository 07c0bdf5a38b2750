package cmd

import (
	"fmt"
	"strings"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/recommend"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print makeup recommendations for a skin tone",
	Long: `Print product recommendations from the built-in catalog.

Without quiz answers the foundation shortlist for the tone is printed, the
same list /recommend returns. With --full, or any quiz flag, the six-step
routine of /full-makeup-recommend is printed. Unknown answers fall back to
the catalog defaults.

Examples:
  skintone-advisor recommend --tone dark
  skintone-advisor recommend --tone light --style glam --skin-type dry --finish dewy`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().String("tone", "", "Skin tone: light, medium or dark")
	recommendCmd.Flags().String("style", "", "Makeup style: natural, glam or bold")
	recommendCmd.Flags().String("skin-type", "", "Skin type: oily, dry or combination")
	recommendCmd.Flags().String("finish", "", "Foundation finish: matte or dewy")
	recommendCmd.Flags().Bool("full", false, "Print the full makeup routine")
	recommendCmd.Flags().Bool("json", false, "Output as JSON")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	catalog := recommend.NewCatalog(config.LoadCatalog())
	tone := mustGetString(cmd, "tone")

	full := mustGetBool(cmd, "full")
	for _, name := range []string{"style", "skin-type", "finish"} {
		if cmd.Flags().Changed(name) {
			full = true
		}
	}

	var rec recommend.Recommendation
	if full {
		rec = catalog.Full(tone, recommend.Quiz{
			MakeupStyle: mustGetString(cmd, "style"),
			SkinType:    mustGetString(cmd, "skin-type"),
			Finish:      mustGetString(cmd, "finish"),
		})
	} else {
		rec = catalog.Foundations(tone)
	}

	if mustGetBool(cmd, "json") {
		return outputJSON(rec)
	}

	fmt.Printf("Recommendations for %s skin", rec.SkinTone)
	if rec.Quiz != nil {
		fmt.Printf(" (%s style, %s skin, %s finish)", rec.Quiz.MakeupStyle, rec.Quiz.SkinType, rec.Quiz.Finish)
	}
	fmt.Println(":")
	for _, p := range rec.Products {
		fmt.Printf("  %d. %s  %s\n", p.ID, p.Name, p.Link)
	}
	if len(rec.Fallbacks) > 0 {
		fmt.Printf("\nDefaults used for: %s\n", strings.Join(rec.Fallbacks, ", "))
	}
	return nil
}
