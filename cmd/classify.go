package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/constants"
	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var classifyCmd = &cobra.Command{
	Use:   "classify FILE...",
	Short: "Classify the skin tone of local image files",
	Long: `Run the skin tone analysis on one or more local image files.

Each file goes through the same pipeline as /upload-image: decode, locate the
most confident face, sample the cheek patch and classify the average color.

Examples:
  # Classify a single photo
  skintone-advisor classify selfie.jpg

  # Classify a folder with 8 workers and print JSON
  skintone-advisor classify photos/*.jpg --concurrency 8 --json

  # Skip detection and sample a known face box (normalized x,y,width,height)
  skintone-advisor classify portrait.png --face 0.25,0.1,0.5,0.6`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
	classifyCmd.Flags().Bool("json", false, "Output as JSON instead of progress bar")
	classifyCmd.Flags().String("face", "", "Use this normalized face box x,y,w,h instead of running the detector")
	addDetectorFlags(classifyCmd)
}

// ClassifiedFile is the analysis result for one input file
type ClassifiedFile struct {
	Path       string                `json:"path"`
	SkinTone   string                `json:"skin_tone,omitempty"`
	Outcome    skintone.Outcome      `json:"outcome,omitempty"`
	Hex        string                `json:"hex,omitempty"`
	Box        *skintone.BoundingBox `json:"box,omitempty"`
	Confidence float64               `json:"confidence,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// ClassifyResult summarizes a classify run
type ClassifyResult struct {
	Files      []ClassifiedFile `json:"files"`
	Counts     map[string]int   `json:"counts"`
	Errors     int              `json:"errors"`
	DurationMs int64            `json:"duration_ms"`
}

// parseFaceBox parses normalized "x,y,w,h" into a detection with full confidence.
func parseFaceBox(s string) (facedetect.Detection, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return facedetect.Detection{}, fmt.Errorf("face box must have 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return facedetect.Detection{}, fmt.Errorf("invalid face box value %q: %w", p, err)
		}
		vals[i] = v
	}
	for i, v := range vals {
		if v < 0 || v > 1 {
			return facedetect.Detection{}, fmt.Errorf("face box value %q must be within [0,1]", strings.TrimSpace(parts[i]))
		}
	}
	if vals[2] == 0 || vals[3] == 0 {
		return facedetect.Detection{}, fmt.Errorf("face box width and height must be positive")
	}
	// A box running past the right or bottom edge is clipped to the image.
	return facedetect.Detection{X: vals[0], Y: vals[1], W: vals[2], H: vals[3], Confidence: 1}.Clamp(), nil
}

// classifyLocator returns the locator for a classify run, honoring --face.
func classifyLocator(cmd *cobra.Command, cfg *config.Config) (facedetect.Locator, error) {
	if face := mustGetString(cmd, "face"); face != "" {
		det, err := parseFaceBox(face)
		if err != nil {
			return nil, err
		}
		return facedetect.NewStatic(det), nil
	}
	return newLocator(cfg)
}

// classifyFile reads and analyzes a single file.
func classifyFile(ctx context.Context, analyzer *skintone.Analyzer, path string) ClassifiedFile {
	out := ClassifiedFile{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		out.Error = fmt.Sprintf("reading file: %v", err)
		return out
	}

	res, err := analyzer.Analyze(ctx, data)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	out.SkinTone = res.Label()
	out.Outcome = res.Outcome
	if res.Outcome == skintone.OutcomeOK {
		out.Hex = res.Average.Hex()
	}
	if res.FaceFound() {
		box := res.Box
		out.Box = &box
		out.Confidence = res.Confidence
	}
	return out
}

func runClassify(cmd *cobra.Command, args []string) error {
	concurrency := mustGetInt(cmd, "concurrency")
	jsonOutput := mustGetBool(cmd, "json")
	if concurrency < 1 {
		concurrency = 1
	}

	cfg := config.Load()
	applyDetectorFlags(cmd, cfg)

	locator, err := classifyLocator(cmd, cfg)
	if err != nil {
		return err
	}
	defer locator.Close()
	analyzer := skintone.NewAnalyzer(locator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	startTime := time.Now()

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("Classifying"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("images"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionFullWidth(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	// Per-file failures are recorded in results, so workers never return an error.
	results := make([]ClassifiedFile, len(args))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, path := range args {
		g.Go(func() error {
			results[i] = classifyFile(ctx, analyzer, path)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if bar != nil {
		fmt.Println()
	}

	result := ClassifyResult{
		Files:      results,
		Counts:     make(map[string]int),
		DurationMs: time.Since(startTime).Milliseconds(),
	}
	for _, r := range results {
		if r.Error != "" {
			result.Errors++
			continue
		}
		result.Counts[string(r.Outcome)]++
	}

	if jsonOutput {
		return outputJSON(result)
	}

	fmt.Println()
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Printf("  %s: error: %s\n", r.Path, r.Error)
		case r.Outcome == skintone.OutcomeOK:
			fmt.Printf("  %s: %s (%s, face confidence %.2f)\n", r.Path, r.SkinTone, r.Hex, r.Confidence)
		default:
			fmt.Printf("  %s: %s\n", r.Path, r.SkinTone)
		}
	}

	fmt.Println("\nClassification complete!")
	fmt.Printf("  Images:   %d\n", len(results))
	for _, c := range skintone.Categories {
		if n := countCategory(results, c); n > 0 {
			fmt.Printf("  %-8s  %d\n", string(c)+":", n)
		}
	}
	if result.Errors > 0 {
		fmt.Printf("  Errors:   %d\n", result.Errors)
	}
	fmt.Printf("  Duration: %s\n", formatDuration(time.Since(startTime)))

	return nil
}

func countCategory(results []ClassifiedFile, c skintone.Category) int {
	n := 0
	for _, r := range results {
		if r.Outcome == skintone.OutcomeOK && r.SkinTone == string(c) {
			n++
		}
	}
	return n
}
