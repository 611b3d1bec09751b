// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-prep/internal/convert"
	"github.com/pdiddy/paper-prep/internal/pipeline"
	"github.com/pdiddy/paper-prep/pkg/types"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Extract, clean, and segment the text of one PDF",
	Long: `Preprocess extracts the linear text layer of a PDF, removes bracketed
citation markers such as [12], folds all whitespace to single spaces, and
writes the result to --out_text. With --out_json it also splits the text
into sections at detected headers and writes them as a JSON object.

Headers are found heuristically. The pattern detector treats any
capitalized phrase, or any match of --signature, as a header; the
vocabulary detector only matches known section names (Introduction,
Methods, ...) or those in a --headings file.`,
	Args: cobra.NoArgs,
	RunE: runPreprocess,
}

func init() {
	preprocessCmd.Flags().String("pdf", "", "input PDF path (required)")
	preprocessCmd.Flags().String("out_text", "", "output path for the cleaned text (required)")
	preprocessCmd.Flags().String("out_json", "", "output path for the section map JSON")
	preprocessCmd.Flags().String("backend", string(types.BackendNative), "extraction backend: native or container")
	preprocessCmd.Flags().String("container-runtime", "", "runtime for the container backend: docker or podman (default: detect)")
	preprocessCmd.Flags().String("image", convert.DefaultPdftotextImage, "pdftotext image for the container backend")
	preprocessCmd.Flags().Bool("validate", false, "validate PDF structure before extracting")
	addDetectorFlags(preprocessCmd)

	_ = preprocessCmd.MarkFlagRequired("pdf")
	_ = preprocessCmd.MarkFlagRequired("out_text")

	rootCmd.AddCommand(preprocessCmd)
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	cfg, err := preprocessConfig(cmd)
	if err != nil {
		return err
	}

	detector, err := newDetector(cfg.Detector, cfg.HeadingsFile, cfg.Signature)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	_, err = pipeline.Run(cfg, extractor, detector, os.Stdout)
	return err
}

// preprocessConfig builds the run configuration once from flags, env, and
// the config file.
func preprocessConfig(cmd *cobra.Command) (types.PreprocessConfig, error) {
	if err := bindFlags(cmd); err != nil {
		return types.PreprocessConfig{}, err
	}

	pdfPath, _ := cmd.Flags().GetString("pdf")
	textPath, _ := cmd.Flags().GetString("out_text")
	sectionsPath, _ := cmd.Flags().GetString("out_json")
	detector, headings, signature := detectorConfig()

	cfg := types.PreprocessConfig{
		PDFPath:          pdfPath,
		TextPath:         textPath,
		SectionsPath:     sectionsPath,
		Backend:          types.ExtractionBackend(viper.GetString("backend")),
		ContainerRuntime: viper.GetString("container_runtime"),
		ContainerImage:   viper.GetString("container_image"),
		Detector:         detector,
		HeadingsFile:     headings,
		Signature:        signature,
		Validate:         viper.GetBool("validate"),
	}
	return cfg, validateConfig(cfg)
}

func validateConfig(cfg types.PreprocessConfig) error {
	if cfg.PDFPath == "" {
		return &ArgumentError{Flag: "pdf", Reason: "input PDF path is required"}
	}
	if cfg.TextPath == "" {
		return &ArgumentError{Flag: "out_text", Reason: "output text path is required"}
	}
	if cfg.SectionsPath != "" && cfg.SectionsPath == cfg.TextPath {
		return &ArgumentError{Flag: "out_json", Value: cfg.SectionsPath, Reason: "must differ from --out_text"}
	}
	return checkBackend(cfg.Backend)
}
