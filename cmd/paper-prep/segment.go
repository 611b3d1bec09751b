// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-prep/internal/pipeline"
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Split an already cleaned text file into sections",
	Long: `Segment reads a text file written by preprocess --out_text and writes
its section map as JSON, so a different header detector can be tried
without extracting the PDF again.`,
	Args: cobra.NoArgs,
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().String("text", "", "cleaned text file (required)")
	segmentCmd.Flags().String("out_json", "", "output path for the section map JSON (required)")
	addDetectorFlags(segmentCmd)

	_ = segmentCmd.MarkFlagRequired("text")
	_ = segmentCmd.MarkFlagRequired("out_json")

	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	textPath, _ := cmd.Flags().GetString("text")
	jsonPath, _ := cmd.Flags().GetString("out_json")

	detector, err := newDetector(detectorConfig())
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	_, err = pipeline.SegmentFile(textPath, jsonPath, detector, os.Stdout)
	return err
}
