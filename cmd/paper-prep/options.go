// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-prep/internal/container"
	"github.com/pdiddy/paper-prep/internal/convert"
	"github.com/pdiddy/paper-prep/internal/segment"
	"github.com/pdiddy/paper-prep/pkg/types"
)

// ArgumentError reports an invalid command-line or config value. It is
// returned before any document is processed.
type ArgumentError struct {
	Flag   string
	Value  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("--%s: %s", e.Flag, e.Reason)
	}
	return fmt.Sprintf("--%s %q: %s", e.Flag, e.Value, e.Reason)
}

// configKeys maps viper keys to the flag that overrides them. Values come
// from the flag when set, then PAPER_PREP_* env vars, then the config file.
var configKeys = map[string]string{
	"backend":           "backend",
	"container_runtime": "container-runtime",
	"container_image":   "image",
	"detector":          "detector",
	"headings":          "headings",
	"signature":         "signature",
	"validate":          "validate",
}

// addDetectorFlags registers the header detection flags on cmd.
func addDetectorFlags(cmd *cobra.Command) {
	cmd.Flags().String("detector", string(types.DetectorPattern), "header detector: pattern or vocabulary")
	cmd.Flags().String("headings", "", "YAML headings file for the vocabulary detector")
	cmd.Flags().String("signature", "", "header regular expression for the pattern detector (default "+segment.DefaultSignature+")")
}

// bindFlags binds the flags cmd defines to their viper keys. Binding
// happens per invocation because preprocess and segment share keys.
func bindFlags(cmd *cobra.Command) error {
	for key, flag := range configKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// detectorConfig resolves the detector settings shared by both commands.
func detectorConfig() (kind types.DetectorKind, headings, signature string) {
	return types.DetectorKind(viper.GetString("detector")), viper.GetString("headings"), viper.GetString("signature")
}

// newDetector builds the header detector selected by kind. headingsFile
// only applies to the vocabulary detector, signature only to the pattern
// detector.
func newDetector(kind types.DetectorKind, headingsFile, signature string) (segment.HeaderDetector, error) {
	switch kind {
	case types.DetectorPattern, "":
		if headingsFile != "" {
			return nil, &ArgumentError{Flag: "headings", Value: headingsFile, Reason: "requires --detector vocabulary"}
		}
		if signature == "" {
			return segment.NewPatternDetector(), nil
		}
		d, err := segment.NewPatternDetectorFrom(signature)
		if err != nil {
			return nil, &ArgumentError{Flag: "signature", Value: signature, Reason: err.Error()}
		}
		return d, nil
	case types.DetectorVocabulary:
		if signature != "" {
			return nil, &ArgumentError{Flag: "signature", Value: signature, Reason: "requires --detector pattern"}
		}
		var (
			d   *segment.VocabularyDetector
			err error
		)
		if headingsFile == "" {
			d, err = segment.NewVocabularyDetector(segment.DefaultHeadings)
		} else {
			d, err = segment.LoadVocabulary(headingsFile)
		}
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, &ArgumentError{Flag: "detector", Value: string(kind), Reason: "want pattern or vocabulary"}
	}
}

// checkBackend rejects unknown extraction backends.
func checkBackend(b types.ExtractionBackend) error {
	switch b {
	case types.BackendNative, types.BackendContainer:
		return nil
	default:
		return &ArgumentError{Flag: "backend", Value: string(b), Reason: "want native or container"}
	}
}

// newExtractor builds the extractor for cfg, wrapped in pdfcpu validation
// when cfg.Validate is set.
func newExtractor(cfg types.PreprocessConfig) (convert.Extractor, error) {
	var ex convert.Extractor
	switch cfg.Backend {
	case types.BackendNative:
		ex = convert.NewPlainTextExtractor()
	case types.BackendContainer:
		rt, err := container.DetectRuntime(cfg.ContainerRuntime)
		if err != nil {
			return nil, err
		}
		ce, err := convert.NewContainerExtractor(rt, cfg.ContainerImage)
		if err != nil {
			return nil, err
		}
		ex = ce
	default:
		return nil, checkBackend(cfg.Backend)
	}

	if cfg.Validate {
		ex = convert.NewValidatingExtractor(ex)
	}
	return ex, nil
}
