/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// katib is the command-line front end of the screenplay line classifier.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"katib/internal/adaptive"
	"katib/internal/config"
	applog "katib/internal/log"
	"katib/internal/memory"
	"katib/internal/scenes"
	"katib/internal/scoring"
	"katib/internal/screenplay"
	"katib/internal/storage"
	"katib/internal/version"
)

var cfg config.AppConfig

func main() {
	rootCmd := &cobra.Command{
		Use:   "katib",
		Short: "Arabic screenplay line classifier",
		Long: `Katib classifies the lines of an Arabic screenplay into structural
roles (scene headers, character cues, dialogue, action, transitions) and
normalizes the blank-line layout those roles imply.`,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, _ = config.Load()
			applog.Init(applog.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				File:   cfg.Logging.File,
			})
		},
	}

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(reviewCmd())
	rootCmd.AddCommand(scenesCmd())
	rootCmd.AddCommand(correctionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readDocument reads the positional file argument or stdin.
func readDocument(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// buildScorer assembles the scoring strategy with optional persisted state.
func buildScorer(project string) (*scoring.Scorer, *memory.Memory, *adaptive.System) {
	mem := memory.New()
	ada := adaptive.New(applog.WithComponent("adaptive"))
	if project != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := storage.LoadLearnedNames(ctx, project, mem); err != nil {
			applog.L().Warn("load learned names failed", "err", err)
		}
		if payload, _, err := storage.LatestSnapshot(ctx, project, storage.KindAdaptive); err == nil && payload != nil {
			if !ada.ImportData(payload) {
				applog.L().Warn("stored correction snapshot rejected")
			}
		}
	}
	sc := scoring.Config{
		CloseGap:        cfg.Engine.CloseGap,
		ReviewThreshold: cfg.Engine.ReviewThreshold,
		FallbackMaxGap:  cfg.Engine.FallbackMaxGap,
	}
	return scoring.NewScorer(sc, mem, ada, applog.WithComponent("scoring")), mem, ada
}

func classifyCmd() *cobra.Command {
	var (
		scored  bool
		spacing bool
		asJSON  bool
		project string
	)
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify each line and print (type, text) pairs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args)
			if err != nil {
				return err
			}
			var mem *memory.Memory
			var classifier screenplay.Classifier = screenplay.NewCascade()
			if scored {
				classifier, mem, _ = buildScorer(project)
			}
			engine := screenplay.NewEngine(classifier, applog.WithComponent("engine"))
			var lines []screenplay.Line
			if spacing {
				lines = engine.Format(doc)
			} else {
				lines = engine.Run(doc)
			}
			if project != "" {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if mem == nil {
					mem = memory.New()
					_ = storage.LoadLearnedNames(ctx, project, mem)
				}
				scoring.ObserveLines(mem, lines)
				if err := storage.SaveLearnedNames(ctx, project, mem); err != nil {
					applog.L().Warn("save learned names failed", "err", err)
				}
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(lines)
			}
			for _, l := range lines {
				fmt.Printf("%-22s %s\n", l.Type, l.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&scored, "scored", false, "use the scoring strategy instead of the rule cascade")
	cmd.Flags().BoolVar(&spacing, "spacing", false, "normalize blank separators after classifying")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	cmd.Flags().StringVar(&project, "project", "", "project directory with persisted learned state")
	return cmd
}

func reviewCmd() *cobra.Command {
	var (
		project string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Score a document and list lines flagged for manual review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args)
			if err != nil {
				return err
			}
			scorer, _, _ := buildScorer(project)
			results := scorer.ClassifyBatchDetailed(doc)
			flagged := scoring.GetReviewableLines(results)
			stats := scoring.GetDoubtStatistics(results)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Flagged []scoring.Result        `json:"flagged"`
					Stats   scoring.DoubtStatistics `json:"stats"`
				}{flagged, stats})
			}
			for _, r := range flagged {
				fmt.Printf("line %d (doubt %d, %s): %s\n", r.Index+1, r.Doubt, r.Type, r.Text)
			}
			fmt.Printf("\n%d of %d scored lines flagged; average doubt %.1f\n",
				stats.Reviewable, stats.Scored, stats.AverageDoubt)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "project directory with persisted learned state")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func scenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes [file]",
		Short: "Print the scene blocks of a classified document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args)
			if err != nil {
				return err
			}
			engine := screenplay.NewEngine(screenplay.NewCascade(), applog.WithComponent("engine"))
			blocks := scenes.Build(engine.Run(doc))
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		},
	}
	return cmd
}

func correctionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrections",
		Short: "Manage the learned correction snapshot of a project",
	}
	cmd.AddCommand(correctionsExportCmd())
	cmd.AddCommand(correctionsImportCmd())
	cmd.AddCommand(correctionsRecordCmd())
	return cmd
}

func correctionsExportCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project's latest correction snapshot to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			payload, ts, err := storage.LatestSnapshot(ctx, project, storage.KindAdaptive)
			if err != nil {
				return err
			}
			if payload == nil {
				return fmt.Errorf("project %s has no correction snapshot", project)
			}
			applog.L().Info("exporting snapshot", "taken", ts)
			_, err = os.Stdout.Write(append(payload, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&project, "project", ".", "project directory")
	return cmd
}

func correctionsImportCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Validate a correction snapshot and store it in the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args)
			if err != nil {
				return err
			}
			ada := adaptive.New(applog.WithComponent("adaptive"))
			if !ada.ImportData([]byte(data)) {
				return fmt.Errorf("snapshot rejected: malformed corrections data")
			}
			payload, err := ada.ExportData()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return storage.SaveSnapshot(ctx, project, storage.KindAdaptive, payload, time.Now())
		},
	}
	cmd.Flags().StringVar(&project, "project", ".", "project directory")
	return cmd
}

func correctionsRecordCmd() *cobra.Command {
	var (
		project  string
		line     string
		from, to string
		previous string
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one user correction and persist the updated snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ada := adaptive.New(applog.WithComponent("adaptive"))
			if payload, _, err := storage.LatestSnapshot(ctx, project, storage.KindAdaptive); err == nil && payload != nil {
				ada.ImportData(payload)
			}
			repeated := ada.RecordCorrection(line,
				screenplay.Type(from), screenplay.Type(to), screenplay.Type(previous))
			if repeated {
				fmt.Fprintln(os.Stderr, "note: this mistake keeps repeating; consider reviewing the pattern")
			}
			payload, err := ada.ExportData()
			if err != nil {
				return err
			}
			return storage.SaveSnapshot(ctx, project, storage.KindAdaptive, payload, time.Now())
		},
	}
	cmd.Flags().StringVar(&project, "project", ".", "project directory")
	cmd.Flags().StringVar(&line, "line", "", "the corrected line's text")
	cmd.Flags().StringVar(&from, "from", "", "type the classifier assigned")
	cmd.Flags().StringVar(&to, "to", "", "type the line should have")
	cmd.Flags().StringVar(&previous, "previous", "blank", "type of the preceding line")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
