package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ednatemplates/services"
)

// generateCmd produces template files from a YAML run config without running
// the HTTP server. Registered as a subcommand on the PocketBase root command.
func generateCmd() *cobra.Command {
	var (
		configPath string
		inputDir   string
		outDir     string
		withGuide  bool
	)

	cmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a template workbook from a YAML run config",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := services.LoadRunConfig(configPath)
			if err != nil {
				return err
			}

			checklist, err := services.LoadChecklist(inputDir)
			if err != nil {
				return err
			}

			result, err := services.GenerateWorkbook(checklist, cfg)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			outPath := filepath.Join(outDir, result.FileName)
			if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			fmt.Printf("Wrote %s (%d sheets, %d fields)\n", outPath, result.SheetCount, result.FieldCount)

			if withGuide {
				pdfBytes, err := services.GenerateFieldGuide(checklist, cfg)
				if err != nil {
					return err
				}
				guidePath := filepath.Join(outDir, fmt.Sprintf("FAIRe_%s_guide.pdf", cfg.ProjectID))
				if err := os.WriteFile(guidePath, pdfBytes, 0o644); err != nil {
					return fmt.Errorf("write field guide: %w", err)
				}
				fmt.Printf("Wrote %s\n", guidePath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the YAML run config")
	cmd.Flags().StringVar(&inputDir, "input", defaultInputDir(), "directory with the FAIRe checklist workbooks")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write generated files to")
	cmd.Flags().BoolVar(&withGuide, "guide", false, "also write the PDF field guide")

	return cmd
}
