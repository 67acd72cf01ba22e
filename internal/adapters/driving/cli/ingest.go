package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Index PDF files from disk",
	Long: `Extracts, chunks, embeds and indexes the given PDF files without
going through the HTTP API. Failed files are reported but do not stop
the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cfgPath)
	if err != nil {
		return err
	}
	defer a.close()

	uploads := make([]driving.FileUpload, 0, len(args))
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		uploads = append(uploads, driving.FileUpload{
			Filename: filepath.Base(path),
			Content:  f,
		})
	}

	report, err := a.ingestor.Ingest(cmd.Context(), uploads)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	for _, fr := range report.Files {
		if fr.Succeeded() {
			cmd.Printf("  %s: %d chunks indexed\n", fr.Filename, fr.Chunks)
		} else {
			cmd.Printf("  %s: failed: %v\n", fr.Filename, fr.Err)
		}
	}
	cmd.Println(report.Summary())

	if report.AllFailed() {
		return fmt.Errorf("all %d files failed", len(report.Files))
	}
	return nil
}
