package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text <file>",
	Short: "Extract job description text from a document or image",
	Long:  "Upload a document (txt, md, html, pdf, docx) or screenshot to the backend and print the extracted plain text. Useful for turning a saved posting into input for generate.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractText,
}

func init() {
	rootCmd.AddCommand(extractTextCmd)
}

// imageExtensions are routed through the base64 OCR endpoint.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

func runExtractText(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	path := args[0]
	ctx := cmd.Context()

	var text string
	if imageExtensions[filepath.Ext(path)] {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		text, err = client.ExtractTextBase64(ctx, base64.StdEncoding.EncodeToString(data))
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
	} else {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = file.Close() }()

		text, err = client.ExtractText(ctx, filepath.Base(path), file)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}
