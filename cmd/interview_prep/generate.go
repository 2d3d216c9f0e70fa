package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/api"
	"github.com/jonathan/interview-prep/internal/generate"
	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/jonathan/interview-prep/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate [job description]",
	Short: "Generate interview questions for a job description",
	Long:  "Generate categorized interview questions with model answers. The job description can be passed as an argument, read from a file, or fetched from a job posting URL.",
	RunE:  runGenerate,
}

var (
	generateJobFile    string
	generateJobURL     string
	generateStream     bool
	generateShowAnswer bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateJobFile, "job-file", "f", "", "Read the job description from a file (txt, md, html, pdf, docx)")
	generateCmd.Flags().StringVarP(&generateJobURL, "job-url", "u", "", "Fetch the job description from a job posting URL")
	generateCmd.Flags().BoolVar(&generateStream, "stream", false, "Stream questions as they are generated")
	generateCmd.Flags().BoolVar(&generateShowAnswer, "show-answers", false, "Print model answers along with questions")
	rootCmd.AddCommand(generateCmd)
}

// resolveJobDescription picks the job description source: positional argument,
// --job-file, or --job-url. Exactly one must be provided.
func resolveJobDescription(ctx context.Context, args []string, jobFile, jobURL string, verbose bool) (string, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if jobFile != "" {
		sources++
	}
	if jobURL != "" {
		sources++
	}
	if sources == 0 {
		return "", fmt.Errorf("provide a job description argument, --job-file, or --job-url")
	}
	if sources > 1 {
		return "", fmt.Errorf("job description argument, --job-file, and --job-url are mutually exclusive")
	}

	switch {
	case jobFile != "":
		text, _, err := ingestion.FromFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to ingest job description file: %w", err)
		}
		return text, nil
	case jobURL != "":
		text, _, err := ingestion.FromURL(ctx, jobURL, verbose)
		if err != nil {
			return "", fmt.Errorf("failed to ingest job posting URL: %w", err)
		}
		return text, nil
	default:
		return strings.Join(args, " "), nil
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	jobDescription, err := resolveJobDescription(ctx, args, generateJobFile, generateJobURL, cfg.Verbose)
	if err != nil {
		return err
	}
	if strings.TrimSpace(jobDescription) == "" {
		return fmt.Errorf("job description is empty")
	}

	var opts *api.Options
	if cfg.TimeoutSeconds > 0 {
		opts = &api.Options{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	client := api.NewClient(cfg.BackendURL, opts)

	var results *types.ResultSet
	if generateStream || cfg.Stream {
		results, err = generateStreaming(ctx, client, jobDescription)
	} else {
		fmt.Fprintln(os.Stdout, "Generating questions...")
		results, err = generate.NewOneShotFetcher(client).Fetch(ctx, jobDescription)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	printResults(results, generateShowAnswer, cfg.Verbose)
	return nil
}

// generateStreaming runs the streaming path, echoing backend status messages
// and a running question count while the session is live. A mid-stream
// disconnect keeps whatever arrived before the failure.
func generateStreaming(ctx context.Context, client *api.Client, jobDescription string) (*types.ResultSet, error) {
	fetcher := generate.NewStreamingFetcher(client, func(message string) {
		fmt.Fprintf(os.Stderr, "backend: %s\n", message)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		var lastMessage string
		var lastCount int
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := fetcher.Session().Snapshot()
				if snap.StatusMessage != "" && snap.StatusMessage != lastMessage {
					lastMessage = snap.StatusMessage
					fmt.Fprintf(os.Stdout, "%s\n", lastMessage)
				}
				if count := snap.Results.Count(); count != lastCount {
					lastCount = count
					fmt.Fprintf(os.Stdout, "\r%d questions so far", count)
				}
				if snap.Status.Terminal() {
					return
				}
			}
		}
	}()

	results, err := fetcher.Fetch(ctx, jobDescription)
	<-done
	fmt.Fprintln(os.Stdout)
	if err != nil {
		// Partial results survive a mid-stream failure.
		snap := fetcher.Session().Snapshot()
		if snap.Results.Count() > 0 {
			fmt.Fprintf(os.Stderr, "stream ended early, keeping %d questions: %v\n", snap.Results.Count(), err)
			return snap.Results, nil
		}
		return nil, err
	}
	return results, nil
}

// printResults writes the result set grouped by category. Answers start
// hidden and are revealed per question, mirroring the interactive client.
func printResults(results *types.ResultSet, showAnswers, verbose bool) {
	if verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintJobAnalysis(results.JobAnalysis)
		printer.PrintResultSummary(results)
	}

	view := ui.NewViewState()

	for _, category := range types.Categories() {
		questions := results.Get(category)
		if len(questions) == 0 {
			continue
		}

		fmt.Fprintf(os.Stdout, "\n=== %s (%d) ===\n", strings.ToUpper(observability.CategoryLabel(category)), len(questions))
		for i, q := range questions {
			fmt.Fprintf(os.Stdout, "\n%d. %s\n", i+1, q.Question)
			if q.Difficulty != "" {
				fmt.Fprintf(os.Stdout, "   [%s]\n", q.Difficulty)
			}
			if showAnswers && view.Reveal(q.ID) {
				fmt.Fprintf(os.Stdout, "   Answer: %s\n", q.Answer)
			}
		}
	}

	if !showAnswers {
		fmt.Fprintln(os.Stdout, "\nRun with --show-answers to include model answers.")
	}
}
