package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/api"
	"github.com/jonathan/interview-prep/internal/types"
)

var loadMoreCmd = &cobra.Command{
	Use:   "load-more [job description]",
	Short: "Generate additional questions for one category",
	Long:  "Ask the backend for more questions in a single category, excluding questions you already have. An empty result means no further unique questions were found.",
	RunE:  runLoadMore,
}

var (
	loadMoreJobFile  string
	loadMoreJobURL   string
	loadMoreCategory string
	loadMoreExisting []string
	loadMoreAnswers  bool
)

func init() {
	loadMoreCmd.Flags().StringVarP(&loadMoreJobFile, "job-file", "f", "", "Read the job description from a file")
	loadMoreCmd.Flags().StringVarP(&loadMoreJobURL, "job-url", "u", "", "Fetch the job description from a job posting URL")
	loadMoreCmd.Flags().StringVarP(&loadMoreCategory, "category", "c", "", "Question category (technical, behavioral, situational, company_specific)")
	loadMoreCmd.Flags().StringArrayVarP(&loadMoreExisting, "existing", "e", nil, "Question text you already have (repeatable)")
	loadMoreCmd.Flags().BoolVar(&loadMoreAnswers, "show-answers", false, "Print model answers along with questions")

	loadMoreCmd.MarkFlagRequired("category") //nolint:errcheck

	rootCmd.AddCommand(loadMoreCmd)
}

func parseCategory(s string) (types.Category, error) {
	candidate := types.Category(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range types.Categories() {
		if c == candidate {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func runLoadMore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	category, err := parseCategory(loadMoreCategory)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	jobDescription, err := resolveJobDescription(ctx, args, loadMoreJobFile, loadMoreJobURL, cfg.Verbose)
	if err != nil {
		return err
	}

	var opts *api.Options
	if cfg.TimeoutSeconds > 0 {
		opts = &api.Options{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	client := api.NewClient(cfg.BackendURL, opts)

	resp, err := client.LoadMore(ctx, types.LoadMoreRequest{
		JobDescription:    jobDescription,
		Category:          category,
		ExistingQuestions: loadMoreExisting,
	})
	if err != nil {
		return fmt.Errorf("load-more failed: %w", err)
	}

	if len(resp.Questions) == 0 {
		fmt.Fprintln(os.Stdout, "No more unique questions for this category.")
		return nil
	}

	for i, q := range resp.Questions {
		fmt.Fprintf(os.Stdout, "\n%d. %s\n", i+1, q.Question)
		if loadMoreAnswers {
			fmt.Fprintf(os.Stdout, "   Answer: %s\n", q.Answer)
		}
	}
	return nil
}
