package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/api"
	"github.com/jonathan/interview-prep/internal/types"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved favorite questions",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved favorites, newest first",
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a question to favorites",
	RunE:  runFavoritesAdd,
}

var favoritesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one favorite with its full answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesShow,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a favorite by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var (
	favQuestion string
	favAnswer   string
	favCategory string
	favCompany  string
	favSkillTag string
)

func init() {
	favoritesAddCmd.Flags().StringVar(&favQuestion, "question", "", "Question text")
	favoritesAddCmd.Flags().StringVar(&favAnswer, "answer", "", "Model answer text")
	favoritesAddCmd.Flags().StringVar(&favCategory, "category", "", "Question category")
	favoritesAddCmd.Flags().StringVar(&favCompany, "company", "", "Company the question relates to")
	favoritesAddCmd.Flags().StringVar(&favSkillTag, "skill-tag", "", "Skill the question exercises")

	favoritesAddCmd.MarkFlagRequired("question") //nolint:errcheck
	favoritesAddCmd.MarkFlagRequired("answer")   //nolint:errcheck
	favoritesAddCmd.MarkFlagRequired("category") //nolint:errcheck

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesShowCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func newAPIClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.BackendURL, nil), nil
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	favorites, err := client.ListFavorites(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 {
		fmt.Fprintln(os.Stdout, "No favorites saved yet.")
		return nil
	}

	for _, q := range favorites {
		fmt.Fprintf(os.Stdout, "%s  [%s]\n  %s\n", q.ID, q.Category, q.Question)
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, _ []string) error {
	category, err := parseCategory(favCategory)
	if err != nil {
		return err
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	saved, err := client.AddFavorite(cmd.Context(), types.AddFavoriteRequest{
		Question: favQuestion,
		Answer:   favAnswer,
		Category: category,
		Company:  favCompany,
		SkillTag: favSkillTag,
	})
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Saved favorite %s\n", saved.ID)
	return nil
}

func runFavoritesShow(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	q, err := client.GetFavorite(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load favorite: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%s  [%s]\n\nQ: %s\n\nA: %s\n", q.ID, q.Category, q.Question, q.Answer)
	if q.Company != "" {
		fmt.Fprintf(os.Stdout, "\nCompany: %s\n", q.Company)
	}
	if q.SkillTag != "" {
		fmt.Fprintf(os.Stdout, "Skill: %s\n", q.SkillTag)
	}
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.RemoveFavorite(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Removed favorite %s\n", args[0])
	return nil
}
