package main

import (
	"github.com/spf13/cobra"

	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/crewup-backend/internal/services"
)

const reindexPageSize = 100

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the post search index from the posts table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, logger, err := connect(cmd)
		if err != nil {
			return err
		}

		postRepo := postgres.NewPostRepository(db)
		search := services.NewSearchService(postgres.NewSearchRepository(db), postRepo)
		ctx := cmd.Context()

		indexed := 0
		for page := 1; ; page++ {
			posts, err := postRepo.List(ctx, repositories.PostFilters{Page: page, PageSize: reindexPageSize})
			if err != nil {
				return err
			}
			for _, post := range posts {
				if err := search.IndexPost(ctx, post.ID); err != nil {
					return err
				}
				indexed++
			}
			if len(posts) < reindexPageSize {
				break
			}
		}

		logger.Info("search index rebuilt", "posts", indexed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
