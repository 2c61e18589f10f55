//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/crewup-backend/internal/testutil"
)

func TestPostgres_ConcurrentAccepts(t *testing.T) {
	ctx := context.Background()

	pg, err := testutil.StartPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	repo := postgres.NewPostRepository(pg.DB)
	uow := postgres.NewUnitOfWork(pg.DB)

	author := createUser(t, pg.DB, "author@crewup.dev")
	post := createPost(t, pg.DB, author.ID, entities.PostRole{Role: entities.RoleBackend, Capacity: 3, Remaining: 3})

	const workers = 20
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		accepted    int
		unavailable int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
				return repo.DecrementRoleCapacity(txCtx, post.ID, entities.RoleBackend)
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domainerrors.ErrRoleUnavailable):
				unavailable++
			default:
				t.Errorf("erro inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, accepted)
	assert.Equal(t, workers-3, unavailable)

	stored, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	role, _ := stored.FindRole(entities.RoleBackend)
	assert.Equal(t, 0, role.Remaining)
}

func TestPostgres_TechStackFilter(t *testing.T) {
	ctx := context.Background()

	pg, err := testutil.StartPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	repo := postgres.NewPostRepository(pg.DB)
	author := createUser(t, pg.DB, "author@crewup.dev")
	post := createPost(t, pg.DB, author.ID, entities.PostRole{Role: entities.RoleBackend, Capacity: 1, Remaining: 1})

	redis := entities.TechStackRedis
	posts, err := repo.List(ctx, repositories.PostFilters{TechStack: &redis})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.WithinDuration(t, post.DeadlineAt, posts[0].DeadlineAt, time.Second)

	docker := entities.TechStackDocker
	posts, err = repo.List(ctx, repositories.PostFilters{TechStack: &docker})
	require.NoError(t, err)
	assert.Empty(t, posts)
}
