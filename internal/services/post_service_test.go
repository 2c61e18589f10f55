package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("PostService", func() {
	var (
		f      *fixture
		author *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		author = f.user("author@crewup.dev")
	})

	draft := func() *entities.Post {
		post, err := f.posts.Create(f.ctx, author.ID, services.PostInput{
			ProjectType:  entities.ProjectTypeStudy,
			ActivityMode: entities.ActivityModeHybrid,
			Duration:     entities.DurationOneMonth,
			DeadlineAt:   f.clock.Now().Add(48 * time.Hour),
			Title:        "Algorithms study",
			Content:      `<p onclick="evil()">Weekly sessions</p>`,
			Roles:        map[entities.Role]int{entities.RoleBackend: 3},
		})
		Expect(err).NotTo(HaveOccurred())
		return post
	}

	It("cria rascunho com conteúdo sanitizado e evento de indexação", func() {
		post := draft()
		Expect(post.Status).To(Equal(entities.PostStatusDraft))
		Expect(post.Content).NotTo(ContainSubstring("onclick"))
		Expect(post.Roles).To(ConsistOf(entities.PostRole{Role: entities.RoleBackend, Capacity: 3, Remaining: 3}))
		Expect(f.publisher.Types()).To(Equal([]events.Type{events.PostIndexed}))
	})

	It("recusa prazo no passado e post sem vagas", func() {
		_, err := f.posts.Create(f.ctx, author.ID, services.PostInput{
			ProjectType:  entities.ProjectTypeProject,
			ActivityMode: entities.ActivityModeOnline,
			Duration:     entities.DurationLongTerm,
			DeadlineAt:   f.clock.Now().Add(-time.Hour),
			Title:        "Late",
			Roles:        map[entities.Role]int{entities.RoleBackend: 1},
		})
		Expect(err).To(MatchError(domainerrors.ErrDeadlinePassed))

		_, err = f.posts.Create(f.ctx, author.ID, services.PostInput{
			ProjectType:  entities.ProjectTypeProject,
			ActivityMode: entities.ActivityModeOnline,
			Duration:     entities.DurationLongTerm,
			DeadlineAt:   f.clock.Now().Add(time.Hour),
			Title:        "No roles",
		})
		Expect(err).To(MatchError(domainerrors.ErrInvalidPost))
	})

	It("percorre DRAFT -> OPEN -> CLOSED", func() {
		post := draft()

		_, err := f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).To(MatchError(domainerrors.ErrInvalidStateTransition))

		opened, err := f.posts.Publish(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(opened.Status).To(Equal(entities.PostStatusOpen))

		closed, err := f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(closed.Status).To(Equal(entities.PostStatusClosed))
		Expect(f.publisher.Types()).To(Equal([]events.Type{events.PostIndexed, events.PostIndexed, events.PostClosed}))

		title := "Reopened?"
		_, err = f.posts.Update(f.ctx, author.ID, post.ID, services.UpdatePostInput{Title: &title})
		Expect(err).To(MatchError(domainerrors.ErrInvalidStateTransition))
	})

	It("apenas o autor altera o post", func() {
		post := draft()
		stranger := f.user("stranger@crewup.dev")

		_, err := f.posts.Publish(f.ctx, stranger.ID, post.ID)
		Expect(err).To(MatchError(domainerrors.ErrForbidden))
	})

	It("não reduz a capacidade abaixo dos aceitos", func() {
		post := f.openPost(author, map[entities.Role]int{entities.RoleBackend: 2, entities.RoleDesigner: 1})
		applicant := f.user("applicant@crewup.dev")
		application := f.submit(applicant, post, entities.RoleBackend)
		_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
		Expect(err).NotTo(HaveOccurred())

		_, err = f.posts.Update(f.ctx, author.ID, post.ID, services.UpdatePostInput{
			Roles: map[entities.Role]int{entities.RoleDesigner: 1},
		})
		Expect(err).To(MatchError(domainerrors.ErrCapacityBelowAccepted))

		updated, err := f.posts.Update(f.ctx, author.ID, post.ID, services.UpdatePostInput{
			Roles: map[entities.Role]int{entities.RoleBackend: 4},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Roles).To(ConsistOf(entities.PostRole{Role: entities.RoleBackend, Capacity: 4, Remaining: 3}))

		reloaded, err := f.posts.Get(f.ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Roles).To(HaveLen(1))
		Expect(reloaded.Roles[0].Remaining).To(Equal(3))
	})

	It("lista com filtros de status, role e tecnologia", func() {
		draft()
		f.openPost(author, map[entities.Role]int{entities.RoleDesigner: 1})

		open := entities.PostStatusOpen
		posts, err := f.posts.List(f.ctx, repositories.PostFilters{Status: &open})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(HaveLen(1))

		designer := entities.RoleDesigner
		posts, err = f.posts.List(f.ctx, repositories.PostFilters{Role: &designer})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(HaveLen(1))

		golang := entities.TechStackGo
		posts, err = f.posts.List(f.ctx, repositories.PostFilters{TechStack: &golang})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(HaveLen(1))
		Expect(posts[0].TechStacks).To(ContainElement(entities.TechStackGo))
	})

	It("retorna not found para post inexistente", func() {
		_, err := f.posts.Get(f.ctx, "00000000-0000-0000-0000-000000000000")
		Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
	})
})
