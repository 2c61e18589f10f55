package services_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("ApplicationService", func() {
	var (
		f         *fixture
		author    *entities.User
		applicant *entities.User
		post      *entities.Post
	)

	BeforeEach(func() {
		f = newFixture()
		author = f.user("author@crewup.dev")
		applicant = f.user("applicant@crewup.dev")
		post = f.openPost(author, map[entities.Role]int{entities.RoleBackend: 1, entities.RoleFrontend: 2})
	})

	Describe("Submit", func() {
		It("grava a candidatura como SUBMITTED e publica o evento", func() {
			application, err := f.applications.Submit(f.ctx, applicant.ID, services.SubmitApplicationInput{
				PostID:  post.ID,
				Role:    entities.RoleBackend,
				Message: "<script>alert(1)</script>Hello",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(application.ID).NotTo(BeEmpty())
			Expect(application.Status).To(Equal(entities.ApplicationStatusSubmitted))
			Expect(application.Message).To(Equal("Hello"))

			published := f.publisher.Events()
			last := published[len(published)-1]
			Expect(last.Type).To(Equal(events.ApplicationSubmitted))
			Expect(last.ApplicationID).To(Equal(application.ID))
			Expect(last.AuthorID).To(Equal(author.ID))
			Expect(last.ApplicantID).To(Equal(applicant.ID))
		})

		It("recusa a segunda candidatura ativa para a mesma role", func() {
			f.submit(applicant, post, entities.RoleBackend)

			_, err := f.applications.Submit(f.ctx, applicant.ID, services.SubmitApplicationInput{
				PostID: post.ID,
				Role:   entities.RoleBackend,
			})
			Expect(err).To(MatchError(domainerrors.ErrDuplicateApplication))
		})

		It("permite candidaturas a roles diferentes do mesmo post", func() {
			f.submit(applicant, post, entities.RoleBackend)
			f.submit(applicant, post, entities.RoleFrontend)

			mine, err := f.applications.ListMine(f.ctx, applicant.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(2))
		})

		It("recusa depois do prazo sem gravar a candidatura", func() {
			f.clock.Advance(8 * 24 * time.Hour)

			_, err := f.applications.Submit(f.ctx, applicant.ID, services.SubmitApplicationInput{
				PostID: post.ID,
				Role:   entities.RoleBackend,
			})
			Expect(err).To(MatchError(domainerrors.ErrDeadlinePassed))

			received, err := f.applications.ListByPost(f.ctx, author.ID, post.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(received).To(BeEmpty())
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(1))
		})
	})

	Describe("Decide", func() {
		var application *entities.Application

		BeforeEach(func() {
			application = f.submit(applicant, post, entities.RoleBackend)
		})

		It("aceita e consome a vaga", func() {
			decided, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
			Expect(err).NotTo(HaveOccurred())
			Expect(decided.Status).To(Equal(entities.ApplicationStatusAccepted))
			Expect(decided.DecidedAt).NotTo(BeNil())
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(0))
			Expect(f.publisher.Types()).To(ContainElement(events.ApplicationAccepted))
		})

		It("recusa sem consumir vaga", func() {
			decided, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionReject)
			Expect(err).NotTo(HaveOccurred())
			Expect(decided.Status).To(Equal(entities.ApplicationStatusRejected))
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(1))
			Expect(f.publisher.Types()).To(ContainElement(events.ApplicationRejected))
		})

		It("apenas o autor do post decide", func() {
			_, err := f.applications.Decide(f.ctx, applicant.ID, application.ID, entities.DecisionAccept)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})

		It("não decide duas vezes", func() {
			_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionReject)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
			Expect(err).To(MatchError(domainerrors.ErrInvalidStateTransition))
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(1))
		})

		It("falha sem vaga e mantém a candidatura SUBMITTED", func() {
			other := f.user("other@crewup.dev")
			second := f.submit(other, post, entities.RoleBackend)

			_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.applications.Decide(f.ctx, author.ID, second.ID, entities.DecisionAccept)
			Expect(err).To(MatchError(domainerrors.ErrRoleUnavailable))

			reloaded, err := f.applications.Get(f.ctx, other.ID, second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Status).To(Equal(entities.ApplicationStatusSubmitted))
		})

		It("aceita no máximo um candidato concorrente para capacidade 1", func() {
			applicants := []*entities.Application{application}
			for _, email := range []string{"c1@crewup.dev", "c2@crewup.dev", "c3@crewup.dev"} {
				applicants = append(applicants, f.submit(f.user(email), post, entities.RoleBackend))
			}

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				accepted  int
				conflicts int
			)
			for _, candidate := range applicants {
				wg.Add(1)
				go func(id string) {
					defer GinkgoRecover()
					defer wg.Done()

					_, err := f.applications.Decide(f.ctx, author.ID, id, entities.DecisionAccept)

					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						accepted++
						return
					}
					Expect(err).To(MatchError(domainerrors.ErrRoleUnavailable))
					conflicts++
				}(candidate.ID)
			}
			wg.Wait()

			Expect(accepted).To(Equal(1))
			Expect(conflicts).To(Equal(len(applicants) - 1))
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(0))

			status := entities.ApplicationStatusAccepted
			acceptedRows, err := f.appRepo.ListByPost(f.ctx, post.ID, &status)
			Expect(err).NotTo(HaveOccurred())
			Expect(acceptedRows).To(HaveLen(1))
		})
	})

	Describe("Withdraw", func() {
		It("retira candidatura SUBMITTED", func() {
			application := f.submit(applicant, post, entities.RoleBackend)

			withdrawn, err := f.applications.Withdraw(f.ctx, applicant.ID, application.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(withdrawn.Status).To(Equal(entities.ApplicationStatusWithdrawn))
			Expect(f.publisher.Types()).To(ContainElement(events.ApplicationWithdrawn))
		})

		It("devolve a vaga ao retirar candidatura aceita", func() {
			application := f.submit(applicant, post, entities.RoleBackend)
			_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(0))

			_, err = f.applications.Withdraw(f.ctx, applicant.ID, application.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.remaining(post.ID, entities.RoleBackend)).To(Equal(1))
		})

		It("não retira candidatura aceita de post encerrado", func() {
			application := f.submit(applicant, post, entities.RoleBackend)
			_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.posts.Close(f.ctx, author.ID, post.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.applications.Withdraw(f.ctx, applicant.ID, application.ID)
			Expect(err).To(MatchError(domainerrors.ErrInvalidStateTransition))
		})

		It("apenas o candidato retira", func() {
			application := f.submit(applicant, post, entities.RoleBackend)

			_, err := f.applications.Withdraw(f.ctx, author.ID, application.ID)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})

		It("não retira candidatura recusada", func() {
			application := f.submit(applicant, post, entities.RoleBackend)
			_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionReject)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.applications.Withdraw(f.ctx, applicant.ID, application.ID)
			Expect(err).To(MatchError(domainerrors.ErrInvalidStateTransition))
		})
	})

	Describe("consultas", func() {
		It("lista por post apenas para o autor, com filtro de status", func() {
			first := f.submit(applicant, post, entities.RoleBackend)
			f.submit(f.user("other@crewup.dev"), post, entities.RoleFrontend)
			_, err := f.applications.Decide(f.ctx, author.ID, first.ID, entities.DecisionReject)
			Expect(err).NotTo(HaveOccurred())

			all, err := f.applications.ListByPost(f.ctx, author.ID, post.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			submitted := entities.ApplicationStatusSubmitted
			pending, err := f.applications.ListByPost(f.ctx, author.ID, post.ID, &submitted)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(HaveLen(1))

			_, err = f.applications.ListByPost(f.ctx, applicant.ID, post.ID, nil)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})

		It("esconde candidaturas de terceiros", func() {
			application := f.submit(applicant, post, entities.RoleBackend)
			stranger := f.user("stranger@crewup.dev")

			_, err := f.applications.Get(f.ctx, stranger.ID, application.ID)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))

			_, err = f.applications.Get(f.ctx, stranger.ID, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(domainerrors.ErrApplicationNotFound))
		})
	})
})
