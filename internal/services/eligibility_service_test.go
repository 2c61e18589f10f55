package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("EligibilityService", func() {
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
		post = f.openPost(author, map[entities.Role]int{entities.RoleBackend: 2, entities.RoleDesigner: 1})
	})

	It("permite candidatura válida", func() {
		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(entities.Eligible()))
	})

	It("recusa post que não está OPEN", func() {
		_, err := f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())

		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.CanApply).To(BeFalse())
		Expect(result.Reason).To(Equal(entities.ReasonPostNotApplicable))
	})

	It("recusa após o prazo, inclusive no instante exato", func() {
		f.clock.Set(post.DeadlineAt)

		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonDeadlinePassed))

		f.clock.Set(post.DeadlineAt.Add(-time.Second))
		result, err = f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.CanApply).To(BeTrue())
	})

	It("recusa role que o post não oferece", func() {
		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleIOS)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonRoleUnavailable))
	})

	It("recusa role sem vaga restante", func() {
		other := f.user("other@crewup.dev")
		application := f.submit(other, post, entities.RoleDesigner)
		_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
		Expect(err).NotTo(HaveOccurred())

		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleDesigner)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonRoleUnavailable))
	})

	It("recusa o próprio autor", func() {
		result, err := f.eligibility.CanApply(f.ctx, author.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonSelfApplicationForbidden))
	})

	It("recusa candidatura ativa duplicada, mas libera após a retirada", func() {
		application := f.submit(applicant, post, entities.RoleBackend)

		result, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonDuplicateApplication))

		_, err = f.applications.Withdraw(f.ctx, applicant.ID, application.ID)
		Expect(err).NotTo(HaveOccurred())

		result, err = f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.CanApply).To(BeTrue())
	})

	It("aplica as regras na ordem e a primeira falha vence", func() {
		_, err := f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		f.clock.Advance(30 * 24 * time.Hour)

		// post fechado, prazo vencido, role inexistente e autor: vence o status
		result, err := f.eligibility.CanApply(f.ctx, author.ID, post.ID, entities.RoleIOS)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reason).To(Equal(entities.ReasonPostNotApplicable))
	})

	It("retorna erro para post inexistente", func() {
		_, err := f.eligibility.CanApply(f.ctx, applicant.ID, "00000000-0000-0000-0000-000000000000", entities.RoleBackend)
		Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
	})

	It("retorna erro para usuário encerrado", func() {
		Expect(f.users.Withdraw(f.ctx, applicant.ID)).To(Succeed())

		_, err := f.eligibility.CanApply(f.ctx, applicant.ID, post.ID, entities.RoleBackend)
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
	})

	It("não grava candidatura quando inelegível", func() {
		_, err := f.applications.Submit(f.ctx, author.ID, services.SubmitApplicationInput{
			PostID: post.ID,
			Role:   entities.RoleBackend,
		})
		Expect(err).To(MatchError(domainerrors.ErrSelfApplicationForbidden))

		applications, err := f.appRepo.ListByPost(f.ctx, post.ID, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(applications).To(BeEmpty())
	})
})
