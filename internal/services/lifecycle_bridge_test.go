package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

var _ = Describe("LifecycleBridge", func() {
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
		post = f.openPost(author, map[entities.Role]int{entities.RoleBackend: 1})
	})

	// deliver entrega ao bridge todos os eventos publicados até agora
	deliver := func() {
		for _, event := range f.publisher.Events() {
			Expect(f.bridge.Handle(f.ctx, event)).To(Succeed())
		}
	}

	notificationsOf := func(user *entities.User) []*entities.Notification {
		list, err := f.notifications.List(f.ctx, repositories.NotificationFilters{ReceiverID: user.ID})
		Expect(err).NotTo(HaveOccurred())
		return list
	}

	It("notifica o autor sobre uma nova candidatura", func() {
		f.submit(applicant, post, entities.RoleBackend)
		deliver()

		list := notificationsOf(author)
		Expect(list).To(HaveLen(1))
		Expect(list[0].Type).To(Equal(entities.NotificationApplicationReceived))
		Expect(list[0].Message).To(ContainSubstring("Backend Developer"))
		Expect(list[0].Message).To(ContainSubstring(post.Title))
	})

	It("abre o chat e notifica o candidato aceito", func() {
		application := f.submit(applicant, post, entities.RoleBackend)
		_, err := f.applications.Decide(f.ctx, author.ID, application.ID, entities.DecisionAccept)
		Expect(err).NotTo(HaveOccurred())
		deliver()

		room, err := f.chatRepo.FindRoom(f.ctx, post.ID, applicant.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(room).NotTo(BeNil())
		Expect(room.OwnerID).To(Equal(author.ID))

		list := notificationsOf(applicant)
		Expect(list).To(HaveLen(1))
		Expect(list[0].Type).To(Equal(entities.NotificationApplicationAccepted))
	})

	It("notifica recusa e retirada", func() {
		other := f.user("other@crewup.dev")
		rejected := f.submit(applicant, post, entities.RoleBackend)
		withdrawn := f.submit(other, post, entities.RoleBackend)

		_, err := f.applications.Decide(f.ctx, author.ID, rejected.ID, entities.DecisionReject)
		Expect(err).NotTo(HaveOccurred())
		_, err = f.applications.Withdraw(f.ctx, other.ID, withdrawn.ID)
		Expect(err).NotTo(HaveOccurred())
		deliver()

		Expect(notificationsOf(applicant)[0].Type).To(Equal(entities.NotificationApplicationRejected))

		var types []entities.NotificationType
		for _, n := range notificationsOf(author) {
			types = append(types, n.Type)
		}
		Expect(types).To(ConsistOf(entities.NotificationApplicationReceived, entities.NotificationApplicationWithdrawn))
	})

	It("reentregar o mesmo evento não duplica notificações", func() {
		f.submit(applicant, post, entities.RoleBackend)
		deliver()
		deliver()

		Expect(notificationsOf(author)).To(HaveLen(1))
	})

	It("mantém o índice de busca em dia", func() {
		deliver()

		docs, err := f.search.Search(f.ctx, "matching", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].PostID).To(Equal(post.ID))

		_, err = f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.publisher.Types()).To(ContainElement(events.PostClosed))
		deliver()

		docs, err = f.search.Search(f.ctx, "matching", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(BeEmpty())
	})
})
