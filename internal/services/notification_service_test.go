package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("NotificationService", func() {
	var (
		f        *fixture
		receiver *entities.User
		postID   string
	)

	BeforeEach(func() {
		f = newFixture()
		receiver = f.user("receiver@crewup.dev")
		postID = f.openPost(f.user("author@crewup.dev"), map[entities.Role]int{entities.RoleBackend: 1}).ID
	})

	payload := func() entities.NotificationPayload {
		return entities.NotificationPayload{
			ReceiverID:   receiver.ID,
			Type:         entities.NotificationApplicationAccepted,
			Message:      "accepted",
			TargetPostID: &postID,
		}
	}

	It("grava e transmite no tópico do destinatário", func() {
		notification, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())
		Expect(notification).NotTo(BeNil())
		Expect(notification.IsRead).To(BeFalse())
		Expect(f.broadcaster.Topics()).To(Equal([]string{services.UserTopic(receiver.ID)}))
	})

	It("descarta a tripla repetida", func() {
		_, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())

		duplicate, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())
		Expect(duplicate).To(BeNil())

		list, err := f.notifications.List(f.ctx, repositories.NotificationFilters{ReceiverID: receiver.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(f.broadcaster.Topics()).To(HaveLen(1))
	})

	It("trata post ausente como parte da tripla", func() {
		withoutPost := payload()
		withoutPost.TargetPostID = nil

		_, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())
		created, err := f.notifications.Notify(f.ctx, withoutPost)
		Expect(err).NotTo(HaveOccurred())
		Expect(created).NotTo(BeNil())
	})

	It("marca como lida apenas para o destinatário", func() {
		notification, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())

		stranger := f.user("stranger@crewup.dev")
		_, err = f.notifications.MarkRead(f.ctx, stranger.ID, notification.ID)
		Expect(err).To(MatchError(domainerrors.ErrNotificationNotFound))

		read, err := f.notifications.MarkRead(f.ctx, receiver.ID, notification.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(read.IsRead).To(BeTrue())

		unread, err := f.notifications.List(f.ctx, repositories.NotificationFilters{ReceiverID: receiver.ID, UnreadOnly: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(unread).To(BeEmpty())
	})

	It("marca todas como lidas e remove", func() {
		first, err := f.notifications.Notify(f.ctx, payload())
		Expect(err).NotTo(HaveOccurred())
		second := payload()
		second.Type = entities.NotificationChatMessage
		_, err = f.notifications.Notify(f.ctx, second)
		Expect(err).NotTo(HaveOccurred())

		count, err := f.notifications.MarkAllRead(f.ctx, receiver.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(2)))

		Expect(f.notifications.Delete(f.ctx, receiver.ID, first.ID)).To(Succeed())
		list, err := f.notifications.List(f.ctx, repositories.NotificationFilters{ReceiverID: receiver.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
	})

	Describe("Propose", func() {
		var (
			author *entities.User
			study  *entities.Post
		)

		BeforeEach(func() {
			author = f.user("lead@crewup.dev")
			_, err := f.profiles.Create(f.ctx, receiver.ID, services.CreateProfileInput{Nickname: "receiver"})
			Expect(err).NotTo(HaveOccurred())

			study = f.openPost(author, map[entities.Role]int{entities.RoleBackend: 1})
		})

		It("envia proposta respeitando o opt-in", func() {
			notification, err := f.notifications.Propose(f.ctx, author.ID, study.ID, receiver.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(notification.Type).To(Equal(entities.NotificationProjectProposal))
			Expect(notification.Message).To(ContainSubstring(study.Title))
		})

		It("recusa quando o destinatário desativou propostas", func() {
			disabled := false
			_, err := f.profiles.UpdateProposalSettings(f.ctx, receiver.ID, services.UpdateProposalSettingsInput{ProjectProposalEnabled: &disabled})
			Expect(err).NotTo(HaveOccurred())

			_, err = f.notifications.Propose(f.ctx, author.ID, study.ID, receiver.ID)
			Expect(err).To(MatchError(domainerrors.ErrProposalDisabled))
		})

		It("apenas o autor propõe", func() {
			_, err := f.notifications.Propose(f.ctx, receiver.ID, study.ID, author.ID)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})
	})
})
