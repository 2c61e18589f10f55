package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("ChatService", func() {
	var (
		f      *fixture
		author *entities.User
		member *entities.User
		post   *entities.Post
	)

	BeforeEach(func() {
		f = newFixture()
		author = f.user("author@crewup.dev")
		member = f.user("member@crewup.dev")
		post = f.openPost(author, map[entities.Role]int{entities.RoleBackend: 1})
	})

	It("abre uma única sala por post e iniciador", func() {
		first, err := f.chat.InitiateChat(f.ctx, post.ID, member.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.OwnerID).To(Equal(author.ID))

		second, err := f.chat.InitiateChat(f.ctx, post.ID, member.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.ID).To(Equal(first.ID))

		_, err = f.chat.InitiateChat(f.ctx, post.ID, author.ID)
		Expect(err).To(MatchError(domainerrors.ErrInvalidChatTarget))
	})

	It("cria a sala na primeira mensagem por post e destinatário", func() {
		message, err := f.chat.SendMessage(f.ctx, member.ID, services.SendMessageInput{
			PostID:     post.ID,
			ReceiverID: author.ID,
			Content:    "Hi! <img src=x onerror=alert(1)>Is the role still open?",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(message.Content).To(Equal("Hi! Is the role still open?"))

		rooms, err := f.chat.ListRooms(f.ctx, author.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(rooms).To(HaveLen(1))
		Expect(rooms[0].InitiatorID).To(Equal(member.ID))

		Expect(f.broadcaster.Topics()).To(ContainElements(
			services.RoomTopic(rooms[0].ID),
			services.UserTopic(author.ID),
		))
	})

	It("o autor pode iniciar a conversa com um usuário", func() {
		_, err := f.chat.SendMessage(f.ctx, author.ID, services.SendMessageInput{
			PostID:     post.ID,
			ReceiverID: member.ID,
			Content:    "Want to join us?",
		})
		Expect(err).NotTo(HaveOccurred())

		room, err := f.chatRepo.FindRoom(f.ctx, post.ID, member.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(room).NotTo(BeNil())
	})

	It("recusa conversa entre dois usuários que não são o autor", func() {
		other := f.user("other@crewup.dev")
		_, err := f.chat.SendMessage(f.ctx, member.ID, services.SendMessageInput{
			PostID:     post.ID,
			ReceiverID: other.ID,
			Content:    "hello",
		})
		Expect(err).To(MatchError(domainerrors.ErrInvalidChatTarget))
	})

	It("restringe a sala aos participantes e lista do mais recente", func() {
		room, err := f.chat.InitiateChat(f.ctx, post.ID, member.ID)
		Expect(err).NotTo(HaveOccurred())

		for _, content := range []string{"first", "second", "third"} {
			_, err := f.chat.SendMessage(f.ctx, member.ID, services.SendMessageInput{RoomID: room.ID, Content: content})
			Expect(err).NotTo(HaveOccurred())
		}

		messages, err := f.chat.ListMessages(f.ctx, author.ID, room.ID, nil, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(HaveLen(2))

		outsider := f.user("outsider@crewup.dev")
		_, err = f.chat.SendMessage(f.ctx, outsider.ID, services.SendMessageInput{RoomID: room.ID, Content: "let me in"})
		Expect(err).To(MatchError(domainerrors.ErrNotParticipant))

		_, err = f.chat.ListMessages(f.ctx, outsider.ID, room.ID, nil, 10)
		Expect(err).To(MatchError(domainerrors.ErrNotParticipant))
	})

	It("recusa mensagem vazia após sanitização", func() {
		room, err := f.chat.InitiateChat(f.ctx, post.ID, member.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = f.chat.SendMessage(f.ctx, member.ID, services.SendMessageInput{RoomID: room.ID, Content: "  <script>x</script> "})
		Expect(err).To(MatchError(domainerrors.ErrEmptyMessage))
	})
})
