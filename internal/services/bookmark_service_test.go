package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

var _ = Describe("BookmarkService", func() {
	var (
		f    *fixture
		user *entities.User
		post *entities.Post
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.user("reader@crewup.dev")
		post = f.openPost(f.user("author@crewup.dev"), map[entities.Role]int{entities.RoleFrontend: 1})
	})

	It("alterna entre salvo e não salvo", func() {
		bookmarked, err := f.bookmarks.Toggle(f.ctx, user.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(bookmarked).To(BeTrue())

		list, err := f.bookmarks.List(f.ctx, user.ID, 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].PostID).To(Equal(post.ID))

		bookmarked, err = f.bookmarks.Toggle(f.ctx, user.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(bookmarked).To(BeFalse())

		list, err = f.bookmarks.List(f.ctx, user.ID, 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(BeEmpty())
	})

	It("remove de forma idempotente", func() {
		_, err := f.bookmarks.Toggle(f.ctx, user.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.bookmarks.Delete(f.ctx, user.ID, post.ID)).To(Succeed())
		Expect(f.bookmarks.Delete(f.ctx, user.ID, post.ID)).To(Succeed())

		exists, err := f.bookmarkRepo.Exists(f.ctx, user.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("recusa post inexistente", func() {
		_, err := f.bookmarks.Toggle(f.ctx, user.ID, "00000000-0000-0000-0000-000000000000")
		Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
	})
})
