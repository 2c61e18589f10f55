package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
)

var _ = Describe("SearchService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("busca por título e descrição sem diferenciar maiúsculas", func() {
		post := f.openPost(f.user("author@crewup.dev"), map[entities.Role]int{entities.RoleBackend: 1})
		Expect(f.search.IndexPost(f.ctx, post.ID)).To(Succeed())

		byTitle, err := f.search.Search(f.ctx, "TEAM", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(byTitle).To(HaveLen(1))

		byDescription, err := f.search.Search(f.ctx, "platform", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(byDescription).To(HaveLen(1))

		none, err := f.search.Search(f.ctx, "blockchain", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(none).To(BeEmpty())
	})

	It("trata curingas do LIKE como texto", func() {
		post := f.openPost(f.user("author@crewup.dev"), map[entities.Role]int{entities.RoleBackend: 1})
		Expect(f.search.IndexPost(f.ctx, post.ID)).To(Succeed())

		docs, err := f.search.Search(f.ctx, "%", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(BeEmpty())
	})

	It("consulta vazia não retorna nada", func() {
		docs, err := f.search.Search(f.ctx, "   ", 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(BeEmpty())
	})

	It("mantém no índice apenas posts abertos", func() {
		author := f.user("author@crewup.dev")
		post := f.openPost(author, map[entities.Role]int{entities.RoleBackend: 1})
		Expect(f.search.IndexPost(f.ctx, post.ID)).To(Succeed())

		indexed := func() int64 {
			var count int64
			Expect(f.db.Model(&postgres.PostSearchDocumentModel{}).Where("post_id = ?", post.ID).Count(&count).Error).To(Succeed())
			return count
		}
		Expect(indexed()).To(Equal(int64(1)))

		_, err := f.posts.Close(f.ctx, author.ID, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.search.IndexPost(f.ctx, post.ID)).To(Succeed())
		Expect(indexed()).To(BeZero())
	})

	It("remove do índice post inexistente", func() {
		Expect(f.search.IndexPost(f.ctx, "00000000-0000-0000-0000-000000000000")).To(Succeed())
	})
})
