package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	register := func(email string) *services.AuthResult {
		result, err := f.users.Register(f.ctx, services.CreateUserInput{
			Email:    email,
			Name:     "Ada Lovelace",
			Password: "s3cret-pass",
		})
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	It("registra, autentica e resolve o token", func() {
		result := register("Ada@Example.com")
		Expect(result.User.Email.String()).To(Equal("ada@example.com"))
		Expect(result.AccessToken).NotTo(BeEmpty())

		login, err := f.users.Login(f.ctx, "ada@example.com", "s3cret-pass")
		Expect(err).NotTo(HaveOccurred())

		user, err := f.users.Authenticate(f.ctx, login.AccessToken)
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(result.User.ID))
	})

	It("recusa e-mail repetido e senha errada", func() {
		register("ada@example.com")

		_, err := f.users.Register(f.ctx, services.CreateUserInput{Email: "ada@example.com", Name: "Other", Password: "x"})
		Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))

		_, err = f.users.Login(f.ctx, "ada@example.com", "wrong")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

		_, err = f.users.Authenticate(f.ctx, "not-a-token")
		Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
	})

	It("encerra a conta sem apagar o registro", func() {
		result := register("ada@example.com")
		Expect(f.users.Withdraw(f.ctx, result.User.ID)).To(Succeed())

		_, err := f.users.GetUser(f.ctx, result.User.ID)
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))

		_, err = f.users.Authenticate(f.ctx, result.AccessToken)
		Expect(err).To(MatchError(domainerrors.ErrUnauthorized))

		stored, err := f.userRepo.FindByID(f.ctx, result.User.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Status).To(Equal(entities.UserStatusWithdrawn))
		Expect(stored.WithdrawnAt).NotTo(BeNil())

		active, err := f.users.ListUsers(f.ctx, repositories.UserFilters{})
		Expect(err).NotTo(HaveOccurred())
		Expect(active).To(BeEmpty())
	})

	It("vincula login OAuth a conta existente pelo e-mail", func() {
		result := register("ada@example.com")
		identity := ports.OAuthIdentity{Provider: "github", Subject: "42", Email: "ada@example.com", Name: "ada"}

		first, err := f.users.LoginWithOAuth(f.ctx, identity)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.User.ID).To(Equal(result.User.ID))

		second, err := f.users.LoginWithOAuth(f.ctx, identity)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.User.ID).To(Equal(result.User.ID))
	})

	It("cria usuário sem senha no primeiro login OAuth", func() {
		auth, err := f.users.LoginWithOAuth(f.ctx, ports.OAuthIdentity{
			Provider: "kakao", Subject: "k-1", Email: "new@kakao.com", Name: "N",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(auth.User.HasPassword()).To(BeFalse())
		Expect(auth.User.Name).To(Equal("new"))

		_, err = f.users.Login(f.ctx, "new@kakao.com", "")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
	})
})
