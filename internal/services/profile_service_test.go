package services_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/services"
)

var _ = Describe("ProfileService", func() {
	var (
		f       *fixture
		user    *entities.User
		profile *entities.Profile
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.user("dev@crewup.dev")

		var err error
		profile, err = f.profiles.Create(f.ctx, user.ID, services.CreateProfileInput{
			Nickname:   "gopher",
			Bio:        "<b>Backend</b> dev",
			Interests:  []entities.Interest{entities.InterestAI},
			TechStacks: []entities.TechStack{entities.TechStackGo},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("cria o perfil com bio sanitizada", func() {
		Expect(profile.ID).NotTo(BeEmpty())
		Expect(profile.Bio).To(Equal("Backend dev"))

		loaded, err := f.profiles.GetByUser(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Interests).To(ConsistOf(entities.InterestAI))
		Expect(loaded.TechStacks).To(ConsistOf(entities.TechStackGo))
		Expect(loaded.Role).To(BeNil())
	})

	It("permite apenas um perfil por usuário e nickname único", func() {
		_, err := f.profiles.Create(f.ctx, user.ID, services.CreateProfileInput{Nickname: "another"})
		Expect(err).To(MatchError(domainerrors.ErrProfileAlreadyExists))

		other := f.user("other@crewup.dev")
		_, err = f.profiles.Create(f.ctx, other.ID, services.CreateProfileInput{Nickname: "gopher"})
		Expect(err).To(MatchError(domainerrors.ErrNicknameTaken))
	})

	It("recusa mais de cinco interesses já na criação", func() {
		other := f.user("other@crewup.dev")
		_, err := f.profiles.Create(f.ctx, other.ID, services.CreateProfileInput{
			Nickname: "many",
			Interests: []entities.Interest{
				entities.InterestAI, entities.InterestIoT, entities.InterestGame,
				entities.InterestFood, entities.InterestMedia, entities.InterestTravel,
			},
		})
		Expect(err).To(MatchError(domainerrors.ErrCardinalityExceeded))
	})

	Describe("interesses", func() {
		It("recusa duplicado", func() {
			_, err := f.profiles.AddInterest(f.ctx, user.ID, entities.InterestAI)
			Expect(err).To(MatchError(domainerrors.ErrDuplicateAttribute))
		})

		It("respeita o limite de cinco", func() {
			for _, interest := range []entities.Interest{
				entities.InterestIoT, entities.InterestGame, entities.InterestFood, entities.InterestMedia,
			} {
				_, err := f.profiles.AddInterest(f.ctx, user.ID, interest)
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := f.profiles.AddInterest(f.ctx, user.ID, entities.InterestTravel)
			Expect(err).To(MatchError(domainerrors.ErrCardinalityExceeded))

			loaded, err := f.profiles.GetByUser(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Interests).To(HaveLen(entities.MaxInterests))
		})

		It("recusa valor fora do vocabulário", func() {
			_, err := f.profiles.AddInterest(f.ctx, user.ID, entities.Interest("KNITTING"))
			Expect(err).To(MatchError(domainerrors.ErrInvalidVocabulary))
		})

		It("remove de forma idempotente e protege o último valor", func() {
			_, err := f.profiles.AddInterest(f.ctx, user.ID, entities.InterestGame)
			Expect(err).NotTo(HaveOccurred())

			updated, err := f.profiles.RemoveInterest(f.ctx, user.ID, entities.InterestGame)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Interests).To(ConsistOf(entities.InterestAI))

			_, err = f.profiles.RemoveInterest(f.ctx, user.ID, entities.InterestGame)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.profiles.RemoveInterest(f.ctx, user.ID, entities.InterestAI)
			Expect(err).To(MatchError(domainerrors.ErrAttributeRequired))
		})
	})

	Describe("tecnologias", func() {
		It("adiciona e remove", func() {
			_, err := f.profiles.AddTechStack(f.ctx, user.ID, entities.TechStackDocker)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.profiles.AddTechStack(f.ctx, user.ID, entities.TechStackDocker)
			Expect(err).To(MatchError(domainerrors.ErrDuplicateAttribute))

			updated, err := f.profiles.RemoveTechStack(f.ctx, user.ID, entities.TechStackGo)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TechStacks).To(ConsistOf(entities.TechStackDocker))
		})
	})

	Describe("role", func() {
		It("substitui sempre a mesma linha", func() {
			_, err := f.profiles.UpdateRole(f.ctx, user.ID, entities.RoleBackend)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.profiles.UpdateRole(f.ctx, user.ID, entities.RoleDevOps)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := f.profiles.GetByUser(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Role).NotTo(BeNil())
			Expect(*loaded.Role).To(Equal(entities.RoleDevOps))

			var count int64
			Expect(f.db.Table("profile_roles").Where("profile_id = ?", profile.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	It("esconde o perfil de usuário encerrado", func() {
		Expect(f.users.Withdraw(f.ctx, user.ID)).To(Succeed())

		_, err := f.profiles.Get(f.ctx, profile.ID)
		Expect(err).To(MatchError(domainerrors.ErrProfileNotFound))

		_, err = f.profiles.GetByUser(f.ctx, user.ID)
		Expect(err).To(MatchError(domainerrors.ErrProfileNotFound))
	})

	It("atualiza nickname e bio", func() {
		nickname := "rustacean"
		bio := "now writing rust"
		updated, err := f.profiles.Update(f.ctx, user.ID, services.UpdateProfileInput{Nickname: &nickname, Bio: &bio})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Nickname).To(Equal(nickname))

		loaded, err := f.profiles.Get(f.ctx, profile.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Bio).To(Equal(bio))
	})

	It("envia o avatar e grava a URL", func() {
		updated, err := f.profiles.UploadAvatar(f.ctx, user.ID, "me.PNG", "image/png", strings.NewReader("png-bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.AvatarURL).NotTo(BeNil())
		Expect(*updated.AvatarURL).To(HavePrefix("https://cdn.test/avatars/" + profile.ID + "/"))
		Expect(*updated.AvatarURL).To(HaveSuffix(".png"))

		_, err = f.profiles.UploadAvatar(f.ctx, user.ID, "notes.txt", "text/plain", strings.NewReader("x"))
		Expect(err).To(MatchError(domainerrors.ErrInvalidAvatar))
	})

	It("usa opt-ins padrão e permite alterá-los", func() {
		settings, err := f.profiles.GetProposalSettings(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.ProjectProposalEnabled).To(BeTrue())
		Expect(settings.StudyProposalEnabled).To(BeTrue())

		disabled := false
		_, err = f.profiles.UpdateProposalSettings(f.ctx, user.ID, services.UpdateProposalSettingsInput{StudyProposalEnabled: &disabled})
		Expect(err).NotTo(HaveOccurred())

		settings, err = f.profiles.GetProposalSettings(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.ProjectProposalEnabled).To(BeTrue())
		Expect(settings.StudyProposalEnabled).To(BeFalse())
	})
})
