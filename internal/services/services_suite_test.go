package services_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/domain/valueobjects"
	"github.com/rafabene/crewup-backend/internal/infrastructure/auth"
	"github.com/rafabene/crewup-backend/internal/infrastructure/i18n"
	"github.com/rafabene/crewup-backend/internal/infrastructure/logging"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/crewup-backend/internal/infrastructure/sanitize"
	"github.com/rafabene/crewup-backend/internal/services"
	"github.com/rafabene/crewup-backend/internal/testutil"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture monta os services sobre repositories GORM reais em SQLite
type fixture struct {
	ctx         context.Context
	db          *gorm.DB
	clock       *testutil.Clock
	publisher   *testutil.Publisher
	broadcaster *testutil.Broadcaster

	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	postRepo         repositories.PostRepository
	appRepo          repositories.ApplicationRepository
	bookmarkRepo     repositories.BookmarkRepository
	notificationRepo repositories.NotificationRepository
	chatRepo         repositories.ChatRepository
	searchRepo       repositories.SearchRepository

	users         *services.UserService
	profiles      *services.ProfileService
	posts         *services.PostService
	eligibility   *services.EligibilityService
	applications  *services.ApplicationService
	bookmarks     *services.BookmarkService
	notifications *services.NotificationService
	chat          *services.ChatService
	search        *services.SearchService
	bridge        *services.LifecycleBridge
}

func newFixture() *fixture {
	db, err := testutil.NewSQLiteDB()
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(testutil.CloseDB, db)

	translator, err := i18n.NewEmbeddedService("en")
	Expect(err).NotTo(HaveOccurred())

	f := &fixture{
		ctx:         context.Background(),
		db:          db,
		clock:       testutil.NewClock(baseTime),
		publisher:   &testutil.Publisher{},
		broadcaster: &testutil.Broadcaster{},

		userRepo:         postgres.NewUserRepository(db),
		profileRepo:      postgres.NewProfileRepository(db),
		postRepo:         postgres.NewPostRepository(db),
		appRepo:          postgres.NewApplicationRepository(db),
		bookmarkRepo:     postgres.NewBookmarkRepository(db),
		notificationRepo: postgres.NewNotificationRepository(db),
		chatRepo:         postgres.NewChatRepository(db),
		searchRepo:       postgres.NewSearchRepository(db),
	}

	log := logging.NewNopLogger()
	uow := postgres.NewUnitOfWork(db)
	sanitizer := sanitize.New()
	tokens := auth.NewTokenManager("test-secret", "crewup-test", time.Hour)

	f.users = services.NewUserService(f.userRepo, uow, testutil.Hasher{}, tokens, f.clock, log)
	f.profiles = services.NewProfileService(f.profileRepo, f.userRepo, &fakeStorage{}, uow, sanitizer, f.clock, log)
	f.posts = services.NewPostService(f.postRepo, f.userRepo, uow, f.publisher, sanitizer, f.clock, log)
	f.eligibility = services.NewEligibilityService(f.userRepo, f.postRepo, f.appRepo, f.clock)
	f.applications = services.NewApplicationService(f.appRepo, f.postRepo, f.eligibility, uow, f.publisher, sanitizer, f.clock, log)
	f.bookmarks = services.NewBookmarkService(f.bookmarkRepo, f.postRepo, f.clock, log)
	f.notifications = services.NewNotificationService(f.notificationRepo, f.postRepo, f.profileRepo, f.userRepo, f.broadcaster, translator, log)
	f.chat = services.NewChatService(f.chatRepo, f.postRepo, f.notifications, f.broadcaster, sanitizer, translator, f.clock, log)
	f.search = services.NewSearchService(f.searchRepo, f.postRepo)
	f.bridge = services.NewLifecycleBridge(f.notifications, f.chat, f.search, f.postRepo, translator, log)

	return f
}

// user cria um usuário ativo diretamente pelo repository
func (f *fixture) user(email string) *entities.User {
	user := &entities.User{
		Email:  valueobjects.MustEmail(email),
		Name:   "User " + email,
		Status: entities.UserStatusActive,
	}
	Expect(f.userRepo.Create(f.ctx, user)).To(Succeed())
	return user
}

// openPost cria um post OPEN com as vagas informadas e prazo em 7 dias
func (f *fixture) openPost(author *entities.User, roles map[entities.Role]int) *entities.Post {
	post, err := f.posts.Create(f.ctx, author.ID, services.PostInput{
		ProjectType:  entities.ProjectTypeProject,
		Status:       entities.PostStatusOpen,
		ActivityMode: entities.ActivityModeOnline,
		Duration:     entities.DurationThreeMonths,
		DeadlineAt:   f.clock.Now().Add(7 * 24 * time.Hour),
		Title:        "Team matching app",
		Content:      "<p>We are building a <b>matching</b> platform</p>",
		Interests:    []entities.Interest{entities.InterestAI},
		TechStacks:   []entities.TechStack{entities.TechStackGo, entities.TechStackReact},
		Roles:        roles,
	})
	Expect(err).NotTo(HaveOccurred())
	return post
}

func (f *fixture) remaining(postID string, role entities.Role) int {
	post, err := f.postRepo.FindByID(f.ctx, postID)
	Expect(err).NotTo(HaveOccurred())
	postRole, ok := post.FindRole(role)
	Expect(ok).To(BeTrue())
	return postRole.Remaining
}

func (f *fixture) submit(applicant *entities.User, post *entities.Post, role entities.Role) *entities.Application {
	application, err := f.applications.Submit(f.ctx, applicant.ID, services.SubmitApplicationInput{
		PostID:  post.ID,
		Role:    role,
		Message: "I would love to join",
	})
	Expect(err).NotTo(HaveOccurred())
	return application
}

var _ ports.ImageStorage = (*fakeStorage)(nil)
