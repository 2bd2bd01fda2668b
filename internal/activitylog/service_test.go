package activitylog_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/activitylog"
	"github.com/openclerk/backoffice/internal/core/entity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestActivityLogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ActivityLog Service Suite")
}

// MockRepository implements activitylog.RepositoryAPI for testing
type MockRepository struct {
	appended   []*entity.ActivityLog
	lastLimit  int
	shouldFail bool
}

func (m *MockRepository) Append(_ context.Context, log *entity.ActivityLog) error {
	if m.shouldFail {
		return errors.New("insert failed")
	}
	m.appended = append(m.appended, log)
	return nil
}

func (m *MockRepository) ByUser(_ context.Context, userID uint, limit int) ([]entity.ActivityLog, error) {
	m.lastLimit = limit
	var out []entity.ActivityLog
	for _, l := range m.appended {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *MockRepository) Recent(_ context.Context, limit int) ([]entity.ActivityLog, error) {
	m.lastLimit = limit
	var out []entity.ActivityLog
	for _, l := range m.appended {
		out = append(out, *l)
	}
	return out, nil
}

var _ = Describe("ActivityLog Service", func() {
	var (
		mockRepo *MockRepository
		service  *activitylog.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		testLog := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = activitylog.NewService(mockRepo, testLog)
		ctx = internal.ContextWithActor(context.Background(), internal.Actor{
			UserID:   42,
			UserName: "jane",
			IPAddr:   "10.0.0.1",
		})
	})

	Describe("LogActivity", func() {
		It("should stamp the actor and origin address from the context", func() {
			id := uint(7)
			err := service.LogActivity(ctx, entity.ActivityCreate, "Employee", &id, "created Employee 7")
			Expect(err).NotTo(HaveOccurred())

			Expect(mockRepo.appended).To(HaveLen(1))
			logged := mockRepo.appended[0]
			Expect(logged.UserID).To(Equal(uint(42)))
			Expect(logged.UserName).To(Equal("jane"))
			Expect(logged.IPAddress).To(Equal("10.0.0.1"))
			Expect(logged.ActivityType).To(Equal(entity.ActivityCreate))
			Expect(logged.EntityID).To(Equal(&id))
		})

		It("should record an anonymous entry when no actor is in context", func() {
			err := service.LogActivity(context.Background(), entity.ActivityLogin, "User", nil, "login")
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.appended[0].UserID).To(BeZero())
		})

		It("should surface repository failures to the caller", func() {
			mockRepo.shouldFail = true
			err := service.LogActivity(ctx, entity.ActivityCreate, "Employee", nil, "x")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetUserActivities", func() {
		It("should clamp a missing limit to the default", func() {
			_, err := service.GetUserActivities(ctx, 42, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastLimit).To(Equal(100))
		})

		It("should clamp an oversized limit", func() {
			_, err := service.GetUserActivities(ctx, 42, 10000)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastLimit).To(Equal(100))
		})

		It("should pass a sane limit through", func() {
			_, err := service.GetUserActivities(ctx, 42, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastLimit).To(Equal(25))
		})
	})

	Describe("GetRecentActivities", func() {
		It("should use its own default limit", func() {
			_, err := service.GetRecentActivities(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastLimit).To(Equal(50))
		})
	})
})
