package audittrail_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/audittrail"
	"github.com/openclerk/backoffice/internal/core/entity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuditTrailService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuditTrail Service Suite")
}

// MockRepository implements audittrail.RepositoryAPI for testing
type MockRepository struct {
	appended   []*entity.AuditTrail
	shouldFail bool
}

func (m *MockRepository) Append(_ context.Context, trail *entity.AuditTrail) error {
	if m.shouldFail {
		return errors.New("insert failed")
	}
	m.appended = append(m.appended, trail)
	return nil
}

func (m *MockRepository) ByEntity(_ context.Context, entityType string, entityID uint) ([]entity.AuditTrail, error) {
	var out []entity.AuditTrail
	for _, t := range m.appended {
		if t.EntityType == entityType && t.EntityID == entityID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *MockRepository) ByUser(_ context.Context, userID uint, limit int) ([]entity.AuditTrail, error) {
	var out []entity.AuditTrail
	for _, t := range m.appended {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ = Describe("AuditTrail Service", func() {
	var (
		mockRepo *MockRepository
		service  *audittrail.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		testLog := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audittrail.NewService(mockRepo, testLog)
		ctx = internal.ContextWithActor(context.Background(), internal.Actor{
			UserID:   42,
			UserName: "jane",
		})
	})

	Describe("Record", func() {
		It("should serialize before and after snapshots as JSON", func() {
			before := &entity.Customer{Name: "Old Name"}
			after := &entity.Customer{Name: "New Name"}

			err := service.Record(ctx, "Customer", 7, "update", before, after)
			Expect(err).NotTo(HaveOccurred())

			Expect(mockRepo.appended).To(HaveLen(1))
			trail := mockRepo.appended[0]
			Expect(trail.UserID).To(Equal(uint(42)))
			Expect(trail.UserName).To(Equal("jane"))
			Expect(trail.OldValues).To(ContainSubstring("Old Name"))
			Expect(trail.NewValues).To(ContainSubstring("New Name"))
		})

		It("should store empty strings for missing snapshots", func() {
			err := service.Record(ctx, "Customer", 7, "create", nil, &entity.Customer{Name: "Fresh"})
			Expect(err).NotTo(HaveOccurred())

			trail := mockRepo.appended[0]
			Expect(trail.OldValues).To(BeEmpty())
			Expect(trail.NewValues).NotTo(BeEmpty())
		})

		It("should surface repository failures to the caller", func() {
			mockRepo.shouldFail = true
			err := service.Record(ctx, "Customer", 7, "delete", &entity.Customer{}, nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetEntityTrail", func() {
		It("should return the trail rows for one entity", func() {
			Expect(service.Record(ctx, "Customer", 7, "create", nil, &entity.Customer{Name: "A"})).To(Succeed())
			Expect(service.Record(ctx, "Customer", 7, "update", &entity.Customer{Name: "A"}, &entity.Customer{Name: "B"})).To(Succeed())
			Expect(service.Record(ctx, "Customer", 8, "create", nil, &entity.Customer{Name: "C"})).To(Succeed())

			trail, err := service.GetEntityTrail(ctx, "Customer", 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(2))
		})
	})

	Describe("GetUserTrail", func() {
		It("should clamp the limit and filter by user", func() {
			for i := 0; i < 3; i++ {
				Expect(service.Record(ctx, "Customer", uint(i+1), "create", nil, &entity.Customer{})).To(Succeed())
			}

			trail, err := service.GetUserTrail(ctx, 42, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(2))
		})
	})
})
