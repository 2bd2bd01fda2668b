package crud_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/openclerk/backoffice/internal/crud"
	"github.com/openclerk/backoffice/internal/repository"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestCrudService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CRUD Service Suite")
}

// MockRepository implements crud.RepositoryAPI for testing
type MockRepository struct {
	records    map[uint]*entity.Customer
	nextID     uint
	calls      []string
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{records: make(map[uint]*entity.Customer), nextID: 1}
}

func (m *MockRepository) GetByID(_ context.Context, id uint) (*entity.Customer, error) {
	m.calls = append(m.calls, "GetByID")
	if m.shouldFail {
		return nil, m.failError
	}
	c, ok := m.records[id]
	if !ok {
		return nil, internal.ErrEntityNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockRepository) GetAll(_ context.Context) ([]entity.Customer, error) {
	m.calls = append(m.calls, "GetAll")
	if m.shouldFail {
		return nil, m.failError
	}
	var out []entity.Customer
	for _, c := range m.records {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockRepository) Find(_ context.Context, _ any, _ ...any) ([]entity.Customer, error) {
	m.calls = append(m.calls, "Find")
	return nil, nil
}

func (m *MockRepository) Add(_ context.Context, c *entity.Customer) error {
	m.calls = append(m.calls, "Add")
	if m.shouldFail {
		return m.failError
	}
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.records[c.ID] = &copied
	return nil
}

func (m *MockRepository) Update(_ context.Context, c *entity.Customer) error {
	m.calls = append(m.calls, "Update")
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.records[c.ID]; !ok {
		return internal.ErrEntityNotFound
	}
	copied := *c
	m.records[c.ID] = &copied
	return nil
}

func (m *MockRepository) Delete(_ context.Context, c *entity.Customer, _ string) error {
	m.calls = append(m.calls, "Delete")
	if m.shouldFail {
		return m.failError
	}
	delete(m.records, c.ID)
	return nil
}

func (m *MockRepository) StoreTouched() bool {
	return len(m.calls) > 0
}

// MockActivityLogger records calls and optionally fails
type MockActivityLogger struct {
	entries   []string
	failError error
}

func (m *MockActivityLogger) LogActivity(_ context.Context, activityType entity.ActivityType, entityType string, _ *uint, _ string) error {
	if m.failError != nil {
		return m.failError
	}
	m.entries = append(m.entries, string(activityType)+":"+entityType)
	return nil
}

// MockAuditRecorder records before/after pairs and optionally fails
type MockAuditRecorder struct {
	actions   []string
	befores   []any
	afters    []any
	failError error
}

func (m *MockAuditRecorder) Record(_ context.Context, _ string, _ uint, action string, before, after any) error {
	if m.failError != nil {
		return m.failError
	}
	m.actions = append(m.actions, action)
	m.befores = append(m.befores, before)
	m.afters = append(m.afters, after)
	return nil
}

var _ = Describe("CRUD Service", func() {
	var (
		mockRepo  *MockRepository
		activity  *MockActivityLogger
		audit     *MockAuditRecorder
		service   *crud.Service[entity.Customer]
		ctx       context.Context
		testLog   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		activity = &MockActivityLogger{}
		audit = &MockAuditRecorder{}
		testLog = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = crud.NewService[entity.Customer](mockRepo, "Customer", activity, audit, testLog)
		ctx = internal.ContextWithActor(context.Background(), internal.Actor{
			UserID:   7,
			UserName: "tester",
			IPAddr:   "127.0.0.1",
		})
	})

	Describe("Create", func() {
		It("should validate before touching the store", func() {
			_, err := service.Create(ctx, &entity.Customer{Email: "no-name@example.com"})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(mockRepo.StoreTouched()).To(BeFalse())
		})

		It("should stamp the creator from the request actor", func() {
			created, err := service.Create(ctx, &entity.Customer{Name: "Acme", Email: "acme@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.CreatedBy).To(Equal("tester"))
		})

		It("should log activity and record a create audit with no before state", func() {
			_, err := service.Create(ctx, &entity.Customer{Name: "Acme", Email: "acme@example.com"})
			Expect(err).NotTo(HaveOccurred())

			Expect(activity.entries).To(ContainElement("create:Customer"))
			Expect(audit.actions).To(Equal([]string{"create"}))
			Expect(audit.befores[0]).To(BeNil())
			Expect(audit.afters[0]).NotTo(BeNil())
		})

		Context("when the activity log write fails", func() {
			BeforeEach(func() {
				activity.failError = errors.New("log store down")
				audit.failError = errors.New("audit store down")
			})

			It("should still succeed", func() {
				created, err := service.Create(ctx, &entity.Customer{Name: "Acme", Email: "acme@example.com"})
				Expect(err).NotTo(HaveOccurred())
				Expect(created.ID).NotTo(BeZero())
			})
		})
	})

	Describe("Update", func() {
		var existing *entity.Customer

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ctx, &entity.Customer{Name: "Original", Email: "orig@example.com"})
			Expect(err).NotTo(HaveOccurred())
			mockRepo.calls = nil
		})

		It("should reject a body id that contradicts the path id before any store call", func() {
			body := &entity.Customer{Name: "Other", Email: "o@example.com"}
			body.ID = existing.ID + 1

			_, err := service.Update(ctx, existing.ID, body)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeIDMismatch))
			Expect(mockRepo.StoreTouched()).To(BeFalse())
		})

		It("should adopt the path id when the body carries none", func() {
			body := &entity.Customer{Name: "Renamed", Email: "orig@example.com"}

			updated, err := service.Update(ctx, existing.ID, body)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(existing.ID))
			Expect(updated.Name).To(Equal("Renamed"))
		})

		It("should stamp the updater and record before and after snapshots", func() {
			body := &entity.Customer{Name: "Renamed", Email: "orig@example.com"}

			updated, err := service.Update(ctx, existing.ID, body)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.UpdatedBy).NotTo(BeNil())
			Expect(*updated.UpdatedBy).To(Equal("tester"))

			Expect(audit.actions).To(ContainElement("update"))
			Expect(audit.befores[len(audit.befores)-1]).NotTo(BeNil())
		})

		It("should propagate NotFound for an absent id", func() {
			body := &entity.Customer{Name: "Nobody", Email: "n@example.com"}
			_, err := service.Update(ctx, 9999, body)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should remove the record and record a delete audit with no after state", func() {
			created, err := service.Create(ctx, &entity.Customer{Name: "Doomed", Email: "d@example.com"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())
			Expect(audit.actions).To(ContainElement("delete"))
			Expect(audit.afters[len(audit.afters)-1]).To(BeNil())
		})

		It("should treat an absent id as a no-op", func() {
			Expect(service.Delete(ctx, 9999)).To(Succeed())
			Expect(mockRepo.calls).To(Equal([]string{"GetByID"}))
		})
	})
})

var _ = Describe("Employee lifecycle", func() {
	var (
		service *crud.Service[entity.Employee]
		ctx     context.Context
	)

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&entity.Employee{})).To(Succeed())

		testLog := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = crud.NewService[entity.Employee](repository.New[entity.Employee](db), "Employee", nil, nil, testLog)
		ctx = internal.ContextWithActor(context.Background(), internal.Actor{UserID: 1, UserName: "hr"})
	})

	It("should support the full create, list, update, read, delete cycle", func() {
		created, err := service.Create(ctx, &entity.Employee{
			FirstName:  "John",
			LastName:   "Doe",
			Email:      "john.doe@example.com",
			Department: "Engineering",
			Salary:     decimal.NewFromInt(90000),
			HireDate:   time.Now(),
			Status:     entity.EmployeeActive,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).NotTo(BeZero())

		all, err := service.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(1))
		Expect(all[0].Email).To(Equal("john.doe@example.com"))

		created.Status = entity.EmployeeOnLeave
		updated, err := service.Update(ctx, created.ID, created)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Status).To(Equal(entity.EmployeeOnLeave))

		got, err := service.GetByID(ctx, created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Status).To(Equal(entity.EmployeeOnLeave))

		Expect(service.Delete(ctx, created.ID)).To(Succeed())

		_, err = service.GetByID(ctx, created.ID)
		Expect(internal.IsNotFound(err)).To(BeTrue())
	})
})
