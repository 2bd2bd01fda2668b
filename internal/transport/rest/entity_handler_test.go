package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/openclerk/backoffice/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEntityHandler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entity Handler Suite")
}

// MockCRUDService implements rest.CRUDService for testing
type MockCRUDService struct {
	records map[uint]*entity.Customer
	nextID  uint
	err     error
}

func NewMockCRUDService() *MockCRUDService {
	return &MockCRUDService{records: make(map[uint]*entity.Customer), nextID: 1}
}

func (m *MockCRUDService) GetAll(_ context.Context) ([]entity.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []entity.Customer{}
	for _, c := range m.records {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockCRUDService) GetByID(_ context.Context, id uint) (*entity.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.records[id]
	if !ok {
		return nil, internal.ErrEntityNotFound
	}
	return c, nil
}

func (m *MockCRUDService) Create(_ context.Context, c *entity.Customer) (*entity.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	c.ID = m.nextID
	m.nextID++
	m.records[c.ID] = c
	return c, nil
}

func (m *MockCRUDService) Update(_ context.Context, id uint, c *entity.Customer) (*entity.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c.ID != 0 && c.ID != id {
		return nil, internal.NewValidationError("body id does not match path id", internal.ErrCodeIDMismatch)
	}
	if _, ok := m.records[id]; !ok {
		return nil, internal.ErrEntityNotFound
	}
	c.ID = id
	m.records[id] = c
	return c, nil
}

func (m *MockCRUDService) Delete(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	delete(m.records, id)
	return nil
}

var _ = Describe("EntityHandler", func() {
	var (
		mockSvc *MockCRUDService
		router  *chi.Mux
	)

	doJSON := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		mockSvc = NewMockCRUDService()
		handler := rest.NewEntityHandler[entity.Customer](mockSvc)

		router = chi.NewRouter()
		router.Route("/customers", func(r chi.Router) {
			r.Get("/", handler.List)
			r.Get("/{id}", handler.Get)
			r.Post("/", handler.Create)
			r.Put("/{id}", handler.Replace)
			r.Delete("/{id}", handler.Delete)
		})
	})

	Describe("List", func() {
		It("should return all records", func() {
			_, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			rec := doJSON(http.MethodGet, "/customers/", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var got []entity.Customer
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Name).To(Equal("Acme"))
		})
	})

	Describe("Get", func() {
		It("should return the record", func() {
			created, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			rec := doJSON(http.MethodGet, "/customers/1", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var got entity.Customer
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.ID).To(Equal(created.ID))
		})

		It("should return 404 for an absent id", func() {
			rec := doJSON(http.MethodGet, "/customers/999", nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a malformed id", func() {
			rec := doJSON(http.MethodGet, "/customers/abc", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Create", func() {
		It("should return 201 with the created record", func() {
			rec := doJSON(http.MethodPost, "/customers/", &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var got entity.Customer
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.ID).NotTo(BeZero())
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/customers/", bytes.NewBufferString("{not json"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 409 when the service reports a conflict", func() {
			mockSvc.err = internal.ErrDuplicateKey
			rec := doJSON(http.MethodPost, "/customers/", &entity.Customer{Name: "Dup", Email: "d@example.com"})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Replace", func() {
		It("should return 400 when the body id contradicts the path id", func() {
			_, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			body := &entity.Customer{Name: "Other", Email: "o@example.com"}
			body.ID = 2
			rec := doJSON(http.MethodPut, "/customers/1", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return the updated record", func() {
			_, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			rec := doJSON(http.MethodPut, "/customers/1", &entity.Customer{Name: "Renamed", Email: "a@example.com"})
			Expect(rec.Code).To(Equal(http.StatusOK))

			var got entity.Customer
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.Name).To(Equal("Renamed"))
		})

		It("should return 409 when the stored version moved on", func() {
			_, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			mockSvc.err = internal.ErrStaleVersion
			rec := doJSON(http.MethodPut, "/customers/1", &entity.Customer{Name: "Late", Email: "a@example.com"})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Delete", func() {
		It("should return 204 regardless of prior existence", func() {
			_, err := mockSvc.Create(context.Background(), &entity.Customer{Name: "Acme", Email: "a@example.com"})
			Expect(err).NotTo(HaveOccurred())

			Expect(doJSON(http.MethodDelete, "/customers/1", nil).Code).To(Equal(http.StatusNoContent))
			Expect(doJSON(http.MethodDelete, "/customers/1", nil).Code).To(Equal(http.StatusNoContent))
		})
	})
})
