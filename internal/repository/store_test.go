package repository_test

import (
	"context"
	"errors"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/openclerk/backoffice/internal/repository"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Store", func() {
	var (
		db    *gorm.DB
		store *repository.Store
		repo  *repository.Repository[entity.Employee]
		ctx   context.Context
	)

	BeforeEach(func() {
		db = openTestDB()
		store = repository.NewStore(db)
		repo = repository.New[entity.Employee](db)
		ctx = context.Background()
	})

	Describe("Transaction", func() {
		It("should commit all writes together", func() {
			err := store.Transaction(ctx, func(tx *gorm.DB) error {
				txRepo := repo.WithTx(tx)
				if err := txRepo.Add(ctx, newEmployee("One", "one@example.com")); err != nil {
					return err
				}
				return txRepo.Add(ctx, newEmployee("Two", "two@example.com"))
			})
			Expect(err).NotTo(HaveOccurred())

			all, err := repo.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("should roll back every staged write when fn fails", func() {
			boom := errors.New("boom")
			err := store.Transaction(ctx, func(tx *gorm.DB) error {
				txRepo := repo.WithTx(tx)
				if err := txRepo.Add(ctx, newEmployee("Ghost", "ghost@example.com")); err != nil {
					return err
				}
				return boom
			})
			Expect(err).To(HaveOccurred())

			all, err := repo.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("should pass translated errors through untouched", func() {
			err := store.Transaction(ctx, func(tx *gorm.DB) error {
				txRepo := repo.WithTx(tx)
				if err := txRepo.Add(ctx, newEmployee("A", "same@example.com")); err != nil {
					return err
				}
				return txRepo.Add(ctx, newEmployee("B", "same@example.com"))
			})
			Expect(err).To(MatchError(internal.ErrDuplicateKey))
		})
	})
})
