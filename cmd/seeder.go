package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedModules = []string{
	"Customer", "Lead",
	"Employee", "LeaveRequest", "PayrollRecord",
	"Account", "Transaction", "Budget",
	"Product", "StockMovement", "Warehouse",
	"Project", "ProjectTask", "TimeEntry",
	"Role", "Permission",
	"ActivityLog", "AuditTrail",
}

var seedActions = []string{"Create", "Read", "Update", "Delete"}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with roles, permissions and default users",
	Long:  `Seed the database with the permission catalog, default roles, admin and manager accounts and a few sample business rows.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, gdb, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"role_permissions", "user_roles"} {
				if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared role and permission assignments")
		}

		if err := seedCatalog(gdb); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	},
}

func seedCatalog(gdb *gorm.DB) error {
	// Permission catalog: one row per module and action pair
	for _, module := range seedModules {
		for _, action := range seedActions {
			perm := entity.Permission{
				Name:   module + ":" + action,
				Module: module,
				Action: action,
			}
			err := gdb.Where("module = ? AND action = ?", module, action).
				FirstOrCreate(&perm).Error
			if err != nil {
				return fmt.Errorf("failed to seed permission %s:%s: %w", module, action, err)
			}
		}
	}
	fmt.Println("Seeded permission catalog")

	adminRole := entity.Role{Name: "Administrator", Description: "Full access to every module"}
	if err := gdb.Where("name = ?", adminRole.Name).FirstOrCreate(&adminRole).Error; err != nil {
		return fmt.Errorf("failed to seed admin role: %w", err)
	}

	managerRole := entity.Role{Name: "Manager", Description: "Read and update access across modules"}
	if err := gdb.Where("name = ?", managerRole.Name).FirstOrCreate(&managerRole).Error; err != nil {
		return fmt.Errorf("failed to seed manager role: %w", err)
	}

	var allPerms []entity.Permission
	if err := gdb.Find(&allPerms).Error; err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}

	for _, perm := range allPerms {
		rp := entity.RolePermission{RoleID: adminRole.ID, PermissionID: perm.ID}
		err := gdb.Where("role_id = ? AND permission_id = ?", adminRole.ID, perm.ID).
			FirstOrCreate(&rp).Error
		if err != nil {
			return fmt.Errorf("failed to grant %s to admin role: %w", perm.Name, err)
		}

		if perm.Action == "Read" || perm.Action == "Update" {
			mrp := entity.RolePermission{RoleID: managerRole.ID, PermissionID: perm.ID}
			err := gdb.Where("role_id = ? AND permission_id = ?", managerRole.ID, perm.ID).
				FirstOrCreate(&mrp).Error
			if err != nil {
				return fmt.Errorf("failed to grant %s to manager role: %w", perm.Name, err)
			}
		}
	}
	fmt.Println("Granted permissions to default roles")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Username:     "admin",
		Email:        "admin@backoffice.local",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := gdb.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	ur := entity.UserRole{UserID: admin.ID, RoleID: adminRole.ID}
	err = gdb.Where("user_id = ? AND role_id = ?", admin.ID, adminRole.ID).
		FirstOrCreate(&ur).Error
	if err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}

	manager := entity.User{
		Username:     "manager",
		Email:        "manager@backoffice.local",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := gdb.Where("email = ?", manager.Email).FirstOrCreate(&manager).Error; err != nil {
		return fmt.Errorf("failed to seed manager user: %w", err)
	}
	mur := entity.UserRole{UserID: manager.ID, RoleID: managerRole.ID}
	err = gdb.Where("user_id = ? AND role_id = ?", manager.ID, managerRole.ID).
		FirstOrCreate(&mur).Error
	if err != nil {
		return fmt.Errorf("failed to assign manager role: %w", err)
	}

	fmt.Println("Seeded admin and manager users")
	return seedSampleRows(gdb)
}

// seedSampleRows gives a fresh install something to look at.
func seedSampleRows(gdb *gorm.DB) error {
	customer := entity.Customer{
		Name:    "Acme Corporation",
		Email:   "contact@acme.example.com",
		Company: "Acme Corporation",
		Status:  entity.CustomerActive,
	}
	if err := gdb.Where("email = ?", customer.Email).FirstOrCreate(&customer).Error; err != nil {
		return fmt.Errorf("failed to seed sample customer: %w", err)
	}

	employee := entity.Employee{
		FirstName:  "Jane",
		LastName:   "Smith",
		Email:      "jane.smith@backoffice.local",
		Department: "Engineering",
		Position:   "Engineer",
		Salary:     decimal.NewFromInt(85000),
		HireDate:   time.Now(),
		Status:     entity.EmployeeActive,
	}
	if err := gdb.Where("email = ?", employee.Email).FirstOrCreate(&employee).Error; err != nil {
		return fmt.Errorf("failed to seed sample employee: %w", err)
	}

	product := entity.Product{
		Name:      "Standard Widget",
		Category:  "Widgets",
		SKU:       "WID-0001",
		UnitPrice: decimal.NewFromFloat(19.99),
		Status:    entity.ProductActive,
	}
	if err := gdb.Where("sku = ?", product.SKU).FirstOrCreate(&product).Error; err != nil {
		return fmt.Errorf("failed to seed sample product: %w", err)
	}

	fmt.Println("Seeded sample business rows")
	return nil
}
