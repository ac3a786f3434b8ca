package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"assetdesk/internal/config"
	"assetdesk/internal/database"
	"assetdesk/internal/domain"
	"assetdesk/internal/repository"
)

// Seeds a small demo dataset: an admin, one user per role, two departments
// with sub-departments, a handful of items and an in-flight borrow request.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	requests := repository.NewRequestRepository(db)
	depts := repository.NewDepartmentRepository(db)

	engineering := &domain.Department{Name: "Engineering", Description: "Product development"}
	operations := &domain.Department{Name: "Operations", Description: "Facilities and logistics"}
	mustCreate(depts.Create(ctx, engineering))
	mustCreate(depts.Create(ctx, operations))

	platform := &domain.SubDepartment{DepartmentID: engineering.ID, Name: "Platform"}
	qa := &domain.SubDepartment{DepartmentID: engineering.ID, Name: "QA"}
	mustCreate(depts.CreateSub(ctx, platform))
	mustCreate(depts.CreateSub(ctx, qa))

	seedUsers := []struct {
		email string
		name  string
		role  domain.UserRole
		dept  *int64
		sub   *int64
	}{
		{"admin@assetdesk.local", "Alex Admin", domain.RoleAdmin, nil, nil},
		{"manager@assetdesk.local", "Morgan Manager", domain.RoleManager, &engineering.ID, nil},
		{"staff@assetdesk.local", "Sam Staff", domain.RoleStaff, &engineering.ID, &platform.ID},
		{"viewer@assetdesk.local", "Val Viewer", domain.RoleViewer, &operations.ID, nil},
	}

	var staffID int64
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{
			Email:           su.email,
			PasswordHash:    string(hash),
			Name:            su.name,
			Role:            su.role,
			DepartmentID:    su.dept,
			SubDepartmentID: su.sub,
		}
		mustCreate(users.Create(ctx, u))
		if su.role == domain.RoleStaff {
			staffID = u.ID
		}
		log.Printf("user %s (%s)", u.Email, u.Role)
	}

	purchase := time.Now().AddDate(-1, 0, 0)
	seedItems := []*domain.InventoryItem{
		{Name: "Projector Epson EB-X49", Category: "electronics", Condition: domain.ConditionGood, Status: domain.ItemAvailable, Location: "Storage A", PurchasePrice: 520, PurchaseDate: &purchase},
		{Name: "MacBook Pro 14", Category: "electronics", Condition: domain.ConditionExcellent, Status: domain.ItemAvailable, Location: "IT cabinet", PurchasePrice: 2100, PurchaseDate: &purchase},
		{Name: "Conference table", Category: "furniture", Condition: domain.ConditionFair, Status: domain.ItemAvailable, Location: "Room 3", PurchasePrice: 640},
		{Name: "Label printer", Category: "office", Condition: domain.ConditionGood, Status: domain.ItemMaintenance, Location: "Front desk", PurchasePrice: 180},
	}
	for _, it := range seedItems {
		mustCreate(items.Create(ctx, it))
		log.Printf("item %q", it.Name)
	}

	req := &domain.BorrowRequest{
		ItemID:             seedItems[0].ID,
		BorrowerID:         staffID,
		DepartmentID:       engineering.ID,
		SubDepartmentID:    &platform.ID,
		RequestedDate:      time.Now(),
		ExpectedReturnDate: time.Now().AddDate(0, 0, 7),
		Status:             domain.RequestPending,
		Purpose:            "Client demo in Room 3",
	}
	mustCreate(requests.Create(ctx, req))
	log.Printf("pending request #%d for %q", req.ID, seedItems[0].Name)

	log.Println("Seed complete. All accounts use password 'password123'.")
}

func mustCreate(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
