package repository

import (
	"testing"
	"time"

	"estimator/internal/app/ds"
	"estimator/internal/app/role"

	"github.com/google/go-cmp/cmp"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func seedUser(t *testing.T, repo *Repository, login string) *ds.User {
	t.Helper()
	user, err := repo.CreateUser(login, "hash", "Test User", login+"@test", role.Manager)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestUserLookup(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "kim")

	exists, err := repo.UserExistsByLogin("kim")
	if err != nil || !exists {
		t.Fatalf("UserExistsByLogin = %v, %v", exists, err)
	}
	if _, err := repo.GetUserByLogin("nobody"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	name := "Kim Minsu"
	if err := repo.UpdateUser(user.ID, &name, nil, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != name || got.Role != role.Manager {
		t.Errorf("unexpected user %+v", got)
	}
}

func TestSingleDefaultCompany(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "lee")

	first := &ds.Company{UserID: user.ID, Name: "First Studio", IsDefault: true}
	second := &ds.Company{UserID: user.ID, Name: "Second Studio"}
	for _, c := range []*ds.Company{first, second} {
		if err := repo.CreateCompany(c); err != nil {
			t.Fatalf("create company: %v", err)
		}
	}

	if err := repo.SetDefaultCompany(user.ID, second.ID); err != nil {
		t.Fatalf("set default: %v", err)
	}

	companies, err := repo.ListCompanies(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defaults := 0
	for _, c := range companies {
		if c.IsDefault {
			defaults++
			if c.ID != second.ID {
				t.Errorf("default is %s, want %s", c.ID, second.ID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("got %d default companies, want 1", defaults)
	}

	def, err := repo.GetDefaultCompany(user.ID)
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if def.ID != second.ID {
		t.Errorf("GetDefaultCompany = %s, want %s", def.ID, second.ID)
	}
}

func TestDefaultCompanyFallsBackToFirst(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "park")

	if _, err := repo.GetDefaultCompany(user.ID); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound without companies, got %v", err)
	}

	c := &ds.Company{UserID: user.ID, Name: "Only Studio"}
	if err := repo.CreateCompany(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	def, err := repo.GetDefaultCompany(user.ID)
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if def.ID != c.ID {
		t.Errorf("GetDefaultCompany = %s, want %s", def.ID, c.ID)
	}
}

func TestCompanyOwnership(t *testing.T) {
	repo := setupTestRepo(t)
	owner := seedUser(t, repo, "owner")
	other := seedUser(t, repo, "other")

	c := &ds.Company{UserID: owner.ID, Name: "Owner Studio"}
	if err := repo.CreateCompany(c); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetCompany(other.ID, c.ID); !IsNotFound(err) {
		t.Errorf("other user can read company: %v", err)
	}
	if err := repo.DeleteCompany(other.ID, c.ID); !IsNotFound(err) {
		t.Errorf("other user can delete company: %v", err)
	}
	if err := repo.UpdateCompanyAsset(owner.ID, c.ID, AssetLogo, "http://cdn/logo.png"); err != nil {
		t.Fatalf("asset: %v", err)
	}
	got, err := repo.GetCompany(owner.ID, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Logo == nil || *got.Logo != "http://cdn/logo.png" {
		t.Errorf("logo = %v", got.Logo)
	}
	if err := repo.UpdateCompanyAsset(owner.ID, c.ID, "banner", "x"); err == nil {
		t.Error("expected error for unknown asset kind")
	}
}

func TestSearchCustomers(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "choi")

	for _, c := range []ds.Customer{
		{UserID: user.ID, Name: "Alice", Company: "Blue Films"},
		{UserID: user.ID, Name: "Bob", Company: "Red Media"},
	} {
		c := c
		if err := repo.CreateCustomer(&c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	found, err := repo.SearchCustomers(user.ID, "blue")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Alice" {
		t.Errorf("search = %+v", found)
	}
}

func TestSaveEstimateReplacesItems(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "jung")

	est := &ds.Estimate{
		UserID:     user.ID,
		Title:      "TVC",
		TaxRate:    10,
		ValidUntil: time.Now().AddDate(0, 0, 30),
		Company:    datatypes.NewJSONType(ds.CompanySnapshot{Name: "Studio"}),
		Items: []ds.EstimateItem{
			{ItemKey: "a", Category: "planning", Name: "Idea", Quantity: 1, Unit: "건", UnitPrice: 100, TotalPrice: 100},
			{ItemKey: "b", Category: "production", Name: "Shoot", Quantity: 2, Unit: "일", UnitPrice: 50, TotalPrice: 100},
		},
	}
	if err := repo.CreateEstimate(est); err != nil {
		t.Fatalf("create: %v", err)
	}

	est.Title = "TVC v2"
	est.Items = []ds.EstimateItem{
		{ItemKey: "c", Category: "postProduction", Name: "Edit", Quantity: 1, Unit: "건", UnitPrice: 70, TotalPrice: 70},
	}
	if err := repo.SaveEstimate(est); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetEstimate(user.ID, est.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	keys := []string{}
	for _, it := range got.Items {
		keys = append(keys, it.ItemKey)
	}
	if diff := cmp.Diff([]string{"c"}, keys); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if got.Title != "TVC v2" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Company.Data().Name != "Studio" {
		t.Errorf("company snapshot = %+v", got.Company.Data())
	}
}

func TestDeleteEstimateIsSoft(t *testing.T) {
	repo := setupTestRepo(t)
	user := seedUser(t, repo, "han")

	est := &ds.Estimate{UserID: user.ID, Title: "SNS", TaxRate: 10}
	if err := repo.CreateEstimate(est); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteEstimate(user.ID, est.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetEstimate(user.ID, est.ID); !IsNotFound(err) {
		t.Errorf("deleted estimate still visible: %v", err)
	}

	var count int64
	repo.DB().Unscoped().Model(&ds.Estimate{}).Where("id = ?", est.ID).Count(&count)
	if count != 1 {
		t.Errorf("row count after soft delete = %d, want 1", count)
	}
	if err := repo.DeleteEstimate(user.ID, est.ID); !IsNotFound(err) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
