package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/testutil"

	"gorm.io/gorm"
)

func TestUserRepository_FindOfficers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	gs := testutil.CreateUser(t, db, "gs1", domain.RoleGS, testutil.Colombo)
	ds := testutil.CreateUser(t, db, "ds1", domain.RoleDS, domain.Hierarchy{
		DistrictCode: testutil.Colombo.DistrictCode,
		DivisionCode: testutil.Colombo.DivisionCode,
	})

	got, err := repo.FindGSOfficer(ctx, testutil.Colombo.AreaCode, testutil.Colombo.DivisionCode)
	if err != nil || got.ID != gs.ID {
		t.Fatalf("FindGSOfficer = %v, %v; want user %d", got, err, gs.ID)
	}

	got, err = repo.FindDSOfficer(ctx, testutil.Colombo.DivisionCode)
	if err != nil || got.ID != ds.ID {
		t.Fatalf("FindDSOfficer = %v, %v; want user %d", got, err, ds.ID)
	}

	// Area codes are only unique within a division
	_, err = repo.FindGSOfficer(ctx, testutil.Colombo.AreaCode, "DV99")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindGSOfficer other division error = %v, want ErrRecordNotFound", err)
	}
}

func TestUserRepository_ExistsIncludesDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "donor", domain.RoleDonor, domain.Hierarchy{})
	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetByID after delete error = %v, want ErrRecordNotFound", err)
	}

	exists, err := repo.ExistsByUsername(ctx, "donor")
	if err != nil {
		t.Fatalf("ExistsByUsername: %v", err)
	}
	if !exists {
		t.Error("deleted username should still be reserved")
	}
}

func TestUserRepository_ListByRole(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "donor1", domain.RoleDonor, domain.Hierarchy{})
	testutil.CreateUser(t, db, "donor2", domain.RoleDonor, domain.Hierarchy{})
	testutil.CreateUser(t, db, "creator", domain.RoleCreator, domain.Hierarchy{})

	users, total, err := repo.List(ctx, string(domain.RoleDonor), 0, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(users) != 1 {
		t.Fatalf("List = %d users (total %d), want 1 of 2", len(users), total)
	}
	if users[0].Username != "donor1" {
		t.Errorf("first user = %q, want donor1", users[0].Username)
	}

	officers, err := repo.ListByRoles(ctx, string(domain.RoleGS), string(domain.RoleDS))
	if err != nil {
		t.Fatalf("ListByRoles: %v", err)
	}
	if len(officers) != 0 {
		t.Errorf("ListByRoles = %d, want 0", len(officers))
	}
}
