package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
)

func TestSeedSkipsPopulatedDatabase(t *testing.T) {
	db, state := newScriptedGormDB(t, []*queryStep{
		queryRows("SELECT count\\(\\*\\) FROM `departments`", []string{"count(*)"}, []driver.Value{int64(4)}),
	})

	seeded, err := Seed(context.Background(), db, SeedAdmin{Email: "admin@college.edu", Password: "password123"})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if seeded {
		t.Fatal("expected populated database to be left alone")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestSeedInsertsDepartmentsAndAdmin(t *testing.T) {
	db, state := newScriptedGormDB(t, []*queryStep{
		queryRows("SELECT count\\(\\*\\) FROM `departments`", []string{"count(*)"}, []driver.Value{int64(0)}),
		execStep("INSERT INTO `departments`", scriptedResult{lastInsertID: 1, rowsAffected: int64(len(DefaultDepartments))}),
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?"),
			args:    []driver.Value{"admin@college.edu"},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		execStep("INSERT INTO `users`", scriptedResult{lastInsertID: 1, rowsAffected: 1}),
	})

	seeded, err := Seed(context.Background(), db, SeedAdmin{Email: " Admin@College.edu ", Password: "password123"})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected seed to run")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
	if state.begun != 1 {
		t.Fatalf("transactions = %d, want 1", state.begun)
	}
}

func TestSeedRequiresAdminCredentials(t *testing.T) {
	db, _ := newScriptedGormDB(t, []*queryStep{
		queryRows("SELECT count\\(\\*\\) FROM `departments`", []string{"count(*)"}, []driver.Value{int64(0)}),
	})

	if _, err := Seed(context.Background(), db, SeedAdmin{Email: "admin@college.edu"}); err == nil {
		t.Fatal("expected error for missing password")
	}
}
