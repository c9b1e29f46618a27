package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestRatingsMigrationEnforcesConstraints(t *testing.T) {
	content := readMigration(t, "*_create_ratings.sql")

	checks := []string{
		"CHECK (rating >= 1 AND rating <= 5)",
		"CONSTRAINT ratings_user_id_store_id_key UNIQUE (user_id, store_id)",
		"FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE",
		"FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS ratings",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRolesMigrationAllowsOneRowPerUserRolePair(t *testing.T) {
	content := readMigration(t, "*_create_profiles_and_roles.sql")

	checks := []string{
		"CREATE TYPE app_role AS ENUM ('system_admin', 'normal_user', 'store_owner')",
		"CONSTRAINT user_roles_user_id_role_key UNIQUE (user_id, role)",
		"name text NOT NULL DEFAULT 'Unknown'",
		"address text NOT NULL DEFAULT ''",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStoreRatingsViewCoalescesEmptyStores(t *testing.T) {
	content := readMigration(t, "*_create_store_ratings_view.sql")

	checks := []string{
		"CREATE VIEW store_ratings",
		"LEFT JOIN ratings r ON r.store_id = s.id",
		"COALESCE(ROUND(AVG(r.rating), 2), 0) AS average_rating",
		"COUNT(r.id) AS total_ratings",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUpdatedAtTriggerCoversMutableTables(t *testing.T) {
	content := readMigration(t, "*_add_updated_at_triggers.sql")

	for _, table := range []string{"profiles", "stores", "ratings"} {
		if !strings.Contains(content, table+"_set_updated_at") {
			t.Errorf("missing updated_at trigger for %s", table)
		}
	}
}
