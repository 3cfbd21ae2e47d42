package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateDefaultConcreteType finds all project records without a concrete
// type and backfills the three-part default, so projects created before the
// field existed still price concrete.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateDefaultConcreteType(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(
		projectsCol,
		"concrete_type = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query projects: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate: found %d project(s) without a concrete type -- backfilling...\n", len(missing))

	for _, project := range missing {
		project.Set("concrete_type", "three_part")
		if err := app.Save(project); err != nil {
			log.Printf("migrate: failed to backfill project %s: %v\n", project.Id, err)
			continue
		}
	}

	log.Println("migrate: concrete type backfill complete.")
	return nil
}
