package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectTotals returns just the rolled-up totals for a project,
// computed from the persisted ledgers.
func HandleProjectTotals(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("project totals %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusOK, payload.Summary)
	}
}
