package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

// HandleEstimateExportExcel streams the estimate workbook for a project.
func HandleEstimateExportExcel(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("estimate export %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		items, _, err := loadLineItems(app, project.Id)
		if err != nil {
			log.Printf("estimate export %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		data := services.BuildEstimateExport(
			project.GetString("name"),
			project.GetString("created"),
			materials, labor,
			services.NetFootage(items),
		)
		workbook, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("estimate export %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to generate workbook")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-estimate.xlsx"`, project.Id))
		_, err = e.Response.Write(workbook)
		return err
	}
}
