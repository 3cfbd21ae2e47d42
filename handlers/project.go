package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

type projectPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Community    string `json:"community"`
	Client       string `json:"client"`
	BusinessUnit string `json:"businessUnit"`
	ConcreteType string `json:"concreteType"`
	Created      string `json:"created"`
	Updated      string `json:"updated"`
}

func projectToPayload(r *core.Record) projectPayload {
	return projectPayload{
		ID:           r.Id,
		Name:         r.GetString("name"),
		Community:    r.GetString("community"),
		Client:       r.GetString("client"),
		BusinessUnit: r.GetString("business_unit"),
		ConcreteType: r.GetString("concrete_type"),
		Created:      r.GetString("created"),
		Updated:      r.GetString("updated"),
	}
}

// HandleProjectList returns all projects, newest first.
func HandleProjectList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("projects", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project list: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to load projects")
		}
		payload := make([]projectPayload, 0, len(records))
		for _, r := range records {
			payload = append(payload, projectToPayload(r))
		}
		return e.JSON(http.StatusOK, payload)
	}
}

type projectRequest struct {
	Name         string `json:"name"`
	Community    string `json:"community"`
	Client       string `json:"client"`
	BusinessUnit string `json:"businessUnit"`
	ConcreteType string `json:"concreteType"`
}

// HandleProjectCreate creates a project. The concrete type defaults to
// three_part when the client omits it.
func HandleProjectCreate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req projectRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return apiError(e, http.StatusBadRequest, "project name is required")
		}
		if req.ConcreteType == "" {
			req.ConcreteType = string(services.ConcreteThreePart)
		}
		if !validConcreteType(req.ConcreteType) {
			return apiError(e, http.StatusBadRequest, "unknown concrete type")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project create: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to create project")
		}

		r := core.NewRecord(col)
		r.Set("name", req.Name)
		r.Set("community", strings.TrimSpace(req.Community))
		r.Set("client", strings.TrimSpace(req.Client))
		r.Set("business_unit", strings.TrimSpace(req.BusinessUnit))
		r.Set("concrete_type", req.ConcreteType)
		if err := app.Save(r); err != nil {
			log.Printf("project create: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to create project")
		}

		return e.JSON(http.StatusCreated, projectToPayload(r))
	}
}

// HandleProjectGet returns a single project with its persisted ledgers.
func HandleProjectGet(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		ledgers, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("project get %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project":   projectToPayload(project),
			"materials": ledgers.Materials,
			"labor":     ledgers.Labor,
			"summary":   ledgers.Summary,
		})
	}
}

// HandleProjectUpdate updates project fields. Changing the pricing context
// (community, client, business unit) or the concrete type recalculates the
// estimate, since both feed the pipeline.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		var req projectRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		pricingChanged := false
		if name := strings.TrimSpace(req.Name); name != "" {
			project.Set("name", name)
		}
		if req.Community != project.GetString("community") ||
			req.Client != project.GetString("client") ||
			req.BusinessUnit != project.GetString("business_unit") {
			pricingChanged = true
		}
		project.Set("community", strings.TrimSpace(req.Community))
		project.Set("client", strings.TrimSpace(req.Client))
		project.Set("business_unit", strings.TrimSpace(req.BusinessUnit))
		if req.ConcreteType != "" {
			if !validConcreteType(req.ConcreteType) {
				return apiError(e, http.StatusBadRequest, "unknown concrete type")
			}
			if req.ConcreteType != project.GetString("concrete_type") {
				pricingChanged = true
			}
			project.Set("concrete_type", req.ConcreteType)
		}

		if err := app.Save(project); err != nil {
			log.Printf("project update %s: save: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to update project")
		}

		if pricingChanged {
			payload, err := recalcProject(app, project)
			if err != nil {
				log.Printf("project update %s: recalc: %v", project.Id, err)
				return apiError(e, http.StatusInternalServerError, "failed to recalculate estimate")
			}
			return e.JSON(http.StatusOK, map[string]any{
				"project":   projectToPayload(project),
				"materials": payload.Materials,
				"labor":     payload.Labor,
				"summary":   payload.Summary,
				"warnings":  payload.Warnings,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"project": projectToPayload(project)})
	}
}

// HandleProjectDelete removes a project. Line items and ledger rows cascade
// through their relation fields.
func HandleProjectDelete(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		if err := app.Delete(project); err != nil {
			log.Printf("project delete %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to delete project")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": project.Id})
	}
}

func validConcreteType(ct string) bool {
	for _, opt := range services.ConcreteOptions {
		if string(opt) == ct {
			return true
		}
	}
	return false
}
