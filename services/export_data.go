package services

// EstimateExport holds everything the estimate workbook needs: both ledgers
// plus the rolled-up totals, snapshotted at export time.
type EstimateExport struct {
	ProjectName string
	CreatedDate string
	Materials   []MaterialRow
	Labor       []LaborRow
	Summary     Summary
	NetFootage  float64
}

// BuildEstimateExport assembles the export snapshot from the persisted
// ledgers.
func BuildEstimateExport(projectName, createdDate string, materials []MaterialRow, labor []LaborRow, netFootage float64) EstimateExport {
	return EstimateExport{
		ProjectName: projectName,
		CreatedDate: createdDate,
		Materials:   materials,
		Labor:       labor,
		Summary:     Summarize(materials, labor, netFootage),
		NetFootage:  netFootage,
	}
}
