package api

import "net/http"

// DepartmentsHandler serves the department listing.
type DepartmentsHandler struct {
	queries Queries
}

// NewDepartmentsHandler creates a new departments handler.
func NewDepartmentsHandler(queries Queries) *DepartmentsHandler {
	return &DepartmentsHandler{queries: queries}
}

// HandleGetDepartments handles GET /api/departments requests.
func (h *DepartmentsHandler) HandleGetDepartments(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_departments"
	departments, err := h.queries.Departments(r.Context())
	if err != nil {
		writeError(w, "Failed to fetch departments", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, departments)
}
