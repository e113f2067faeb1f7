package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"clubhouse/internal/application/orchestrators"
	instructorDomain "clubhouse/internal/domain/instructor"
	sportDomain "clubhouse/internal/domain/sport"
)

// sportPayload is the wire form of a catalog offering.
type sportPayload struct {
	Name       string `json:"name"`
	Days       string `json:"days"`
	Hours      string `json:"hours"`
	Instructor string `json:"instructor"`
	Capacity   int    `json:"capacity"`
	Fee        string `json:"fee"` // decimal, e.g. "200.00"
}

// handleSports handles GET (list) and POST (configure) for /api/sports
func handleSports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.ConfigureSportDeps{Sports: stores.SportStore}

	if r.Method == "GET" {
		sports, err := orchestrators.ExecuteListSports(ctx, deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sports)
		return
	}

	if r.Method == "POST" {
		var p sportPayload
		if isForm(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			p.Name = r.FormValue("name")
			p.Days = r.FormValue("days")
			p.Hours = r.FormValue("hours")
			p.Instructor = r.FormValue("instructor")
			p.Fee = r.FormValue("fee")
			capacity, err := parsePositiveInt(r.FormValue("capacity"))
			if err != nil {
				http.Error(w, "capacity must be a positive integer", http.StatusBadRequest)
				return
			}
			p.Capacity = capacity
		} else {
			if err := strictDecode(r, &p); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		feeCents, err := parseAmountCents(p.Fee)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s := sportDomain.Sport{
			Name:       p.Name,
			Days:       p.Days,
			Hours:      p.Hours,
			Instructor: p.Instructor,
			Capacity:   p.Capacity,
			FeeCents:   feeCents,
		}
		if err := orchestrators.ExecuteConfigureSport(ctx, s, deps); err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleSportByName handles GET and DELETE for /api/sports/{name}
func handleSportByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	switch r.Method {
	case "GET":
		s, err := stores.SportStore.Get(ctx, name)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	case "DELETE":
		if err := orchestrators.ExecuteRemoveSport(ctx, name,
			orchestrators.ConfigureSportDeps{Sports: stores.SportStore}); err != nil {
			domainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSportRoster handles GET /api/sports/{name}/roster
func handleSportRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	name := r.PathValue("name")

	if _, err := stores.SportStore.Get(ctx, name); err != nil {
		domainError(w, err)
		return
	}
	roster, err := stores.EnrollmentStore.ListBySport(ctx, name)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// handleInstructors handles GET (list) and POST (add) for /api/instructors
func handleInstructors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.InstructorDeps{Instructors: stores.InstructorStore}

	if r.Method == "GET" {
		roster, err := orchestrators.ExecuteListInstructors(ctx, deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, roster)
		return
	}

	if r.Method == "POST" {
		var body struct {
			DNI       string `json:"dni"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Phone     string `json:"phone"`
			Address   string `json:"address"`
			StartDate string `json:"start_date"` // DD/MM/YYYY
			Sport     string `json:"sport"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		startDate, ok := parseDateOrToday(body.StartDate)
		if !ok {
			http.Error(w, "start_date must be DD/MM/YYYY", http.StatusBadRequest)
			return
		}
		i := instructorDomain.Instructor{
			DNI:       body.DNI,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Phone:     body.Phone,
			Address:   body.Address,
			StartDate: startDate,
			Sport:     body.Sport,
		}
		if err := orchestrators.ExecuteAddInstructor(ctx, i, deps); err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, i)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleInstructorByDNI handles DELETE for /api/instructors/{dni}
func handleInstructorByDNI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := orchestrators.ExecuteRemoveInstructor(r.Context(), r.PathValue("dni"),
		orchestrators.InstructorDeps{Instructors: stores.InstructorStore}); err != nil {
		domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}
