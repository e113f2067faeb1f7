package web

import (
	"net/http"

	"clubhouse/internal/application/orchestrators"
	enrollmentDomain "clubhouse/internal/domain/enrollment"
)

// handleEnrollments handles POST /api/enrollments
func handleEnrollments(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		DNI           string `json:"dni"`
		Sport         string `json:"sport"`
		PaymentMethod string `json:"payment_method"`
		PaymentDate   string `json:"payment_date"` // DD/MM/YYYY, empty for today
	}
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		body.DNI = r.FormValue("dni")
		body.Sport = r.FormValue("sport")
		body.PaymentMethod = r.FormValue("payment_method")
		body.PaymentDate = r.FormValue("payment_date")
	} else {
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	paymentDate, ok := parseDateOrToday(body.PaymentDate)
	if !ok {
		http.Error(w, "payment_date must be DD/MM/YYYY", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteEnroll(r.Context(), orchestrators.EnrollInput{
		DNI:           body.DNI,
		SportName:     body.Sport,
		PaymentMethod: body.PaymentMethod,
		PaymentDate:   paymentDate,
	}, orchestrators.EnrollDeps{
		People:      stores.PersonStore,
		Sports:      stores.SportStore,
		Enrollments: stores.EnrollmentStore,
		Discounts:   enrollmentDomain.DefaultDiscounts(),
		Receipts:    receiptIssuer,
	})
	if err != nil {
		domainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
