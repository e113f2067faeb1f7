package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	enrollmentDomain "clubhouse/internal/domain/enrollment"
	instructorDomain "clubhouse/internal/domain/instructor"
	ledgerDomain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
	sportDomain "clubhouse/internal/domain/sport"
	"clubhouse/internal/validation"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// domainError maps domain sentinels onto HTTP status codes. Anything not
// recognized is treated as internal.
func domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrValidation),
		errors.Is(err, ledgerDomain.ErrInvalidPaymentMethod),
		errors.Is(err, ledgerDomain.ErrInvalidPeriod),
		errors.Is(err, sportDomain.ErrEmptyName),
		errors.Is(err, sportDomain.ErrInvalidCapacity),
		errors.Is(err, sportDomain.ErrInvalidFee),
		errors.Is(err, instructorDomain.ErrEmptySport):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, person.ErrNotFound),
		errors.Is(err, sportDomain.ErrNotFound),
		errors.Is(err, instructorDomain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, person.ErrSponsorNotFound):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, person.ErrDuplicateIdentity),
		errors.Is(err, person.ErrGuestCapExceeded),
		errors.Is(err, enrollmentDomain.ErrAlreadyEnrolled),
		errors.Is(err, enrollmentDomain.ErrCapacityExceeded),
		errors.Is(err, instructorDomain.ErrDuplicateDNI):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		internalError(w, err)
	}
}

// parseAmountCents converts a decimal amount string ("500" or "500.00") to
// cents.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, found := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if !found {
		return units * 100, nil
	}
	if len(frac) != 2 {
		return 0, fmt.Errorf("invalid amount %q: need two decimal places", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return units*100 + cents, nil
}

// parseDateOrToday parses a DD/MM/YYYY value, defaulting to today when empty.
func parseDateOrToday(s string) (time.Time, bool) {
	if s == "" {
		now := timeNow().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return validation.ParseDate(s)
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Username = r.FormValue("username")
		input.Password = r.FormValue("password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	account, err := orchestrators.ExecuteLogin(r.Context(), input.Username, input.Password,
		orchestrators.AccountDeps{Accounts: stores.AccountStore})
	if err != nil {
		domainError(w, err)
		return
	}

	token, err := sessions.Create(account.ID, account.Username, account.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"username": account.Username,
		"role":     account.Role,
	})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleCreateAccount handles POST /api/accounts (admin only, enforced in routes)
func handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.CreateAccountInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	account, err := orchestrators.ExecuteCreateAccount(r.Context(), input,
		orchestrators.AccountDeps{Accounts: stores.AccountStore})
	if err != nil {
		domainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       account.ID,
		"username": account.Username,
		"role":     account.Role,
	})
}

// memberPayload is the wire form of a member record.
type memberPayload struct {
	DNI          string `json:"dni"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"` // DD/MM/YYYY
	SocialFee    string `json:"social_fee"`    // decimal, e.g. "500.00"
}

// handleMembers handles both GET (list) and POST (register) for /api/members
func handleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		members, err := stores.PersonStore.ListMembers(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, members)
		return
	}

	if r.Method == "POST" {
		var p memberPayload
		var method string
		if isForm(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			p = memberPayload{
				DNI:          r.FormValue("dni"),
				FirstName:    r.FormValue("first_name"),
				LastName:     r.FormValue("last_name"),
				Address:      r.FormValue("address"),
				Phone:        r.FormValue("phone"),
				Email:        r.FormValue("email"),
				RegisteredAt: r.FormValue("registered_at"),
				SocialFee:    r.FormValue("social_fee"),
			}
			method = r.FormValue("payment_method")
		} else {
			var body struct {
				memberPayload
				PaymentMethod string `json:"payment_method"`
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			p = body.memberPayload
			method = body.PaymentMethod
		}

		registeredAt, ok := parseDateOrToday(p.RegisteredAt)
		if !ok {
			http.Error(w, "registered_at must be DD/MM/YYYY", http.StatusBadRequest)
			return
		}
		feeCents, err := parseAmountCents(p.SocialFee)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := orchestrators.ExecuteRegisterMember(ctx, orchestrators.RegisterMemberInput{
			DNI:            p.DNI,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Address:        p.Address,
			Phone:          p.Phone,
			Email:          p.Email,
			RegisteredAt:   registeredAt,
			SocialFeeCents: feeCents,
			PaymentMethod:  method,
		}, orchestrators.RegisterMemberDeps{
			People:   stores.PersonStore,
			Receipts: receiptIssuer,
		})
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleMemberByDNI handles PUT (update) and DELETE for /api/members/{dni}
func handleMemberByDNI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dni := r.PathValue("dni")

	switch r.Method {
	case "GET":
		m, err := stores.PersonStore.GetMember(ctx, dni)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case "PUT":
		var p memberPayload
		if err := strictDecode(r, &p); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		existing, err := stores.PersonStore.GetMember(ctx, dni)
		if err != nil {
			domainError(w, err)
			return
		}
		updated := existing
		updated.FirstName = p.FirstName
		updated.LastName = p.LastName
		updated.Address = p.Address
		updated.Phone = p.Phone
		updated.Email = p.Email
		if err := orchestrators.ExecuteUpdateMember(ctx, updated,
			orchestrators.PeopleDeps{People: stores.PersonStore}); err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case "DELETE":
		if err := orchestrators.ExecuteRemovePerson(ctx, dni,
			orchestrators.PeopleDeps{People: stores.PersonStore}); err != nil {
			domainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleGuests handles GET (list) and POST (register) for /api/guests
func handleGuests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		guests, err := stores.PersonStore.ListGuests(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, guests)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterGuestInput{}
		if isForm(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.DNI = r.FormValue("dni")
			input.FirstName = r.FormValue("first_name")
			input.LastName = r.FormValue("last_name")
			input.SponsorDNI = r.FormValue("sponsor_dni")
		} else {
			var body struct {
				DNI        string `json:"dni"`
				FirstName  string `json:"first_name"`
				LastName   string `json:"last_name"`
				SponsorDNI string `json:"sponsor_dni"`
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input = orchestrators.RegisterGuestInput(body)
		}

		g, err := orchestrators.ExecuteRegisterGuest(ctx, input,
			orchestrators.RegisterGuestDeps{People: stores.PersonStore})
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleNonMembers handles GET (list) and POST (register) for /api/nonmembers
func handleNonMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		nonMembers, err := stores.PersonStore.ListNonMembers(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, nonMembers)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterNonMemberInput{}
		if isForm(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.DNI = r.FormValue("dni")
			input.FirstName = r.FormValue("first_name")
			input.LastName = r.FormValue("last_name")
			input.Phone = r.FormValue("phone")
			input.Email = r.FormValue("email")
		} else {
			var body struct {
				DNI       string `json:"dni"`
				FirstName string `json:"first_name"`
				LastName  string `json:"last_name"`
				Phone     string `json:"phone"`
				Email     string `json:"email"`
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input = orchestrators.RegisterNonMemberInput(body)
		}

		n, err := orchestrators.ExecuteRegisterNonMember(ctx, input,
			orchestrators.RegisterNonMemberDeps{People: stores.PersonStore})
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, n)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePersonByDNI handles DELETE for /api/people/{dni} and GET for the
// register classification.
func handlePersonByDNI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dni := r.PathValue("dni")

	switch r.Method {
	case "GET":
		kind, err := orchestrators.Classify(ctx, dni, stores.PersonStore)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"dni": dni, "kind": kind})
	case "DELETE":
		if err := orchestrators.ExecuteRemovePerson(ctx, dni,
			orchestrators.PeopleDeps{People: stores.PersonStore}); err != nil {
			domainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
