package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/client-scheduler/internal/application"
)

type customerService interface {
	CreateCustomer(ctx context.Context, form application.CustomerForm) (application.Customer, error)
	UpdateCustomer(ctx context.Context, id string, form application.CustomerForm) (application.Customer, error)
	ListCustomers(ctx context.Context) ([]application.Customer, error)
	DeleteCustomerCascading(ctx context.Context, id string, prompter application.DeletionPrompter) (application.CascadeOutcome, error)
}

// CustomerHandler serves the customer management endpoints.
type CustomerHandler struct {
	service   customerService
	responder responder
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(service customerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, responder: newResponder(logger)}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), req.toForm())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, customerResponse{Customer: toCustomerDTO(customer)})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := CustomerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCustomerID)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), id, req.toForm())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, customerResponse{Customer: toCustomerDTO(customer)})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCustomersResponse{Customers: toCustomerDTOs(customers)})
}

// Delete runs the cascading deletion protocol. The request body answers both
// confirmation prompts up front; each answer must be present explicitly.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := CustomerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCustomerID)
		return
	}

	var req deleteCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if req.ConfirmAppointmentPurge == nil || req.ConfirmCustomerDeletion == nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDeleteDecision)
		return
	}

	prompter := presetPrompter{
		purge:    *req.ConfirmAppointmentPurge,
		deletion: *req.ConfirmCustomerDeletion,
	}

	outcome, err := h.service.DeleteCustomerCascading(r.Context(), id, prompter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, cascadeOutcomeResponse{
		Deleted:             outcome.Deleted,
		AppointmentsRemoved: outcome.AppointmentsRemoved,
		Aborted:             outcome.Aborted,
	})
}

// presetPrompter answers the cascade prompts with the values supplied in the
// delete request.
type presetPrompter struct {
	purge    bool
	deletion bool
}

func (p presetPrompter) ConfirmAppointmentPurge(int) bool { return p.purge }
func (p presetPrompter) ConfirmCustomerDeletion() bool    { return p.deletion }

type customerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	CountryID  string `json:"country_id"`
	DivisionID string `json:"division_id"`
}

func (r customerRequest) toForm() application.CustomerForm {
	return application.CustomerForm{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Address:    strings.TrimSpace(r.Address),
		PostalCode: strings.TrimSpace(r.PostalCode),
		Phone:      strings.TrimSpace(r.Phone),
		CountryID:  strings.TrimSpace(r.CountryID),
		DivisionID: strings.TrimSpace(r.DivisionID),
	}
}

type deleteCustomerRequest struct {
	ConfirmAppointmentPurge *bool `json:"confirm_appointment_purge"`
	ConfirmCustomerDeletion *bool `json:"confirm_customer_deletion"`
}

type customerResponse struct {
	Customer customerDTO `json:"customer"`
}

type listCustomersResponse struct {
	Customers []customerDTO `json:"customers"`
}

type cascadeOutcomeResponse struct {
	Deleted             bool `json:"deleted"`
	AppointmentsRemoved int  `json:"appointments_removed"`
	Aborted             bool `json:"aborted"`
}

type customerDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	DivisionID string `json:"division_id"`
}

func toCustomerDTO(customer application.Customer) customerDTO {
	return customerDTO{
		ID:         customer.ID,
		Name:       customer.Name,
		Address:    customer.Address,
		PostalCode: customer.PostalCode,
		Phone:      customer.Phone,
		DivisionID: customer.DivisionID,
	}
}

func toCustomerDTOs(customers []application.Customer) []customerDTO {
	if len(customers) == 0 {
		return nil
	}
	out := make([]customerDTO, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerDTO(customer))
	}
	return out
}
