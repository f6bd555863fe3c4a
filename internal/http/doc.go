// Package http provides HTTP handlers and middleware for the scheduler API.
//
// The router exposes the following endpoints:
//   - POST /login: validates credentials. Body: {"username","password","locale"}.
//     Response: {"user":{"id","username"},"notification":{...}} where the
//     notification reports any appointment starting within fifteen minutes,
//     localized to the requested locale (French for "fr" variants, English
//     otherwise).
//   - GET /appointments?filter=all|month|week, POST /appointments,
//     PUT /appointments/{id}, DELETE /appointments/{id}: appointment management
//     endpoints exchanging the `appointmentDTO` payload defined in
//     appointment_handler.go. Validation failures return 422 with the exact
//     form message.
//   - GET /appointments/slots?date=2006-01-02: bookable time-of-day values for
//     the date, expressed in the service's viewing timezone.
//   - GET /customers, POST /customers, PUT /customers/{id},
//     DELETE /customers/{id}: customer management endpoints. Deletion runs the
//     cascading protocol; the request body carries the two confirmation
//     answers: {"confirm_appointment_purge","confirm_customer_deletion"}.
//   - GET /contacts, GET /countries, GET /countries/{id}/divisions: reference
//     lookups for form population.
//   - GET /reports/contact-schedule?contact_id=..., GET
//     /reports/types-by-month?month=..., GET
//     /reports/appointment-count?month=...&type=..., GET
//     /reports/login-activity: reporting endpoints backed by the report
//     service.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
