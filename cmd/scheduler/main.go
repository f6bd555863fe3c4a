package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/config"
	httptransport "github.com/example/client-scheduler/internal/http"
	"github.com/example/client-scheduler/internal/logging"
	"github.com/example/client-scheduler/internal/persistence"
	"github.com/example/client-scheduler/internal/persistence/sqlite"
	"github.com/example/client-scheduler/internal/scheduling"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, logLevel(cfg.LogLevel))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zone := time.Local
	if cfg.Timezone != "" {
		zone, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Error("failed to load timezone", "error", err)
			os.Exit(1)
		}
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	appointmentRepo := newAppointmentRepositoryAdapter(sqlite.NewAppointmentRepository(pool))
	customerRepo := newCustomerRepositoryAdapter(sqlite.NewCustomerRepository(pool))
	referenceSource := newReferenceSourceAdapter(sqlite.NewReferenceRepository(pool), sqlite.NewContactRepository(pool))
	credentialStore := newCredentialStoreAdapter(sqlite.NewUserRepository(pool))
	activityLog := newActivityLogAdapter(persistence.NewFileActivityLog(cfg.ActivityLogPath))

	appointmentService := application.NewAppointmentService(appointmentRepo, scheduling.DefaultBusinessHours, zone, idGenerator, now, logger)
	customerService := application.NewCustomerService(customerRepo, appointmentRepo, idGenerator, now, logger)
	authService := application.NewAuthService(credentialStore, activityLog, nil, now, logger)
	reportService := application.NewReportService(appointmentRepo, referenceSource, activityLog, logger)
	notifier := application.NewUpcomingNotifier(appointmentRepo, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, notifier, now, logger),
		Appointments: httptransport.NewAppointmentHandler(appointmentService, logger),
		Customers:    httptransport.NewCustomerHandler(customerService, logger),
		Reports:      httptransport.NewReportHandler(reportService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func logLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// appointmentRepositoryAdapter exposes the SQLite appointment repository
// through the application's repository, notifier source, and report source
// interfaces.
type appointmentRepositoryAdapter struct {
	repo *sqlite.AppointmentRepository
}

func newAppointmentRepositoryAdapter(repo *sqlite.AppointmentRepository) *appointmentRepositoryAdapter {
	return &appointmentRepositoryAdapter{repo: repo}
}

func (a *appointmentRepositoryAdapter) GetAppointment(ctx context.Context, id string) (application.Appointment, error) {
	stored, err := a.repo.GetAppointment(ctx, id)
	if err != nil {
		return application.Appointment{}, err
	}
	return toApplicationAppointment(stored), nil
}

func (a *appointmentRepositoryAdapter) ListAppointments(ctx context.Context) ([]application.Appointment, error) {
	models, err := a.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationAppointments(models), nil
}

func (a *appointmentRepositoryAdapter) ListAppointmentsByCustomer(ctx context.Context, customerID string) ([]application.Appointment, error) {
	models, err := a.repo.ListAppointmentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toApplicationAppointments(models), nil
}

func (a *appointmentRepositoryAdapter) ListAppointmentsByContact(ctx context.Context, contactID string) ([]application.Appointment, error) {
	models, err := a.repo.ListAppointmentsByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return toApplicationAppointments(models), nil
}

func (a *appointmentRepositoryAdapter) ListAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]application.Appointment, error) {
	models, err := a.repo.ListAppointmentsInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toApplicationAppointments(models), nil
}

func (a *appointmentRepositoryAdapter) InsertAppointment(ctx context.Context, appointment application.Appointment) (int64, error) {
	return a.repo.InsertAppointment(ctx, toPersistenceAppointment(appointment))
}

func (a *appointmentRepositoryAdapter) UpdateAppointment(ctx context.Context, appointment application.Appointment) (int64, error) {
	return a.repo.UpdateAppointment(ctx, toPersistenceAppointment(appointment))
}

func (a *appointmentRepositoryAdapter) DeleteAppointment(ctx context.Context, id string) (int64, error) {
	return a.repo.DeleteAppointment(ctx, id)
}

func (a *appointmentRepositoryAdapter) ListAppointmentTypesByMonth(ctx context.Context, month time.Month) ([]string, error) {
	return a.repo.ListAppointmentTypesByMonth(ctx, month)
}

func (a *appointmentRepositoryAdapter) CountAppointmentsByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error) {
	return a.repo.CountAppointmentsByMonthAndType(ctx, month, appointmentType)
}

type customerRepositoryAdapter struct {
	repo *sqlite.CustomerRepository
}

func newCustomerRepositoryAdapter(repo *sqlite.CustomerRepository) *customerRepositoryAdapter {
	return &customerRepositoryAdapter{repo: repo}
}

func (a *customerRepositoryAdapter) GetCustomer(ctx context.Context, id string) (application.Customer, error) {
	stored, err := a.repo.GetCustomer(ctx, id)
	if err != nil {
		return application.Customer{}, err
	}
	return toApplicationCustomer(stored), nil
}

func (a *customerRepositoryAdapter) ListCustomers(ctx context.Context) ([]application.Customer, error) {
	models, err := a.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	customers := make([]application.Customer, 0, len(models))
	for _, model := range models {
		customers = append(customers, toApplicationCustomer(model))
	}
	return customers, nil
}

func (a *customerRepositoryAdapter) InsertCustomer(ctx context.Context, customer application.Customer) (int64, error) {
	return a.repo.InsertCustomer(ctx, toPersistenceCustomer(customer))
}

func (a *customerRepositoryAdapter) UpdateCustomer(ctx context.Context, customer application.Customer) (int64, error) {
	return a.repo.UpdateCustomer(ctx, toPersistenceCustomer(customer))
}

func (a *customerRepositoryAdapter) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	return a.repo.DeleteCustomer(ctx, id)
}

type referenceSourceAdapter struct {
	references *sqlite.ReferenceRepository
	contacts   *sqlite.ContactRepository
}

func newReferenceSourceAdapter(references *sqlite.ReferenceRepository, contacts *sqlite.ContactRepository) *referenceSourceAdapter {
	return &referenceSourceAdapter{references: references, contacts: contacts}
}

func (a *referenceSourceAdapter) ListCountries(ctx context.Context) ([]application.Country, error) {
	models, err := a.references.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	countries := make([]application.Country, 0, len(models))
	for _, model := range models {
		countries = append(countries, application.Country{ID: model.ID, Name: model.Name})
	}
	return countries, nil
}

func (a *referenceSourceAdapter) ListDivisionsByCountry(ctx context.Context, countryID string) ([]application.Division, error) {
	models, err := a.references.ListDivisionsByCountry(ctx, countryID)
	if err != nil {
		return nil, err
	}
	divisions := make([]application.Division, 0, len(models))
	for _, model := range models {
		divisions = append(divisions, application.Division{ID: model.ID, Name: model.Name, CountryID: model.CountryID})
	}
	return divisions, nil
}

func (a *referenceSourceAdapter) ListContacts(ctx context.Context) ([]application.Contact, error) {
	models, err := a.contacts.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	contacts := make([]application.Contact, 0, len(models))
	for _, model := range models {
		contacts = append(contacts, application.Contact{ID: model.ID, Name: model.Name, Email: model.Email})
	}
	return contacts, nil
}

type credentialStoreAdapter struct {
	repo *sqlite.UserRepository
}

func newCredentialStoreAdapter(repo *sqlite.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByUsername(ctx context.Context, username string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return application.UserCredentials{}, application.ErrNotFound
		}
		return application.UserCredentials{}, err
	}
	return application.UserCredentials{
		User:         application.User{ID: stored.ID, Username: stored.Username},
		PasswordHash: stored.PasswordHash,
	}, nil
}

type activityLogAdapter struct {
	log *persistence.FileActivityLog
}

func newActivityLogAdapter(log *persistence.FileActivityLog) *activityLogAdapter {
	return &activityLogAdapter{log: log}
}

func (a *activityLogAdapter) RecordLoginAttempt(ctx context.Context, attempt application.LoginAttempt) error {
	return a.log.Append(ctx, persistence.LoginRecord{
		Username:   attempt.Username,
		At:         attempt.At,
		Successful: attempt.Successful,
	})
}

func (a *activityLogAdapter) ListLoginAttempts(ctx context.Context) ([]application.LoginAttempt, error) {
	records, err := a.log.List(ctx)
	if err != nil {
		return nil, err
	}
	attempts := make([]application.LoginAttempt, 0, len(records))
	for _, record := range records {
		attempts = append(attempts, application.LoginAttempt{
			Username:   record.Username,
			At:         record.At,
			Successful: record.Successful,
		})
	}
	return attempts, nil
}

func toApplicationAppointment(model persistence.Appointment) application.Appointment {
	return application.Appointment{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Location:    model.Location,
		Type:        model.Type,
		Start:       model.Start,
		End:         model.End,
		CustomerID:  model.CustomerID,
		UserID:      model.UserID,
		ContactID:   model.ContactID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationAppointments(models []persistence.Appointment) []application.Appointment {
	if len(models) == 0 {
		return nil
	}
	appointments := make([]application.Appointment, 0, len(models))
	for _, model := range models {
		appointments = append(appointments, toApplicationAppointment(model))
	}
	return appointments
}

func toPersistenceAppointment(appointment application.Appointment) persistence.Appointment {
	return persistence.Appointment{
		ID:          appointment.ID,
		Title:       appointment.Title,
		Description: appointment.Description,
		Location:    appointment.Location,
		Type:        appointment.Type,
		Start:       appointment.Start,
		End:         appointment.End,
		CustomerID:  appointment.CustomerID,
		UserID:      appointment.UserID,
		ContactID:   appointment.ContactID,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

func toApplicationCustomer(model persistence.Customer) application.Customer {
	return application.Customer{
		ID:         model.ID,
		Name:       model.Name,
		Address:    model.Address,
		PostalCode: model.PostalCode,
		Phone:      model.Phone,
		DivisionID: model.DivisionID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceCustomer(customer application.Customer) persistence.Customer {
	return persistence.Customer{
		ID:         customer.ID,
		Name:       customer.Name,
		Address:    customer.Address,
		PostalCode: customer.PostalCode,
		Phone:      customer.Phone,
		DivisionID: customer.DivisionID,
		CreatedAt:  customer.CreatedAt,
		UpdatedAt:  customer.UpdatedAt,
	}
}
