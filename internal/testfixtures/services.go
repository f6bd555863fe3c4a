package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/scheduling"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// AppointmentServiceDeps captures dependencies for constructing an
// appointment service.
type AppointmentServiceDeps struct {
	Appointments application.AppointmentRepository
	Hours        scheduling.BusinessHours
	Zone         *time.Location
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewAppointmentService builds an appointment service using the supplied
// dependencies combined with the factory defaults.
func (f *ServiceFactory) NewAppointmentService(deps AppointmentServiceDeps) *application.AppointmentService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	hours := deps.Hours
	if hours.SlotInterval == 0 {
		hours = scheduling.DefaultBusinessHours
	}
	zone := deps.Zone
	if zone == nil {
		zone = time.UTC
	}
	return application.NewAppointmentService(
		deps.Appointments,
		hours,
		zone,
		idGen,
		now,
		deps.Logger,
	)
}

// CustomerServiceDeps captures dependencies for constructing a customer
// service.
type CustomerServiceDeps struct {
	Customers    application.CustomerRepository
	Appointments application.AppointmentRepository
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewCustomerService builds a customer service using the supplied
// dependencies.
func (f *ServiceFactory) NewCustomerService(deps CustomerServiceDeps) *application.CustomerService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewCustomerService(
		deps.Customers,
		deps.Appointments,
		idGen,
		now,
		deps.Logger,
	)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Credentials    application.CredentialStore
	Activity       application.ActivityLog
	PasswordVerify application.PasswordVerifier
	Now            func() time.Time
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAuthService(
		deps.Credentials,
		deps.Activity,
		deps.PasswordVerify,
		now,
		deps.Logger,
	)
}
