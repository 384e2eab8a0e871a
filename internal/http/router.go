package http

import (
	"net/http"

	"github.com/asysyifa-husada/clinic-service/internal/auth"
	"github.com/asysyifa-husada/clinic-service/internal/dashboard"
	"github.com/asysyifa-husada/clinic-service/internal/examination"
	"github.com/asysyifa-husada/clinic-service/internal/medicalrecord"
	"github.com/asysyifa-husada/clinic-service/internal/messaging"
	"github.com/asysyifa-husada/clinic-service/internal/patient"
	"github.com/asysyifa-husada/clinic-service/internal/queue"
	"github.com/asysyifa-husada/clinic-service/internal/schedule"
	"github.com/asysyifa-husada/clinic-service/internal/settings"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/asysyifa-husada/clinic-service/internal/telemetry"
	"github.com/asysyifa-husada/clinic-service/internal/users"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application. metrics may be
// nil when metric initialization failed; recording is skipped then.
func SetupRouter(kv storage.KV, tokens *auth.TokenService, publisher messaging.PublisherInterface, caps auth.Capabilities, metrics *telemetry.Metrics) *mux.Router {
	// A nil *telemetry.Metrics must stay a nil interface value, so the
	// per-package recorders are only assigned when metrics exist
	var (
		patientMetrics patient.MetricsRecorder
		queueMetrics   queue.MetricsRecorder
		examMetrics    examination.MetricsRecorder
		authMetrics    auth.MetricsRecorder
		requestMetrics RequestMetrics
	)
	if metrics != nil {
		patientMetrics = metrics
		queueMetrics = metrics
		examMetrics = metrics
		authMetrics = metrics
		requestMetrics = metrics
	}

	// Initialize user components; the users service doubles as the
	// session store consulted by the auth middleware
	userService := users.NewService(kv, tokens)
	userHandler := users.NewHandler(userService)

	// Initialize patient components
	patientRepo := patient.NewRepository(kv)
	patientService := patient.NewServiceWithMetrics(patientRepo, publisher, patientMetrics)
	patientHandler := patient.NewHandler(patientService)

	// Initialize medical record components
	recordService := medicalrecord.NewService(kv)
	recordHandler := medicalrecord.NewHandler(recordService)

	// Initialize schedule components
	scheduleService := schedule.NewService(kv, patientService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// Initialize queue components
	queueService := queue.NewServiceWithMetrics(kv, patientService, publisher, queueMetrics)
	queueHandler := queue.NewHandler(queueService)

	// Initialize examination components
	examService := examination.NewServiceWithMetrics(kv, patientService, queueService, examMetrics)
	examHandler := examination.NewHandler(examService)

	// Initialize dashboard components
	dashboardService := dashboard.NewService(patientService, queueService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// Initialize settings components
	settingsService := settings.NewService(kv)
	settingsHandler := settings.NewHandler(settingsService)

	authn := auth.MiddlewareWithMetrics(tokens, userService, authMetrics)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-service"))
	r.Use(MetricsMiddleware(requestMetrics))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-service"}`))
	}).Methods("GET")

	// Public auth endpoints
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")

	protected := func(capability string, h http.HandlerFunc) http.Handler {
		return authn(auth.RequireCapability(capability, caps)(h))
	}

	// Session routes
	r.Handle("/auth/logout", authn(http.HandlerFunc(userHandler.Logout))).Methods("POST")
	r.Handle("/auth/session", authn(http.HandlerFunc(userHandler.GetSession))).Methods("GET")

	// Patient routes
	r.Handle("/patients", protected("patient:create", patientHandler.RegisterPatient)).Methods("POST")
	r.Handle("/patients", protected("patient:view", patientHandler.ListPatients)).Methods("GET")
	r.Handle("/patients/search", protected("patient:search", patientHandler.SearchPatients)).Methods("GET")
	r.Handle("/patients/{id}", protected("patient:view", patientHandler.GetPatient)).Methods("GET")
	r.Handle("/patients/{id}", protected("patient:update", patientHandler.UpdatePatient)).Methods("PUT")
	r.Handle("/patients/{id}", protected("patient:delete", patientHandler.DeletePatient)).Methods("DELETE")

	// Medical record routes
	r.Handle("/medical-records", protected("medicalrecord:create", recordHandler.CreateRecord)).Methods("POST")
	r.Handle("/medical-records", protected("medicalrecord:view", recordHandler.ListRecords)).Methods("GET")
	r.Handle("/medical-records/{id}", protected("medicalrecord:view", recordHandler.GetRecord)).Methods("GET")

	// Schedule routes
	r.Handle("/schedules", protected("schedule:create", scheduleHandler.CreateSchedule)).Methods("POST")
	r.Handle("/schedules", protected("schedule:view", scheduleHandler.ListSchedules)).Methods("GET")
	r.Handle("/schedules/{id}", protected("schedule:update", scheduleHandler.UpdateSchedule)).Methods("PUT")
	r.Handle("/schedules/{id}", protected("schedule:delete", scheduleHandler.DeleteSchedule)).Methods("DELETE")

	// Queue routes
	r.Handle("/queue", protected("queue:create", queueHandler.RegisterQueue)).Methods("POST")
	r.Handle("/queue", protected("queue:view", queueHandler.ListQueue)).Methods("GET")
	r.Handle("/queue/{id}/status", protected("queue:update", queueHandler.UpdateQueueStatus)).Methods("PUT")

	// Examination routes
	r.Handle("/examinations", protected("examination:create", examHandler.CompleteExamination)).Methods("POST")
	r.Handle("/examinations", protected("examination:view", examHandler.ListExaminations)).Methods("GET")
	r.Handle("/examinations/{id}", protected("examination:view", examHandler.GetExamination)).Methods("GET")

	// Dashboard route
	r.Handle("/dashboard/statistics", protected("dashboard:view", dashboardHandler.GetStatistics)).Methods("GET")

	// Settings routes
	r.Handle("/settings", protected("settings:view", settingsHandler.GetSettings)).Methods("GET")
	r.Handle("/settings", protected("settings:update", settingsHandler.UpdateSettings)).Methods("PUT")

	// User management routes
	r.Handle("/users", protected("user:create", userHandler.CreateUser)).Methods("POST")
	r.Handle("/users", protected("user:view", userHandler.ListUsers)).Methods("GET")
	r.Handle("/users/{id}", protected("user:delete", userHandler.DeleteUser)).Methods("DELETE")

	return r
}
