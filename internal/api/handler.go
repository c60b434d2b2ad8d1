package api

import (
	"errors"
	"sync"
	"time"

	"github.com/zamanlabs/medicare/internal/db"
	"github.com/zamanlabs/medicare/internal/healthtip"
	"github.com/zamanlabs/medicare/internal/scoring"
	"github.com/zamanlabs/medicare/internal/security"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	loginAttemptsLimit           = 8
	loginAttemptsWindow          = 15 * time.Minute
	defaultWellnessStreamRefresh = 30 * time.Second
)

type HandlerOptions struct {
	SecretKey      string
	TokenTTL       time.Duration
	Location       *time.Location
	// DoctorFeedback nil selects scoring.DefaultDoctorFeedback.
	DoctorFeedback *float64
	// StreamRefresh is how often an open wellness stream is recomputed even
	// without store changes.
	StreamRefresh time.Duration
	Logger        *zap.Logger
	Clock         services.Clock
	// HealthTips is shared with the background refresher. A fallback-only
	// service is created when nil.
	HealthTips *services.HealthTipService
}

type Handler struct {
	db            *gorm.DB
	tokens        *security.TokenIssuer
	location      *time.Location
	logger        *zap.Logger
	clock         services.Clock
	streamRefresh time.Duration
	loginLimiter  *attemptLimiter

	shutdownOnce sync.Once
	shutdown     chan struct{}

	doctorFeedback    float64
	repositories      *db.Repositories
	authService       *services.AuthService
	accountService    *services.AccountService
	setupService      *services.SetupService
	profileService    *services.ProfileService
	symptomService    *services.SymptomService
	medicationService *services.MedicationService
	contactService    *services.EmergencyContactService
	wellnessService   *services.WellnessService
	wellnessHub       *services.WellnessHub
	exportService     *services.ExportService
	hospitalService   *services.HospitalService
	healthTipService  *services.HealthTipService
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	tokens, err := security.NewTokenIssuer([]byte(options.SecretKey), options.TokenTTL)
	if err != nil {
		return nil, err
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := options.Clock
	if clock == nil {
		clock = services.SystemClock{}
	}
	streamRefresh := options.StreamRefresh
	if streamRefresh <= 0 {
		streamRefresh = defaultWellnessStreamRefresh
	}
	doctorFeedback := scoring.DefaultDoctorFeedback
	if options.DoctorFeedback != nil {
		doctorFeedback = *options.DoctorFeedback
	}
	healthTips := options.HealthTips
	if healthTips == nil {
		healthTips = services.NewHealthTipService(nil, healthtip.NewMemoryCache(), clock, 0, logger)
	}

	handler := &Handler{
		db:               database,
		tokens:           tokens,
		location:         location,
		logger:           logger,
		clock:            clock,
		streamRefresh:    streamRefresh,
		loginLimiter:     newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		shutdown:         make(chan struct{}),
		doctorFeedback:   doctorFeedback,
		healthTipService: healthTips,
	}
	return handler.withDependencies(database), nil
}

// Close ends open wellness streams so the server can shut down.
func (handler *Handler) Close() {
	handler.shutdownOnce.Do(func() {
		close(handler.shutdown)
	})
}
