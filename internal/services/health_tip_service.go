package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/zamanlabs/medicare/internal/models"
	"go.uber.org/zap"
)

const (
	DefaultHealthTipInterval = 60 * time.Second
	healthTipPrompt          = "Give one short, practical, evidence-based daily health tip for a general adult audience. Answer in at most two sentences without any preamble."
	maxHealthTipLength       = 500
)

var ErrHealthTipUnavailable = errors.New("health tip unavailable")

var fallbackHealthTips = []string{
	"Stay hydrated: aim for about eight glasses of water a day and more when it is hot.",
	"Take a ten minute walk after meals to help keep blood sugar steady.",
	"Keep a regular sleep schedule, even on weekends.",
	"Take your medications at the same time each day so they become a habit.",
	"Add a serving of vegetables to at least two meals today.",
}

type TipGenerator interface {
	GenerateTip(ctx context.Context, prompt string) (string, error)
}

type TipCache interface {
	Load(ctx context.Context) (models.HealthTip, bool, error)
	Store(ctx context.Context, tip models.HealthTip) error
}

// HealthTipService keeps one shared tip fresh. Generation failures fall back
// to a rotating built-in tip and are never returned to callers.
type HealthTipService struct {
	generator TipGenerator
	cache     TipCache
	clock     Clock
	interval  time.Duration
	logger    *zap.Logger

	mu            sync.Mutex
	fallbackIndex int
}

func NewHealthTipService(generator TipGenerator, cache TipCache, clock Clock, interval time.Duration, logger *zap.Logger) *HealthTipService {
	if interval <= 0 {
		interval = DefaultHealthTipInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthTipService{
		generator: generator,
		cache:     cache,
		clock:     clockOrSystem(clock),
		interval:  interval,
		logger:    logger,
	}
}

func (service *HealthTipService) Interval() time.Duration {
	return service.interval
}

// Current returns the cached tip, generating one on a cache miss.
func (service *HealthTipService) Current(ctx context.Context) models.HealthTip {
	tip, ok, err := service.cache.Load(ctx)
	if err != nil {
		service.logger.Warn("health tip cache load failed", zap.Error(err))
	}
	if ok && strings.TrimSpace(tip.Text) != "" {
		return tip
	}
	return service.Refresh(ctx)
}

func (service *HealthTipService) Refresh(ctx context.Context) models.HealthTip {
	tip, err := service.generate(ctx)
	if err != nil {
		service.logger.Warn("health tip generation failed, using fallback", zap.Error(err))
		tip = service.nextFallback()
	}

	if err := service.cache.Store(ctx, tip); err != nil {
		service.logger.Warn("health tip cache store failed", zap.Error(err))
	}
	return tip
}

// Start refreshes immediately and then once per interval until ctx is done.
func (service *HealthTipService) Start(ctx context.Context) {
	ticker := service.clock.NewTicker(service.interval)
	defer ticker.Stop()

	service.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			service.Refresh(ctx)
		}
	}
}

func (service *HealthTipService) generate(ctx context.Context) (models.HealthTip, error) {
	if service.generator == nil {
		return models.HealthTip{}, ErrHealthTipUnavailable
	}

	text, err := service.generator.GenerateTip(ctx, healthTipPrompt)
	if err != nil {
		return models.HealthTip{}, err
	}
	text = NormalizeHealthTipText(text)
	if text == "" {
		return models.HealthTip{}, ErrHealthTipUnavailable
	}

	return models.HealthTip{
		Text:        text,
		Source:      models.HealthTipSourceGenerated,
		GeneratedAt: service.clock.Now().UTC(),
	}, nil
}

func (service *HealthTipService) nextFallback() models.HealthTip {
	service.mu.Lock()
	defer service.mu.Unlock()

	text := fallbackHealthTips[service.fallbackIndex%len(fallbackHealthTips)]
	service.fallbackIndex++
	return models.HealthTip{
		Text:        text,
		Source:      models.HealthTipSourceFallback,
		GeneratedAt: service.clock.Now().UTC(),
	}
}

// NormalizeHealthTipText strips markdown emphasis and collapses whitespace.
func NormalizeHealthTipText(raw string) string {
	text := strings.NewReplacer("**", "", "__", "", "`", "").Replace(raw)
	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimLeft(text, "*-# ")
	runes := []rune(text)
	if len(runes) > maxHealthTipLength {
		text = strings.TrimSpace(string(runes[:maxHealthTipLength]))
	}
	return text
}
