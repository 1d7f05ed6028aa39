package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
	"farmconnect/internal/tasks"
	"farmconnect/internal/viewstate"

	"github.com/google/uuid"
)

// Analysis statuses.
const (
	AnalysisRunning   = "analyzing"
	AnalysisCompleted = "completed"
	AnalysisCancelled = "cancelled"
)

// DetectionConfig holds the simulated analysis timing.
type DetectionConfig struct {
	Duration time.Duration
	Tick     time.Duration
	// Retention is how long a finished or cancelled analysis stays readable.
	Retention time.Duration
}

// Analysis is the externally visible state of one image analysis.
type Analysis struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	File      models.UploadedFile `json:"file"`
	Progress  int                 `json:"progress"`
	Result    *models.Diagnosis   `json:"result,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type analysis struct {
	id        string
	createdAt time.Time
	settledAt time.Time
	state     viewstate.Detection
	ticker    *tasks.Task
	finish    *tasks.Task
}

// DetectionService runs simulated crop disease analyses. The diagnosis is
// fixed; the uploaded image is never decoded.
type DetectionService struct {
	cfg     DetectionConfig
	ctx     context.Context
	cancel  context.CancelFunc
	sweeper *tasks.Task

	mu       sync.Mutex
	analyses map[string]*analysis
}

// NewDetectionService creates a new DetectionService. Shutdown stops every
// analysis still running.
func NewDetectionService(cfg DetectionConfig) *DetectionService {
	if cfg.Duration <= 0 {
		cfg.Duration = 2 * time.Second
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 200 * time.Millisecond
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 10 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &DetectionService{
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		analyses: make(map[string]*analysis),
	}
	s.sweeper = tasks.Every(ctx, cfg.Retention, func() bool {
		s.sweep(time.Now())
		return true
	})
	return s
}

// sweep drops analyses that settled more than the retention period ago.
// Running analyses are kept.
func (s *DetectionService) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, a := range s.analyses {
		if a.state.Analyzing || now.Sub(a.settledAt) < s.cfg.Retention {
			continue
		}
		delete(s.analyses, id)
		evicted++
	}
	if evicted > 0 {
		slog.Debug("evicted settled analyses", "count", evicted, "remaining", len(s.analyses))
	}
	return evicted
}

func lateBlight() models.Diagnosis {
	return models.Diagnosis{
		Disease:     "Late Blight",
		Confidence:  92,
		Severity:    "Moderate",
		Tone:        string(catalog.SeverityTone("Moderate")),
		Description: "Late blight is a serious disease caused by Phytophthora infestans that affects tomatoes and potatoes.",
		Treatments: []string{
			"Apply copper-based fungicide every 7-10 days",
			"Improve air circulation around plants",
			"Remove affected leaves immediately",
			"Avoid overhead watering",
		},
		Prevention: []string{
			"Use resistant varieties when available",
			"Ensure proper plant spacing",
			"Apply preventive fungicide sprays",
			"Monitor weather conditions",
		},
	}
}

// Start begins analysing an uploaded image.
func (s *DetectionService) Start(file models.UploadedFile) (*Analysis, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFile, file.ContentType)
	}
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("detection service is shut down: %w", s.ctx.Err())
	}

	a := &analysis{id: uuid.New().String(), createdAt: time.Now()}
	a.state = viewstate.ReduceDetection(a.state, viewstate.FileSelected{File: file})
	a.state = viewstate.ReduceDetection(a.state, viewstate.AnalysisStarted{})

	s.mu.Lock()
	s.analyses[a.id] = a
	a.ticker = tasks.Every(s.ctx, s.cfg.Tick, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		a.state = viewstate.ReduceDetection(a.state, viewstate.ProgressTicked{})
		return a.state.Analyzing && a.state.Progress < 90
	})
	a.finish = tasks.After(s.ctx, s.cfg.Duration, func() {
		s.mu.Lock()
		a.state = viewstate.ReduceDetection(a.state, viewstate.AnalysisCompleted{Result: lateBlight()})
		a.settledAt = time.Now()
		ticker := a.ticker
		s.mu.Unlock()
		ticker.Cancel()
		slog.Info("analysis completed", "analysis_id", a.id, "file", file.Name)
	})
	view := a.view()
	s.mu.Unlock()

	slog.Info("analysis started", "analysis_id", a.id, "file", file.Name, "size", file.Size)
	return view, nil
}

// Get returns the current state of an analysis.
func (s *DetectionService) Get(id string) (*Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return a.view(), nil
}

// Cancel stops a running analysis. A finished analysis is returned unchanged.
func (s *DetectionService) Cancel(id string) (*Analysis, error) {
	s.mu.Lock()
	a, ok := s.analyses[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrAnalysisNotFound
	}

	// The tasks take s.mu while they run, so they are cancelled without holding it.
	a.finish.Cancel()
	a.ticker.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	a.settle()
	return a.view(), nil
}

// Shutdown cancels every running analysis and the sweep, then waits for their
// tasks to stop.
func (s *DetectionService) Shutdown() {
	s.cancel()

	s.mu.Lock()
	pending := make([]*analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		pending = append(pending, a)
	}
	s.mu.Unlock()

	for _, a := range pending {
		a.finish.Wait()
		a.ticker.Wait()
	}
	s.sweeper.Wait()

	s.mu.Lock()
	for _, a := range pending {
		a.settle()
	}
	s.mu.Unlock()
}

// settle cancels a running analysis. Must be called with s.mu held.
func (a *analysis) settle() {
	if !a.state.Analyzing {
		return
	}
	a.state = viewstate.ReduceDetection(a.state, viewstate.AnalysisCancelled{})
	a.settledAt = time.Now()
}

// view must be called with s.mu held.
func (a *analysis) view() *Analysis {
	v := &Analysis{
		ID:        a.id,
		Progress:  a.state.Progress,
		CreatedAt: a.createdAt,
	}
	if a.state.File != nil {
		v.File = *a.state.File
	}
	switch {
	case a.state.Analyzing:
		v.Status = AnalysisRunning
	case a.state.Result != nil:
		v.Status = AnalysisCompleted
		r := *a.state.Result
		v.Result = &r
	default:
		v.Status = AnalysisCancelled
	}
	return v
}
