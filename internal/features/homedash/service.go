package homedash

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-bizops/internal/features/widget"

	"go.uber.org/zap"
)

// ErrSaveInFlight is returned when a save for the same user is already
// running. Overlapping wholesale PUTs would clobber each other, so the
// second caller is rejected and expected to retry.
var ErrSaveInFlight = errors.New("a dashboard save is already in progress")

// ErrUnknownWidgetType is returned when adding a widget type the registry
// does not know. Rendering unknown types stays lenient; creating them is not.
var ErrUnknownWidgetType = errors.New("unknown widget type")

// Notifier receives dashboard lifecycle events. The websocket hub implements
// it; a nil notifier disables events.
type Notifier interface {
	DashboardSaved(userID string)
}

// WidgetData is one widget's rendered payload, or its widget-local error.
// One broken widget never fails the whole dashboard fetch.
type WidgetData struct {
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (DashboardState, error)
	SaveDashboard(ctx context.Context, userID string, state DashboardState) error
	AddWidget(ctx context.Context, userID, widgetType, title string) (DashboardState, error)
	RemoveWidget(ctx context.Context, userID, widgetID string) (DashboardState, error)
	ReconfigureWidget(ctx context.Context, userID, widgetID string, title *string, config map[string]interface{}) (DashboardState, error)
	ResetDashboard(ctx context.Context, userID string) (DashboardState, error)
	GetDashboardData(ctx context.Context, userID string) (map[string]WidgetData, error)
}

type DashboardServiceImpl struct {
	Repo     DashboardRepository
	Registry *widget.Registry
	Notifier Notifier
	Logger   *zap.Logger

	saving sync.Map // userID -> struct{}, guards overlapping saves
}

func NewDashboardService(repo DashboardRepository, registry *widget.Registry, notifier Notifier, logger *zap.Logger) DashboardService {
	return &DashboardServiceImpl{
		Repo:     repo,
		Registry: registry,
		Notifier: notifier,
		Logger:   logger,
	}
}

// GetDashboard loads the user's persisted state, migrating old 4-column
// layouts on the way out. A user with no record gets the default state in
// memory only; nothing is written back until they explicitly edit or reset.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (DashboardState, error) {
	record, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return DashboardState{}, err
	}
	if record == nil {
		return DefaultState(), nil
	}
	return record.DashboardState.MigrateTo8Col(), nil
}

// SaveDashboard replaces the user's persisted state wholesale. Invalid
// states are rejected before any write; overlapping saves for the same user
// return ErrSaveInFlight.
func (s *DashboardServiceImpl) SaveDashboard(ctx context.Context, userID string, state DashboardState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid dashboard state: %w", err)
	}
	return s.persist(ctx, userID, state)
}

func (s *DashboardServiceImpl) persist(ctx context.Context, userID string, state DashboardState) error {
	if _, loaded := s.saving.LoadOrStore(userID, struct{}{}); loaded {
		return ErrSaveInFlight
	}
	defer s.saving.Delete(userID)

	if err := s.Repo.Upsert(ctx, userID, state); err != nil {
		return err
	}

	if s.Notifier != nil {
		s.Notifier.DashboardSaved(userID)
	}
	return nil
}

// AddWidget appends one widget of the given type at the bottom of the grid
// and persists the result.
func (s *DashboardServiceImpl) AddWidget(ctx context.Context, userID, widgetType, title string) (DashboardState, error) {
	meta, ok := widget.MetaFor(widgetType)
	if !ok {
		return DashboardState{}, fmt.Errorf("%w: %s", ErrUnknownWidgetType, widgetType)
	}

	state, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return DashboardState{}, err
	}

	next := state.WithAdded(widgetType, title, meta)
	if err := s.persist(ctx, userID, next); err != nil {
		return DashboardState{}, err
	}
	return next, nil
}

// RemoveWidget removes a widget from both collections. An unknown id is a
// no-op that still answers with the current state.
func (s *DashboardServiceImpl) RemoveWidget(ctx context.Context, userID, widgetID string) (DashboardState, error) {
	state, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return DashboardState{}, err
	}

	next := state.WithRemoved(widgetID)
	if len(next.Widgets) == len(state.Widgets) {
		return state, nil
	}

	if err := s.persist(ctx, userID, next); err != nil {
		return DashboardState{}, err
	}
	return next, nil
}

// ReconfigureWidget replaces one widget's config and optionally its title.
func (s *DashboardServiceImpl) ReconfigureWidget(ctx context.Context, userID, widgetID string, title *string, config map[string]interface{}) (DashboardState, error) {
	state, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return DashboardState{}, err
	}

	next := state.WithReconfigured(widgetID, title, config)
	if err := s.persist(ctx, userID, next); err != nil {
		return DashboardState{}, err
	}
	return next, nil
}

// ResetDashboard replaces the state with the hardcoded default and persists
// immediately.
func (s *DashboardServiceImpl) ResetDashboard(ctx context.Context, userID string) (DashboardState, error) {
	state := DefaultState()
	if err := s.persist(ctx, userID, state); err != nil {
		return DashboardState{}, err
	}
	return state, nil
}

// GetDashboardData renders every widget of the user's dashboard. Widgets
// render concurrently and independently; a failing widget contributes an
// error entry, never an overall failure.
func (s *DashboardServiceImpl) GetDashboardData(ctx context.Context, userID string) (map[string]WidgetData, error) {
	state, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		data = make(map[string]WidgetData, len(state.Widgets))
	)

	for _, w := range state.Widgets {
		wg.Add(1)
		go func(w WidgetDef) {
			defer wg.Done()

			payload, err := s.Registry.Render(ctx, w.Type, w.Title, w.Config)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.Logger.Warn("widget render failed",
					zap.String("widget_id", w.ID),
					zap.String("widget_type", w.Type),
					zap.Error(err))
				data[w.ID] = WidgetData{Error: err.Error()}
				return
			}
			data[w.ID] = WidgetData{Payload: payload}
		}(w)
	}
	wg.Wait()

	return data, nil
}
