package homedash

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"
	"go-bizops/internal/features/widget"

	"go.uber.org/zap"
)

type memRepo struct {
	mu      sync.Mutex
	records map[string]*DashboardRecord
	saveGap time.Duration // artificial upsert latency
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]*DashboardRecord{}}
}

func (r *memRepo) Get(ctx context.Context, userID string) (*DashboardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *memRepo) Upsert(ctx context.Context, userID string, state DashboardState) error {
	if r.saveGap > 0 {
		time.Sleep(r.saveGap)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[userID] = &DashboardRecord{UserID: userID, DashboardState: state, UpdatedAt: time.Now()}
	return nil
}

type noopSource struct{}

func (noopSource) DashboardSummary(ctx context.Context, q business.SummaryQuery) (*business.Summary, error) {
	return &business.Summary{
		OpportunitiesByStatus: map[string]interface{}{},
		ProjectsByStatus:      map[string]interface{}{"Active": float64(1)},
	}, nil
}

func (noopSource) DivisionStats(ctx context.Context, q business.SummaryQuery) ([]business.DivisionStats, error) {
	return nil, nil
}

func (noopSource) Timeseries(ctx context.Context, q business.TimeseriesQuery) (*business.Timeseries, error) {
	return &business.Timeseries{}, nil
}

func (noopSource) RecentTasks(ctx context.Context, limit int64) ([]task.Task, error) {
	return nil, errors.New("tasks backend unavailable")
}

func (noopSource) RecentProjects(ctx context.Context, limit int64) ([]project.Project, error) {
	return []project.Project{}, nil
}

func newTestService(repo DashboardRepository) DashboardService {
	registry := widget.NewRegistry(noopSource{}, zap.NewNop())
	return NewDashboardService(repo, registry, nil, zap.NewNop())
}

func TestGetDashboardDefaultsWithoutWriteBack(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	state, err := svc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Widgets) == 0 {
		t.Fatal("expected default widgets")
	}
	if len(repo.records) != 0 {
		t.Error("plain GET must not persist the default")
	}
}

func TestGetDashboardMigratesOldLayouts(t *testing.T) {
	repo := newMemRepo()
	repo.records["u1"] = &DashboardRecord{
		UserID: "u1",
		DashboardState: DashboardState{
			Layout:  []LayoutItem{{ID: "a", X: 1, Y: 0, W: 2, H: 2}},
			Widgets: []WidgetDef{{ID: "a", Type: widget.TypeKPI, Config: map[string]interface{}{}}},
		},
	}
	svc := newTestService(repo)

	state, err := svc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Layout[0].X != 2 || state.Layout[0].W != 4 {
		t.Errorf("layout = %+v, want x and w doubled", state.Layout[0])
	}
}

func TestSaveDashboardRejectsInvalidState(t *testing.T) {
	svc := newTestService(newMemRepo())

	broken := DashboardState{Widgets: []WidgetDef{{ID: "orphan", Type: widget.TypeKPI}}}
	if err := svc.SaveDashboard(context.Background(), "u1", broken); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSaveDashboardGuardsOverlappingSaves(t *testing.T) {
	repo := newMemRepo()
	repo.saveGap = 50 * time.Millisecond
	svc := newTestService(repo)
	state := DefaultState()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.SaveDashboard(context.Background(), "u1", state)
		}()
	}
	wg.Wait()
	close(errs)

	var inFlight, ok int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSaveInFlight):
			inFlight++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || inFlight != 1 {
		t.Errorf("ok=%d inFlight=%d, want exactly one of each", ok, inFlight)
	}
}

func TestAddWidgetPersistsAndGrows(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	state, err := svc.AddWidget(context.Background(), "u1", widget.TypeChart, "Pipeline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Widgets) != len(DefaultState().Widgets)+1 {
		t.Errorf("widgets = %d, want default+1", len(state.Widgets))
	}
	if repo.records["u1"] == nil {
		t.Error("add must persist")
	}

	if _, err := svc.AddWidget(context.Background(), "u1", "weather", ""); !errors.Is(err, ErrUnknownWidgetType) {
		t.Errorf("err = %v, want ErrUnknownWidgetType", err)
	}
}

func TestRemoveWidgetUnknownIDDoesNotPersist(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	state, err := svc.RemoveWidget(context.Background(), "u1", "no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Widgets) != len(DefaultState().Widgets) {
		t.Error("no-op removal must return the unchanged state")
	}
	if len(repo.records) != 0 {
		t.Error("no-op removal must not persist")
	}
}

func TestResetPersistsImmediately(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	if _, err := svc.ResetDashboard(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.records["u1"] == nil {
		t.Fatal("reset must persist the default state")
	}
}

func TestGetDashboardDataIsolatesWidgetFailures(t *testing.T) {
	svc := newTestService(newMemRepo())

	data, err := svc.GetDashboardData(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != len(DefaultState().Widgets) {
		t.Fatalf("entries = %d, want one per widget", len(data))
	}

	// The task source fails; only the task widget reports it.
	if data["default-tasks"].Error == "" {
		t.Error("task widget should carry its fetch error")
	}
	if data["default-chart-status"].Error != "" || data["default-chart-status"].Payload == nil {
		t.Error("chart widget should render despite the task failure")
	}
}
