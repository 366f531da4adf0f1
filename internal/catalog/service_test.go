package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/metrics"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// stubReader returns a fixed table or error.
type stubReader struct {
	tbl *source.Table
	err error
}

func (r stubReader) Read(context.Context) (*source.Table, error) { return r.tbl, r.err }
func (r stubReader) Describe() string                             { return "stub.xlsx" }

func newTestService(m *metrics.Collector) *Service {
	ranges := generation.Default()
	return NewService(NewStore(ranges), NewLoader(ranges, defaultColumns(), nil), m, nil)
}

// metricValue returns the value of the series of name whose labels contain want.
func metricValue(t *testing.T, reg prometheus.Gatherer, name string, want map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, want) {
				switch {
				case m.GetCounter() != nil:
					return m.GetCounter().GetValue()
				case m.GetGauge() != nil:
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, want)
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string)
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestServiceLoad(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m)

	stats, err := svc.Load(context.Background(), TriggerStartup, stubReader{tbl: table(
		[]interface{}{float64(1), "Bulbasaur", true},
		[]interface{}{"bad", "Nope", true},
	)})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)

	st := svc.Store().Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, "stub.xlsx", st.Source)

	reg := m.Registry()
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_catalog_loads_total", map[string]string{"trigger": "startup", "result": "success"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_catalog_rows_skipped_total", nil))
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_generation_records", map[string]string{"generation": "1"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_generation_owned_records", map[string]string{"generation": "1"}))
}

func TestServiceFailedLoadKeepsSnapshot(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m)

	_, err := svc.Load(context.Background(), TriggerStartup, stubReader{tbl: table(
		[]interface{}{float64(1), "Bulbasaur", true},
	)})
	require.NoError(t, err)
	before := svc.Store().Status()

	readErr := errors.New("zip: not a valid zip file")
	_, err = svc.Load(context.Background(), TriggerReload, stubReader{err: readErr})
	require.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "stub.xlsx")

	_, err = svc.Load(context.Background(), TriggerUpload, stubReader{tbl: &source.Table{Header: []string{"Name"}}})
	require.ErrorIs(t, err, source.ErrMissingColumn)

	assert.Equal(t, before, svc.Store().Status())
	gen1, err := svc.Store().Generation(1)
	require.NoError(t, err)
	assert.Equal(t, []types.Record{{ID: 1, Name: "Bulbasaur", Owned: true}}, gen1)

	reg := m.Registry()
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_catalog_loads_total", map[string]string{"trigger": "reload", "result": "failure"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_catalog_loads_total", map[string]string{"trigger": "upload", "result": "failure"}))
}

func TestServiceUpdate(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m)

	_, err := svc.Load(context.Background(), TriggerStartup, stubReader{tbl: table(
		[]interface{}{float64(1), "Bulbasaur", false},
		[]interface{}{float64(4), "Charmander", false},
	)})
	require.NoError(t, err)

	_, err = svc.Update(4, true)
	require.NoError(t, err)
	_, err = svc.Update(4, true)
	require.NoError(t, err)
	_, err = svc.Update(9999, true)
	require.ErrorIs(t, err, ErrRecordNotFound)

	reg := m.Registry()
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_generation_owned_records", map[string]string{"generation": "1"}))
	assert.Equal(t, 2.0, metricValue(t, reg, "pokedex_record_updates_total", map[string]string{"result": "success"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "pokedex_record_updates_total", map[string]string{"result": "not_found"}))

	_, err = svc.Update(4, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metricValue(t, reg, "pokedex_generation_owned_records", map[string]string{"generation": "1"}))
}

func TestServicePreviewDoesNotInstall(t *testing.T) {
	svc := newTestService(nil)

	snap, err := svc.Preview(context.Background(), stubReader{tbl: table(
		[]interface{}{float64(25), "Pikachu", true},
	)})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, "stub.xlsx", snap.Source)

	assert.Equal(t, 0, svc.Store().Status().Records)
}

func kantoTable() *source.Table {
	rows := make([][]interface{}, 0, 151)
	for id := 1; id <= 151; id++ {
		rows = append(rows, []interface{}{float64(id), fmt.Sprintf("Kanto %03d", id), false})
	}
	return table(rows...)
}

func TestServiceLoadDuringUpdates(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m)

	_, err := svc.Load(context.Background(), TriggerStartup, stubReader{tbl: kantoTable()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := svc.Load(context.Background(), TriggerReload, stubReader{tbl: kantoTable()}); err != nil {
				t.Errorf("Load() error: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			if _, err := svc.Update(1+i%151, i%2 == 0); err != nil {
				t.Errorf("Update() error: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	reg := m.Registry()
	for _, g := range svc.Store().Summary() {
		labels := map[string]string{"generation": strconv.Itoa(g.Key)}
		assert.Equal(t, float64(g.Owned), metricValue(t, reg, "pokedex_generation_owned_records", labels),
			"owned gauge of generation %d", g.Key)
	}
}
