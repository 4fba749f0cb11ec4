package store

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
)

const (
	SourceBackend = "backend"
	SourceMock    = "mock"
	SourceLocal   = "local"
	SourceCache   = "cache"
)

// LoadReport tells where each bootstrapped collection came from.
type LoadReport struct {
	Patients        string `json:"patients"`
	Programs        string `json:"programs"`
	Instruments     string `json:"instruments"`
	InstrumentTypes string `json:"instrumentTypes"`
	Stats           string `json:"stats"`
}

// Load fetches every collection in parallel. On the first load a collection
// whose fetch fails is replaced by the mock dataset; on later loads it keeps
// what the store already holds, local changes included. Failed dashboard
// stats are computed from the resulting collections, so Load never fails
// because of the backend.
func (s *Store) Load(ctx context.Context) LoadReport {
	loaded := !s.LoadedAt().IsZero()
	var (
		report      LoadReport
		patients    []model.Patient
		programs    []model.ProgramDetails
		instruments []model.Instrument
		types       []model.InstrumentType
		stats       *model.DashboardStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if patients, err = s.fetchPatients(gctx); err != nil {
			if report.Patients = s.fallback("patients", err, loaded); report.Patients == SourceMock {
				patients = mockPatients()
			}
			return nil
		}
		report.Patients = SourceBackend
		return nil
	})
	g.Go(func() error {
		var err error
		if programs, err = s.fetchPrograms(gctx); err != nil {
			if report.Programs = s.fallback("programs", err, loaded); report.Programs == SourceMock {
				programs = mockPrograms()
			}
			return nil
		}
		report.Programs = SourceBackend
		return nil
	})
	g.Go(func() error {
		var err error
		if instruments, err = s.fetchInstruments(gctx); err != nil {
			if report.Instruments = s.fallback("instruments", err, loaded); report.Instruments == SourceMock {
				instruments = mockInstruments()
			}
			return nil
		}
		report.Instruments = SourceBackend
		return nil
	})
	g.Go(func() error {
		var err error
		if types, err = s.fetchInstrumentTypes(gctx); err != nil {
			if report.InstrumentTypes = s.fallback("instrument_types", err, loaded); report.InstrumentTypes == SourceMock {
				types = mockInstrumentTypes()
			}
			return nil
		}
		report.InstrumentTypes = SourceBackend
		return nil
	})
	g.Go(func() error {
		st, err := s.fetchStats(gctx)
		if err != nil {
			s.log.Warnw("dashboard summary unavailable, computing locally", "error", err)
			s.metrics.Fallback("stats", SourceLocal)
			return nil
		}
		stats = &st
		return nil
	})
	// loaders never return errors
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if report.Patients != SourceCache {
		s.patients = patients
	}
	if report.Programs != SourceCache {
		s.programs = programs
	}
	if report.Instruments != SourceCache {
		s.instruments = instruments
	}
	if report.InstrumentTypes != SourceCache {
		sortInstrumentTypes(types)
		s.instrumentTypes = types
	}
	if stats != nil {
		s.stats = *stats
		report.Stats = SourceBackend
	} else {
		s.stats = s.localStatsLocked()
		report.Stats = SourceLocal
	}
	s.loadedAt = s.now()

	s.log.Infow("store loaded",
		"patients", report.Patients,
		"programs", report.Programs,
		"instruments", report.Instruments,
		"instrument_types", report.InstrumentTypes,
		"stats", report.Stats)
	return report
}

// fallback reports where a collection whose fetch failed comes from.
func (s *Store) fallback(resource string, err error, loaded bool) string {
	source := SourceMock
	if loaded {
		source = SourceCache
	}
	s.log.Warnw("fetch failed, keeping fallback data", "resource", resource, "source", source, "error", err)
	s.metrics.Fallback(resource, source)
	return source
}

func (s *Store) fetchPatients(ctx context.Context) ([]model.Patient, error) {
	payload, err := s.api.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	records := mapper.Records(payload)
	out := make([]model.Patient, 0, len(records))
	for _, r := range records {
		res := mapper.Patient(r)
		s.metrics.Anomalies("patient", len(res.Anomalies))
		out = append(out, res.Logged(s.log, "patient"))
	}
	return out, nil
}

func (s *Store) fetchPrograms(ctx context.Context) ([]model.ProgramDetails, error) {
	payload, err := s.api.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	records := mapper.Records(payload)
	out := make([]model.ProgramDetails, 0, len(records))
	for _, r := range records {
		res := mapper.ProgramDetails(r)
		s.metrics.Anomalies("program", len(res.Anomalies))
		out = append(out, res.Logged(s.log, "program"))
	}
	return out, nil
}

// fetchInstruments lists instruments and resolves the topic name of every
// distinct topic id once.
func (s *Store) fetchInstruments(ctx context.Context) ([]model.Instrument, error) {
	payload, err := s.api.ListInstruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	records := mapper.Records(payload)

	topicIDs := make([]string, 0)
	seen := map[string]bool{}
	for _, r := range records {
		if id, ok := mapper.TopicID(r); ok && !seen[id] {
			seen[id] = true
			topicIDs = append(topicIDs, id)
		}
	}
	names := s.resolveTopics(ctx, topicIDs)

	out := make([]model.Instrument, 0, len(records))
	for _, r := range records {
		var ov mapper.InstrumentOverrides
		if id, ok := mapper.TopicID(r); ok {
			if name, found := names[id]; found {
				ov.TopicName = model.StringPtr(name)
			}
		}
		res := mapper.Instrument(r, ov)
		s.metrics.Anomalies("instrument", len(res.Anomalies))
		out = append(out, res.Logged(s.log, "instrument"))
	}
	return out, nil
}

// resolveTopics returns the names of the topics that could be resolved.
func (s *Store) resolveTopics(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	results := make([]*string, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = s.topicName(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		if results[i] != nil {
			names[id] = *results[i]
		}
	}
	return names
}

// topicName resolves a topic name through the cache. Failures are not cached.
func (s *Store) topicName(ctx context.Context, id string) *string {
	if name, ok := s.topics.Get(id); ok {
		n := name.(string)
		return &n
	}
	payload, err := s.api.GetTopic(ctx, id)
	if err != nil {
		s.log.Warnw("failed to resolve topic name", "topic", id, "error", err)
		return nil
	}
	name, ok := mapper.TopicName(mapper.Record(payload))
	if !ok {
		s.log.Debugw("decode anomaly", "entity", "topic", "fields", []string{"nombre"})
		return nil
	}
	s.topics.SetDefault(id, name)
	return &name
}

func (s *Store) fetchInstrumentTypes(ctx context.Context) ([]model.InstrumentType, error) {
	payload, err := s.api.ListInstrumentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instrument types: %w", err)
	}
	records := mapper.Records(payload)
	out := make([]model.InstrumentType, 0, len(records))
	for _, r := range records {
		res := mapper.InstrumentType(r)
		s.metrics.Anomalies("instrument_type", len(res.Anomalies))
		out = append(out, res.Logged(s.log, "instrument_type"))
	}
	return out, nil
}

func (s *Store) fetchStats(ctx context.Context) (model.DashboardStats, error) {
	payload, err := s.api.DashboardSummary(ctx)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to load dashboard summary: %w", err)
	}
	m, _ := payload.(map[string]interface{})
	res := mapper.DashboardStats(m)
	s.metrics.Anomalies("dashboard", len(res.Anomalies))
	return res.Logged(s.log, "dashboard"), nil
}

// sortInstrumentTypes orders types by name, ignoring case and accents.
func sortInstrumentTypes(types []model.InstrumentType) {
	col := newCollator()
	sort.SliceStable(types, func(i, j int) bool {
		if c := col.CompareString(types[i].Name, types[j].Name); c != 0 {
			return c < 0
		}
		return types[i].ID < types[j].ID
	})
}
