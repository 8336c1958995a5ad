package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

func (rs *registeredSystem) record(d time.Duration) {
	st := &rs.stats
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// Scheduler runs systems in registration order against one Storage.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the world this scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system and wires its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats:   SystemStats{Name: systemType.Name()},
	})
}

// initializeFields calls Init on every exported Query[...] and Singleton[...] field and
// returns the queries so they can be refreshed before each run.
func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + systemType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			if q, ok := field.Addr().Interface().(queryExecutor); ok {
				queries = append(queries, q)
			}
		}
	}
	return queries
}

// Once runs every system once with delta time dt, then flushes queued commands.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{DeltaTime: dt, Commands: s.commands, Storage: s.storage}

	for _, rs := range s.systems {
		for _, q := range rs.queries {
			q.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		rs.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

// Run calls Once on every tick of interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats snapshots per-system timings in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	out := &SchedulerStats{SystemCount: len(s.systems)}
	for _, rs := range s.systems {
		out.Systems = append(out.Systems, rs.stats)
		out.TotalExecutions += rs.stats.ExecutionCount
	}
	return out
}
