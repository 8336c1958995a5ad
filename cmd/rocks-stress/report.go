package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/skirmish/asteroids"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	FrameDt    time.Duration
	Seed       uint64
	SpawnScale float64

	// Results
	Arenas         int
	TotalFrames    int64
	FixedSteps     int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	FrameTime      Stats
	Hits           int
	Breaches       int
	Spawns         int
	PeakEntities   int
	BestScore      int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// finishArena folds one arena's session into the totals.
func (r *Report) finishArena(session asteroids.Session) {
	r.BestScore = max(r.BestScore, session.Score())
	r.SimulatedTime += time.Duration(session.Elapsed * float64(time.Second))
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Asteroids Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Frame Step:** {{.FrameDt}}
- **First Seed:** {{.Seed}}
- **Spawn Scale:** {{.SpawnScale}}

## Simulation
- **Arenas Played:** {{.Arenas}}
- **Simulated Time:** {{.SimulatedTime}}
- **Fixed Steps:** {{.FixedSteps}}
- **Hits / Breaches / Spawns:** {{.Hits}} / {{.Breaches}} / {{.Spawns}}
- **Peak Entities:** {{.PeakEntities}}
- **Best Score:** {{.BestScore}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
  - **P99:** {{.FrameTime.P99}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
