package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) FrameHistory {
	return FrameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean over the samples pushed so far, at most a full ring.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// Samples is the raw ring, for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// NamedScheduler labels a scheduler in the stats window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// StatsWindow shows storage counts, per-system timings and a frame-time graph for one
// game world.
type StatsWindow struct {
	Title      string
	Storage    *ecs.Storage
	Schedulers []NamedScheduler

	history FrameHistory
	last    time.Time
}

func NewStatsWindow(title string, storage *ecs.Storage, schedulers ...NamedScheduler) *StatsWindow {
	return &StatsWindow{
		Title:      title,
		Storage:    storage,
		Schedulers: schedulers,
		history:    NewFrameHistory(120),
	}
}

// Tick records the time since the previous Tick.
func (w *StatsWindow) Tick(now time.Time) {
	if !w.last.IsZero() {
		w.history.Push(float32(now.Sub(w.last).Seconds() * 1000))
	}
	w.last = now
}

func (w *StatsWindow) History() *FrameHistory {
	return &w.history
}

// Render draws the window. It is meant to be handed to Overlay.Add.
func (w *StatsWindow) Render() {
	w.Tick(time.Now())

	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := w.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.Separator()
	imgui.Text("Frame time (ms)")
	samples := w.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	for _, named := range w.Schedulers {
		if imgui.TreeNodeStr(named.Name + " systems") {
			renderSystems(named.Scheduler.GetStats())
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()
			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func renderSystems(stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()
	for _, system := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(system.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(system.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(system.MaxDuration.String())
	}
	imgui.EndTable()
}
