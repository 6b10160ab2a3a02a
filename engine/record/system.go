package record

import (
	"github.com/rs/zerolog"

	"github.com/1siamBot/steer-engine/engine/core"
)

// System records every piloted vehicle after movement each tick
type System struct {
	Recorder *Recorder
	// FlushEvery flushes after this many ticks; 0 leaves flushing to the caller
	FlushEvery uint64
	Log        zerolog.Logger
}

func (s *System) Priority() int { return 20 }

func (s *System) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompBody, core.CompPilot) {
		body := w.Get(id, core.CompBody).(*core.Body)
		pilot := w.Get(id, core.CompPilot).(*core.Pilot)
		if err := s.Recorder.Record(FrameOf(w.TickCount, id, body, pilot.Command)); err != nil {
			s.Log.Warn().Err(err).Msg("dropping frame")
			return
		}
	}
	if s.FlushEvery > 0 && (w.TickCount+1)%s.FlushEvery == 0 {
		if err := s.Recorder.Flush(); err != nil {
			s.Log.Error().Err(err).Msg("flushing frames")
		}
	}
}
