// Package record stores per-tick steering frames in SQLite through gorm so a
// run can be inspected or compared after the fact.
package record

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/steering"
)

// ErrClosed is returned by any operation on a closed Recorder
var ErrClosed = errors.New("recorder closed")

// DefaultBatchSize is the insert batch size used by Flush
const DefaultBatchSize = 500

// Frame is one vehicle's state and command at one tick. Rotation and Thrust are
// NULL when the command was undefined.
type Frame struct {
	ID        uint            `gorm:"primaryKey"`
	Tick      uint64          `json:"tick" gorm:"index"`
	Entity    uint64          `json:"entity" gorm:"index"`
	Objective string          `json:"objective" gorm:"size:64"`
	Rotation  sql.NullFloat64 `json:"rotation"`
	Thrust    sql.NullFloat64 `json:"thrust"`
	PosX      float64         `json:"posX"`
	PosY      float64         `json:"posY"`
	VelX      float64         `json:"velX"`
	VelY      float64         `json:"velY"`
	Valid     bool            `json:"valid"`
}

// FrameOf captures body and cmd for entity at tick
func FrameOf(tick uint64, entity core.EntityID, body *core.Body, cmd steering.Command) Frame {
	return Frame{
		Tick:      tick,
		Entity:    uint64(entity),
		Objective: cmd.Objective,
		Rotation:  nullable(cmd.Rotation),
		Thrust:    nullable(cmd.Thrust),
		PosX:      body.Pos.X,
		PosY:      body.Pos.Y,
		VelX:      body.Vel.X,
		VelY:      body.Vel.Y,
		Valid:     cmd.Valid(),
	}
}

// Command rebuilds the recorded rotation and thrust, NaN where NULL
func (f Frame) Command() steering.Command {
	return steering.Command{
		Objective: f.Objective,
		Rotation:  denull(f.Rotation),
		Thrust:    denull(f.Thrust),
	}
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func denull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// Recorder buffers frames in memory and writes them on Flush
type Recorder struct {
	mu        sync.Mutex
	db        *gorm.DB
	buffer    []Frame
	batchSize int
	closed    bool
	log       zerolog.Logger
}

// Option configures a Recorder
type Option func(*Recorder)

// WithLogger sets the recorder's logger
func WithLogger(l zerolog.Logger) Option {
	return func(r *Recorder) { r.log = l }
}

// WithBatchSize sets the number of rows per insert statement
func WithBatchSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// Open opens or creates the frame database at path. An empty path uses a shared
// in-memory database that lives as long as the process.
func Open(path string, opts ...Option) (*Recorder, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening frame database: %w", err)
	}
	if err := db.AutoMigrate(&Frame{}); err != nil {
		return nil, fmt.Errorf("migrating frame table: %w", err)
	}

	r := &Recorder{
		db:        db,
		batchSize: DefaultBatchSize,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if path == "" {
		r.log.Info().Msg("recording frames to in-memory SQLite")
	} else {
		r.log.Info().Str("path", path).Msg("recording frames to SQLite")
	}
	return r, nil
}

// Record buffers a frame
func (r *Recorder) Record(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.buffer = append(r.buffer, f)
	return nil
}

// Pending returns the number of buffered frames
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffer)
}

// Flush writes all buffered frames
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	if len(r.buffer) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(r.buffer, r.batchSize).Error; err != nil {
		return fmt.Errorf("writing %d frames: %w", len(r.buffer), err)
	}
	r.log.Debug().Int("frames", len(r.buffer)).Msg("flushed frames")
	r.buffer = r.buffer[:0]
	return nil
}

// FramesForTick returns all written frames at tick, ordered by entity
func (r *Recorder) FramesForTick(tick uint64) ([]Frame, error) {
	return r.find("tick = ?", tick, "entity")
}

// FramesForEntity returns all written frames of entity, ordered by tick
func (r *Recorder) FramesForEntity(entity core.EntityID) ([]Frame, error) {
	return r.find("entity = ?", uint64(entity), "tick")
}

func (r *Recorder) find(where string, arg interface{}, order string) ([]Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	var frames []Frame
	if err := r.db.Where(where, arg).Order(order).Find(&frames).Error; err != nil {
		return nil, fmt.Errorf("querying frames: %w", err)
	}
	return frames, nil
}

// Close flushes pending frames and closes the database. Closing twice is a no-op.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	flushErr := r.flushLocked()
	r.closed = true

	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Join(flushErr, fmt.Errorf("getting sql handle: %w", err))
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Join(flushErr, fmt.Errorf("closing frame database: %w", err))
	}
	return flushErr
}
