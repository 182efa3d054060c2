// Package tracker owns the live challenge sequence: it restores or generates
// it, applies single-field edits as whole-sequence replacements, and persists
// every replacement.
package tracker

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/model"
)

// Store persists one sequence.
type Store interface {
	// Load returns the stored sequence. ok is false when nothing is stored.
	Load() (seq model.Sequence, ok bool, err error)
	Save(seq model.Sequence) error
}

// Tracker holds the sequence as the single source of truth.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	params model.Params
	log    *zap.Logger

	seq  model.Sequence
	subs []func(model.Sequence)

	restored bool
}

// Open restores the persisted sequence or generates one from params. A
// stored value that cannot be decoded or fails validation is replaced by a
// fresh sequence, which is saved right away.
func Open(store Store, params model.Params, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{store: store, params: params, log: logger}

	seq, ok, err := store.Load()
	switch {
	case err != nil && !ok:
		return nil, fmt.Errorf("loading challenge: %w", err)
	case err != nil:
		logger.Warn("discarding unreadable stored challenge", zap.Error(err))
	case ok:
		if verr := challenge.Validate(seq); verr != nil {
			logger.Warn("discarding invalid stored challenge", zap.Error(verr), zap.Int("steps", len(seq)))
		} else {
			t.seq = seq
			t.restored = true
			logger.Debug("restored challenge", zap.Int("steps", len(seq)), zap.Int("completed", challenge.CompletedCount(seq)))
			return t, nil
		}
	}

	t.seq = challenge.GenerateFrom(params)
	if len(t.seq) == 0 {
		return nil, fmt.Errorf("generating challenge: %w", challenge.ErrEmptySequence)
	}
	logger.Info("generated challenge",
		zap.Float64("starting_amount", params.StartingAmount),
		zap.Int("steps", params.StepCount),
		zap.Float64("growth_rate", params.GrowthRate))
	if err := t.save(t.seq); err != nil {
		return nil, err
	}
	return t, nil
}

// Restored reports whether Open found a usable persisted sequence.
func (t *Tracker) Restored() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.restored
}

// Params returns the parameters Reset generates from.
func (t *Tracker) Params() model.Params {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.params
}

// Sequence returns a copy of the current sequence.
func (t *Tracker) Sequence() model.Sequence {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq.Clone()
}

// Len returns the number of steps.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seq)
}

// Summary computes the derived metrics for the current sequence.
func (t *Tracker) Summary() (model.Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return challenge.Summarize(t.seq)
}

// Subscribe registers fn to receive every new sequence after it is saved.
func (t *Tracker) Subscribe(fn func(model.Sequence)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

// SetAchieved marks step index achieved or not, subject to the
// sequential-completion rule. A rejected change leaves state untouched.
func (t *Tracker) SetAchieved(index int, achieved bool) error {
	return t.Update(index, challenge.FieldAchieved, fmt.Sprint(achieved))
}

// SetNotes replaces the notes of step index.
func (t *Tracker) SetNotes(index int, notes string) error {
	return t.Update(index, challenge.FieldNotes, notes)
}

// Update applies one field edit to step index. Achieved edits go through
// the sequential-completion rule; amount edits are trusted as given.
func (t *Tracker) Update(index int, field challenge.Field, raw string) error {
	t.mu.Lock()
	if index < 0 || index >= len(t.seq) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", challenge.ErrStepOutOfRange, index+1, len(t.seq))
	}
	step, err := challenge.WithField(t.seq[index], field, raw)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	t.log.Debug("step updated", zap.Int("step", index+1), zap.String("field", string(field)))
	return t.commitStepLocked(index, step)
}

// UpdateStep replaces step index with step in one save, so several field
// edits either all land or none do. A change to Achieved goes through the
// sequential-completion rule, and the result must still pass
// challenge.Validate.
func (t *Tracker) UpdateStep(index int, step model.Step) error {
	t.mu.Lock()
	if index < 0 || index >= len(t.seq) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", challenge.ErrStepOutOfRange, index+1, len(t.seq))
	}
	t.log.Debug("step replaced", zap.Int("step", index+1))
	return t.commitStepLocked(index, step)
}

// commitStepLocked must be called with t.mu held. It releases the lock on
// every path.
func (t *Tracker) commitStepLocked(index int, step model.Step) error {
	if step.Achieved != t.seq[index].Achieved {
		if err := challenge.CheckAchieved(t.seq, index, step.Achieved); err != nil {
			t.mu.Unlock()
			t.log.Debug("rejected completion change",
				zap.Int("step", index+1), zap.Bool("achieved", step.Achieved), zap.Error(err))
			return err
		}
	}

	next, err := challenge.WithStepAt(t.seq, index, step)
	if err == nil {
		err = challenge.Validate(next)
	}
	if err != nil {
		t.mu.Unlock()
		return err
	}
	return t.replaceLocked(next)
}

// Reset discards all progress and regenerates from the current parameters.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	t.log.Info("challenge reset")
	return t.replaceLocked(challenge.GenerateFrom(t.params))
}

// Restart starts a new challenge with different parameters.
func (t *Tracker) Restart(params model.Params) error {
	seq := challenge.GenerateFrom(params)
	if len(seq) == 0 {
		return challenge.ErrEmptySequence
	}
	t.mu.Lock()
	t.params = params
	t.log.Info("challenge restarted",
		zap.Float64("starting_amount", params.StartingAmount),
		zap.Int("steps", params.StepCount),
		zap.Float64("growth_rate", params.GrowthRate))
	return t.replaceLocked(seq)
}

// Replace swaps in a whole sequence, such as one read from an export.
func (t *Tracker) Replace(seq model.Sequence) error {
	if err := challenge.Validate(seq); err != nil {
		return fmt.Errorf("invalid challenge: %w", err)
	}
	t.mu.Lock()
	t.log.Info("challenge replaced", zap.Int("steps", len(seq)))
	return t.replaceLocked(seq.Clone())
}

// replaceLocked installs seq, persists it, and notifies subscribers. It must
// be called with t.mu held and releases it before notifying.
func (t *Tracker) replaceLocked(seq model.Sequence) error {
	t.seq = seq
	err := t.save(seq)
	subs := append([]func(model.Sequence){}, t.subs...)
	t.mu.Unlock()

	for _, fn := range subs {
		fn(seq.Clone())
	}
	return err
}

func (t *Tracker) save(seq model.Sequence) error {
	if err := t.store.Save(seq); err != nil {
		t.log.Error("saving challenge", zap.Error(err))
		return fmt.Errorf("saving challenge: %w", err)
	}
	return nil
}
