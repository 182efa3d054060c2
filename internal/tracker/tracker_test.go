package tracker

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/model"
	"github.com/theirongolddev/compound/internal/store"
)

func openMemory(t *testing.T) (*Tracker, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	tr, err := Open(mem, challenge.DefaultParams(), nil)
	require.NoError(t, err)
	return tr, mem
}

func TestOpenGeneratesAndSavesDefault(t *testing.T) {
	tr, mem := openMemory(t)

	assert.False(t, tr.Restored())
	assert.Equal(t, challenge.Default(), tr.Sequence())
	assert.Equal(t, 1, mem.Saves)

	stored, ok, err := mem.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, challenge.Default(), stored)
}

func TestOpenRestoresPersisted(t *testing.T) {
	mem := store.NewMemory()
	seq := challenge.Generate(100, 10, 0.1)
	seq[0].Achieved = true
	seq[0].Notes = "first"
	require.NoError(t, mem.Save(seq))

	tr, err := Open(mem, challenge.DefaultParams(), nil)
	require.NoError(t, err)
	assert.True(t, tr.Restored())
	if diff := cmp.Diff(seq, tr.Sequence()); diff != "" {
		t.Fatalf("restored sequence mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, mem.Saves, "restoring must not write")
}

func TestOpenFallsBackOnCorruptState(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"empty list", "[]"},
		{"gap in achieved", `[{"equity":20,"profitTarget":4},{"equity":24,"profitTarget":4.8,"achieved":true}]`},
		{"negative equity", `[{"equity":-3,"profitTarget":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			mem := store.NewMemory()
			mem.SetRaw([]byte(tt.raw))

			tr, err := Open(mem, challenge.DefaultParams(), zap.New(core))
			require.NoError(t, err)
			assert.False(t, tr.Restored())
			assert.Equal(t, challenge.Default(), tr.Sequence())
			assert.Equal(t, 1, logs.Len())

			stored, _, err := mem.Load()
			require.NoError(t, err)
			assert.Equal(t, challenge.Default(), stored)
		})
	}
}

type failingStore struct{ loadErr, saveErr error }

func (f failingStore) Load() (model.Sequence, bool, error) { return nil, false, f.loadErr }
func (f failingStore) Save(model.Sequence) error           { return f.saveErr }

func TestOpenStoreErrors(t *testing.T) {
	boom := errors.New("disk gone")

	_, err := Open(failingStore{loadErr: boom}, challenge.DefaultParams(), nil)
	assert.ErrorIs(t, err, boom)

	_, err = Open(failingStore{saveErr: boom}, challenge.DefaultParams(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestOpenEmptyParams(t *testing.T) {
	_, err := Open(store.NewMemory(), model.Params{StartingAmount: 20}, nil)
	assert.ErrorIs(t, err, challenge.ErrEmptySequence)
}

func TestSetAchievedSequentially(t *testing.T) {
	tr, mem := openMemory(t)

	err := tr.SetAchieved(2, true)
	assert.ErrorIs(t, err, challenge.ErrPriorIncomplete)
	assert.Equal(t, 0, challenge.CompletedCount(tr.Sequence()))
	assert.Equal(t, 1, mem.Saves, "rejected change must not persist")

	for i := 0; i < 5; i++ {
		require.NoError(t, tr.SetAchieved(i, true))
	}
	seq := tr.Sequence()
	assert.Equal(t, 5, challenge.CompletedCount(seq))
	assert.Equal(t, seq[4].Equity, challenge.CurrentEquity(seq))
	assert.Equal(t, 6, mem.Saves)

	assert.ErrorIs(t, tr.SetAchieved(1, false), challenge.ErrLaterComplete)
	require.NoError(t, tr.SetAchieved(4, false))
	assert.Equal(t, 4, challenge.CompletedCount(tr.Sequence()))

	assert.ErrorIs(t, tr.SetAchieved(30, true), challenge.ErrStepOutOfRange)
}

func TestEndToEndScenario(t *testing.T) {
	tr, _ := openMemory(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, tr.SetAchieved(i, true))
	}

	s, err := tr.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5, s.CompletedSteps)
	assert.InDelta(t, 20*math.Pow(1.2, 4), s.CurrentEquity, 1e-9)
	assert.InDelta(t, 20*math.Pow(1.2, 29), s.GoalAmount, 1e-6)
	assert.InDelta(t, s.CurrentEquity/s.GoalAmount*100, s.ProgressPercent, 1e-12)
}

func TestResetRestoresDefault(t *testing.T) {
	tr, mem := openMemory(t)
	require.NoError(t, tr.SetAchieved(0, true))
	require.NoError(t, tr.SetNotes(0, "took profit early"))
	require.NoError(t, tr.Update(3, challenge.FieldEquity, "99"))

	require.NoError(t, tr.Reset())
	assert.Equal(t, challenge.Generate(20, 30, 0.2), tr.Sequence())

	stored, _, err := mem.Load()
	require.NoError(t, err)
	assert.Equal(t, challenge.Generate(20, 30, 0.2), stored)
}

func TestUpdateTrustsAmountEdits(t *testing.T) {
	tr, _ := openMemory(t)
	require.NoError(t, tr.Update(1, challenge.FieldProfitTarget, "100"))

	seq := tr.Sequence()
	assert.Equal(t, 100.0, seq[1].ProfitTarget)
	// Later steps are not recomputed.
	assert.Equal(t, challenge.Default()[2], seq[2])

	assert.ErrorIs(t, tr.Update(1, challenge.FieldEquity, "-1"), challenge.ErrInvalidValue)
}

func TestUpdateAchievedGoesThroughPolicy(t *testing.T) {
	tr, _ := openMemory(t)
	assert.ErrorIs(t, tr.Update(1, challenge.FieldAchieved, "true"), challenge.ErrPriorIncomplete)
	require.NoError(t, tr.Update(0, challenge.FieldAchieved, "1"))
	assert.True(t, tr.Sequence()[0].Achieved)
}

func TestUpdateStepCommitsAllOrNothing(t *testing.T) {
	tr, mem := openMemory(t)
	saves := mem.Saves

	step := tr.Sequence()[2]
	step.Equity = 999
	step.Achieved = true
	assert.ErrorIs(t, tr.UpdateStep(2, step), challenge.ErrPriorIncomplete)
	assert.Equal(t, challenge.Default(), tr.Sequence())
	assert.Equal(t, saves, mem.Saves, "a rejected step must not be saved")

	step = tr.Sequence()[0]
	step.Equity = 25
	step.Achieved = true
	step.Notes = "opened big"
	require.NoError(t, tr.UpdateStep(0, step))
	assert.Equal(t, step, tr.Sequence()[0])
	assert.Equal(t, saves+1, mem.Saves)

	assert.ErrorIs(t, tr.UpdateStep(30, step), challenge.ErrStepOutOfRange)
}

func TestUpdateKeepsRestorableShape(t *testing.T) {
	tr, mem := openMemory(t)
	saves := mem.Saves

	assert.Error(t, tr.Update(0, challenge.FieldEquity, "0"))
	assert.Equal(t, 20.0, tr.Sequence()[0].Equity)
	assert.Equal(t, saves, mem.Saves)

	// Only the starting balance has to stay positive.
	require.NoError(t, tr.Update(29, challenge.FieldEquity, "0"))
}

func TestSequenceIsACopy(t *testing.T) {
	tr, _ := openMemory(t)
	seq := tr.Sequence()
	seq[0].Notes = "mutated outside"
	assert.Empty(t, tr.Sequence()[0].Notes)
}

func TestSubscribersSeeEveryReplacement(t *testing.T) {
	tr, _ := openMemory(t)

	var got []int
	tr.Subscribe(func(seq model.Sequence) {
		got = append(got, challenge.CompletedCount(seq))
	})

	require.NoError(t, tr.SetAchieved(0, true))
	require.NoError(t, tr.SetAchieved(1, true))
	_ = tr.SetAchieved(5, true)
	require.NoError(t, tr.Reset())

	assert.Equal(t, []int{1, 2, 0}, got)
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	tr, mem := openMemory(t)
	mem.Err = errors.New("read-only")

	err := tr.SetNotes(0, "kept anyway")
	assert.ErrorContains(t, err, "read-only")
	assert.Equal(t, "kept anyway", tr.Sequence()[0].Notes)
}

func TestRestartAndReplace(t *testing.T) {
	tr, _ := openMemory(t)

	p := model.Params{StartingAmount: 1000, StepCount: 10, GrowthRate: 0.05}
	require.NoError(t, tr.Restart(p))
	assert.Equal(t, p, tr.Params())
	assert.Equal(t, 10, tr.Len())

	require.NoError(t, tr.Reset())
	assert.Equal(t, challenge.GenerateFrom(p), tr.Sequence())

	assert.ErrorIs(t, tr.Restart(model.Params{StepCount: 0}), challenge.ErrEmptySequence)

	imported := challenge.Generate(50, 3, 0.1)
	imported[0].Achieved = true
	require.NoError(t, tr.Replace(imported))
	assert.Equal(t, imported, tr.Sequence())

	bad := challenge.Generate(50, 3, 0.1)
	bad[2].Achieved = true
	assert.Error(t, tr.Replace(bad))
	assert.Equal(t, imported, tr.Sequence())
}

func TestSQLiteBackedTracker(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "compound.db"))
	require.NoError(t, err)
	defer db.Close()

	tr, err := Open(store.NewSlot(db, ""), challenge.DefaultParams(), nil)
	require.NoError(t, err)
	require.NoError(t, tr.SetAchieved(0, true))
	require.NoError(t, tr.SetNotes(0, "gap fill"))

	again, err := Open(store.NewSlot(db, ""), challenge.DefaultParams(), nil)
	require.NoError(t, err)
	assert.True(t, again.Restored())
	assert.Equal(t, tr.Sequence(), again.Sequence())
}
