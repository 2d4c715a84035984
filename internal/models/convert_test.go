package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/gymsync/pkg/api"
)

func TestTemplateConversion(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	tpl := &WorkoutTemplate{
		EntityHeader: EntityHeader{
			LocalID:   "workout-1",
			ServerID:  "srv-1",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      "Leg day",
		Exercises: []TemplateExercise{{Name: "Squat", Sets: 5, Reps: 5, WeightKg: 100}},
	}

	wire := TemplateToAPI(tpl)
	assert.Equal(t, "srv-1", wire.ServerID)
	assert.Equal(t, "workout-1", wire.LocalID)
	assert.False(t, wire.Deleted)
	assert.Equal(t, api.TemplateExercise{Name: "Squat", Sets: 5, Reps: 5, WeightKg: 100}, wire.Exercises[0])

	back := TemplateFromAPI(wire)
	assert.Equal(t, tpl.LocalID, back.LocalID)
	assert.Equal(t, tpl.ServerID, back.ServerID)
	assert.Equal(t, tpl.Exercises, back.Exercises)
	assert.Nil(t, back.DeletedAt)
}

func TestFromAPI_PrefersServerIDOverID(t *testing.T) {
	inst := InstanceFromAPI(api.WorkoutInstance{ID: "from-id", LocalID: "l1"})
	assert.Equal(t, "from-id", inst.ServerID)

	inst = InstanceFromAPI(api.WorkoutInstance{ID: "from-id", ServerID: "from-server", LocalID: "l1"})
	assert.Equal(t, "from-server", inst.ServerID)
}

func TestFromAPI_DeletedBecomesTombstone(t *testing.T) {
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	log := LogFromAPI(api.ExerciseLog{LocalID: "log-1", ServerID: "srv", Deleted: true, UpdatedAt: updated})

	if assert.NotNil(t, log.DeletedAt) {
		assert.Equal(t, updated, *log.DeletedAt)
	}
	assert.True(t, LogToAPI(log).Deleted)
}

func TestMappingsToAPI(t *testing.T) {
	got := MappingsToAPI([]IDMapping{{ID: "a", LocalID: "1"}, {ID: "b", LocalID: "2"}})
	assert.Equal(t, []api.IDMapping{{ID: "a", LocalID: "1"}, {ID: "b", LocalID: "2"}}, got)
	assert.Empty(t, MappingsToAPI(nil))
}
