package estimator

import (
	"math"
	"reflect"
	"testing"

	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEstimate_WorkedExample(t *testing.T) {
	req := model.EstimatorRequest{
		TaskType:    model.TaskCoding,
		TaskSize:    model.SizeMedium,
		Proficiency: model.ProficiencySome,
		Energy:      model.EnergyDecent,
		Deadline:    model.DeadlineTonight,
	}

	// 90 * 2.0 * 1.25 * 1.05 = 236.25, +15 de overhead = 251.25
	got := Estimate(req, 20*60)
	if got.Minutes != 251 {
		t.Errorf("Minutes = %d, want 251", got.Minutes)
	}
	if got.LateMultiplier != 1 {
		t.Errorf("LateMultiplier = %v, want 1", got.LateMultiplier)
	}
	want := []string{reasonMediumScope}
	if !reflect.DeepEqual(got.Reasoning, want) {
		t.Errorf("Reasoning = %v, want %v", got.Reasoning, want)
	}
}

func TestEstimate_Table(t *testing.T) {
	tests := []struct {
		name          string
		req           model.EstimatorRequest
		now           int
		wantMinutes   int
		wantReasoning []string
	}{
		{
			name: "tiny writing new dead in the morning",
			req: model.EstimatorRequest{
				TaskType: model.TaskWriting, TaskSize: model.SizeTiny,
				Proficiency: model.ProficiencyNew, Energy: model.EnergyDead,
			},
			now:           10 * 60,
			wantMinutes:   138, // 75*0.5*1.8*1.9 = 128.25 + 10
			wantReasoning: []string{reasonSmallScope, reasonNewTerritory, reasonLowEnergy},
		},
		{
			name: "admin at 23:00 gets partial late penalty",
			req: model.EstimatorRequest{
				TaskType: model.TaskAdmin, TaskSize: model.SizeSmall,
				Proficiency: model.ProficiencyComfortable, Energy: model.EnergyDecent,
			},
			now:           23 * 60,
			wantMinutes:   65, // 45*1.05*(1+30/180) = 55.125 + 10
			wantReasoning: []string{reasonSmallScope, reasonLateNight},
		},
		{
			name: "large expert locked in at threshold",
			req: model.EstimatorRequest{
				TaskType: model.TaskDesign, TaskSize: model.SizeLarge,
				Proficiency: model.ProficiencyExpert, Energy: model.EnergyLockedIn,
			},
			now:           LateThreshold,
			wantMinutes:   224, // 80*3.5*0.85*0.9 = 214.2 + 10
			wantReasoning: []string{reasonLargeScope, reasonExpert, reasonLockedIn, reasonLateNight},
		},
		{
			name: "unsure meh medium",
			req: model.EstimatorRequest{
				TaskType: model.TaskUnsure, TaskSize: model.SizeMedium,
				Proficiency: model.ProficiencyComfortable, Energy: model.EnergyMeh,
			},
			now:           12 * 60,
			wantMinutes:   267, // 95*2*1.35 = 256.5 + 10
			wantReasoning: []string{reasonMediumScope},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.req, tt.now)
			if got.Minutes != tt.wantMinutes {
				t.Errorf("Minutes = %d, want %d", got.Minutes, tt.wantMinutes)
			}
			if !reflect.DeepEqual(got.Reasoning, tt.wantReasoning) {
				t.Errorf("Reasoning = %v, want %v", got.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestLateMultiplier(t *testing.T) {
	tests := []struct {
		now  int
		want float64
	}{
		{0, 1},
		{LateThreshold - 1, 1},
		{LateThreshold, 1},
		{LateThreshold + 36, 1.2},
		{LateThreshold + 63, 1.35},
		{23*60 + 59, 1.35},
	}

	for _, tt := range tests {
		got := LateMultiplier(tt.now)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LateMultiplier(%d) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func genRequest() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(model.TaskTypes)-1),
		gen.IntRange(0, len(model.Proficiencies)-1),
		gen.IntRange(0, len(model.Energies)-1),
	).Map(func(values []interface{}) model.EstimatorRequest {
		return model.EstimatorRequest{
			TaskType:    model.TaskTypes[values[0].(int)],
			TaskSize:    model.SizeSmall,
			Proficiency: model.Proficiencies[values[1].(int)],
			Energy:      model.Energies[values[2].(int)],
			Deadline:    model.DeadlineTonight,
		}
	})
}

// Estimativa nunca é negativa e cresce (ou se mantém) com o tamanho da tarefa
func TestEstimateMonotonicInSize(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("minutes non-negative and non-decreasing in taskSize", prop.ForAll(
		func(req model.EstimatorRequest, now int) bool {
			prev := -1
			for _, size := range model.TaskSizes {
				req.TaskSize = size
				got := Estimate(req, now)
				if got.Minutes < 0 {
					t.Logf("negative minutes for %+v at %d", req, now)
					return false
				}
				if got.Minutes < prev {
					t.Logf("size %s gave %d < %d", size, got.Minutes, prev)
					return false
				}
				prev = got.Minutes
			}
			return true
		},
		genRequest(),
		gen.IntRange(0, MinutesPerDay-1),
	))

	properties.Property("late multiplier stays within [1, 1.35]", prop.ForAll(
		func(now int) bool {
			m := LateMultiplier(now)
			return m >= 1 && m <= 1.35+1e-12
		},
		gen.IntRange(0, MinutesPerDay-1),
	))

	properties.Property("reasoning always starts with the size note", prop.ForAll(
		func(req model.EstimatorRequest, now int) bool {
			notes := Estimate(req, now).Reasoning
			return len(notes) >= 1 && notes[0] == reasonSmallScope
		},
		genRequest(),
		gen.IntRange(0, MinutesPerDay-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
