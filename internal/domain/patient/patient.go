package patient

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/showcase/internal/domain"
)

// Dims is the length of every preference vector.
const Dims = 8

// Preference bounds (inclusive).
const (
	MinPreference = 1
	MaxPreference = 5
)

// Patient is a patient profile with a fixed-length preference vector (immutable value object).
type Patient struct {
	id          int
	name        string
	age         int
	condition   string
	preferences []int
}

// New validates and creates a Patient.
// Preferences must hold exactly Dims values, each in [MinPreference, MaxPreference].
func New(id int, name string, age int, condition string, preferences []int) (Patient, error) {
	if strings.TrimSpace(name) == "" {
		return Patient{}, fmt.Errorf("%w: patient %d has no name", domain.ErrInvalidRecord, id)
	}
	if age < 0 {
		return Patient{}, fmt.Errorf("%w: patient %d has negative age", domain.ErrInvalidRecord, id)
	}
	if len(preferences) != Dims {
		return Patient{}, fmt.Errorf("%w: patient %d has %d preferences, want %d",
			domain.ErrVectorDimMismatch, id, len(preferences), Dims)
	}
	for i, p := range preferences {
		if p < MinPreference || p > MaxPreference {
			return Patient{}, fmt.Errorf("%w: patient %d preference[%d]=%d out of range [%d,%d]",
				domain.ErrInvalidRecord, id, i, p, MinPreference, MaxPreference)
		}
	}

	return Patient{
		id:          id,
		name:        name,
		age:         age,
		condition:   condition,
		preferences: cloneInts(preferences),
	}, nil
}

// Reconstruct creates a Patient without validation.
// The vector is still copied so the caller cannot mutate it afterwards.
func Reconstruct(id int, name string, age int, condition string, preferences []int) Patient {
	return Patient{id: id, name: name, age: age, condition: condition, preferences: cloneInts(preferences)}
}

// ID returns the patient identifier.
func (p Patient) ID() int { return p.id }

// Name returns the patient display name.
func (p Patient) Name() string { return p.name }

// Age returns the patient age in years.
func (p Patient) Age() int { return p.age }

// Condition returns the primary diagnosis.
func (p Patient) Condition() string { return p.condition }

// Preferences returns a copy of the preference vector.
func (p Patient) Preferences() []int { return cloneInts(p.preferences) }

// Preference returns the i-th preference value without copying the vector.
func (p Patient) Preference(i int) int { return p.preferences[i] }

// Dimensions returns the preference vector length.
func (p Patient) Dimensions() int { return len(p.preferences) }

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	c := make([]int, len(s))
	copy(c, s)
	return c
}
