package showcase

import (
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
)

func documentFromDomain(d domdoc.Document) Document {
	return Document{
		ID:       d.ID(),
		Title:    d.Title(),
		Content:  d.Content(),
		Category: d.Category(),
	}
}

func patientFromDomain(p dompat.Patient) Patient {
	return Patient{
		ID:          p.ID(),
		Name:        p.Name(),
		Age:         p.Age(),
		Condition:   p.Condition(),
		Preferences: p.Preferences(),
	}
}

func scoredDocuments(rs []result.Scored[domdoc.Document]) []ScoredDocument {
	out := make([]ScoredDocument, len(rs))
	for i, r := range rs {
		out[i] = ScoredDocument{Document: documentFromDomain(r.Record()), Score: r.Score()}
	}
	return out
}

func scoredPatients(rs []result.Scored[dompat.Patient]) []ScoredPatient {
	out := make([]ScoredPatient, len(rs))
	for i, r := range rs {
		out[i] = ScoredPatient{Patient: patientFromDomain(r.Record()), Score: r.Score()}
	}
	return out
}
