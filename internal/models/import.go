package models

type ImportStatus int

const (
	ImportSucceeded ImportStatus = iota
	ImportFailed
)

// ImportOutcome is the settled result of one story creation.
type ImportOutcome struct {
	Issue  Issue
	Status ImportStatus
	Story  *Story
	Err    error
}

// ImportReport aggregates the outcomes of one import batch. ProjectFound is
// false when the destination project could not be resolved, in which case
// no story creation was attempted.
type ImportReport struct {
	ProjectFound bool
	Outcomes     []ImportOutcome
}

func (r ImportReport) Imported() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == ImportSucceeded {
			n++
		}
	}
	return n
}

func (r ImportReport) Failed() []ImportOutcome {
	var failed []ImportOutcome
	for _, o := range r.Outcomes {
		if o.Status == ImportFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
