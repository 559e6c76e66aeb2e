package seed

// Stage etapa de una corrida de siembra del almacén documental.
type Stage string

const (
	StageNotStarted        Stage = "NotStarted"
	StageDatabaseEnsured   Stage = "DatabaseEnsured"
	StageCollectionEnsured Stage = "CollectionEnsured"
	StagePopulated         Stage = "Populated"
	StageAlreadyPopulated  Stage = "AlreadyPopulated"
	StageDone              Stage = "Done"
	StageFailed            Stage = "Failed"
)

// RunReport resultado de la última corrida. History conserva las etapas en orden.
type RunReport struct {
	Stage             Stage
	History           []Stage
	DatabaseCreated   bool
	CollectionCreated bool
	Inserted          int
	Existing          int
	Err               error
}

// Terminal indica si la corrida terminó (con éxito o no).
func (r RunReport) Terminal() bool {
	return r.Stage == StageDone || r.Stage == StageFailed
}

func (r *RunReport) advance(s Stage) {
	r.Stage = s
	r.History = append(r.History, s)
}
