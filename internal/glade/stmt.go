package glade

type StatementKind int

const (
	Insert StatementKind = iota + 1
	Select
)

func (k StatementKind) String() string {
	switch k {
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

type Statement struct {
	Kind     StatementKind
	Row      Row      // used for INSERT
	RowIndex RowIndex // used for SELECT
}

type StatementResult struct {
	Kind         StatementKind
	RowIndex     RowIndex // index assigned by INSERT or read by SELECT
	Rows         []Row
	RowsAffected int
}
