package export

import (
	"encoding/csv"
	"errors"
	"io"
)

var ErrArchiveDisabled = errors.New("export archive not configured")

var header = []string{"area", "data", "turno", "tipo", "voluntario"}

// Record é uma linha da planilha mensal.
type Record struct {
	Area        string
	Date        string
	Shift       string
	Responsible bool
	Volunteer   string
}

func (r Record) kind() string {
	if r.Responsible {
		return "responsavel"
	}
	return "equipe"
}

func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Area, r.Date, r.Shift, r.kind(), r.Volunteer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
