package booking

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/export"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
)

// Archiver guarda um arquivo exportado e devolve a chave gravada.
type Archiver interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

type ExportMonth struct {
	repo     domain.Repository
	archiver Archiver
	audit    *audit.Dispatcher
	now      timezone.Clock
}

func NewExportMonth(
	repo domain.Repository,
	archiver Archiver,
	audit *audit.Dispatcher,
	now timezone.Clock,
) *ExportMonth {
	return &ExportMonth{repo: repo, archiver: archiver, audit: audit, now: now}
}

type ExportFile struct {
	Name string
	Body []byte
}

// CSV exporta todas as áreas do mês informado (YYYY-MM; vazio = mês atual).
func (uc *ExportMonth) CSV(ctx context.Context, monthYear string) (*ExportFile, error) {
	year, month := domain.ParseMonthYear(monthYear, uc.now())
	from, to := domain.MonthRange(year, month)

	rows, err := uc.repo.ListMonthBookings(ctx, from, to, nil)
	if err != nil {
		return nil, err
	}

	records := make([]export.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, export.Record{
			Area:        r.AreaName,
			Date:        r.Date.Format(domain.DateLayout),
			Shift:       string(r.Shift),
			Responsible: r.IsResponsible,
			Volunteer:   r.VolunteerName,
		})
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return nil, err
	}

	return &ExportFile{
		Name: fmt.Sprintf("escala-%s.csv", domain.MonthValue(year, month)),
		Body: buf.Bytes(),
	}, nil
}

// Archive gera o CSV e o envia ao arquivo configurado.
func (uc *ExportMonth) Archive(ctx context.Context, monthYear string) (string, error) {
	if uc.archiver == nil {
		return "", export.ErrArchiveDisabled
	}

	file, err := uc.CSV(ctx, monthYear)
	if err != nil {
		return "", err
	}

	key, err := uc.archiver.Put(ctx, file.Name, file.Body, "text/csv")
	if err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:  "admin",
		Action: "export_archived",
		Entity: "export",
		Metadata: map[string]any{
			"key":         key,
			"size":        len(file.Body),
			"archived_at": uc.now().Format(time.RFC3339),
		},
	})

	return key, nil
}
