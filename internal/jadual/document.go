// Package jadual assembles and renders the printable monthly timetable.
package jadual

import (
	"context"
	"fmt"
	"time"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/model"
)

const (
	Title    = "Jadual Waktu Solat"
	Branding = "Waktu Solat Malaysia"

	dateLayout = "02-01-2006"
	timeLayout = "15:04"
)

// Columns is the table header, date first then the six daily times.
var Columns = []string{"Tarikh", "Subuh", "Syuruk", "Zohor", "Asar", "Maghrib", "Isyak"}

// Row is one day of the table.
type Row struct {
	Date  string
	Times [6]string
}

// Document is the render-ready content of a timetable.
type Document struct {
	Title     string
	Branding  string
	ZoneCode  string
	ZoneLabel string
	Heading   string
	Columns   []string
	Rows      []Row
	Period    model.NormalizedPeriod
}

// Filename is the suggested download name, e.g. "jadual_SGR01_2026_01.pdf".
func (d Document) Filename() string {
	return fmt.Sprintf("jadual_%s_%04d_%02d.pdf", d.ZoneCode, d.Period.Year, int(d.Period.Month))
}

// ScheduleResolver is the month lookup the assembler builds on.
type ScheduleResolver interface {
	Resolve(ctx context.Context, zone string, requested *model.RequestedPeriod) (model.MonthSchedule, error)
}

type Assembler struct {
	schedules ScheduleResolver
	zones     *gazetteer.Gazetteer
}

func NewAssembler(schedules ScheduleResolver, zones *gazetteer.Gazetteer) *Assembler {
	return &Assembler{schedules: schedules, zones: zones}
}

// Assemble resolves the month and lays it out. Resolver errors are returned as is.
func (a *Assembler) Assemble(ctx context.Context, zone string, requested *model.RequestedPeriod) (Document, error) {
	month, err := a.schedules.Resolve(ctx, zone, requested)
	if err != nil {
		return Document{}, err
	}
	return Build(month, a.label(zone)), nil
}

func (a *Assembler) label(zone string) string {
	if a.zones != nil {
		if z, ok := a.zones.Get(zone); ok {
			return z.Daerah()
		}
	}
	return zone
}

// Build lays out a resolved month.
func Build(month model.MonthSchedule, label string) Document {
	rows := make([]Row, len(month.Records))
	for i, rec := range month.Records {
		var times [6]string
		for j, t := range rec.Times() {
			times[j] = t.In(calendar.Location).Format(timeLayout)
		}
		rows[i] = Row{
			Date:  rec.Date.In(calendar.Location).Format(dateLayout),
			Times: times,
		}
	}

	return Document{
		Title:     Title,
		Branding:  Branding,
		ZoneCode:  month.Zone,
		ZoneLabel: label,
		Heading:   fmt.Sprintf("%s %d", calendar.MalayMonth(month.Period.Month), month.Period.Year),
		Columns:   append([]string(nil), Columns...),
		Rows:      rows,
		Period:    month.Period,
	}
}

// generatedAt pins the PDF metadata dates so identical input renders identical bytes.
func generatedAt(p model.NormalizedPeriod) time.Time {
	return p.Start(calendar.Location)
}
