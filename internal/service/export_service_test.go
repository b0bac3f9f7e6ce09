package service

import (
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
)

func setupTestExportService() (*exportService, *mockStore) {
	store := newMockStore()
	svc := NewExportService(store.repo, testLogger).(*exportService)
	svc.now = fixedNow
	svc.loc = time.UTC
	return svc, store
}

func TestExportService_ExportWorkbook(t *testing.T) {
	svc, store := setupTestExportService()
	c := store.addCourse("Monday", "9:00 AM")
	store.addClass(c.ID, "December 2, 2024", "Mia")
	store.addClass(c.ID, "November 4, 2024", "Sarah")

	buf, filename, err := svc.ExportWorkbook(context.Background())
	if err != nil {
		t.Fatalf("ExportWorkbook: %v", err)
	}
	if filename != "yoga_schedule_20241101.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	courseRows, err := f.GetRows(coursesSheet)
	if err != nil {
		t.Fatalf("read %s: %v", coursesSheet, err)
	}
	if len(courseRows) != 2 || courseRows[1][1] != "Flow Yoga" || courseRows[1][2] != "Monday" {
		t.Errorf("unexpected course rows: %v", courseRows)
	}

	classRows, err := f.GetRows(classesSheet)
	if err != nil {
		t.Fatalf("read %s: %v", classesSheet, err)
	}
	if len(classRows) != 3 {
		t.Fatalf("expected header plus 2 classes, got %v", classRows)
	}
	if classRows[1][5] != "November 4, 2024" || classRows[2][5] != "December 2, 2024" {
		t.Errorf("classes not in date order: %v", classRows)
	}
	if classRows[1][2] != "Flow Yoga" {
		t.Errorf("class row missing course type: %v", classRows[1])
	}
}

func TestExportService_ExportWorkbook_EmptyStore(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportWorkbook(context.Background())
	if err != nil {
		t.Fatalf("an empty schedule still exports: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(coursesSheet)
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %v", rows)
	}
}

func TestExportService_ExportCalendar(t *testing.T) {
	svc, store := setupTestExportService()
	c := store.addCourse("Monday", "6:30 PM")
	store.addClass(c.ID, "November 4, 2024", "Sarah")
	store.addClass(c.ID, "not a date", "Ghost")

	buf, filename, err := svc.ExportCalendar(context.Background())
	if err != nil {
		t.Fatalf("ExportCalendar: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("unexpected filename %q", filename)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("parse calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event (unparseable date skipped), got %d", len(events))
	}

	ev := events[0]
	if got := ev.GetProperty(ics.ComponentPropertySummary).Value; got != "Flow Yoga with Sarah" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := ev.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20241104T183000Z" {
		t.Errorf("unexpected start %q", got)
	}
	if got := ev.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20241104T193000Z" {
		t.Errorf("unexpected end %q", got)
	}
}
