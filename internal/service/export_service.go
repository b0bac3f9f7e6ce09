package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
)

// ── Export errors ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

const (
	coursesSheet = "Courses"
	classesSheet = "Classes"
	icsProductID = "-//Universal Yoga//Class Schedule//EN"
)

// ExportService renders the local schedule into files for sharing. Both
// exports are read-only snapshots of the store.
type ExportService interface {
	// ExportWorkbook writes a Courses sheet and a Classes sheet (.xlsx).
	ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar writes one iCalendar event per class.
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewExportService creates an ExportService. Class times are taken to be in
// the local time zone.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, loc: time.Local, now: time.Now}
}

// snapshot reads courses by id and classes by calendar date.
func (s *exportService) snapshot(ctx context.Context) ([]model.Course, []model.Class, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("read courses for export failed", zap.Error(err))
		return nil, nil, err
	}
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("read classes for export failed", zap.Error(err))
		return nil, nil, err
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	sortClassesByDate(classes)
	return courses, classes, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWorkbook
// ═══════════════════════════════════════════════════════════
//
// Courses: ID | Type | Day | Time | Duration (min) | Capacity | Price | Description
// Classes: ID | Course ID | Course | Day | Time | Date | Teacher | Comments

func (s *exportService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	courses, classes, err := s.snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	byID := make(map[int64]*model.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(coursesSheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.NewSheet(classesSheet)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C6E0B4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Courses ──
	writeHeader(f, coursesSheet, headerStyle,
		"ID", "Type", "Day", "Time", "Duration (min)", "Capacity", "Price", "Description")
	for i, c := range courses {
		row := i + 2
		writeRow(f, coursesSheet, row,
			c.ID, c.Type, c.DayOfWeek, c.TimeOfDay, c.Duration, c.Capacity, c.Price, textOrEmpty(c.Description))
	}
	f.SetColWidth(coursesSheet, "B", "B", 22)
	f.SetColWidth(coursesSheet, "E", "E", 16)
	f.SetColWidth(coursesSheet, "H", "H", 40)

	// ── Classes ──
	writeHeader(f, classesSheet, headerStyle,
		"ID", "Course ID", "Course", "Day", "Time", "Date", "Teacher", "Comments")
	for i, cl := range classes {
		row := i + 2
		courseType, day, clock := "", "", ""
		if c, ok := byID[cl.CourseID]; ok {
			courseType, day, clock = c.Type, c.DayOfWeek, c.TimeOfDay
		}
		writeRow(f, classesSheet, row,
			cl.ID, cl.CourseID, courseType, day, clock, cl.Date, cl.Teacher, textOrEmpty(cl.Comments))
	}
	f.SetColWidth(classesSheet, "C", "C", 22)
	f.SetColWidth(classesSheet, "F", "F", 20)
	f.SetColWidth(classesSheet, "G", "G", 20)
	f.SetColWidth(classesSheet, "H", "H", 40)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("yoga_schedule_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar
// ═══════════════════════════════════════════════════════════
//
// One VEVENT per class: start = class date at the course time, end = start
// plus the course duration. Classes whose date or course time does not
// parse are left out.

func (s *exportService) ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	courses, classes, err := s.snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	byID := make(map[int64]*model.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := s.now()
	skipped := 0
	for _, cl := range classes {
		course, ok := byID[cl.CourseID]
		if !ok {
			skipped++
			continue
		}
		start, err := s.classStart(cl.Date, course.TimeOfDay)
		if err != nil {
			skipped++
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("class-%d@universal-yoga", cl.ID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(course.Duration) * time.Minute))
		event.SetSummary(fmt.Sprintf("%s with %s", course.Type, cl.Teacher))
		event.SetDescription(classDescription(course, &cl))
	}
	if skipped > 0 {
		s.logger.Warn("classes left out of calendar export", zap.Int("count", skipped))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("yoga_schedule_%s.ics", stamp.Format("20060102"))
	return buf, filename, nil
}

// classStart combines a class date with its course's clock time.
func (s *exportService) classStart(date, timeOfDay string) (time.Time, error) {
	d, err := model.ParseClassDate(date)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := model.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc), nil
}

// ── helpers ──

func classDescription(course *model.Course, cl *model.Class) string {
	lines := []string{
		fmt.Sprintf("Teacher: %s", cl.Teacher),
		fmt.Sprintf("Duration: %d min, capacity %d, price %.2f", course.Duration, course.Capacity, course.Price),
	}
	if cl.Comments != nil {
		lines = append(lines, *cl.Comments)
	}
	if course.Description != nil {
		lines = append(lines, *course.Description)
	}
	return strings.Join(lines, "\n")
}

func writeHeader(f *excelize.File, sheet string, style int, titles ...string) {
	for i, title := range titles {
		ref := cell(colName(i), 1)
		f.SetCellValue(sheet, ref, title)
		f.SetCellStyle(sheet, ref, ref, style)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
