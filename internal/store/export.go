package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskman/internal/fileutil"
	"taskman/internal/tasks"
)

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{"id", "title", "description", "priority", "status", "due_date", "tags", "created_at", "completed_at"}

// tagSeparator joins tags inside the single CSV tags column.
const tagSeparator = ";"

// Record is the flat export form of a task.
type Record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

// NewRecord flattens a task for export.
func NewRecord(task *tasks.Task) Record {
	rec := Record{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority.String(),
		Status:      string(task.Status),
		DueDate:     tasks.FormatDueDate(task.DueDate),
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if task.CompletedAt != nil {
		rec.CompletedAt = task.CompletedAt.Format(time.RFC3339)
	}
	return rec
}

func (r Record) csvRow() []string {
	return []string{
		r.ID,
		r.Title,
		r.Description,
		r.Priority,
		r.Status,
		r.DueDate,
		strings.Join(r.Tags, tagSeparator),
		r.CreatedAt,
		r.CompletedAt,
	}
}

// ExportCSV writes every task to filename as CSV.
func (s *Store) ExportCSV(ctx context.Context, filename string) error {
	return s.Export(ctx, filename, "csv")
}

// Export writes every task to filename in the requested format: csv, json,
// or pdf. The file is replaced atomically.
func (s *Store) Export(ctx context.Context, filename, format string) error {
	var encode func(io.Writer, []Record) error
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		encode = writeCSV
	case "json":
		encode = writeJSON
	case "pdf":
		encode = writePDF
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	all, err := s.All(ctx)
	if err != nil {
		return err
	}
	records := make([]Record, 0, len(all))
	for _, task := range all {
		records = append(records, NewRecord(task))
	}

	if err := fileutil.WriteFileAtomic(filename, 0o644, func(w io.Writer) error {
		return encode(w, records)
	}); err != nil {
		return fmt.Errorf("write %s export: %w", format, err)
	}
	return nil
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.csvRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writePDF(w io.Writer, records []Record) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task export", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Task export ("+strconv.Itoa(len(records))+" tasks)")
	pdf.Ln(12)

	widths := []float64{90, 25, 28, 28, 106}
	headers := []string{"Title", "Priority", "Status", "Due", "Tags"}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, rec := range records {
		cells := []string{rec.Title, rec.Priority, rec.Status, rec.DueDate, strings.Join(rec.Tags, ", ")}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, fitCell(pdf, tr(cell), widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// fitCell shortens text with an ellipsis until it fits width, leaving room
// for cell padding. text is already translated to the single-byte core font
// encoding, so byte slicing is safe.
func fitCell(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > limit {
		text = text[:len(text)-1]
	}
	return text + "..."
}
