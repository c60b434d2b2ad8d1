package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheetSymptoms    = "Symptoms"
	ExportSheetMedications = "Medications"
	ExportSheetContacts    = "Emergency Contacts"
	ExportSheetProfile     = "Profile"
)

var (
	exportSymptomHeaders    = []string{"Logged At", "Name", "Severity", "Notes"}
	exportMedicationHeaders = []string{"Name", "Dosage", "Frequency", "Time Of Day", "Start Date", "End Date", "Taken", "Notes"}
	exportContactHeaders    = []string{"Name", "Phone", "Relationship", "Primary"}
	exportProfileHeaders    = []string{"Field", "Value"}
)

type exportSheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// BuildWorkbook renders the payload as an XLSX document with one sheet per
// collection.
func BuildWorkbook(payload ExportPayload) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []exportSheet{
		{name: ExportSheetProfile, headers: exportProfileHeaders, widths: []float64{22, 40}, rows: profileRows(payload)},
		{name: ExportSheetSymptoms, headers: exportSymptomHeaders, widths: []float64{22, 24, 10, 50}, rows: symptomRows(payload)},
		{name: ExportSheetMedications, headers: exportMedicationHeaders, widths: []float64{24, 14, 16, 14, 12, 12, 8, 40}, rows: medicationRows(payload)},
		{name: ExportSheetContacts, headers: exportContactHeaders, widths: []float64{24, 20, 18, 10}, rows: contactRows(payload)},
	}

	for index, sheet := range sheets {
		if index == 0 {
			if err := file.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("rename default sheet: %w", err)
			}
		} else if _, err := file.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := writeExportSheet(file, sheet, headerStyle); err != nil {
			return nil, err
		}
	}

	var buffer bytes.Buffer
	if _, err := file.WriteTo(&buffer); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func writeExportSheet(file *excelize.File, sheet exportSheet, headerStyle int) error {
	for col, header := range sheet.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := file.SetCellValue(sheet.name, cell, header); err != nil {
			return fmt.Errorf("set header %s!%s: %w", sheet.name, cell, err)
		}
		if err := file.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s!%s: %w", sheet.name, cell, err)
		}
	}

	for col, width := range sheet.widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := file.SetColWidth(sheet.name, name, name, width); err != nil {
			return fmt.Errorf("set width %s!%s: %w", sheet.name, name, err)
		}
	}

	for rowIndex, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := file.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("set row %s!%s: %w", sheet.name, cell, err)
		}
	}

	return file.SetPanes(sheet.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func profileRows(payload ExportPayload) [][]any {
	rows := [][]any{
		{"Exported At", payload.ExportedAt.Format(time.RFC3339)},
		{"Wellness Score", payload.Wellness.Value},
		{"Wellness Status", payload.Wellness.Status.Label},
		{"Profile Completion", payload.Wellness.ProfileCompletion},
	}
	profile := payload.Profile
	if profile == nil {
		return rows
	}
	return append(rows,
		[]any{"Full Name", profile.FullName},
		[]any{"Age", profile.Age},
		[]any{"Blood Group", profile.BloodGroup},
		[]any{"Gender", profile.Gender},
		[]any{"Height", profile.Height},
		[]any{"Weight", profile.Weight},
		[]any{"Medical Conditions", strings.Join(profile.MedicalConditions, "; ")},
		[]any{"Allergies", strings.Join(profile.Allergies, "; ")},
	)
}

func symptomRows(payload ExportPayload) [][]any {
	rows := make([][]any, 0, len(payload.Symptoms))
	for _, symptom := range payload.Symptoms {
		rows = append(rows, []any{
			symptom.Timestamp.UTC().Format(time.RFC3339),
			symptom.Name,
			symptom.Severity,
			symptom.Notes,
		})
	}
	return rows
}

func medicationRows(payload ExportPayload) [][]any {
	rows := make([][]any, 0, len(payload.Medications))
	for _, medication := range payload.Medications {
		rows = append(rows, []any{
			medication.Name,
			medication.Dosage,
			medication.Frequency,
			medication.TimeOfDay,
			exportOptionalDate(medication.StartDate),
			exportOptionalDate(medication.EndDate),
			exportYesNo(medication.IsTaken),
			medication.Notes,
		})
	}
	return rows
}

func contactRows(payload ExportPayload) [][]any {
	rows := make([][]any, 0, len(payload.EmergencyContacts))
	for _, contact := range payload.EmergencyContacts {
		rows = append(rows, []any{
			contact.Name,
			contact.Phone,
			contact.Relationship,
			exportYesNo(contact.IsPrimary),
		})
	}
	return rows
}
