package model

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
)

// AttendanceRow is the typed, export-ready form of one cleaned attendance
// record. It doubles as the Parquet schema and the COPY row for Postgres.
type AttendanceRow struct {
	RunID     uuid.UUID `parquet:"run_id"`
	RowNumber int64     `parquet:"row_number"`

	AttendedAt *time.Time `parquet:"attended_at,optional"`
	BirthDate  *time.Time `parquet:"birth_date,optional"`
	AdmittedAt *time.Time `parquet:"admitted_at,optional"`

	Municipality *string `parquet:"municipality,optional"`
	FacilityType *string `parquet:"facility_type,optional"`
	CIDCode      string  `parquet:"cid_code"`

	// 0/1 flags
	Referred      *int64 `parquet:"referred,optional"`
	ExamRequested *int64 `parquet:"exam_requested,optional"`
	Hospitalized  *int64 `parquet:"hospitalized,optional"`

	// Derived
	Age        *int64  `parquet:"age,optional"`
	AgeBracket *string `parquet:"age_bracket,optional"`
	Weekday    *string `parquet:"weekday,optional"`
	Shift      *string `parquet:"shift,optional"`
	Weekend    bool    `parquet:"weekend"`
}

// AttendanceColumns returns the Postgres column names in COPY order.
func AttendanceColumns() []string {
	return []string{
		"run_id",
		"row_number",
		"attended_at",
		"birth_date",
		"admitted_at",
		"municipality",
		"facility_type",
		"cid_code",
		"referred",
		"exam_requested",
		"hospitalized",
		"age",
		"age_bracket",
		"weekday",
		"shift",
		"weekend",
	}
}

// CopyValues returns the row's values in AttendanceColumns order.
func (r *AttendanceRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.RowNumber,
		r.AttendedAt,
		r.BirthDate,
		r.AdmittedAt,
		r.Municipality,
		r.FacilityType,
		r.CIDCode,
		r.Referred,
		r.ExamRequested,
		r.Hospitalized,
		r.Age,
		r.AgeBracket,
		r.Weekday,
		r.Shift,
		r.Weekend,
	}
}

// RowsFromFrame converts a cleaned frame into typed rows tagged with runID.
// Columns absent from the frame leave the corresponding fields nil.
func RowsFromFrame(df dataframe.DataFrame, runID uuid.UUID) []AttendanceRow {
	n := df.Nrow()
	attended := TimeValues(df, ColAttendedAt)
	birth := TimeValues(df, ColBirthDate)
	admitted := TimeValues(df, ColAdmittedAt)
	municipality := StringValues(df, ColMunicipality)
	facility := StringValues(df, ColFacilityType)
	cid := StringValues(df, ColCIDCode)
	referred := IntValues(df, ColReferred)
	exams := IntValues(df, ColExamRequested)
	hospitalized := IntValues(df, ColHospitalized)
	age := IntValues(df, ColAge)
	bracket := StringValues(df, ColAgeBracket)
	weekday := StringValues(df, ColWeekday)
	shift := StringValues(df, ColShift)
	weekend := BoolValues(df, ColWeekend)

	rows := make([]AttendanceRow, n)
	for i := 0; i < n; i++ {
		rows[i] = AttendanceRow{
			RunID:         runID,
			RowNumber:     int64(i + 1),
			AttendedAt:    attended[i].Ptr(),
			BirthDate:     birth[i].Ptr(),
			AdmittedAt:    admitted[i].Ptr(),
			Municipality:  municipality[i].Ptr(),
			FacilityType:  facility[i].Ptr(),
			CIDCode:       cid[i].String,
			Referred:      referred[i].Ptr(),
			ExamRequested: exams[i].Ptr(),
			Hospitalized:  hospitalized[i].Ptr(),
			Age:           age[i].Ptr(),
			AgeBracket:    bracket[i].Ptr(),
			Weekday:       weekday[i].Ptr(),
			Shift:         shift[i].Ptr(),
			Weekend:       weekend[i].Bool,
		}
	}
	return rows
}
