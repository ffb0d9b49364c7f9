// internal/models/form.go
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the textual form every date field is stored in.
const DateLayout = "2006-01-02"

type OccupancyType string

const (
	OccupancyNone                OccupancyType = ""
	OccupancySimple              OccupancyType = "simple"
	OccupancyNew                 OccupancyType = "new"
	OccupancyRenewal             OccupancyType = "renewal"
	OccupancyComplex             OccupancyType = "complex"
	OccupancyAmendatory          OccupancyType = "amendatory"
	OccupancyLocationalClearance OccupancyType = "locational_clearance"
	OccupancyFireSafety          OccupancyType = "fire_safety"
)

type OccupancyOption struct {
	Value OccupancyType `json:"value"`
	Label string        `json:"label"`
}

// OccupancyOptions is ordered the way the form and the printout list them.
var OccupancyOptions = []OccupancyOption{
	{Value: OccupancySimple, Label: "Simple"},
	{Value: OccupancyNew, Label: "New"},
	{Value: OccupancyRenewal, Label: "Renewal"},
	{Value: OccupancyComplex, Label: "Complex*"},
	{Value: OccupancyAmendatory, Label: "Amendatory"},
	{Value: OccupancyLocationalClearance, Label: "Locational Clearance"},
	{Value: OccupancyFireSafety, Label: "Fire Safety Evaluation Clearance"},
}

func (o OccupancyType) Valid() bool {
	for _, option := range OccupancyOptions {
		if option.Value == o {
			return true
		}
	}
	return false
}

// FormRecord is the unified building permit application form. Writes are not
// validated: any string is accepted in any text field, including the cost and
// count fields.
type FormRecord struct {
	// Owner / applicant
	OwnerLastName                    string `json:"ownerLastName"`
	OwnerFirstName                   string `json:"ownerFirstName"`
	OwnerMI                          string `json:"ownerMI"`
	OwnerTin                         string `json:"ownerTin"`
	ForConstructionOwnedByEnterprise bool   `json:"forConstructionOwnedByEnterprise"`
	FormOfOwnership                  string `json:"formOfOwnership"`

	// Owner address
	OwnerAddress          string `json:"ownerAddress"`
	OwnerProvince         string `json:"ownerProvince"`
	OwnerHouseNo          string `json:"ownerHouseNo"`
	OwnerStreet           string `json:"ownerStreet"`
	OwnerCityMunicipality string `json:"ownerCityMunicipality"`
	OwnerBarangay         string `json:"ownerBarangay"`
	OwnerContact          string `json:"ownerContact"`
	OwnerContactPH        string `json:"ownerContactPH"`

	TypeOfOccupancy OccupancyType `json:"typeOfOccupancy"`

	// Location of construction
	LocationLotNo            string `json:"locationLotNo"`
	LocationBlkNo            string `json:"locationBlkNo"`
	LocationTCTNo            string `json:"locationTCTNo"`
	LocationTaxDecNo         string `json:"locationTaxDecNo"`
	LocationStreet           string `json:"locationStreet"`
	LocationBrgy             string `json:"locationBrgy"`
	LocationCityMunicipality string `json:"locationCityMunicipality"`

	ScopeOfWorkType    string `json:"scopeOfWorkType"`
	ScopeOfWorkDetails string `json:"scopeOfWorkDetails"`

	UseOfOccupancyGroup  string `json:"useOfOccupancyGroup"`
	UseOfOccupancyType   string `json:"useOfOccupancyType"`
	UseOfOccupancyOthers string `json:"useOfOccupancyOthers"`

	// Classification and cost breakdown
	OccupancyClassified    string `json:"occupancyClassified"`
	NumberUnits            string `json:"numberUnits"`
	NumberStorey           string `json:"numberStorey"`
	TotalFloorArea         string `json:"totalFloorArea"`
	LotArea                string `json:"lotArea"`
	TotalEstimatedCost     string `json:"totalEstimatedCost"`
	CostBuilding           string `json:"costBuilding"`
	CostElectrical         string `json:"costElectrical"`
	CostMechanical         string `json:"costMechanical"`
	CostElectronics        string `json:"costElectronics"`
	CostPlumbing           string `json:"costPlumbing"`
	CostEquipmentInstalled string `json:"costEquipmentInstalled"`

	ProposedDateCompletion string `json:"proposedDateCompletion"`
	ExpectedDateCompletion string `json:"expectedDateCompletion"`

	// Full-time inspector and supervisor
	ArchitectEngineerName       string `json:"architectEngineerName"`
	ArchitectEngineerAddress    string `json:"architectEngineerAddress"`
	ArchitectEngineerPRCNo      string `json:"architectEngineerPRCNo"`
	ArchitectEngineerValidity   string `json:"architectEngineerValidity"`
	ArchitectEngineerPTRNo      string `json:"architectEngineerPTRNo"`
	ArchitectEngineerDateIssued string `json:"architectEngineerDateIssued"`
	ArchitectEngineerIssuedAt   string `json:"architectEngineerIssuedAt"`
	ArchitectEngineerTin        string `json:"architectEngineerTin"`

	// Applicant
	ApplicantName          string `json:"applicantName"`
	ApplicantAddress       string `json:"applicantAddress"`
	ApplicantGovtIDNo      string `json:"applicantGovtIdNo"`
	ApplicantIDDateIssued  string `json:"applicantIdDateIssued"`
	ApplicantIDPlaceIssued string `json:"applicantIdPlaceIssued"`

	// ApplicantDateIssued is the applicant signature date on the printout. No
	// field update writes it; the applicant date control writes
	// ApplicantIDDateIssued instead, so the printout shows it empty.
	ApplicantDateIssued string `json:"applicantDateIssued"`

	// Lot owner / authorized representative
	LotOwnerName          string `json:"lotOwnerName"`
	LotOwnerDate          string `json:"lotOwnerDate"`
	LotOwnerAddress       string `json:"lotOwnerAddress"`
	LotOwnerGovtIDNo      string `json:"lotOwnerGovtIdNo"`
	LotOwnerIDDateIssued  string `json:"lotOwnerIdDateIssued"`
	LotOwnerIDPlaceIssued string `json:"lotOwnerIdPlaceIssued"`
}

// NewFormRecord returns an empty form with today's date in the dates that are
// pre-filled when the form is opened.
func NewFormRecord(today time.Time) FormRecord {
	date := FormatDate(today)
	return FormRecord{
		ProposedDateCompletion:      date,
		ArchitectEngineerDateIssued: date,
		ApplicantIDDateIssued:       date,
		LotOwnerDate:                date,
		LotOwnerIDDateIssued:        date,
	}
}

// ToggleOccupancy selects value, or clears the selection when value is already selected.
func (f *FormRecord) ToggleOccupancy(value OccupancyType) error {
	if !value.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOccupancy, value)
	}

	if f.TypeOfOccupancy == value {
		f.TypeOfOccupancy = OccupancyNone
	} else {
		f.TypeOfOccupancy = value
	}
	return nil
}

type FieldName string

type FieldKind string

const (
	FieldKindText FieldKind = "text"
	FieldKindFlag FieldKind = "flag"
	FieldKindDate FieldKind = "date"
)

// FieldUpdate carries exactly one of Text or Flag. Text is used for text and date
// fields, Flag for the enterprise checkbox.
type FieldUpdate struct {
	Field FieldName `json:"field" validate:"required"`
	Text  *string   `json:"text,omitempty"`
	Flag  *bool     `json:"flag,omitempty"`
}

type fieldSlot struct {
	kind FieldKind
	text func(*FormRecord) *string
	flag func(*FormRecord) *bool
}

func textField(get func(*FormRecord) *string) fieldSlot {
	return fieldSlot{kind: FieldKindText, text: get}
}

func dateField(get func(*FormRecord) *string) fieldSlot {
	return fieldSlot{kind: FieldKindDate, text: get}
}

var formFields = map[FieldName]fieldSlot{
	"ownerLastName":  textField(func(f *FormRecord) *string { return &f.OwnerLastName }),
	"ownerFirstName": textField(func(f *FormRecord) *string { return &f.OwnerFirstName }),
	"ownerMI":        textField(func(f *FormRecord) *string { return &f.OwnerMI }),
	"ownerTin":       textField(func(f *FormRecord) *string { return &f.OwnerTin }),
	"forConstructionOwnedByEnterprise": {
		kind: FieldKindFlag,
		flag: func(f *FormRecord) *bool { return &f.ForConstructionOwnedByEnterprise },
	},
	"formOfOwnership":          textField(func(f *FormRecord) *string { return &f.FormOfOwnership }),
	"ownerAddress":             textField(func(f *FormRecord) *string { return &f.OwnerAddress }),
	"ownerProvince":            textField(func(f *FormRecord) *string { return &f.OwnerProvince }),
	"ownerHouseNo":             textField(func(f *FormRecord) *string { return &f.OwnerHouseNo }),
	"ownerStreet":              textField(func(f *FormRecord) *string { return &f.OwnerStreet }),
	"ownerCityMunicipality":    textField(func(f *FormRecord) *string { return &f.OwnerCityMunicipality }),
	"ownerBarangay":            textField(func(f *FormRecord) *string { return &f.OwnerBarangay }),
	"ownerContact":             textField(func(f *FormRecord) *string { return &f.OwnerContact }),
	"ownerContactPH":           textField(func(f *FormRecord) *string { return &f.OwnerContactPH }),
	"locationLotNo":            textField(func(f *FormRecord) *string { return &f.LocationLotNo }),
	"locationBlkNo":            textField(func(f *FormRecord) *string { return &f.LocationBlkNo }),
	"locationTCTNo":            textField(func(f *FormRecord) *string { return &f.LocationTCTNo }),
	"locationTaxDecNo":         textField(func(f *FormRecord) *string { return &f.LocationTaxDecNo }),
	"locationStreet":           textField(func(f *FormRecord) *string { return &f.LocationStreet }),
	"locationBrgy":             textField(func(f *FormRecord) *string { return &f.LocationBrgy }),
	"locationCityMunicipality": textField(func(f *FormRecord) *string { return &f.LocationCityMunicipality }),
	"scopeOfWorkType":          textField(func(f *FormRecord) *string { return &f.ScopeOfWorkType }),
	"scopeOfWorkDetails":       textField(func(f *FormRecord) *string { return &f.ScopeOfWorkDetails }),
	"useOfOccupancyGroup":      textField(func(f *FormRecord) *string { return &f.UseOfOccupancyGroup }),
	"useOfOccupancyType":       textField(func(f *FormRecord) *string { return &f.UseOfOccupancyType }),
	"useOfOccupancyOthers":     textField(func(f *FormRecord) *string { return &f.UseOfOccupancyOthers }),
	"occupancyClassified":      textField(func(f *FormRecord) *string { return &f.OccupancyClassified }),
	"numberUnits":              textField(func(f *FormRecord) *string { return &f.NumberUnits }),
	"numberStorey":             textField(func(f *FormRecord) *string { return &f.NumberStorey }),
	"totalFloorArea":           textField(func(f *FormRecord) *string { return &f.TotalFloorArea }),
	"lotArea":                  textField(func(f *FormRecord) *string { return &f.LotArea }),
	"totalEstimatedCost":       textField(func(f *FormRecord) *string { return &f.TotalEstimatedCost }),
	"costBuilding":             textField(func(f *FormRecord) *string { return &f.CostBuilding }),
	"costElectrical":           textField(func(f *FormRecord) *string { return &f.CostElectrical }),
	"costMechanical":           textField(func(f *FormRecord) *string { return &f.CostMechanical }),
	"costElectronics":          textField(func(f *FormRecord) *string { return &f.CostElectronics }),
	"costPlumbing":             textField(func(f *FormRecord) *string { return &f.CostPlumbing }),
	"costEquipmentInstalled":   textField(func(f *FormRecord) *string { return &f.CostEquipmentInstalled }),
	"proposedDateCompletion":   dateField(func(f *FormRecord) *string { return &f.ProposedDateCompletion }),
	"expectedDateCompletion":   dateField(func(f *FormRecord) *string { return &f.ExpectedDateCompletion }),
	"architectEngineerName":    textField(func(f *FormRecord) *string { return &f.ArchitectEngineerName }),
	"architectEngineerAddress": textField(func(f *FormRecord) *string { return &f.ArchitectEngineerAddress }),
	"architectEngineerPRCNo":   textField(func(f *FormRecord) *string { return &f.ArchitectEngineerPRCNo }),
	"architectEngineerValidity": textField(func(f *FormRecord) *string {
		return &f.ArchitectEngineerValidity
	}),
	"architectEngineerPTRNo": textField(func(f *FormRecord) *string { return &f.ArchitectEngineerPTRNo }),
	"architectEngineerDateIssued": dateField(func(f *FormRecord) *string {
		return &f.ArchitectEngineerDateIssued
	}),
	"architectEngineerIssuedAt": textField(func(f *FormRecord) *string {
		return &f.ArchitectEngineerIssuedAt
	}),
	"architectEngineerTin":   textField(func(f *FormRecord) *string { return &f.ArchitectEngineerTin }),
	"applicantName":          textField(func(f *FormRecord) *string { return &f.ApplicantName }),
	"applicantAddress":       textField(func(f *FormRecord) *string { return &f.ApplicantAddress }),
	"applicantGovtIdNo":      textField(func(f *FormRecord) *string { return &f.ApplicantGovtIDNo }),
	"applicantIdDateIssued":  dateField(func(f *FormRecord) *string { return &f.ApplicantIDDateIssued }),
	"applicantIdPlaceIssued": textField(func(f *FormRecord) *string { return &f.ApplicantIDPlaceIssued }),
	"lotOwnerName":           textField(func(f *FormRecord) *string { return &f.LotOwnerName }),
	"lotOwnerDate":           dateField(func(f *FormRecord) *string { return &f.LotOwnerDate }),
	"lotOwnerAddress":        textField(func(f *FormRecord) *string { return &f.LotOwnerAddress }),
	"lotOwnerGovtIdNo":       textField(func(f *FormRecord) *string { return &f.LotOwnerGovtIDNo }),
	"lotOwnerIdDateIssued":   dateField(func(f *FormRecord) *string { return &f.LotOwnerIDDateIssued }),
	"lotOwnerIdPlaceIssued":  textField(func(f *FormRecord) *string { return &f.LotOwnerIDPlaceIssued }),
}

// LookupField reports the kind of a writable field.
func LookupField(name FieldName) (FieldKind, bool) {
	slot, ok := formFields[name]
	if !ok {
		return "", false
	}
	return slot.kind, true
}

// DateFields lists the fields that carry a date picker, sorted by name.
func DateFields() []FieldName {
	var names []FieldName
	for name, slot := range formFields {
		if slot.kind == FieldKindDate {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Apply writes one update. Text is stored as given, without trimming or format checks.
func (f *FormRecord) Apply(update FieldUpdate) error {
	slot, ok := formFields[update.Field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, update.Field)
	}

	switch slot.kind {
	case FieldKindFlag:
		if update.Flag == nil || update.Text != nil {
			return fmt.Errorf("%w: %s expects a flag", ErrFieldValueMismatch, update.Field)
		}
		*slot.flag(f) = *update.Flag
	default:
		if update.Text == nil || update.Flag != nil {
			return fmt.Errorf("%w: %s expects text", ErrFieldValueMismatch, update.Field)
		}
		*slot.text(f) = *update.Text
	}
	return nil
}

// SetDate stores a picked date as YYYY-MM-DD. A nil date means the picker
// returned without a selection and today is used; an unparseable date is stored
// as an empty string.
func (f *FormRecord) SetDate(name FieldName, date *string, today time.Time) error {
	slot, ok := formFields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if slot.kind != FieldKindDate {
		return fmt.Errorf("%w: %s is not a date field", ErrFieldValueMismatch, name)
	}

	if date == nil {
		*slot.text(f) = FormatDate(today)
		return nil
	}
	*slot.text(f) = NormalizeDate(*date)
	return nil
}

// FormatDate renders t in UTC as YYYY-MM-DD; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

var dateInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// NormalizeDate parses raw in any accepted layout and formats it with FormatDate.
// Anything that does not parse yields "".
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return FormatDate(t)
		}
	}
	return ""
}
