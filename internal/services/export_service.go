package services

import (
	"sort"
	"strconv"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
)

var EnergyCSVHeaders = []string{
	"Date",
	"Time",
	"Cycle day",
	"Phase",
	"Energy",
	"Focus level",
	"Mood",
	"Focus",
	"Notes",
}

type ExportSummary struct {
	EnergyEntries  int    `json:"energy_entries"`
	SymptomEntries int    `json:"symptom_entries"`
	PeriodEntries  int    `json:"period_entries"`
	HasData        bool   `json:"has_data"`
	DateFrom       string `json:"date_from"`
	DateTo         string `json:"date_to"`
}

// ExportBundle is the full JSON export, oldest entries first.
type ExportBundle struct {
	ExportedAt string              `json:"exported_at"`
	Profile    ExportProfile       `json:"profile"`
	Energy     []models.EnergyLog  `json:"energy"`
	Symptoms   []models.SymptomLog `json:"symptoms"`
	Periods    []models.PeriodLog  `json:"periods"`
}

type ExportProfile struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start,omitempty"`
	Chronotype      string `json:"chronotype,omitempty"`
}

type ExportService struct {
	energy   EnergyLogRepository
	symptoms SymptomLogRepository
	periods  PeriodLogRepository
	location *time.Location
}

func NewExportService(energy EnergyLogRepository, symptoms SymptomLogRepository, periods PeriodLogRepository, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{energy: energy, symptoms: symptoms, periods: periods, location: location}
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	energy, symptoms, periods, err := service.loadRange(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}

	days := make([]time.Time, 0, len(energy)+len(symptoms)+len(periods))
	for _, entry := range energy {
		days = append(days, DateAtLocation(entry.LoggedAt, service.location))
	}
	for _, entry := range symptoms {
		days = append(days, civilDate(entry.Date, service.location))
	}
	for _, entry := range periods {
		days = append(days, civilDate(entry.StartDate, service.location))
	}

	summary := ExportSummary{
		EnergyEntries:  len(energy),
		SymptomEntries: len(symptoms),
		PeriodEntries:  len(periods),
		HasData:        len(days) > 0,
	}
	if len(days) > 0 {
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		summary.DateFrom = days[0].Format(dayLayout)
		summary.DateTo = days[len(days)-1].Format(dayLayout)
	}
	return summary, nil
}

func (service *ExportService) BuildBundle(user models.User, from *time.Time, to *time.Time, now time.Time) (ExportBundle, error) {
	energy, symptoms, periods, err := service.loadRange(user.ID, from, to)
	if err != nil {
		return ExportBundle{}, err
	}

	profile := ExportProfile{
		CycleLength:  user.CycleLength,
		PeriodLength: user.PeriodLength,
		Chronotype:   user.Chronotype,
	}
	if user.LastPeriodStart != nil {
		profile.LastPeriodStart = civilDate(*user.LastPeriodStart, service.location).Format(dayLayout)
	}

	return ExportBundle{
		ExportedAt: now.In(service.location).Format(time.RFC3339),
		Profile:    profile,
		Energy:     energy,
		Symptoms:   symptoms,
		Periods:    periods,
	}, nil
}

// BuildEnergyCSVRows returns one row per energy log matching EnergyCSVHeaders.
func (service *ExportService) BuildEnergyCSVRows(userID uint, from *time.Time, to *time.Time) ([][]string, error) {
	energy, _, _, err := service.loadRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(energy))
	for _, entry := range energy {
		loggedAt := entry.LoggedAt.In(service.location)
		rows = append(rows, []string{
			loggedAt.Format(dayLayout),
			loggedAt.Format("15:04"),
			csvInt(entry.CycleDay),
			csvString(entry.CyclePhase),
			strconv.Itoa(entry.EnergyLevel),
			csvInt(entry.FocusLevel),
			csvString(entry.Mood),
			csvString(entry.Focus),
			entry.Notes,
		})
	}
	return rows, nil
}

// ExportFilename names a download after the local export day.
func ExportFilename(now time.Time, location *time.Location, extension string) string {
	return "flowstate-export-" + DateAtLocation(now, location).Format(dayLayout) + "." + extension
}

func (service *ExportService) loadRange(userID uint, from *time.Time, to *time.Time) ([]models.EnergyLog, []models.SymptomLog, []models.PeriodLog, error) {
	allEnergy, err := service.energy.ListByUser(userID, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	allSymptoms, err := service.symptoms.ListByUser(userID, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	allPeriods, err := service.periods.ListByUser(userID, 0)
	if err != nil {
		return nil, nil, nil, err
	}

	energy := make([]models.EnergyLog, 0, len(allEnergy))
	for _, entry := range allEnergy {
		if dayInRange(DateAtLocation(entry.LoggedAt, service.location), from, to) {
			energy = append(energy, entry)
		}
	}
	sort.SliceStable(energy, func(i, j int) bool { return energy[i].LoggedAt.Before(energy[j].LoggedAt) })

	symptoms := make([]models.SymptomLog, 0, len(allSymptoms))
	for _, entry := range allSymptoms {
		if dayInRange(civilDate(entry.Date, service.location), from, to) {
			symptoms = append(symptoms, entry)
		}
	}
	sort.SliceStable(symptoms, func(i, j int) bool { return symptoms[i].Date.Before(symptoms[j].Date) })

	periods := make([]models.PeriodLog, 0, len(allPeriods))
	for _, entry := range allPeriods {
		if dayInRange(civilDate(entry.StartDate, service.location), from, to) {
			periods = append(periods, entry)
		}
	}
	sort.SliceStable(periods, func(i, j int) bool { return periods[i].StartDate.Before(periods[j].StartDate) })

	return energy, symptoms, periods, nil
}

func csvInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
