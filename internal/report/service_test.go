package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/camposur/herdtrack/internal/domain"
)

type mockAnimalRepo struct {
	females []domain.Animal
}

func (m *mockAnimalRepo) Create(ctx context.Context, animal domain.Animal) (domain.Animal, error) {
	return animal, nil
}

func (m *mockAnimalRepo) GetByID(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error) {
	return domain.Animal{}, domain.ErrNotFound
}

func (m *mockAnimalRepo) GetByIDForUpdate(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error) {
	return domain.Animal{}, domain.ErrNotFound
}

func (m *mockAnimalRepo) ListFemales(ctx context.Context, farmID uuid.UUID) ([]domain.Animal, error) {
	return m.females, nil
}

func (m *mockAnimalRepo) SetCurrentPaddock(ctx context.Context, animalID, paddockID uuid.UUID) error {
	return nil
}

func (m *mockAnimalRepo) SetGrowth(ctx context.Context, animalID uuid.UUID, update domain.GrowthUpdate) error {
	return nil
}

type mockEventRepo struct {
	byAnimal map[uuid.UUID][]domain.ReproEvent
}

func (m *mockEventRepo) Append(ctx context.Context, event domain.ReproEvent) (domain.ReproEvent, error) {
	return event, nil
}

func (m *mockEventRepo) ListByAnimal(ctx context.Context, farmID, animalID uuid.UUID) ([]domain.ReproEvent, error) {
	return m.byAnimal[animalID], nil
}

func (m *mockEventRepo) Delete(ctx context.Context, farmID, eventID uuid.UUID) error {
	return nil
}

type mockSeasonRepo struct {
	season  domain.BreedingSeason
	exposed map[uuid.UUID]bool
}

func (m *mockSeasonRepo) Create(ctx context.Context, season domain.BreedingSeason) (domain.BreedingSeason, error) {
	return season, nil
}

func (m *mockSeasonRepo) GetByID(ctx context.Context, farmID, seasonID uuid.UUID) (domain.BreedingSeason, error) {
	if seasonID != m.season.ID {
		return domain.BreedingSeason{}, domain.ErrNotFound
	}
	return m.season, nil
}

func (m *mockSeasonRepo) MarkExposed(ctx context.Context, seasonID, animalID uuid.UUID) error {
	return nil
}

func (m *mockSeasonRepo) ExposedAnimalIDs(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]bool, error) {
	return m.exposed, nil
}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func testFemale(farmID uuid.UUID, tag string) domain.Animal {
	animal := domain.NewAnimal(farmID, tag, domain.AnimalKindRegistered, domain.SexFemale)
	return animal
}

func pregnancyEvents(t *testing.T, animalID uuid.UUID) []domain.ReproEvent {
	pregnant := domain.DiagnosisPregnant
	return []domain.ReproEvent{
		{ID: uuid.New(), AnimalID: animalID, Type: domain.EventCalving, EventDate: testDate(t, "2023-01-10")},
		{ID: uuid.New(), AnimalID: animalID, Type: domain.EventCalving, EventDate: testDate(t, "2024-03-01")},
		{
			ID: uuid.New(), AnimalID: animalID, Type: domain.EventPregnancyDiagnosis,
			EventDate: testDate(t, "2024-05-15"), DiagnosisStatus: &pregnant,
		},
	}
}

func TestBuild_RollingMode(t *testing.T) {
	farmID := uuid.New()
	cow := testFemale(farmID, "C-001")
	heifer := testFemale(farmID, "H-014")

	animals := &mockAnimalRepo{females: []domain.Animal{cow, heifer}}
	events := &mockEventRepo{byAnimal: map[uuid.UUID][]domain.ReproEvent{
		cow.ID: pregnancyEvents(t, cow.ID),
	}}
	seasons := &mockSeasonRepo{}

	svc := NewService(animals, events, seasons, domain.DefaultSelectionThresholds(), nil,
		WithClock(func() time.Time { return testDate(t, "2024-06-01") }))

	built, err := svc.Build(context.Background(), farmID, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(built.Records) != 2 {
		t.Fatalf("expected 2 KPI records, got %d", len(built.Records))
	}
	if built.Records[0].IEPDays == nil || *built.Records[0].IEPDays != 416 {
		t.Fatalf("expected cow IEP 416, got %+v", built.Records[0].IEPDays)
	}
	// The heifer has no event log at all and must be flagged, not green.
	if built.Classifications[1].Tier != "yellow" {
		t.Fatalf("expected no-history heifer to be yellow, got %s", built.Classifications[1].Tier)
	}
	if built.Summary.Animals != 2 {
		t.Fatalf("expected 2 animals in summary, got %d", built.Summary.Animals)
	}
}

func TestBuild_SeasonMode(t *testing.T) {
	farmID := uuid.New()
	cow := testFemale(farmID, "C-001")

	season := domain.BreedingSeason{
		ID:       uuid.New(),
		FarmID:   farmID,
		Name:     "autumn",
		StartsOn: testDate(t, "2024-04-01"),
		EndsOn:   testDate(t, "2024-06-30"),
	}
	animals := &mockAnimalRepo{females: []domain.Animal{cow}}
	events := &mockEventRepo{byAnimal: map[uuid.UUID][]domain.ReproEvent{
		cow.ID: pregnancyEvents(t, cow.ID),
	}}
	seasons := &mockSeasonRepo{season: season, exposed: map[uuid.UUID]bool{cow.ID: true}}

	svc := NewService(animals, events, seasons, domain.DefaultSelectionThresholds(), nil,
		WithClock(func() time.Time { return testDate(t, "2024-07-01") }))

	built, err := svc.Build(context.Background(), farmID, &season.ID)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if built.Summary.TotalExposed != 1 || built.Summary.PregnantExposed != 1 {
		t.Fatalf("expected 1/1 exposed-pregnant, got %d/%d",
			built.Summary.PregnantExposed, built.Summary.TotalExposed)
	}
	if built.Summary.PregnancyRate == nil || *built.Summary.PregnancyRate != 1.0 {
		t.Fatalf("expected herd season rate 1.0, got %+v", built.Summary.PregnancyRate)
	}
}

func TestBuild_UnknownSeason(t *testing.T) {
	farmID := uuid.New()
	svc := NewService(&mockAnimalRepo{}, &mockEventRepo{}, &mockSeasonRepo{},
		domain.DefaultSelectionThresholds(), nil)

	missing := uuid.New()
	if _, err := svc.Build(context.Background(), farmID, &missing); err == nil {
		t.Fatal("expected an error for an unknown season")
	}
}

func TestWriteWorkbook(t *testing.T) {
	farmID := uuid.New()
	cow := testFemale(farmID, "C-001")
	animals := &mockAnimalRepo{females: []domain.Animal{cow}}
	events := &mockEventRepo{byAnimal: map[uuid.UUID][]domain.ReproEvent{
		cow.ID: pregnancyEvents(t, cow.ID),
	}}

	dir := t.TempDir()
	svc := NewService(animals, events, &mockSeasonRepo{}, domain.DefaultSelectionThresholds(), nil,
		WithOutputDir(dir),
		WithClock(func() time.Time { return testDate(t, "2024-06-01") }))

	built, err := svc.Build(context.Background(), farmID, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	path, err := svc.WriteWorkbook(built)
	if err != nil {
		t.Fatalf("write workbook failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("workbook written outside output dir: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	tag, err := f.GetCellValue("Animals", "A2")
	if err != nil {
		t.Fatalf("read animals sheet: %v", err)
	}
	if tag != "C-001" {
		t.Fatalf("expected animal tag in first data row, got %q", tag)
	}
}
