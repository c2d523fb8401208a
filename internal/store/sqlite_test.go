package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
	"github.com/trialviz/axisgoat/internal/store"
)

const studyDoc = `{
  "study": "STUDY0001",
  "ongoing": true,
  "views": {
    "LABS_BOXPLOT": {
      "x": {"options": [{"groupByOption": "VISIT_NUMBER"}, {"groupByOption": "MEASUREMENT_TIME_POINT", "timestampOption": true}],
            "drugs": ["AZD1234"], "hasRandomization": true}
    },
    "POPULATION_BARCHART": {"legacyX": ["STUDY_ID"]}
  }
}`

func setupTestDB(t *testing.T) *store.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func parseDoc(t *testing.T, data string) *metadata.Document {
	t.Helper()
	doc, err := metadata.ParseDocument([]byte(data))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

func TestOpen(t *testing.T) {
	s := setupTestDB(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
	studies, err := s.ListStudies(context.Background())
	if err != nil {
		t.Fatalf("failed to list studies: %v", err)
	}
	if len(studies) != 0 {
		t.Errorf("got %d studies in a fresh database, want 0", len(studies))
	}
}

func TestSaveStudy(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	study, err := s.SaveStudy(ctx, parseDoc(t, studyDoc))
	if err != nil {
		t.Fatalf("failed to save study: %v", err)
	}

	if study.Name != "STUDY0001" {
		t.Errorf("got Name %s, want STUDY0001", study.Name)
	}
	if !study.Ongoing {
		t.Error("expected ongoing study")
	}
	want := []axis.ViewID{axis.PopulationBarchart, axis.LabsBoxplot}
	if len(study.Views) != len(want) {
		t.Fatalf("got %d views, want %d", len(study.Views), len(want))
	}
	for i, v := range want {
		if study.Views[i] != v {
			t.Errorf("view %d: got %s, want %s", i, study.Views[i], v)
		}
	}
	if !study.HasView(axis.LabsBoxplot) || study.HasView(axis.CtdnaPlot) {
		t.Error("HasView mismatch")
	}
}

func TestSaveStudy_Replaces(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.SaveStudy(ctx, parseDoc(t, studyDoc)); err != nil {
		t.Fatalf("failed to save study: %v", err)
	}

	replacement := `{"study":"STUDY0001","ongoing":false,"views":{"CTDNA_PLOT":{"x":{"options":[{"groupByOption":"VISIT_NUMBER"}]}}}}`
	study, err := s.SaveStudy(ctx, parseDoc(t, replacement))
	if err != nil {
		t.Fatalf("failed to replace study: %v", err)
	}

	if study.Ongoing {
		t.Error("expected completed study after replacement")
	}
	if len(study.Views) != 1 || study.Views[0] != axis.CtdnaPlot {
		t.Errorf("got views %v, want [CTDNA_PLOT]", study.Views)
	}

	_, err = s.GetViewMetadata(ctx, "STUDY0001", axis.LabsBoxplot)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for replaced view, got %v", err)
	}
}

func TestGetStudy_NotFound(t *testing.T) {
	s := setupTestDB(t)

	_, err := s.GetStudy(context.Background(), "missing")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListStudies(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	studies, err := s.ListStudies(ctx)
	if err != nil {
		t.Fatalf("failed to list studies: %v", err)
	}
	if len(studies) != 0 {
		t.Errorf("expected no studies, got %d", len(studies))
	}

	for _, doc := range []string{
		`{"study":"B","views":{"LABS_BOXPLOT":{}}}`,
		`{"study":"A","views":{"CTDNA_PLOT":{}}}`,
	} {
		if _, err := s.SaveStudy(ctx, parseDoc(t, doc)); err != nil {
			t.Fatalf("failed to save study: %v", err)
		}
	}

	studies, err = s.ListStudies(ctx)
	if err != nil {
		t.Fatalf("failed to list studies: %v", err)
	}
	if len(studies) != 2 {
		t.Fatalf("expected 2 studies, got %d", len(studies))
	}
	if studies[0].Name != "A" || studies[1].Name != "B" {
		t.Errorf("expected studies sorted by name, got %s, %s", studies[0].Name, studies[1].Name)
	}
	if len(studies[0].Views) != 1 || studies[0].Views[0] != axis.CtdnaPlot {
		t.Errorf("unexpected views for A: %v", studies[0].Views)
	}
}

func TestDeleteStudy(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.SaveStudy(ctx, parseDoc(t, studyDoc)); err != nil {
		t.Fatalf("failed to save study: %v", err)
	}

	if err := s.DeleteStudy(ctx, "STUDY0001"); err != nil {
		t.Fatalf("failed to delete study: %v", err)
	}

	if _, err := s.GetStudy(ctx, "STUDY0001"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := s.GetViewMetadata(ctx, "STUDY0001", axis.LabsBoxplot); err != store.ErrNotFound {
		t.Errorf("expected metadata removed, got %v", err)
	}
	if err := s.DeleteStudy(ctx, "STUDY0001"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteStudy_FailureKeepsViews(t *testing.T) {
	s := setupTestDB(t)

	if _, err := s.SaveStudy(context.Background(), parseDoc(t, studyDoc)); err != nil {
		t.Fatalf("failed to save study: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.DeleteStudy(ctx, "STUDY0001"); err == nil {
		t.Fatal("expected error with cancelled context")
	}

	study, err := s.GetStudy(context.Background(), "STUDY0001")
	if err != nil {
		t.Fatalf("study lost after failed delete: %v", err)
	}
	if !study.HasView(axis.LabsBoxplot) {
		t.Error("view metadata lost after failed delete")
	}
	if _, err := s.GetViewMetadata(context.Background(), "STUDY0001", axis.LabsBoxplot); err != nil {
		t.Errorf("expected view metadata kept, got %v", err)
	}
}

func TestDeleteStudy_UnknownKeepsOthers(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.SaveStudy(ctx, parseDoc(t, studyDoc)); err != nil {
		t.Fatalf("failed to save study: %v", err)
	}
	if err := s.DeleteStudy(ctx, "MISSING"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetViewMetadata(ctx, "STUDY0001", axis.LabsBoxplot); err != nil {
		t.Errorf("expected other study untouched, got %v", err)
	}
}

func TestGetViewMetadata(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.SaveStudy(ctx, parseDoc(t, studyDoc)); err != nil {
		t.Fatalf("failed to save study: %v", err)
	}

	v, err := s.GetViewMetadata(ctx, "STUDY0001", axis.LabsBoxplot)
	if err != nil {
		t.Fatalf("failed to get view metadata: %v", err)
	}

	if len(v.X.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(v.X.Options))
	}
	if !v.X.Options[1].IsTimestamp {
		t.Error("expected second option to be a timestamp")
	}
	if len(v.X.DrugNames) != 1 || v.X.DrugNames[0] != "AZD1234" {
		t.Errorf("got drugs %v", v.X.DrugNames)
	}

	pop, err := s.GetViewMetadata(ctx, "STUDY0001", axis.PopulationBarchart)
	if err != nil {
		t.Fatalf("failed to get legacy view metadata: %v", err)
	}
	if len(pop.LegacyX) != 1 || pop.LegacyX[0].Value != "STUDY_ID" {
		t.Errorf("got legacy options %v", pop.LegacyX)
	}
}
