package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/load"
	"github.com/gyeh/ripsgen/internal/period"
	"github.com/gyeh/ripsgen/internal/pipeline"
	"github.com/gyeh/ripsgen/internal/sheet"
	"github.com/gyeh/ripsgen/internal/snapshot"
)

var (
	june = period.Period{Month: 6, Year: 2024}
	now  = time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
)

var variantAHeader = []any{"fecha_atencion", "fecha_nacimiento", "nombre", "sexo", "tipo_documento", "identificacion", "historia", "diagnostico", "municipio"}

var variantBHeader = []any{"fecha_atencion", "fecha_nacimiento", "nombre", "sexo", "identificacion", "historia", "diagnostico", "factura", "autorizacion", "valor"}

func variantARows() [][]any {
	return [][]any{
		variantAHeader,
		{"03/06/2024", "01/02/1990", "juan  perez", "M", "", "71234567", "H-1", "J069", "Medellín"},
		{"04/06/2024", "15/08/2019", "ana lopez ruiz", "F", "", "", "H-2", "Z000", "Envigado"},
		{"20/06/2024", "01/02/1990", "JUAN PEREZ", "M", "", "71234567", "H-1", "I10X", "Gotham"},
	}
}

// setup writes the visit and reference workbooks into a temp dir and returns
// a config pointing at them.
func setup(t *testing.T, visits [][]any) *config.Config {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "RIPS")
	if err := os.MkdirAll(in, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := sheet.WriteWorkbook(filepath.Join(in, june.Code()+".xlsx"), "", visits); err != nil {
		t.Fatalf("write visits: %v", err)
	}
	ref := filepath.Join(in, "ciudades.xlsx")
	if err := sheet.WriteWorkbook(ref, "", [][]any{
		{"codigo_departamento", "departamento", "codigo_municipio", "municipio"},
		{5, "ANTIOQUIA", 1, "MEDELLIN"},
		{"05", "ANTIOQUIA", "266", "ENVIGADO"},
	}); err != nil {
		t.Fatalf("write reference: %v", err)
	}
	return &config.Config{
		Period:        june,
		InputDir:      in,
		ReferencePath: ref,
		ExportDir:     filepath.Join(dir, "exports"),
		LogFormat:     "text",
	}
}

func defaultClinic() *config.Clinic {
	c := config.DefaultClinic()
	return &c
}

// readZip returns the archive's entries keyed by name.
func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRun_VariantA(t *testing.T) {
	cfg := setup(t, variantARows())
	summary, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}

	t.Run("summary_metrics", func(t *testing.T) {
		if summary.Variant != "A" {
			t.Errorf("Variant: got %q, want A", summary.Variant)
		}
		if summary.RowsRead != 3 || summary.RowsAccepted != 3 || summary.RowsRejected != 0 {
			t.Errorf("rows: read=%d accepted=%d rejected=%d", summary.RowsRead, summary.RowsAccepted, summary.RowsRejected)
		}
		if summary.ACRecords != 3 || summary.USRecords != 2 || summary.AFRecords != 1 || summary.CTRecords != 3 {
			t.Errorf("counts: ac=%d us=%d af=%d ct=%d", summary.ACRecords, summary.USRecords, summary.AFRecords, summary.CTRecords)
		}
		if len(summary.Misses) != 1 || summary.Misses[0].Municipality != "GOTHAM" || summary.Misses[0].Records != 1 {
			t.Errorf("Misses: got %+v", summary.Misses)
		}
		if summary.InputSHA256 == "" || summary.RunID == "" {
			t.Error("expected input hash and run id")
		}
	})

	t.Run("archive", func(t *testing.T) {
		want := filepath.Join(cfg.ExportDir, "UIRIPSJUNIO050010185901.zip")
		if summary.ArchivePath != want {
			t.Fatalf("ArchivePath: got %s, want %s", summary.ArchivePath, want)
		}
		files := readZip(t, want)
		var names []string
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)
		wantNames := []string{"AC062024.txt", "AF062024.txt", "CT062024.txt", "US062024.txt"}
		if strings.Join(names, ",") != strings.Join(wantNames, ",") {
			t.Fatalf("entries: got %v, want %v", names, wantNames)
		}

		ac := lines(files["AC062024.txt"])
		if len(ac) != 3 {
			t.Fatalf("AC lines: got %d, want 3", len(ac))
		}
		if ac[0] != "1,050010185901,CC,71234567,03/06/2024,,890283,10,15,J069,,,,1,1,0,1" {
			t.Errorf("AC[0]: got %q", ac[0])
		}
		if !strings.HasPrefix(ac[1], "1,050010185901,MS,H-2,04/06/2024,") {
			t.Errorf("AC[1]: got %q", ac[1])
		}

		us := lines(files["US062024.txt"])
		if len(us) != 2 {
			t.Fatalf("US lines: got %d, want 2", len(us))
		}
		if us[0] != "CC,71234567,000000,4,PEREZ,,JUAN,,34,1,M,05,001,U" {
			t.Errorf("US[0]: got %q", us[0])
		}
		if us[1] != "MS,H-2,000000,4,LOPEZ,RUIZ,ANA,,4,1,F,05,266,U" {
			t.Errorf("US[1]: got %q", us[1])
		}

		af := lines(files["AF062024.txt"])
		if len(af) != 1 || !strings.Contains(af[0], ",30/06/2024,01/06/2024,30/06/2024,000000,PARTICULAR,") {
			t.Errorf("AF: got %v", af)
		}

		ct := lines(files["CT062024.txt"])
		wantCT := []string{
			"050010185901,30/06/2024,AC062024,3",
			"050010185901,30/06/2024,US062024,2",
			"050010185901,30/06/2024,AF062024,1",
		}
		if strings.Join(ct, "|") != strings.Join(wantCT, "|") {
			t.Errorf("CT: got %v, want %v", ct, wantCT)
		}
	})

	t.Run("staging_removed", func(t *testing.T) {
		if _, err := os.Stat(cfg.StagingDir()); !os.IsNotExist(err) {
			t.Errorf("staging dir should be gone, stat err = %v", err)
		}
		if summary.SnapshotPath != "" {
			t.Errorf("snapshot written without --snapshot: %s", summary.SnapshotPath)
		}
	})
}

func TestRun_Idempotent(t *testing.T) {
	cfg := setup(t, variantARows())
	ctx := context.Background()

	first, err := pipeline.Run(ctx, zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	a, err := os.ReadFile(first.ArchivePath)
	if err != nil {
		t.Fatal(err)
	}

	second, err := pipeline.Run(ctx, zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	b, err := os.ReadFile(second.ArchivePath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("archives differ between identical runs")
	}
	if first.RunID == second.RunID {
		t.Error("run ids should differ")
	}
}

func TestRun_EmptyInput(t *testing.T) {
	cfg := setup(t, [][]any{variantAHeader})
	summary, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	if summary.ACRecords != 0 || summary.USRecords != 0 || summary.AFRecords != 1 {
		t.Errorf("counts: ac=%d us=%d af=%d", summary.ACRecords, summary.USRecords, summary.AFRecords)
	}

	files := readZip(t, summary.ArchivePath)
	if files["AC062024.txt"] != "" || files["US062024.txt"] != "" {
		t.Error("AC and US should be empty")
	}
	ct := lines(files["CT062024.txt"])
	if len(ct) != 3 || !strings.HasSuffix(ct[0], ",0") || !strings.HasSuffix(ct[1], ",0") || !strings.HasSuffix(ct[2], ",1") {
		t.Errorf("CT: got %v", ct)
	}
}

func TestRun_RejectedRows(t *testing.T) {
	rows := append(variantARows(), []any{"21/06/2024", "01/02/1990", "MADONNA", "F", "", "1", "H-9", "J069", "Medellín"})

	t.Run("fails_by_default", func(t *testing.T) {
		cfg := setup(t, rows)
		_, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
		var pe *pipeline.PipelineError
		if !errors.As(err, &pe) || pe.Phase != pipeline.PhaseLoad {
			t.Fatalf("expected load PipelineError, got %v", err)
		}
		var re *load.RejectedError
		if !errors.As(err, &re) || len(re.Rows) != 1 || re.Rows[0].Row != 5 {
			t.Fatalf("expected one rejected row 5, got %v", err)
		}
		if _, err := os.Stat(cfg.ExportDir); !os.IsNotExist(err) {
			t.Error("nothing should be written when input is invalid")
		}
	})

	t.Run("allow_rejects", func(t *testing.T) {
		cfg := setup(t, rows)
		cfg.AllowRejects = true
		summary, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
		if err != nil {
			t.Fatalf("pipeline.Run: %v", err)
		}
		if summary.RowsRead != 4 || summary.RowsRejected != 1 || summary.ACRecords != 3 {
			t.Errorf("read=%d rejected=%d ac=%d", summary.RowsRead, summary.RowsRejected, summary.ACRecords)
		}
	})
}

func TestRun_MissingReference(t *testing.T) {
	cfg := setup(t, variantARows())
	cfg.ReferencePath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) || pe.Phase != pipeline.PhaseReference {
		t.Fatalf("expected reference PipelineError, got %v", err)
	}
}

func TestRun_SchemaError(t *testing.T) {
	cfg := setup(t, [][]any{{"fecha_atencion", "nombre"}})
	_, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	var se *sheet.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestRun_VariantBWithSnapshot(t *testing.T) {
	cfg := setup(t, [][]any{
		variantBHeader,
		{"03/06/2024", "01/02/1990", "juan perez", "M", "71234567", "H-1", "J069", "FE-10", "AUT-1", "$35.000"},
		{"05/06/2024", "10/01/2024", "bebe lopez", "F", "", "H-7", "P599", "", "", 20000},
	})
	cfg.ReferencePath = filepath.Join(t.TempDir(), "not-needed.xlsx")
	cfg.Snapshot = true

	clinic := defaultClinic()
	clinic.ModeratorFee = "5000"
	summary, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, clinic, now)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	if summary.Variant != "B" || len(summary.Misses) != 0 {
		t.Errorf("variant=%s misses=%v", summary.Variant, summary.Misses)
	}

	files := readZip(t, summary.ArchivePath)
	ac := lines(files["AC062024.txt"])
	if len(ac) != 2 {
		t.Fatalf("AC lines: got %d", len(ac))
	}
	if ac[0] != "FE-10,050010185901,CC,71234567,03/06/2024,AUT-1,890283,10,15,J069,,,,1,35000,5000,30000" {
		t.Errorf("AC[0]: got %q", ac[0])
	}
	if !strings.HasPrefix(ac[1], "FE-10,050010185901,MS,H-7,05/06/2024,,") {
		t.Errorf("AC[1]: got %q", ac[1])
	}
	us := lines(files["US062024.txt"])
	if len(us) != 2 || !strings.Contains(us[1], ",5,2,F,05,001,U") {
		t.Errorf("US: got %v", us)
	}
	af := lines(files["AF062024.txt"])
	if len(af) != 1 || !strings.HasSuffix(af[0], ",45000") || strings.Split(af[0], ",")[4] != "FE-10" {
		t.Errorf("AF: got %v", af)
	}

	want := filepath.Join(cfg.ExportDir, "RIPS062024.parquet")
	if summary.SnapshotPath != want {
		t.Fatalf("SnapshotPath: got %s, want %s", summary.SnapshotPath, want)
	}
	r, err := snapshot.Open(want)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer r.Close()
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(got) != 2 || got[0].RunID != summary.RunID || got[1].DocumentType != "MS" {
		t.Errorf("snapshot rows: %+v", got)
	}
}

func TestRun_VariantBConflictingInvoices(t *testing.T) {
	cfg := setup(t, [][]any{
		variantBHeader,
		{"03/06/2024", "01/02/1990", "juan perez", "M", "71234567", "H-1", "J069", "FE-10", "", "35,000"},
		{"05/06/2024", "01/02/1980", "ana ruiz", "F", "1234", "H-2", "Z000", "FE-11", "", "20,000"},
	})
	_, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) || pe.Phase != pipeline.PhaseDerive {
		t.Fatalf("expected derive PipelineError, got %v", err)
	}
	if _, err := os.Stat(cfg.ExportDir); !os.IsNotExist(err) {
		t.Error("nothing should be written for conflicting invoices")
	}
}

func TestRun_KeepFiles(t *testing.T) {
	cfg := setup(t, variantARows())
	cfg.KeepFiles = true
	summary, err := pipeline.Run(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	for _, f := range summary.Files {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("kept file %s: %v", f, err)
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	cfg := setup(t, variantARows())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.Run(ctx, zerolog.Nop(), cfg, defaultClinic(), now)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPlan(t *testing.T) {
	cfg := setup(t, variantARows())
	summary, err := pipeline.Plan(context.Background(), zerolog.Nop(), cfg, defaultClinic(), now)
	if err != nil {
		t.Fatalf("pipeline.Plan: %v", err)
	}
	if summary.ACRecords != 3 || summary.USRecords != 2 || summary.CTRecords != 3 {
		t.Errorf("counts: ac=%d us=%d ct=%d", summary.ACRecords, summary.USRecords, summary.CTRecords)
	}
	if !strings.HasSuffix(summary.ArchivePath, "UIRIPSJUNIO050010185901.zip") {
		t.Errorf("ArchivePath: got %s", summary.ArchivePath)
	}
	if _, err := os.Stat(cfg.ExportDir); !os.IsNotExist(err) {
		t.Error("plan must not write anything")
	}
}
