// mkfixture writes a sample visit spreadsheet and municipality reference
// workbook for local runs.
// Usage: go run ./cmd/mkfixture --out RIPS --month 06 --year 2024 --rows 40 --variant A
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gyeh/ripsgen/internal/period"
	"github.com/gyeh/ripsgen/internal/sheet"
)

var names = []string{
	"juan carlos perez gomez",
	"ana lopez ruiz",
	"maria fernanda restrepo",
	"luis alberto mejia",
	"sofia garcia",
	"andres felipe zapata ochoa",
	"camila henao",
	"jose martinez velez",
}

var municipalities = []string{"Medellín", "Envigado", "Itagüí", "Bello", "Sabaneta", "Rionegro", "Ciudad Gótica"}

var diagnoses = []string{"J069", "Z000", "I10X", "K297", "M545", "R51X"}

var references = [][]any{
	{"05", "ANTIOQUIA", "001", "MEDELLIN"},
	{"05", "ANTIOQUIA", "266", "ENVIGADO"},
	{"05", "ANTIOQUIA", "360", "ITAGUI"},
	{"05", "ANTIOQUIA", "088", "BELLO"},
	{"05", "ANTIOQUIA", "631", "SABANETA"},
	{"05", "ANTIOQUIA", "615", "RIONEGRO"},
}

func main() {
	out := flag.String("out", "RIPS", "output directory")
	month := flag.String("month", "06", "period month (01-12)")
	year := flag.String("year", "2024", "period year")
	rows := flag.Int("rows", 40, "visit rows to generate")
	variant := flag.String("variant", "A", "input variant: A (municipality) or B (billing)")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	p, err := period.Parse(*month, *year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "period: %v\n", err)
		os.Exit(1)
	}
	if *variant != "A" && *variant != "B" {
		fmt.Fprintf(os.Stderr, "unknown variant %q\n", *variant)
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	visits := visitRows(p, *rows, *variant, rand.New(rand.NewSource(*seed)))
	visitPath := filepath.Join(*out, p.Code()+".xlsx")
	if err := sheet.WriteWorkbook(visitPath, "", visits); err != nil {
		fmt.Fprintf(os.Stderr, "write visits: %v\n", err)
		os.Exit(1)
	}

	refPath := filepath.Join(*out, "ciudades.xlsx")
	ref := append([][]any{{"codigo_departamento", "departamento", "codigo_municipio", "municipio"}}, references...)
	if err := sheet.WriteWorkbook(refPath, "", ref); err != nil {
		fmt.Fprintf(os.Stderr, "write reference: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d variant %s visits to %s\n", len(visits)-1, *variant, visitPath)
	fmt.Printf("Wrote %d municipalities to %s\n", len(references), refPath)
}

// visitRows builds the header plus n visits spread over the period. Every
// third patient has no national ID and every fifth is a child, so document
// typing and age units are exercised.
func visitRows(p period.Period, n int, variant string, rng *rand.Rand) [][]any {
	header := []any{"Fecha Atención", "Fecha Nacimiento", "Nombre", "Sexo", "Identificación", "Historia", "Diagnóstico"}
	if variant == "A" {
		header = append(header, "Tipo Documento", "Municipio")
	} else {
		header = append(header, "Factura", "Autorización", "Valor")
	}

	out := [][]any{header}
	for i := 0; i < n; i++ {
		visit := p.Start().AddDate(0, 0, rng.Intn(p.LastDay()))
		birth := visit.AddDate(-(18 + rng.Intn(60)), -rng.Intn(12), -rng.Intn(28))
		if i%5 == 4 {
			birth = visit.AddDate(0, -rng.Intn(30), -rng.Intn(28)-1)
		}
		id := fmt.Sprintf("%d", 70000000+rng.Intn(9999999))
		if i%3 == 2 {
			id = ""
		}
		sex := "F"
		if rng.Intn(2) == 0 {
			sex = "M"
		}

		row := []any{
			visit,
			birth.Format("02/01/2006"),
			names[rng.Intn(len(names))],
			sex,
			id,
			fmt.Sprintf("H-%04d", i+1),
			diagnoses[rng.Intn(len(diagnoses))],
		}
		if variant == "A" {
			hint := ""
			if id != "" && i%11 == 10 {
				hint = "Pasaporte"
			}
			row = append(row, hint, municipalities[rng.Intn(len(municipalities))])
		} else {
			row = append(row,
				fmt.Sprintf("FE-%d", 1000+i),
				fmt.Sprintf("AUT-%06d", rng.Intn(1000000)),
				(20+rng.Intn(60))*1000,
			)
		}
		out = append(out, row)
	}
	return out
}
