// mkfixture writes a small deterministic synthetic E-Saúde attendance export
// in the same shape as the real file: ';'-separated, ISO-8859-1, with the
// misspelled municipality header, low-value columns, invalid dates, missing
// CID codes and blank flags.
// Usage: go run ./cmd/mkfixture --out testdata/esaude-small.csv --rows 500
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/gyeh/attstats/internal/model"
)

var (
	municipalities = []string{"CURITIBA", "CURITIBA", "CURITIBA", "SÃO JOSÉ DOS PINHAIS", "COLOMBO", "ARAUCÁRIA", "PINHAIS", "ALMIRANTE TAMANDARÉ", "FAZENDA RIO GRANDE", "CAMPO LARGO", "PIRAQUARA", "QUATRO BARRAS"}
	facilities     = []string{"UPA", "UPA", "UMS", "UMS", "UMS", "CMUM", "HOSPITAL"}
	cids           = []string{"J06", "R50", "I10", "J00", "M54", "K29", "Z00", "A09", "N39", "R51"}
	flagLabels     = []string{"Sim", "Nao", "Nao", "Nao", "Não"}
)

func main() {
	out := flag.String("out", "testdata/esaude-small.csv", "output CSV")
	rows := flag.Int("rows", 500, "rows to generate")
	seed := flag.Int64("seed", 20180813, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	header := []string{
		model.ColAttendedAt,
		model.ColBirthDate,
		"Código do Tipo de Unidade",
		model.ColFacilityType,
		"Código da Unidade",
		"Código do Procedimento",
		"Descrição do Procedimento",
		"Código do CBO",
		"Descrição do CBO",
		model.ColCIDCode,
		"Descrição do CID",
		" " + model.ColReferred + " ",
		model.ColExamRequested,
		"Qtde Prescrita Farmácia Curitibana",
		"Qtde Dispensada Farmácia Curitibana",
		"Qtde de Medicamento Não Padronizado",
		"Área de Atuação",
		model.ColHospitalized,
		model.ColAdmittedAt,
		"Municício",
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ";"))
	b.WriteString("\n")

	base := time.Date(2018, time.August, 13, 0, 0, 0, 0, time.UTC)
	var invalidDates, missingCID, blankFlags int
	for i := 0; i < *rows; i++ {
		attended := base.Add(time.Duration(rng.Intn(7*24*60)) * time.Minute)
		birth := attended.AddDate(-rng.Intn(95), -rng.Intn(12), -rng.Intn(28))

		birthText := birth.Format("02/01/2006")
		if rng.Intn(40) == 0 {
			birthText = "00/00/0000"
			invalidDates++
		}

		cid := cids[rng.Intn(len(cids))]
		if rng.Intn(25) == 0 {
			cid = ""
			missingCID++
		}

		hospitalized := flagLabels[rng.Intn(len(flagLabels))]
		admitted := ""
		if hospitalized == "Sim" {
			admitted = attended.Add(time.Duration(30+rng.Intn(240)) * time.Minute).Format("02/01/2006 15:04:05")
		}
		if rng.Intn(30) == 0 {
			hospitalized = ""
			blankFlags++
		}

		facility := facilities[rng.Intn(len(facilities))]
		record := []string{
			attended.Format("02/01/2006 15:04:05"),
			birthText,
			fmt.Sprint(rng.Intn(9) + 1),
			facility,
			fmt.Sprint(1000 + rng.Intn(200)),
			fmt.Sprint(301010000 + rng.Intn(9999)),
			"CONSULTA MEDICA EM ATENÇÃO BÁSICA",
			"225125",
			"MÉDICO CLÍNICO",
			cid,
			"DESCRIÇÃO " + cid,
			flagLabels[rng.Intn(len(flagLabels))],
			flagLabels[rng.Intn(len(flagLabels))],
			fmt.Sprint(rng.Intn(3)),
			fmt.Sprint(rng.Intn(3)),
			"0",
			"CLÍNICO GERAL",
			hospitalized,
			admitted,
			municipalities[rng.Intn(len(municipalities))],
		}
		b.WriteString(strings.Join(record, ";"))
		b.WriteString("\n")
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(b.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, []byte(encoded), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
	fmt.Printf("  %-16s %d\n", "invalid_dates", invalidDates)
	fmt.Printf("  %-16s %d\n", "missing_cid", missingCID)
	fmt.Printf("  %-16s %d\n", "blank_flags", blankFlags)
}
