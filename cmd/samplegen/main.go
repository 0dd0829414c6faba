package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/locvowork/orderdash/internal/workbook"
)

type Preset string

const (
	PresetSmall  Preset = "small"
	PresetMedium Preset = "medium"
	PresetLarge  Preset = "large"
)

// presetRows returns the rows per sheet of a preset.
func presetRows(p Preset) int {
	switch p {
	case PresetSmall:
		return 20
	case PresetLarge:
		return 5000
	default:
		return 300
	}
}

var (
	salespeople = []string{"ANA SOUZA", "BRUNO LIMA", "CARLA DIAS", "DIEGO ALVES", "ELISA ROCHA"}
	customers   = []string{"MERCADO BOM PRECO", "LOJA CENTRAL", "ATACADO NORTE", "SUPER VIDA", "CASA & CIA", "EMPORIO SUL"}
	statuses    = []string{"Faturado", "Faturado", "Faturado", "Em aberto", "Cancelado", "Bloqueado"}
	sources     = []string{"Vendedor", "B2B", "Televendas"}
	policies    = []string{"Tabela padrao", "Promocional", "Distribuidor"}
)

func main() {
	out := flag.String("out", "data/pedidos.xlsx", "Output workbook path")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	rows := flag.Int("rows", 0, "Rows per sheet (overrides preset)")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	ctx := context.Background()
	n := *rows
	if n <= 0 {
		n = presetRows(Preset(*preset))
	}

	fmt.Println("Order workbook generator")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Using %d rows per sheet, seed %d\n", n, *seed)

	g := &generator{rnd: rand.New(rand.NewSource(*seed))}
	sheets := []domain.RawSheet{
		g.native("Pedidos 2023", 2023, n),
		g.typed("Pedidos 2024", 2024, n),
		g.imported("Importados", 2024, n/4+1),
	}
	if err := workbook.Write(*out, sheets); err != nil {
		logger.ErrorLog(ctx, "Failed to write workbook", err)
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

type generator struct {
	rnd  *rand.Rand
	next int
}

func (g *generator) pick(items []string) string {
	return items[g.rnd.Intn(len(items))]
}

func (g *generator) date(year int) time.Time {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, g.rnd.Intn(365))
}

func (g *generator) amount() float64 {
	return float64(g.rnd.Intn(2_000_000)) / 100
}

func (g *generator) orderNumber() string {
	g.next++
	return fmt.Sprintf("PV-%06d", g.next)
}

// native mirrors the ERP export: excel dates and numeric amounts.
func (g *generator) native(name string, year, n int) domain.RawSheet {
	sheet := domain.RawSheet{
		Name: name,
		Header: []string{"DATA DO PEDIDO", "NÚMERO DO PEDIDO", "USUÁRIO RESPONSÁVEL", "ORIGEM DO PEDIDO",
			"STATUS DO PEDIDO", "CÓDIGO DO CLIENTE", "NOME DO CLIENTE", "POLÍTICA COMERCIAL",
			"CONDIÇÃO DE PAGAMENTO", "VALOR BRUTO", "VALOR LÍQUIDO FATURADO"},
	}
	for i := 0; i < n; i++ {
		net := g.amount()
		sheet.Rows = append(sheet.Rows, []domain.Value{
			domain.TimeValue(g.date(year)),
			domain.StringValue(g.orderNumber()),
			domain.StringValue(g.pick(salespeople)),
			domain.StringValue(g.pick(sources)),
			domain.StringValue(g.pick(statuses)),
			domain.StringValue(fmt.Sprintf("C%04d", g.rnd.Intn(500))),
			domain.StringValue(g.pick(customers)),
			domain.StringValue(g.pick(policies)),
			domain.StringValue("30/60 dias"),
			domain.NumberValue(net * 1.1),
			domain.NumberValue(net),
		})
	}
	return sheet
}

// typed has padded headers and dates typed as day-first text.
func (g *generator) typed(name string, year, n int) domain.RawSheet {
	sheet := domain.RawSheet{
		Name: name,
		Header: []string{" DATA DO PEDIDO ", "Número do Pedido", "Usuário", "Status Pedido",
			"Nome do Cliente", "Política", "VALOR LÍQUIDO FATURADO"},
	}
	for i := 0; i < n; i++ {
		sheet.Rows = append(sheet.Rows, []domain.Value{
			domain.StringValue(g.date(year).Format("02/01/2006")),
			domain.StringValue(g.orderNumber()),
			domain.StringValue(g.pick(salespeople)),
			domain.StringValue(g.pick(statuses)),
			domain.StringValue(g.pick(customers)),
			domain.StringValue(g.pick(policies)),
			domain.NumberValue(g.amount()),
		})
	}
	return sheet
}

// imported carries formatted currency strings and a few broken dates.
func (g *generator) imported(name string, year, n int) domain.RawSheet {
	sheet := domain.RawSheet{
		Name:   name,
		Header: []string{"DATA DO PEDIDO", "NÚMERO DO PEDIDO", "USUÁRIO", "STATUS PEDIDO", "NOME DO CLIENTE", "VALOR LÍQUIDO FATURADO"},
	}
	for i := 0; i < n; i++ {
		date := domain.StringValue(g.date(year).Format("2006-01-02"))
		if i%10 == 9 {
			date = domain.StringValue("sem data")
		}
		sheet.Rows = append(sheet.Rows, []domain.Value{
			date,
			domain.StringValue(g.orderNumber()),
			domain.StringValue(g.pick(salespeople)),
			domain.StringValue(g.pick(statuses)),
			domain.StringValue(g.pick(customers)),
			domain.StringValue(formatBRL(g.amount())),
		})
	}
	return sheet
}

// formatBRL renders 1234.5 as "R$ 1.234,50".
func formatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "R$ " + b.String() + "," + frac
}
