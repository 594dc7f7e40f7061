package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dpaiva/lojinha-backend/config"
	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/internal/app/repository"
	"github.com/dpaiva/lojinha-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the products table, either from an xlsx export (column layout
// below) or, with no argument, from the built-in demo catalog.
//
// Columns: Nome | Descrição | Preço | Preço antigo | Categoria | Marca |
// Avaliação | Nº avaliações | Vendidos | Tamanhos (comma separated) |
// Imagens (comma separated)
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	var products []model.Product
	if len(os.Args) >= 2 {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		products, err = readProductsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	} else {
		fmt.Println("No XLSX file given, seeding demo catalog")
		products = demoCatalog()
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := productRepo.BulkCreate(products, 500); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows in sheet %s", sheetName)
	}

	var products []model.Product
	for i, row := range rows[1:] { // skip header
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+2, row[2])
			continue
		}

		p := model.Product{
			Name:        strings.TrimSpace(row[0]),
			Description: cell(row, 1),
			Price:       price,
			OldPrice:    floatCell(row, 3),
			Category:    cell(row, 4),
			Brand:       cell(row, 5),
			Rating:      floatCell(row, 6),
			ReviewCount: intCell(row, 7),
			Sold:        intCell(row, 8),
			Sizes:       listCell(row, 9),
			Images:      listCell(row, 10),
		}
		products = append(products, p)
	}

	return products, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func floatCell(row []string, i int) *float64 {
	s := cell(row, i)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intCell(row []string, i int) *int {
	s := cell(row, i)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func listCell(row []string, i int) []string {
	s := cell(row, i)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func demoCatalog() []model.Product {
	now := time.Now()
	days := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	return []model.Product{
		{
			Name:        "Tênis Corrida Leve",
			Description: "Tênis de corrida com amortecimento em espuma e cabedal em mesh respirável.",
			Price:       299.90,
			OldPrice:    f(349.90),
			Category:    "tenis",
			Brand:       "Olympikus",
			Rating:      f(4.6),
			ReviewCount: n(182),
			Sold:        n(1240),
			Sizes:       []string{"38", "39", "40", "41", "42"},
			CreatedAt:   days(12),
		},
		{
			Name:        "Tênis Casual Branco",
			Description: "Clássico casual de couro sintético para o dia a dia.",
			Price:       189.90,
			Category:    "tenis",
			Brand:       "Adidas",
			Rating:      f(4.3),
			ReviewCount: n(95),
			Sold:        n(860),
			Sizes:       []string{"37", "38", "39", "40", "41", "42", "43"},
			CreatedAt:   days(40),
		},
		{
			Name:        "Camiseta Dry Fit",
			Description: "Camiseta esportiva com tecido que afasta o suor do corpo.",
			Price:       59.90,
			Category:    "camisetas",
			Brand:       "Nike",
			Rating:      f(4.8),
			ReviewCount: n(310),
			Sold:        n(2150),
			Sizes:       []string{"P", "M", "G", "GG"},
			CreatedAt:   days(5),
		},
		{
			Name:        "Moletom Capuz Cinza",
			Description: "Moletom unissex com capuz e bolso canguru, algodão pesado.",
			Price:       149.90,
			OldPrice:    f(199.90),
			Category:    "moletons",
			Brand:       "Hering",
			Rating:      f(4.4),
			ReviewCount: n(67),
			Sold:        n(430),
			Sizes:       []string{"P", "M", "G"},
			CreatedAt:   days(90),
		},
		{
			Name:        "Boné Aba Curva",
			Description: "Boné ajustável com bordado frontal.",
			Price:       49.90,
			Category:    "acessorios",
			Brand:       "Nike",
			Rating:      f(4.1),
			ReviewCount: n(28),
			Sold:        n(310),
			CreatedAt:   days(200),
		},
		{
			Name:        "Meia Cano Alto Kit 3",
			Description: "Kit com três pares de meias esportivas de algodão.",
			Price:       29.90,
			Category:    "acessorios",
			Brand:       "Puma",
			Sold:        n(1790),
			CreatedAt:   days(25),
		},
	}
}

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }
