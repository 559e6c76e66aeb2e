package seed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// CategorySeed categoría de muestra.
type CategorySeed struct {
	Name        string
	Description string
	ImageURL    string
}

// ProductSeed producto de muestra; Category referencia CategorySeed.Name.
type ProductSeed struct {
	SKU              string
	Category         string
	Title            string
	Price            decimal.Decimal
	SalePrice        decimal.Decimal
	ProductArtURL    string
	Description      string
	Details          map[string]string
	Inventory        int
	LeadTime         int
	RecommendationID int
}

// SampleData lote en memoria usado sólo como fuente de siembra (sólo lectura para los seeders).
type SampleData struct {
	CategorySeeds []CategorySeed
	ProductSeeds  []ProductSeed
	Now           func() time.Time
}

// Categories devuelve las categorías a persistir, sin ID (lo asigna el almacén relacional).
func (d *SampleData) Categories() []*entity.Category {
	now := d.now()
	out := make([]*entity.Category, 0, len(d.CategorySeeds))
	for _, c := range d.CategorySeeds {
		out = append(out, &entity.Category{
			Name:        c.Name,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			CreatedAt:   now,
		})
	}
	return out
}

// Products deriva los productos a partir de las categorías ya resueltas (por nombre).
// Con assignIDs cada producto recibe su clave antes de insertarse (necesario en el almacén documental).
func (d *SampleData) Products(categories []*entity.Category, assignIDs bool) ([]*entity.Product, error) {
	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	now := d.now()
	out := make([]*entity.Product, 0, len(d.ProductSeeds))
	for _, p := range d.ProductSeeds {
		cat, ok := byName[p.Category]
		if !ok {
			return nil, fmt.Errorf("producto %s: %w: %q", p.SKU, domain.ErrUnknownCategory, p.Category)
		}
		details, err := json.Marshal(p.Details)
		if err != nil {
			return nil, fmt.Errorf("producto %s: detalles: %w", p.SKU, err)
		}
		prod := &entity.Product{
			SKU:              p.SKU,
			CategoryID:       cat.ID,
			RecommendationID: p.RecommendationID,
			Title:            p.Title,
			Price:            p.Price,
			SalePrice:        p.SalePrice,
			ProductArtURL:    p.ProductArtURL,
			Description:      p.Description,
			ProductDetails:   details,
			Inventory:        p.Inventory,
			LeadTime:         p.LeadTime,
			CreatedAt:        now,
		}
		if assignIDs {
			prod.ID = uuid.New().String()
		}
		out = append(out, prod)
	}
	return out, nil
}

func (d *SampleData) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultSampleData catálogo de demo de repuestos automotrices.
func DefaultSampleData() *SampleData {
	return &SampleData{
		CategorySeeds: []CategorySeed{
			{Name: "Brakes", Description: "Frenos, discos y pastillas", ImageURL: "product_brakes_disc.jpg"},
			{Name: "Lighting", Description: "Faros y bombillos", ImageURL: "product_lighting_headlight.jpg"},
			{Name: "Wheels & Tires", Description: "Rines y llantas", ImageURL: "product_wheel_rim.jpg"},
			{Name: "Batteries", Description: "Baterías y accesorios", ImageURL: "product_batteries_basic-battery.jpg"},
			{Name: "Oil", Description: "Aceites de motor", ImageURL: "product_oil_premium-oil.jpg"},
		},
		ProductSeeds: []ProductSeed{
			{SKU: "LIG-0001", Category: "Lighting", Title: "Halogen Headlights (2 Pack)", Price: price("38.99"), SalePrice: price("38.99"),
				ProductArtURL: "product_lighting_headlight.jpg", Description: "Faros halógenos de alta intensidad.",
				Details:   map[string]string{"Light Source": "Halogen", "Assembly Required": "Yes", "Color": "Clear", "Interior": "Chrome", "Beam": "low and high", "Wiring harness included": "Yes", "Bulbs Included": "No", "Includes Parking Signal": "Yes"},
				Inventory: 10, LeadTime: 0, RecommendationID: 1},
			{SKU: "LIG-0002", Category: "Lighting", Title: "Bugeye Headlights (2 Pack)", Price: price("48.99"), SalePrice: price("48.99"),
				ProductArtURL: "product_lighting_bugeye-headlight.jpg", Description: "Faros tipo bugeye con carcasa cromada.",
				Details:   map[string]string{"Light Source": "Halogen", "Assembly Required": "Yes", "Color": "Clear", "Beam": "low and high"},
				Inventory: 7, LeadTime: 0, RecommendationID: 2},
			{SKU: "LIG-0003", Category: "Lighting", Title: "Turn Signal Light Bulb", Price: price("6.49"), SalePrice: price("6.49"),
				ProductArtURL: "product_lighting_lightbulb.jpg", Description: "Bombillo de direccional ámbar.",
				Details:   map[string]string{"Color": "Clear", "Fit": "Universal", "Wattage": "30 Watts", "Includes Socket": "Yes"},
				Inventory: 18, LeadTime: 0, RecommendationID: 3},
			{SKU: "WHE-0001", Category: "Wheels & Tires", Title: "Matte Finish Rim", Price: price("75.99"), SalePrice: price("75.99"),
				ProductArtURL: "product_wheel_rim.jpg", Description: "Rin de aluminio con acabado mate.",
				Details:   map[string]string{"Material": "Aluminum alloy", "Design": "Spoke", "Spokes": "9", "Number of Lugs": "4", "Wheel Diameter": "17 in.", "Color": "Black"},
				Inventory: 4, LeadTime: 0, RecommendationID: 4},
			{SKU: "WHE-0002", Category: "Wheels & Tires", Title: "Blue Performance Alloy Rim", Price: price("88.99"), SalePrice: price("88.99"),
				ProductArtURL: "product_wheel_rim-blue.jpg", Description: "Rin de aleación azul de alto desempeño.",
				Details:   map[string]string{"Material": "Aluminum alloy", "Design": "Spoke", "Wheel Diameter": "18 in.", "Color": "Blue"},
				Inventory: 8, LeadTime: 0, RecommendationID: 5},
			{SKU: "WHE-0003", Category: "Wheels & Tires", Title: "High Performance Rim", Price: price("99.99"), SalePrice: price("99.49"),
				ProductArtURL: "product_wheel_rim-red.jpg", Description: "Rin de alto desempeño.",
				Details:   map[string]string{"Material": "Aluminum alloy", "Wheel Diameter": "18 in.", "Color": "Red"},
				Inventory: 3, LeadTime: 0, RecommendationID: 6},
			{SKU: "WHE-0004", Category: "Wheels & Tires", Title: "Wheel Tire Combo", Price: price("72.49"), SalePrice: price("72.49"),
				ProductArtURL: "product_wheel_tyre-wheel-combo.jpg", Description: "Combo de rin y llanta.",
				Details:   map[string]string{"Material": "Steel", "Wheel Diameter": "15 in.", "Tire Size": "195/65R15"},
				Inventory: 0, LeadTime: 4, RecommendationID: 7},
			{SKU: "BRA-0001", Category: "Brakes", Title: "Disk and Pad Combo", Price: price("25.99"), SalePrice: price("25.99"),
				ProductArtURL: "product_brakes_disk-pad-combo.jpg", Description: "Disco y pastillas de freno.",
				Details:   map[string]string{"Disk Design": "Cross Drill Slotted", "Pad Material": "Ceramic", "Construction": "Vented Rotor", "Diameter": "10.3 in.", "Finish": "Silver Zinc Plated", "Hat Finish": "Silver Zinc Plated", "Material": "Cast Iron"},
				Inventory: 0, LeadTime: 6, RecommendationID: 8},
			{SKU: "BRA-0002", Category: "Brakes", Title: "Brake Rotor", Price: price("18.99"), SalePrice: price("18.99"),
				ProductArtURL: "product_brakes_disc.jpg", Description: "Rotor de freno ventilado.",
				Details:   map[string]string{"Disk Design": "Cross Drill Slotted", "Construction": "Vented Rotor", "Material": "Cast Iron"},
				Inventory: 4, LeadTime: 0, RecommendationID: 9},
			{SKU: "BRA-0003", Category: "Brakes", Title: "Brake Disk and Caliper Combo", Price: price("43.99"), SalePrice: price("43.99"),
				ProductArtURL: "product_brakes_disc-calipers-red.jpg", Description: "Disco y caliper de freno.",
				Details:   map[string]string{"Disk Design": "Cross Drill Slotted", "Pad Material": "Carbon Fiber Ceramic", "Finish": "Silver Zinc Plated"},
				Inventory: 2, LeadTime: 0, RecommendationID: 10},
			{SKU: "CAR-0001", Category: "Batteries", Title: "12-Volt Calcium Battery", Price: price("129.99"), SalePrice: price("129.99"),
				ProductArtURL: "product_batteries_basic-battery.jpg", Description: "Batería de calcio de 12 voltios.",
				Details:   map[string]string{"Type": "Calcium", "Volts": "12", "Weight": "22.9 lbs", "Size": "922x833x689", "Cold Cranking Amps": "510"},
				Inventory: 9, LeadTime: 0, RecommendationID: 11},
			{SKU: "CAR-0002", Category: "Batteries", Title: "Jumper Leads", Price: price("16.99"), SalePrice: price("16.99"),
				ProductArtURL: "product_batteries_jumper-leads.jpg", Description: "Cables para pasar corriente.",
				Details:   map[string]string{"Length": "6ft.", "Connection Type": "Alligator Clips", "Fit": "Universal", "Max Amp's": "750"},
				Inventory: 6, LeadTime: 0, RecommendationID: 12},
			{SKU: "OIL-0001", Category: "Oil", Title: "Filter Set", Price: price("28.99"), SalePrice: price("28.99"),
				ProductArtURL: "product_oil_filters.jpg", Description: "Juego de filtros de aceite.",
				Details:   map[string]string{"Filter Type": "Canister and Cartridge", "Thread Size": "0.75-16 in.", "Anti-Drainback Valve": "Yes"},
				Inventory: 3, LeadTime: 0, RecommendationID: 13},
			{SKU: "OIL-0002", Category: "Oil", Title: "Oil and Filter Combo", Price: price("34.49"), SalePrice: price("34.49"),
				ProductArtURL: "product_oil_oil-filter-combo.jpg", Description: "Aceite y filtro en combo.",
				Details:   map[string]string{"Filter Type": "Spin-On", "Weight": "5W-30", "Volume": "5 qt."},
				Inventory: 5, LeadTime: 0, RecommendationID: 14},
			{SKU: "OIL-0003", Category: "Oil", Title: "Synthetic Engine Oil", Price: price("36.49"), SalePrice: price("36.49"),
				ProductArtURL: "product_oil_premium-oil.jpg", Description: "Aceite sintético para motor.",
				Details:   map[string]string{"Container Size": "1.1 Quarts", "Engine Type": "Gas", "Multi-viscosity": "Yes", "Oil Type": "Synthetic", "Viscosity": "5W-30"},
				Inventory: 11, LeadTime: 0, RecommendationID: 15},
		},
	}
}
