// seed is a one-shot tool that loads demo master data: vendors, product
// categories, products, shipping carriers, and manufacturing lead-time rules.
// Safe to re-run; existing rows are left untouched.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"sale-ops-pipeline/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, "")
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding vendors...")
	_, err = tx.Exec(ctx, `
		INSERT INTO vendors (code, name, contact_person, email, phone, address) VALUES
			('V-WOOD', 'Najd Woodworks', 'Fahad', 'fahad@najdwood.example', '+966500000001', 'Industrial City 2, Riyadh'),
			('V-METAL', 'Gulf Metal Forming', 'Salem', 'salem@gulfmetal.example', '+966500000002', 'Dammam 2nd Industrial City'),
			('V-SHIP', 'Falcon Express Logistics', 'Noura', 'ops@falconexpress.example', '+966500000003', 'Exit 18, Riyadh')
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed vendors: %v", err)
	}

	log.Println("Seeding product categories...")
	_, err = tx.Exec(ctx, `
		INSERT INTO product_categories (name) VALUES
			('Sofas'), ('Tables'), ('Storage'), ('Services')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Println("Seeding products...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (code, name, category_id, list_price, unit, purchase_unit,
		                      is_service, manufacturing_vendor_id, outside_shipping_cost)
		VALUES
			('SOFA-3S', 'Three-Seat Sofa', (SELECT id FROM product_categories WHERE name = 'Sofas'),
			 3200.00, 'unit', NULL, FALSE,
			 (SELECT id FROM vendors WHERE code = 'V-WOOD'), 150.00),
			('TBL-DIN6', 'Dining Table, 6 Seats', (SELECT id FROM product_categories WHERE name = 'Tables'),
			 2100.00, 'unit', NULL, FALSE,
			 (SELECT id FROM vendors WHERE code = 'V-WOOD'), 120.00),
			('CAB-TV18', 'TV Cabinet 180cm', (SELECT id FROM product_categories WHERE name = 'Storage'),
			 1450.00, 'unit', NULL, FALSE,
			 (SELECT id FROM vendors WHERE code = 'V-METAL'), 90.00),
			('SRV-SHIP', 'Shipping Service', (SELECT id FROM product_categories WHERE name = 'Services'),
			 0.00, 'unit', 'service', TRUE, NULL, 0.00)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Println("Seeding shipping carriers...")
	_, err = tx.Exec(ctx, `
		INSERT INTO shipping_carriers (name, sequence, is_internal, vendor_id, service_product_id,
		                               cost_riyadh_flat, ship_days_riyadh, ship_days_outside)
		SELECT 'Falcon Express', 10, FALSE,
		       (SELECT id FROM vendors WHERE code = 'V-SHIP'),
		       (SELECT id FROM products WHERE code = 'SRV-SHIP'),
		       75.00, 1, 4
		WHERE NOT EXISTS (SELECT 1 FROM shipping_carriers WHERE name = 'Falcon Express');

		INSERT INTO shipping_carriers (name, sequence, is_internal, vendor_id, service_product_id,
		                               cost_riyadh_flat, ship_days_riyadh, ship_days_outside)
		SELECT 'Own Fleet', 20, TRUE, NULL, NULL, 0.00, 1, 2
		WHERE NOT EXISTS (SELECT 1 FROM shipping_carriers WHERE name = 'Own Fleet');
	`)
	if err != nil {
		log.Fatalf("Failed to seed carriers: %v", err)
	}

	log.Println("Seeding lead-time rules...")
	_, err = tx.Exec(ctx, `
		INSERT INTO manufacturing_lead_times (category_id, days, note, is_active)
		SELECT c.id, v.days, v.note, TRUE
		FROM (VALUES
			('Sofas', 10, 'Frame, foam and upholstery'),
			('Tables', 7, 'Cutting and finishing'),
			('Storage', 5, 'Panel assembly')
		) AS v(category, days, note)
		JOIN product_categories c ON c.name = v.category
		WHERE NOT EXISTS (
			SELECT 1 FROM manufacturing_lead_times m
			WHERE m.category_id = c.id AND m.is_active
		);
	`)
	if err != nil {
		log.Fatalf("Failed to seed lead-time rules: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Seed complete.")
}
