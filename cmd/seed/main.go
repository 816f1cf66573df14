// seed puebla la base de datos con datos de demostración: una tienda,
// tres usuarios (admin, manager y staff) y un catálogo pequeño de
// productos y servicios.
//
// Uso: go run ./cmd/seed
// La conexión se toma de las mismas variables de entorno que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-backoffice/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	shopRepo := postgres.NewShopRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	now := time.Now()

	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      "Tienda Demo Centro",
		Address:   "Calle 10 # 5-23",
		Phone:     "+57 300 000 0000",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := shopRepo.Create(shop); err != nil {
		fmt.Fprintf(os.Stderr, "crear tienda: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("tienda: %s (%s)\n", shop.Name, shop.ID)

	// Usuarios demo, uno por rol. Contraseña: demo1234
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear contraseña: %v\n", err)
		os.Exit(1)
	}
	for _, u := range []struct{ name, email, role string }{
		{"Admin Demo", "admin@demo.local", entity.RoleAdmin},
		{"Manager Demo", "manager@demo.local", entity.RoleManager},
		{"Staff Demo", "staff@demo.local", entity.RoleStaff},
	} {
		user := &entity.User{
			ID:           uuid.New().String(),
			ShopID:       shop.ID,
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.email, err)
			os.Exit(1)
		}
		fmt.Printf("usuario: %s (%s)\n", u.email, u.role)
	}

	category := &entity.Category{
		ID:        uuid.New().String(),
		ShopID:    shop.ID,
		Name:      "Bebidas calientes",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := categoryRepo.Create(category); err != nil {
		fmt.Fprintf(os.Stderr, "crear categoría: %v\n", err)
		os.Exit(1)
	}

	for _, p := range []struct {
		sku, name, price string
		qty              int64
	}{
		{"CAFE-001", "Café Molido 500g", "10.00", 50},
		{"CAFE-002", "Café en Grano 1kg", "18.50", 30},
		{"TE-001", "Té Verde x20", "6.75", 40},
	} {
		product := &entity.Product{
			ID:         uuid.New().String(),
			ShopID:     shop.ID,
			CategoryID: category.ID,
			SKU:        p.sku,
			Name:       p.name,
			Price:      decimal.RequireFromString(p.price),
			Quantity:   p.qty,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(product); err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		fmt.Printf("producto: %s (%s, stock %d)\n", p.name, p.sku, p.qty)
	}

	service := &entity.Service{
		ID:         uuid.New().String(),
		ShopID:     shop.ID,
		CategoryID: category.ID,
		Name:       "Molienda personalizada",
		Price:      decimal.RequireFromString("2.00"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := serviceRepo.Create(service); err != nil {
		fmt.Fprintf(os.Stderr, "crear servicio: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("servicio: %s\n", service.Name)

	fmt.Println("seed completado")
}
