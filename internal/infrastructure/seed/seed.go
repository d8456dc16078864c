// Package seed contiene el catálogo inicial de la tienda y el usuario
// administrador por defecto. Lo consumen el comando de seed (PostgreSQL)
// y el store en memoria (modo desarrollo).
package seed

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// catálogo inicial: precios en pesos colombianos (COP, sin centavos).
var initialProducts = []struct {
	name     string
	price    int64
	category string
	icon     string
}{
	{"Gaseosa", 2500, entity.CategoryBebida, "CupSoda"},
	{"Agua", 1500, entity.CategoryBebida, "CupSoda"},
	{"Agua Gas", 1800, entity.CategoryBebida, "CupSoda"},
	{"Café", 1000, entity.CategoryBebida, "Coffee"},
	{"Café con leche", 2000, entity.CategoryBebida, "Coffee"},
	{"Té", 2200, entity.CategoryBebida, "Coffee"},
	{"Papas", 3000, entity.CategoryMecato, "Utensils"},
	{"Doritos", 3500, entity.CategoryMecato, "Utensils"},
	{"De Todito", 4000, entity.CategoryMecato, "Utensils"},
	{"Yupi", 2500, entity.CategoryMecato, "Utensils"},
	{"Platanitos", 2800, entity.CategoryMecato, "Utensils"},
	{"Bom Bom", 500, entity.CategoryDulces, "IceCream"},
	{"Menta", 200, entity.CategoryDulces, "IceCream"},
	{"Chocolate pequeño", 1000, entity.CategoryDulces, "IceCream"},
	{"Chocolate Jet", 1500, entity.CategoryDulces, "IceCream"},
	{"Chocolate grande", 3000, entity.CategoryDulces, "IceCream"},
	{"ChocoBreak", 300, entity.CategoryDulces, "IceCream"},
	{"Fruna", 400, entity.CategoryDulces, "IceCream"},
	{"Empanada", 2000, entity.CategorySal, "Utensils"},
	{"Dedito", 2500, entity.CategorySal, "Utensils"},
	{"Aborrajado", 3000, entity.CategorySal, "Utensils"},
	{"Papa Rellena", 3500, entity.CategorySal, "Utensils"},
	{"Pan", 1000, entity.CategorySal, "Utensils"},
	{"Buñuelo", 1200, entity.CategorySal, "Utensils"},
}

// Products construye el catálogo inicial con IDs y timestamps frescos.
// Todos los productos arrancan con stock cero; el stock entra por compras.
func Products() []*entity.Product {
	now := time.Now().UTC()
	out := make([]*entity.Product, 0, len(initialProducts))
	for _, p := range initialProducts {
		out = append(out, &entity.Product{
			ID:        uuid.New().String(),
			Name:      p.name,
			Price:     decimal.NewFromInt(p.price),
			Category:  p.category,
			Icon:      p.icon,
			Stock:     0,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}

// DefaultAdmin construye el usuario administrador inicial. La contraseña
// se lee de SEED_ADMIN_PASSWORD; si no está definida se usa un valor de
// desarrollo que jamás debe llegar a producción.
func DefaultAdmin() (*entity.User, error) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@tienda.local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
