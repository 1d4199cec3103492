package model

import (
	"time"
)

const (
	RolCliente       = "cliente"
	RolAuxiliar      = "auxiliar"
	RolAdministrador = "administrador"
)

// Usuario stores system users with role-based access.
// Rol: "cliente" | "auxiliar" | "administrador"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'cliente'"`
	Telefono     *string
	Direccion    *string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
