package entity

import "time"

// ApplicationUser representa un usuario del sitio.
// Los campos de identidad (ID, nombres normalizados, hash, stamp) los administra el servicio
// de identidad; este registro sólo aporta Name (nombre para mostrar).
type ApplicationUser struct {
	ID                 string
	UserName           string
	NormalizedUserName string
	Email              string
	NormalizedEmail    string
	PasswordHash       string // bcrypt
	SecurityStamp      string // cambia cuando cambian las credenciales
	Name               string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
