package entity

// Terminal is a physical gate device allowed to submit scans. The shared
// secret is stored as a bcrypt hash, never in clear.
type Terminal struct {
	ID          string `db:"id" json:"id"`
	Nombre      string `db:"nombre" json:"nombre"`
	SecretHash  string `db:"secret_hash" json:"-"`
	PuntoAcceso string `db:"punto_acceso" json:"punto_acceso"`
	Activo      bool   `db:"activo" json:"activo"`
}
