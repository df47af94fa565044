package entity

// SettingsID es la identidad fija de la fila única de configuración del negocio.
const SettingsID = 1

// StoreSettings es el registro único con los datos del negocio.
// Se crea perezosamente en el primer acceso (get-or-create sobre id=1) y lo
// consumen el dashboard y la exportación PDF.
type StoreSettings struct {
	ID       int
	Name     string
	Address  string
	Phone    string
	Email    string
	LogoPath string
}
