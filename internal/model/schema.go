package model

// Schema fixes the positional column layout of one remote table. Rows read
// through the cache are padded to Width so column constants below are always
// in range.
type Schema struct {
	Table   string
	Columns []string
}

// Width returns the number of columns the table is declared to have.
func (s Schema) Width() int { return len(s.Columns) }

// Claims table layout (columns A..P). Reserved columns exist in the legacy
// sheet and are preserved so positional addressing stays compatible.
const (
	ClaimColCreated = iota
	ClaimColClientNumber
	ClaimColSector
	ClaimColName
	ClaimColAddress
	ClaimColPhone
	ClaimColCategory
	ClaimColDescription
	ClaimColStatus
	ClaimColTechnician
	ClaimColSeal
	ClaimColHandledBy
	ClaimColResolved
	ClaimColAnnotation
	ClaimColReserved
	ClaimColID

	ClaimColumnCount
)

// Clients table layout (columns A..H).
const (
	ClientColNumber = iota
	ClientColSector
	ClientColName
	ClientColAddress
	ClientColPhone
	ClientColSeal
	ClientColID
	ClientColModified

	ClientColumnCount
)

// ClaimsSchema returns the claims table schema bound to a table name.
func ClaimsSchema(table string) Schema {
	return Schema{
		Table: table,
		Columns: []string{
			"Fecha y hora", "Nº Cliente", "Sector", "Nombre", "Dirección",
			"Teléfono", "Tipo de reclamo", "Detalles", "Estado", "Técnico",
			"N° de Precinto", "Atendido por", "Fecha_formateada", "Anotaciones",
			"", "ID Reclamo",
		},
	}
}

// ClientsSchema returns the clients table schema bound to a table name.
func ClientsSchema(table string) Schema {
	return Schema{
		Table: table,
		Columns: []string{
			"Nº Cliente", "Sector", "Nombre", "Dirección", "Teléfono",
			"N° de Precinto", "ID Cliente", "Última Modificación",
		},
	}
}
