package lookup

// Classifier resolves coded values through its tables before classifying, so
// "01" and "Pendiente" land on the same badge.
type Classifier struct {
	tables Tables
}

// NewClassifier creates a Classifier over tables.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Estado maps a coded or literal estado to its Tag.
func (c *Classifier) Estado(value string) Tag {
	return ClassifyEstadoByName(c.EstadoName(value))
}

// EstadoName resolves an estado code to its spelled-out name.
func (c *Classifier) EstadoName(value string) string {
	return MapCodedField(value, c.tables.Estado)
}

// Prioridad maps a coded or literal prioridad to its Tag.
func (c *Classifier) Prioridad(value string) Tag {
	return ClassifyPrioridad(c.PrioridadName(value))
}

// PrioridadName resolves a prioridad code to its spelled-out name.
func (c *Classifier) PrioridadName(value string) string {
	return MapCodedField(value, c.tables.Prioridad)
}

// Tipo resolves a tipo code ("I") to its spelled-out value ("instalacion").
func (c *Classifier) Tipo(value string) string {
	return MapCodedField(value, c.tables.Tipo)
}
